package meeting

import (
	"context"
	"time"

	"github.com/fastygo/planner/domain"
)

func seedMeetings() []domain.Meeting {
	ts := func(value string) time.Time {
		t, _ := time.Parse(time.RFC3339, value)
		return t
	}
	return []domain.Meeting{
		{
			ID:    "1",
			Title: "주간 프로젝트 진행 상황 회의",
			Date:  "2024-01-15",
			Content: "## 회의 안건\n1. 지난주 완료 작업 리뷰\n2. 이번주 계획 수립\n3. 이슈 및 블로커 논의\n\n" +
				"## 논의 내용\n- 웹사이트 리디자인 프로젝트 75% 완료\n- API 문서화 작업 지연으로 인한 일정 조정 필요\n- 새로운 팀원 온보딩 프로세스 개선 필요\n\n" +
				"## 액션 아이템\n- [ ] API 문서 완료 (이영희, 1/18까지)\n- [ ] 온보딩 가이드 업데이트 (김철수, 1/20까지)\n- [ ] 다음주 스프린트 계획 수립 (팀 전체, 1/22까지)",
			Attendees:   []string{"김철수", "이영희", "박민수", "정수진"},
			Attachments: []domain.Attachment{},
			Comments: []domain.Comment{
				{ID: "1", Author: "이영희", Content: "API 문서 작업 일정이 빡빡하네요. 혹시 도움이 필요하면 말씀해 주세요.", Timestamp: ts("2024-01-15T10:30:00Z")},
				{ID: "2", Author: "박민수", Content: "온보딩 가이드에 개발 환경 설정 부분도 추가해 주시면 좋겠습니다.", Timestamp: ts("2024-01-15T11:00:00Z")},
			},
			CreatedAt: ts("2024-01-15T09:00:00Z"),
		},
		{
			ID:    "2",
			Title: "디자인 시스템 리뷰 미팅",
			Date:  "2024-01-12",
			Content: "## 회의 목적\n새로운 디자인 시스템 컴포넌트 리뷰 및 피드백\n\n" +
				"## 검토 항목\n- 버튼 컴포넌트 variants\n- 색상 팔레트 최종 확정\n- 타이포그래피 가이드라인\n\n" +
				"## 결정 사항\n- Primary 버튼 색상을 블루(#3B82F6)로 확정\n- 헤딩 폰트를 Inter로 변경\n- 모바일 반응형 가이드라인 추가 필요\n\n" +
				"## 다음 단계\n- 디자인 시스템 문서화\n- 개발팀에 가이드라인 공유",
			Attendees:   []string{"이영희", "정수진", "김철수"},
			Attachments: []domain.Attachment{},
			Comments:    []domain.Comment{},
			CreatedAt:   ts("2024-01-12T09:00:00Z"),
		},
		{
			ID:    "3",
			Title: "보안 정책 수립 회의",
			Date:  "2024-01-10",
			Content: "## 논의 주제\n개인정보보호 및 데이터 보안 정책 수립\n\n" +
				"## 주요 결정사항\n1. 2FA(이중 인증) 도입 결정\n2. 정기 보안 감사 계획 수립\n3. 개발팀 보안 교육 실시\n\n" +
				"## 실행 계획\n- 2FA 시스템 개발: 2월 말까지\n- 보안 교육 일정: 매월 첫째 주 금요일\n- 외부 보안 감사: 분기별 1회\n\n" +
				"## 책임자\n- 2FA 개발: 박민수\n- 교육 기획: 김철수\n- 감사 주관: 이영희",
			Attendees:   []string{"김철수", "이영희", "박민수"},
			Attachments: []domain.Attachment{},
			Comments: []domain.Comment{
				{ID: "3", Author: "김철수", Content: "보안 교육 자료 준비에 대해 외부 전문가 도움이 필요할 것 같습니다.", Timestamp: ts("2024-01-10T14:20:00Z")},
			},
			CreatedAt: ts("2024-01-10T09:00:00Z"),
		},
	}
}

// SeedDemoData loads the demo meeting notes with their fixed ids.
func (uc *UseCase) SeedDemoData(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for _, m := range seedMeetings() {
		m := m
		if err := uc.meetings.Create(ctx, &m); err != nil {
			return err
		}
	}
	return nil
}
