package data

import (
	"context"
	"time"

	"github.com/fastygo/planner/domain"
)

func fixtureTime(value string) time.Time {
	t, _ := time.Parse(domain.DateLayout, value)
	return t
}

func seedTasks() []domain.Task {
	return []domain.Task{
		{ID: "1", Title: "UI 디자인 개선", Description: "사용자 인터페이스 개선 작업", Priority: domain.PriorityHigh, Status: domain.TaskStatusCompleted, Assignee: "김철수", StartDate: "2024-01-01", DueDate: "2024-01-15", CreatedAt: fixtureTime("2024-01-01")},
		{ID: "2", Title: "API 연동", Description: "백엔드 API 연동 작업", Priority: domain.PriorityHigh, Status: domain.TaskStatusCompleted, Assignee: "박영희", StartDate: "2024-01-05", DueDate: "2024-01-20", CreatedAt: fixtureTime("2024-01-02")},
		{ID: "3", Title: "테스트 케이스 작성", Description: "단위 테스트 및 통합 테스트", Priority: domain.PriorityMedium, Status: domain.TaskStatusInProgress, Assignee: "이민수", StartDate: "2024-01-15", DueDate: "2024-01-25", CreatedAt: fixtureTime("2024-01-03")},
		{ID: "4", Title: "문서화", Description: "프로젝트 문서 작성", Priority: domain.PriorityLow, Status: domain.TaskStatusInProgress, Assignee: "최지영", DueDate: "2024-01-30", CreatedAt: fixtureTime("2024-01-04")},
		{ID: "5", Title: "성능 최적화", Description: "애플리케이션 성능 개선", Priority: domain.PriorityMedium, Status: domain.TaskStatusPending, Assignee: "김철수", DueDate: "2024-02-05", CreatedAt: fixtureTime("2024-01-05")},
	}
}

func seedUsers() []domain.User {
	return []domain.User{
		{ID: "1", Name: "김철수", Email: "kim@company.com", Role: "프로젝트 매니저", Department: "개발팀", JoinDate: "2023-01-15", IsActive: true},
		{ID: "2", Name: "박영희", Email: "park@company.com", Role: "프론트엔드 개발자", Department: "개발팀", JoinDate: "2023-03-10", IsActive: true},
		{ID: "3", Name: "이민수", Email: "lee@company.com", Role: "백엔드 개발자", Department: "개발팀", JoinDate: "2023-05-20", IsActive: false},
		{ID: "4", Name: "최지영", Email: "choi@company.com", Role: "UX/UI 디자이너", Department: "디자인팀", JoinDate: "2023-07-01", IsActive: true},
	}
}

func seedEvents() []domain.Event {
	return []domain.Event{
		{ID: "1", Title: "주간 팀 미팅", Date: "2024-01-15", Time: "10:00", Description: "프로젝트 진행 상황 공유 및 다음 주 계획 수립", CreatedAt: fixtureTime("2024-01-01")},
		{ID: "2", Title: "클라이언트 미팅", Date: "2024-01-17", Time: "14:00", Description: "프로젝트 중간 발표 및 피드백 수집", CreatedAt: fixtureTime("2024-01-02")},
		{ID: "3", Title: "디자인 리뷰", Date: "2024-01-18", Time: "15:30", Description: "새로운 UI/UX 디자인 최종 검토", CreatedAt: fixtureTime("2024-01-03")},
	}
}

// SeedDemoData loads the demo workspace fixtures. Records keep their fixed ids.
func (uc *UseCase) SeedDemoData(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	for _, task := range seedTasks() {
		task := task
		if err := uc.tasks.Create(ctx, &task); err != nil {
			return err
		}
	}
	for _, user := range seedUsers() {
		user := user
		if err := uc.users.Create(ctx, &user); err != nil {
			return err
		}
	}
	for _, event := range seedEvents() {
		event := event
		if err := uc.events.Create(ctx, &event); err != nil {
			return err
		}
	}
	uc.logger.Info("demo data seeded")
	return nil
}
