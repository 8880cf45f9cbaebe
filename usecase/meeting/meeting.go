package meeting

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/repository"
	"github.com/fastygo/planner/usecase"
)

// AnonymousAuthor signs comments left without a session.
const AnonymousAuthor = "Anonymous"

// SessionReader exposes the acting session identity.
type SessionReader interface {
	CurrentUser() *domain.SessionUser
}

type Option func(*UseCase)

func WithPublisher(p usecase.ChangePublisher) Option {
	return func(uc *UseCase) { uc.publisher = p }
}

func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(uc *UseCase) {
		if fn != nil {
			uc.idGenerator = fn
		}
	}
}

// UseCase keeps meeting notes and their comment threads.
type UseCase struct {
	meetings repository.MeetingRepository
	session  SessionReader

	publisher   usecase.ChangePublisher
	logger      *zap.Logger
	now         func() time.Time
	idGenerator func() string

	mu sync.RWMutex
}

func New(meetings repository.MeetingRepository, session SessionReader, logger *zap.Logger, opts ...Option) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &UseCase{
		meetings:    meetings,
		session:     session,
		logger:      logger,
		now:         time.Now,
		idGenerator: uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *UseCase) List(ctx context.Context) ([]domain.Meeting, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.meetings.List(ctx)
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Meeting, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.meetings.GetByID(ctx, id)
}

// Search matches title or content, case-insensitively.
func (uc *UseCase) Search(ctx context.Context, term string) ([]domain.Meeting, error) {
	meetings, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(term)
	if term == "" {
		return meetings, nil
	}
	out := make([]domain.Meeting, 0, len(meetings))
	for _, m := range meetings {
		if strings.Contains(strings.ToLower(m.Title), term) || strings.Contains(strings.ToLower(m.Content), term) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (uc *UseCase) Add(ctx context.Context, meeting domain.Meeting) (*domain.Meeting, error) {
	uc.mu.Lock()
	meeting.ID = uc.idGenerator()
	meeting.CreatedAt = uc.now()
	if meeting.Attendees == nil {
		meeting.Attendees = []string{}
	}
	meeting.Comments = []domain.Comment{}
	if meeting.Attachments == nil {
		meeting.Attachments = []domain.Attachment{}
	}
	err := uc.meetings.Create(ctx, &meeting)
	uc.mu.Unlock()
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("meeting added", zap.String("meeting_id", meeting.ID))
	usecase.Publish(ctx, uc.publisher, domain.StoreMeeting, domain.EntityMeeting, domain.OperationCreate, meeting.ID, meeting)
	return &meeting, nil
}

// Update merges patch into the meeting; nil without error for unknown ids.
func (uc *UseCase) Update(ctx context.Context, id string, patch domain.MeetingPatch) (*domain.Meeting, error) {
	return uc.mutate(ctx, id, patch.Apply)
}

// SetAttachments replaces the meeting's attachment list.
func (uc *UseCase) SetAttachments(ctx context.Context, id string, attachments []domain.Attachment) (*domain.Meeting, error) {
	return uc.Update(ctx, id, domain.MeetingPatch{Attachments: &attachments})
}

func (uc *UseCase) Delete(ctx context.Context, id string) (bool, error) {
	uc.mu.Lock()
	err := uc.meetings.Delete(ctx, id)
	uc.mu.Unlock()
	if err != nil {
		if errors.Is(err, domain.ErrMeetingNotFound) {
			return false, nil
		}
		return false, err
	}

	usecase.Publish(ctx, uc.publisher, domain.StoreMeeting, domain.EntityMeeting, domain.OperationDelete, id, nil)
	return true, nil
}

// AddComment appends a comment signed by the session user. Blank content or
// an unknown meeting returns nil.
func (uc *UseCase) AddComment(ctx context.Context, id, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}
	author := AnonymousAuthor
	if current := uc.session.CurrentUser(); current != nil && current.Name != "" {
		author = current.Name
	}
	comment := domain.Comment{
		ID:        uc.idGenerator(),
		Author:    author,
		Content:   content,
		Timestamp: uc.now(),
	}
	updated, err := uc.mutate(ctx, id, func(m *domain.Meeting) {
		m.Comments = append(m.Comments, comment)
	})
	if err != nil || updated == nil {
		return nil, err
	}
	return &comment, nil
}

func (uc *UseCase) mutate(ctx context.Context, id string, fn func(*domain.Meeting)) (*domain.Meeting, error) {
	uc.mu.Lock()
	meeting, err := uc.meetings.GetByID(ctx, id)
	if err != nil {
		uc.mu.Unlock()
		if errors.Is(err, domain.ErrMeetingNotFound) {
			return nil, nil
		}
		return nil, err
	}
	fn(meeting)
	err = uc.meetings.Update(ctx, meeting)
	uc.mu.Unlock()
	if err != nil {
		return nil, err
	}

	usecase.Publish(ctx, uc.publisher, domain.StoreMeeting, domain.EntityMeeting, domain.OperationUpdate, meeting.ID, meeting)
	return meeting, nil
}
