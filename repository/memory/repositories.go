package memory

import (
	"context"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/repository"
)

type taskRepository struct {
	items *collection[domain.Task]
}

// NewTaskRepository creates an in-memory task repository.
func NewTaskRepository() repository.TaskRepository {
	return &taskRepository{items: newCollection(
		func(t domain.Task) string { return t.ID },
		func(t domain.Task) domain.Task {
			t.Attachments = append([]domain.Attachment(nil), t.Attachments...)
			return t
		},
		domain.ErrTaskNotFound,
	)}
}

func (r *taskRepository) GetByID(_ context.Context, id string) (*domain.Task, error) {
	return r.items.get(id)
}

func (r *taskRepository) List(_ context.Context) ([]domain.Task, error) {
	return r.items.list(), nil
}

func (r *taskRepository) Create(_ context.Context, task *domain.Task) error {
	if task == nil || task.ID == "" {
		return domain.ErrInvalidPayload
	}
	r.items.put(*task)
	return nil
}

func (r *taskRepository) Update(_ context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	return r.items.replace(*task)
}

func (r *taskRepository) Delete(_ context.Context, id string) error {
	return r.items.remove(id)
}

type userRepository struct {
	items *collection[domain.User]
}

// NewUserRepository creates an in-memory user directory.
func NewUserRepository() repository.UserRepository {
	return &userRepository{items: newCollection(
		func(u domain.User) string { return u.ID },
		nil,
		domain.ErrUserNotFound,
	)}
}

func (r *userRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	return r.items.get(id)
}

func (r *userRepository) List(_ context.Context) ([]domain.User, error) {
	return r.items.list(), nil
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}
	r.items.put(*user)
	return nil
}

func (r *userRepository) Update(_ context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}
	return r.items.replace(*user)
}

func (r *userRepository) Delete(_ context.Context, id string) error {
	return r.items.remove(id)
}

type eventRepository struct {
	items *collection[domain.Event]
}

func NewEventRepository() repository.EventRepository {
	return &eventRepository{items: newCollection(
		func(e domain.Event) string { return e.ID },
		nil,
		domain.ErrEventNotFound,
	)}
}

func (r *eventRepository) GetByID(_ context.Context, id string) (*domain.Event, error) {
	return r.items.get(id)
}

func (r *eventRepository) List(_ context.Context) ([]domain.Event, error) {
	return r.items.list(), nil
}

func (r *eventRepository) Create(_ context.Context, event *domain.Event) error {
	if event == nil || event.ID == "" {
		return domain.ErrInvalidPayload
	}
	r.items.put(*event)
	return nil
}

func (r *eventRepository) Update(_ context.Context, event *domain.Event) error {
	if event == nil {
		return domain.ErrInvalidPayload
	}
	return r.items.replace(*event)
}

func (r *eventRepository) Delete(_ context.Context, id string) error {
	return r.items.remove(id)
}

type meetingRepository struct {
	items *collection[domain.Meeting]
}

func NewMeetingRepository() repository.MeetingRepository {
	return &meetingRepository{items: newCollection(
		func(m domain.Meeting) string { return m.ID },
		func(m domain.Meeting) domain.Meeting {
			m.Attendees = append([]string(nil), m.Attendees...)
			m.Comments = append([]domain.Comment(nil), m.Comments...)
			m.Attachments = append([]domain.Attachment(nil), m.Attachments...)
			return m
		},
		domain.ErrMeetingNotFound,
	)}
}

func (r *meetingRepository) GetByID(_ context.Context, id string) (*domain.Meeting, error) {
	return r.items.get(id)
}

func (r *meetingRepository) List(_ context.Context) ([]domain.Meeting, error) {
	return r.items.list(), nil
}

func (r *meetingRepository) Create(_ context.Context, meeting *domain.Meeting) error {
	if meeting == nil || meeting.ID == "" {
		return domain.ErrInvalidPayload
	}
	r.items.put(*meeting)
	return nil
}

func (r *meetingRepository) Update(_ context.Context, meeting *domain.Meeting) error {
	if meeting == nil {
		return domain.ErrInvalidPayload
	}
	return r.items.replace(*meeting)
}

func (r *meetingRepository) Delete(_ context.Context, id string) error {
	return r.items.remove(id)
}

type conversationRepository struct {
	items *collection[domain.Conversation]
}

// NewConversationRepository creates an in-memory conversation list.
func NewConversationRepository() repository.ConversationRepository {
	return &conversationRepository{items: newCollection(
		func(c domain.Conversation) string { return c.ID },
		func(c domain.Conversation) domain.Conversation { return c.Clone() },
		domain.ErrConversationNotFound,
	)}
}

func (r *conversationRepository) GetByID(_ context.Context, id string) (*domain.Conversation, error) {
	return r.items.get(id)
}

func (r *conversationRepository) List(_ context.Context) ([]domain.Conversation, error) {
	return r.items.list(), nil
}

func (r *conversationRepository) Create(_ context.Context, conv *domain.Conversation) error {
	if conv == nil || conv.ID == "" {
		return domain.ErrInvalidPayload
	}
	r.items.put(*conv)
	return nil
}

func (r *conversationRepository) Update(_ context.Context, conv *domain.Conversation) error {
	if conv == nil {
		return domain.ErrInvalidPayload
	}
	return r.items.replace(*conv)
}

func (r *conversationRepository) Reorder(_ context.Context, ids []string) error {
	r.items.reorder(ids)
	return nil
}
