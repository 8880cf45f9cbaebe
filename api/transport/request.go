package transport

import (
	"strings"

	"github.com/fastygo/planner/domain"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type DemoLoginRequest struct {
	Role string `json:"role"`
}

type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	Assignee    string `json:"assignee"`
	DueDate     string `json:"dueDate"`
	StartDate   string `json:"startDate"`
}

// ToDomain validates the request. Status defaults to pending and priority to medium.
func (r TaskRequest) ToDomain() (domain.Task, error) {
	task := domain.Task{
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Priority:    domain.Priority(r.Priority),
		Status:      domain.TaskStatus(r.Status),
		Assignee:    strings.TrimSpace(r.Assignee),
	}
	if task.Title == "" {
		return domain.Task{}, domain.NewError(domain.ErrCodeInvalid, "title is required")
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusPending
	}
	if !task.Status.Valid() {
		return domain.Task{}, domain.NewError(domain.ErrCodeInvalid, "unknown status")
	}
	if task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}
	if !task.Priority.Valid() {
		return domain.Task{}, domain.NewError(domain.ErrCodeInvalid, "unknown priority")
	}
	due, err := domain.ParseDate(r.DueDate)
	if err != nil {
		return domain.Task{}, err
	}
	task.DueDate = due
	if r.StartDate != "" {
		start, err := domain.ParseDate(r.StartDate)
		if err != nil {
			return domain.Task{}, err
		}
		task.StartDate = start
	}
	return task, nil
}

// ValidateTaskPatch rejects enum values and dates the domain does not know.
func ValidateTaskPatch(p domain.TaskPatch) error {
	if p.Status != nil && !p.Status.Valid() {
		return domain.NewError(domain.ErrCodeInvalid, "unknown status")
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return domain.NewError(domain.ErrCodeInvalid, "unknown priority")
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return domain.NewError(domain.ErrCodeInvalid, "title is required")
	}
	return validateDates(p.DueDate, p.StartDate)
}

type UserRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
	JoinDate   string `json:"joinDate"`
	Avatar     string `json:"avatar"`
	IsActive   *bool  `json:"isActive"`
}

// ToDomain validates the request. New users are active unless stated otherwise.
func (r UserRequest) ToDomain() (domain.User, error) {
	user := domain.User{
		Name:       strings.TrimSpace(r.Name),
		Email:      strings.TrimSpace(r.Email),
		Role:       r.Role,
		Department: r.Department,
		Avatar:     r.Avatar,
		IsActive:   true,
	}
	if user.Name == "" || user.Email == "" {
		return domain.User{}, domain.NewError(domain.ErrCodeInvalid, "name and email are required")
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	if r.IsActive != nil {
		user.IsActive = *r.IsActive
	}
	if r.JoinDate != "" {
		joined, err := domain.ParseDate(r.JoinDate)
		if err != nil {
			return domain.User{}, err
		}
		user.JoinDate = joined
	}
	return user, nil
}

func ValidateUserPatch(p domain.UserPatch) error {
	return validateDates(p.JoinDate)
}

type EventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

func (r EventRequest) ToDomain() (domain.Event, error) {
	event := domain.Event{
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Time:        r.Time,
	}
	if event.Title == "" {
		return domain.Event{}, domain.NewError(domain.ErrCodeInvalid, "title is required")
	}
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return domain.Event{}, err
	}
	event.Date = date
	return event, nil
}

func ValidateEventPatch(p domain.EventPatch) error {
	return validateDates(p.Date)
}

type MeetingRequest struct {
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	Content   string   `json:"content"`
	Attendees []string `json:"attendees"`
}

func (r MeetingRequest) ToDomain() (domain.Meeting, error) {
	meeting := domain.Meeting{
		Title:     strings.TrimSpace(r.Title),
		Content:   r.Content,
		Attendees: r.Attendees,
	}
	if meeting.Title == "" {
		return domain.Meeting{}, domain.NewError(domain.ErrCodeInvalid, "title is required")
	}
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return domain.Meeting{}, err
	}
	meeting.Date = date
	return meeting, nil
}

func ValidateMeetingPatch(p domain.MeetingPatch) error {
	return validateDates(p.Date)
}

type CommentRequest struct {
	Content string `json:"content"`
}

type StartConversationRequest struct {
	ParticipantIDs []string `json:"participantIds"`
	Name           string   `json:"name"`
}

type ActiveConversationRequest struct {
	ID string `json:"id"`
}

type SendMessageRequest struct {
	Text string `json:"text"`
}

type AddParticipantsRequest struct {
	ParticipantIDs []string `json:"participantIds"`
}

type PrepareUploadRequest struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

type PreferencesRequest struct {
	Language string `json:"language"`
}

func validateDates(dates ...*domain.Date) error {
	for _, d := range dates {
		if d != nil && !d.IsZero() && !d.Valid() {
			return domain.NewError(domain.ErrCodeInvalid, "invalid date")
		}
	}
	return nil
}
