package domain

import "time"

// Meeting holds meeting notes and their discussion thread.
type Meeting struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Date        Date         `json:"date"`
	Content     string       `json:"content"`
	Attendees   []string     `json:"attendees"`
	Comments    []Comment    `json:"comments"`
	Attachments []Attachment `json:"attachments"`
	CreatedAt   time.Time    `json:"createdAt"`
}

type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// MeetingPatch lists the meeting fields an update may change.
type MeetingPatch struct {
	Title       *string       `json:"title,omitempty"`
	Date        *Date         `json:"date,omitempty"`
	Content     *string       `json:"content,omitempty"`
	Attendees   *[]string     `json:"attendees,omitempty"`
	Attachments *[]Attachment `json:"attachments,omitempty"`
}

// Apply merges the patch into m.
func (p MeetingPatch) Apply(m *Meeting) {
	if m == nil {
		return
	}
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Date != nil {
		m.Date = *p.Date
	}
	if p.Content != nil {
		m.Content = *p.Content
	}
	if p.Attendees != nil {
		m.Attendees = append([]string(nil), (*p.Attendees)...)
	}
	if p.Attachments != nil {
		m.Attachments = append([]Attachment(nil), (*p.Attachments)...)
	}
}
