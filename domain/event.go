package domain

import "time"

// Event is a calendar entry. A date may hold any number of events.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        Date      `json:"date"`
	Time        string    `json:"time"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EventPatch lists the event fields an update may change.
type EventPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *Date   `json:"date,omitempty"`
	Time        *string `json:"time,omitempty"`
}

// Apply merges the patch into e.
func (p EventPatch) Apply(e *Event) {
	if e == nil {
		return
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
}
