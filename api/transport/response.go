package transport

import (
	"encoding/json"
	"time"

	"github.com/fastygo/planner/domain"
)

// Envelope is the standard API response wrapper used for both success and error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope with optional metadata.
func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// SessionResponse is returned by login, signup and demo login.
type SessionResponse struct {
	User      domain.SessionUser `json:"user"`
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expiresAt"`
}

type SessionStatus struct {
	Authenticated bool                `json:"authenticated"`
	IsAdmin       bool                `json:"isAdmin"`
	User          *domain.SessionUser `json:"user"`
}

type ConversationCreated struct {
	ID string `json:"id"`
}

type ChangesResponse struct {
	Version int64           `json:"version"`
	Changes []domain.Change `json:"changes"`
}

// ListMeta accompanies collection responses.
type ListMeta struct {
	Total int `json:"total"`
}
