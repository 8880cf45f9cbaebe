package domain

import (
	"encoding/json"
	"time"
)

// Store names used in change notifications.
const (
	StoreSession  = "session"
	StoreData     = "data"
	StoreMessage  = "message"
	StoreMeeting  = "meeting"
	StorePrefs    = "preferences"
	EntityTask    = "task"
	EntityUser    = "user"
	EntityEvent   = "event"
	EntityMeeting = "meeting"
	EntityConv    = "conversation"
	EntitySession = "session"
	EntityPrefs   = "preferences"
)

// Change operations.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// Change represents a mutation applied to one of the workspace stores.
type Change struct {
	Version   int64           `json:"version"`
	Store     string          `json:"store"`
	Entity    string          `json:"entity"`
	Operation string          `json:"operation"`
	EntityID  string          `json:"entity_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewChange builds a change with a best-effort JSON payload.
func NewChange(store, entity, operation, entityID string, payload interface{}) Change {
	change := Change{
		Store:     store,
		Entity:    entity,
		Operation: operation,
		EntityID:  entityID,
	}
	if payload != nil {
		if raw, err := json.Marshal(payload); err == nil {
			change.Payload = raw
		}
	}
	return change
}
