package buffer

import (
	"time"

	"github.com/google/uuid"
)

const (
	OperationSet    = "set"
	OperationRemove = "remove"

	defaultPriority = 3
)

// Item is a local storage write that the backing store rejected and that
// must be replayed once it is reachable again.
type Item struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Operation string    `json:"operation"`
	Value     []byte    `json:"value,omitempty"`
	Priority  int       `json:"priority"`
	Retries   int       `json:"retries"`
	Timestamp time.Time `json:"timestamp"`

	bucketKey []byte
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Priority <= 0 || i.Priority > 5 {
		i.Priority = defaultPriority
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now()
	}
	if i.Operation == "" {
		i.Operation = OperationSet
	}
}
