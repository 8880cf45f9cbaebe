package usecase

import "context"

// Storage write operations that may be buffered.
const (
	OperationSet    = "set"
	OperationRemove = "remove"
)

// OperationBuffer abstracts the buffer processor so use cases stay storage-agnostic.
type OperationBuffer interface {
	BufferWrite(ctx context.Context, operation, key string, value []byte) error
}
