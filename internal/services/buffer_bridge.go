package services

import (
	"context"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/internal/infrastructure/buffer"
	"github.com/fastygo/planner/repository"
	"github.com/fastygo/planner/usecase"
)

// BufferBridge adapts the processor to the use case layer's OperationBuffer.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferWrite(ctx context.Context, operation, key string, value []byte) error {
	if b.processor == nil || key == "" {
		return domain.ErrInvalidPayload
	}
	item := buffer.Item{
		Key:       key,
		Operation: bufferOperation(operation),
		Value:     value,
		Priority:  priorityFor(key),
	}
	return b.processor.BufferOperation(ctx, item)
}

func bufferOperation(operation string) string {
	if operation == usecase.OperationRemove {
		return buffer.OperationRemove
	}
	return buffer.OperationSet
}

// The session key is replayed before the account list.
func priorityFor(key string) int {
	if key == repository.KeyUser {
		return 1
	}
	return 3
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
