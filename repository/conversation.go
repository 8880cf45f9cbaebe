package repository

import (
	"context"

	"github.com/fastygo/planner/domain"
)

// ConversationRepository keeps conversations in display order.
type ConversationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Conversation, error)
	List(ctx context.Context) ([]domain.Conversation, error)
	Create(ctx context.Context, conv *domain.Conversation) error
	Update(ctx context.Context, conv *domain.Conversation) error
	// Reorder moves the listed ids to the front in the given order.
	// Unknown ids are ignored; unlisted conversations keep their relative order.
	Reorder(ctx context.Context, ids []string) error
}
