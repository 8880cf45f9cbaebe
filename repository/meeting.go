package repository

import (
	"context"

	"github.com/fastygo/planner/domain"
)

type MeetingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Meeting, error)
	List(ctx context.Context) ([]domain.Meeting, error)
	Create(ctx context.Context, meeting *domain.Meeting) error
	Update(ctx context.Context, meeting *domain.Meeting) error
	Delete(ctx context.Context, id string) error
}
