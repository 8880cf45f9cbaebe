package data

import (
	"context"
	"errors"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/usecase"
)

func (uc *UseCase) ListEvents(ctx context.Context) ([]domain.Event, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.events.List(ctx)
}

// EventsOn returns the events scheduled on date.
func (uc *UseCase) EventsOn(ctx context.Context, date domain.Date) ([]domain.Event, error) {
	events, err := uc.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Event, 0)
	for _, event := range events {
		if event.Date == date {
			out = append(out, event)
		}
	}
	return out, nil
}

func (uc *UseCase) AddEvent(ctx context.Context, event domain.Event) (*domain.Event, error) {
	uc.mu.Lock()
	event.ID = uc.idGenerator()
	event.CreatedAt = uc.now()
	err := uc.events.Create(ctx, &event)
	uc.mu.Unlock()
	if err != nil {
		return nil, err
	}

	usecase.Publish(ctx, uc.publisher, domain.StoreData, domain.EntityEvent, domain.OperationCreate, event.ID, event)
	return &event, nil
}

func (uc *UseCase) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	uc.mu.Lock()
	event, err := uc.events.GetByID(ctx, id)
	if err != nil {
		uc.mu.Unlock()
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, nil
		}
		return nil, err
	}
	patch.Apply(event)
	err = uc.events.Update(ctx, event)
	uc.mu.Unlock()
	if err != nil {
		return nil, err
	}

	usecase.Publish(ctx, uc.publisher, domain.StoreData, domain.EntityEvent, domain.OperationUpdate, event.ID, event)
	return event, nil
}

func (uc *UseCase) DeleteEvent(ctx context.Context, id string) (bool, error) {
	uc.mu.Lock()
	err := uc.events.Delete(ctx, id)
	uc.mu.Unlock()
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return false, nil
		}
		return false, err
	}

	usecase.Publish(ctx, uc.publisher, domain.StoreData, domain.EntityEvent, domain.OperationDelete, id, nil)
	return true, nil
}
