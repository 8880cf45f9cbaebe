package data

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/usecase"
)

// StatusAll matches every task in FilterTasks.
const StatusAll = "all"

// ListTasks returns tasks in insertion order.
func (uc *UseCase) ListTasks(ctx context.Context) ([]domain.Task, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.tasks.List(ctx)
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.tasks.GetByID(ctx, id)
}

// AddTask assigns an id and creation time and appends the task. Required
// fields are gated by the caller.
func (uc *UseCase) AddTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	uc.mu.Lock()
	task.ID = uc.idGenerator()
	task.CreatedAt = uc.now()
	err := uc.tasks.Create(ctx, &task)
	uc.mu.Unlock()
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("task added", zap.String("task_id", task.ID))
	usecase.Publish(ctx, uc.publisher, domain.StoreData, domain.EntityTask, domain.OperationCreate, task.ID, task)
	return &task, nil
}

// UpdateTask merges patch into the task. It returns nil without error when
// the id is unknown. Any status may follow any other.
func (uc *UseCase) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	uc.mu.Lock()
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		uc.mu.Unlock()
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, nil
		}
		return nil, err
	}
	patch.Apply(task)
	err = uc.tasks.Update(ctx, task)
	uc.mu.Unlock()
	if err != nil {
		return nil, err
	}

	usecase.Publish(ctx, uc.publisher, domain.StoreData, domain.EntityTask, domain.OperationUpdate, task.ID, task)
	return task, nil
}

// DeleteTask removes the task and reports whether it existed.
func (uc *UseCase) DeleteTask(ctx context.Context, id string) (bool, error) {
	uc.mu.Lock()
	err := uc.tasks.Delete(ctx, id)
	uc.mu.Unlock()
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return false, nil
		}
		return false, err
	}

	usecase.Publish(ctx, uc.publisher, domain.StoreData, domain.EntityTask, domain.OperationDelete, id, nil)
	return true, nil
}

// FilterTasks applies the task page predicates: status ("" or "all" for any)
// and a case-insensitive search over title and assignee.
func (uc *UseCase) FilterTasks(ctx context.Context, status, search string) ([]domain.Task, error) {
	tasks, err := uc.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	term := strings.ToLower(search)
	out := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if status != "" && status != StatusAll && string(task.Status) != status {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(task.Title), term) &&
			!strings.Contains(strings.ToLower(task.Assignee), term) {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

// NextStatus is the status the task page offers next: start, complete, or restart.
func NextStatus(status domain.TaskStatus) domain.TaskStatus {
	switch status {
	case domain.TaskStatusPending:
		return domain.TaskStatusInProgress
	case domain.TaskStatusInProgress:
		return domain.TaskStatusCompleted
	default:
		return domain.TaskStatusInProgress
	}
}
