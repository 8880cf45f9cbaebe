package data

import (
	"context"
	"math"

	"github.com/fastygo/planner/domain"
)

const todayTaskLimit = 3

// Dashboard is the summary shown on the landing page.
type Dashboard struct {
	CompletedTasks  int           `json:"completedTasks"`
	InProgressTasks int           `json:"inProgressTasks"`
	PendingTasks    int           `json:"pendingTasks"`
	ProjectProgress int           `json:"projectProgress"`
	TeamMembers     int           `json:"teamMembers"`
	TodayTasks      []domain.Task `json:"todayTasks"`
	Team            []domain.User `json:"team"`
}

func (uc *UseCase) CompletedTasksCount(ctx context.Context) (int, error) {
	return uc.countTasks(ctx, domain.TaskStatusCompleted)
}

func (uc *UseCase) InProgressTasksCount(ctx context.Context) (int, error) {
	return uc.countTasks(ctx, domain.TaskStatusInProgress)
}

func (uc *UseCase) PendingTasksCount(ctx context.Context) (int, error) {
	return uc.countTasks(ctx, domain.TaskStatusPending)
}

// ProjectProgress is the rounded share of completed tasks, 0 when there are none.
func (uc *UseCase) ProjectProgress(ctx context.Context) (int, error) {
	tasks, err := uc.ListTasks(ctx)
	if err != nil {
		return 0, err
	}
	return progress(tasks), nil
}

func (uc *UseCase) TeamMemberCount(ctx context.Context) (int, error) {
	users, err := uc.ListUsers(ctx)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

// Dashboard computes every landing page figure from one snapshot.
func (uc *UseCase) Dashboard(ctx context.Context) (Dashboard, error) {
	uc.mu.RLock()
	tasks, err := uc.tasks.List(ctx)
	if err != nil {
		uc.mu.RUnlock()
		return Dashboard{}, err
	}
	users, err := uc.users.List(ctx)
	uc.mu.RUnlock()
	if err != nil {
		return Dashboard{}, err
	}

	summary := Dashboard{
		ProjectProgress: progress(tasks),
		TeamMembers:     len(users),
		Team:            users,
	}
	for _, task := range tasks {
		switch task.Status {
		case domain.TaskStatusCompleted:
			summary.CompletedTasks++
		case domain.TaskStatusInProgress:
			summary.InProgressTasks++
		case domain.TaskStatusPending:
			summary.PendingTasks++
		}
	}
	limit := todayTaskLimit
	if len(tasks) < limit {
		limit = len(tasks)
	}
	summary.TodayTasks = tasks[:limit]
	return summary, nil
}

func (uc *UseCase) countTasks(ctx context.Context, status domain.TaskStatus) (int, error) {
	tasks, err := uc.ListTasks(ctx)
	if err != nil {
		return 0, err
	}
	return countStatus(tasks, status), nil
}

func countStatus(tasks []domain.Task, status domain.TaskStatus) int {
	n := 0
	for _, task := range tasks {
		if task.Status == status {
			n++
		}
	}
	return n
}

func progress(tasks []domain.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	completed := countStatus(tasks, domain.TaskStatusCompleted)
	return int(math.Round(100 * float64(completed) / float64(len(tasks))))
}
