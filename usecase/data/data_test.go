package data

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/repository/memory"
	"github.com/fastygo/planner/usecase"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newStore(t *testing.T, opts ...Option) *UseCase {
	t.Helper()
	n := 0
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	}
	return New(memory.NewTaskRepository(), memory.NewUserRepository(), memory.NewEventRepository(), nil, append(base, opts...)...)
}

func ptr[T any](v T) *T { return &v }

func TestAddTaskAssignsIDAndTimestamp(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	task, err := store.AddTask(ctx, domain.Task{ID: "ignored", Title: "Write docs", Status: domain.TaskStatusPending})
	require.NoError(t, err)
	assert.Equal(t, "id-1", task.ID)
	assert.Equal(t, fixedNow, task.CreatedAt)

	tasks, err := store.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Write docs", tasks[0].Title)
}

func TestUpdateTaskMergesOnlySetFields(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	task, err := store.AddTask(ctx, domain.Task{Title: "A", Assignee: "Kim", Status: domain.TaskStatusPending, Priority: domain.PriorityLow})
	require.NoError(t, err)

	updated, err := store.UpdateTask(ctx, task.ID, domain.TaskPatch{Status: ptr(domain.TaskStatusCompleted)})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, domain.TaskStatusCompleted, updated.Status)
	assert.Equal(t, "A", updated.Title)
	assert.Equal(t, "Kim", updated.Assignee)
	assert.Equal(t, domain.PriorityLow, updated.Priority)
}

func TestStatusTransitionsAreUnguarded(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	task, err := store.AddTask(ctx, domain.Task{Title: "A", Status: domain.TaskStatusCompleted})
	require.NoError(t, err)

	updated, err := store.UpdateTask(ctx, task.ID, domain.TaskPatch{Status: ptr(domain.TaskStatusPending)})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusPending, updated.Status)
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	_, err := store.AddTask(ctx, domain.Task{Title: "A"})
	require.NoError(t, err)

	task, err := store.UpdateTask(ctx, "missing", domain.TaskPatch{Title: ptr("B")})
	require.NoError(t, err)
	assert.Nil(t, task)

	user, err := store.UpdateUser(ctx, "missing", domain.UserPatch{Name: ptr("B")})
	require.NoError(t, err)
	assert.Nil(t, user)

	event, err := store.UpdateEvent(ctx, "missing", domain.EventPatch{Title: ptr("B")})
	require.NoError(t, err)
	assert.Nil(t, event)

	removed, err := store.DeleteTask(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, removed)

	tasks, err := store.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	event, err := store.AddEvent(ctx, domain.Event{Title: "Standup", Date: "2024-01-15"})
	require.NoError(t, err)

	removed, err := store.DeleteEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.DeleteEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDerivedCounts(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	progress, err := store.ProjectProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, progress)

	statuses := []domain.TaskStatus{
		domain.TaskStatusCompleted,
		domain.TaskStatusInProgress,
		domain.TaskStatusPending,
	}
	for _, status := range statuses {
		_, err := store.AddTask(ctx, domain.Task{Title: string(status), Status: status})
		require.NoError(t, err)
	}

	completed, err := store.CompletedTasksCount(ctx)
	require.NoError(t, err)
	inProgress, err := store.InProgressTasksCount(ctx)
	require.NoError(t, err)
	pending, err := store.PendingTasksCount(ctx)
	require.NoError(t, err)
	progress, err = store.ProjectProgress(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, completed)
	assert.Equal(t, 1, inProgress)
	assert.Equal(t, 1, pending)
	assert.Equal(t, 33, progress)

	_, err = store.AddTask(ctx, domain.Task{Title: "done", Status: domain.TaskStatusCompleted})
	require.NoError(t, err)
	progress, err = store.ProjectProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, progress)
}

func TestProgressRoundsHalfUp(t *testing.T) {
	tasks := make([]domain.Task, 0, 8)
	for i := 0; i < 8; i++ {
		status := domain.TaskStatusPending
		if i < 5 {
			status = domain.TaskStatusCompleted
		}
		tasks = append(tasks, domain.Task{Status: status})
	}
	// 62.5 rounds to 63
	assert.Equal(t, 63, progress(tasks))
}

func TestSeedDemoData(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.SeedDemoData(ctx))

	summary, err := store.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.CompletedTasks)
	assert.Equal(t, 2, summary.InProgressTasks)
	assert.Equal(t, 1, summary.PendingTasks)
	assert.Equal(t, 40, summary.ProjectProgress)
	assert.Equal(t, 4, summary.TeamMembers)
	require.Len(t, summary.TodayTasks, 3)
	assert.Equal(t, "1", summary.TodayTasks[0].ID)

	count, err := store.TeamMemberCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	events, err := store.EventsOn(ctx, "2024-01-17")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "클라이언트 미팅", events[0].Title)
}

func TestFilterTasks(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.SeedDemoData(ctx))

	cases := []struct {
		name   string
		status string
		search string
		want   []string
	}{
		{name: "all", status: StatusAll, want: []string{"1", "2", "3", "4", "5"}},
		{name: "empty status", status: "", search: "", want: []string{"1", "2", "3", "4", "5"}},
		{name: "in progress", status: "in-progress", want: []string{"3", "4"}},
		{name: "by assignee", status: StatusAll, search: "김철수", want: []string{"1", "5"}},
		{name: "by title case-insensitive", status: "", search: "api", want: []string{"2"}},
		{name: "status and search", status: "completed", search: "김철수", want: []string{"1"}},
		{name: "no match", status: "pending", search: "API", want: []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tasks, err := store.FilterTasks(ctx, tc.status, tc.search)
			require.NoError(t, err)
			ids := make([]string, 0, len(tasks))
			for _, task := range tasks {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestUsersSearchStatsAndToggle(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	admin, err := store.AddUser(ctx, domain.User{Name: "Kim", Email: "kim@corp.com", Role: domain.RoleAdmin, Department: "Platform", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, domain.DateOf(fixedNow), admin.JoinDate)
	_, err = store.AddUser(ctx, domain.User{Name: "Park", Email: "park@corp.com", Role: domain.RoleUser, Department: "Design"})
	require.NoError(t, err)

	found, err := store.SearchUsers(ctx, "DESIGN")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Park", found[0].Name)

	stats, err := store.UserStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, UserStats{Total: 2, Admins: 1, Users: 1, Active: 1}, stats)

	toggled, err := store.ToggleUserActive(ctx, admin.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	missing, err := store.ToggleUserActive(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	resolved, err := store.ResolveUsers(ctx, []string{"nope", admin.ID})
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, admin.ID, resolved[0].ID)
}

func TestNextStatus(t *testing.T) {
	assert.Equal(t, domain.TaskStatusInProgress, NextStatus(domain.TaskStatusPending))
	assert.Equal(t, domain.TaskStatusCompleted, NextStatus(domain.TaskStatusInProgress))
	assert.Equal(t, domain.TaskStatusInProgress, NextStatus(domain.TaskStatusCompleted))
}

func TestMutationsArePublished(t *testing.T) {
	ctx := context.Background()
	notifier := usecase.NewNotifier(0, nil)
	store := newStore(t, WithPublisher(notifier))

	task, err := store.AddTask(ctx, domain.Task{Title: "A"})
	require.NoError(t, err)
	_, err = store.UpdateTask(ctx, task.ID, domain.TaskPatch{Title: ptr("B")})
	require.NoError(t, err)
	_, err = store.DeleteTask(ctx, task.ID)
	require.NoError(t, err)
	_, err = store.DeleteTask(ctx, task.ID)
	require.NoError(t, err)

	changes := notifier.Since(0)
	require.Len(t, changes, 3)
	assert.Equal(t, domain.OperationCreate, changes[0].Operation)
	assert.Equal(t, domain.OperationUpdate, changes[1].Operation)
	assert.Equal(t, domain.OperationDelete, changes[2].Operation)
	assert.Equal(t, task.ID, changes[2].EntityID)
}
