package data

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/planner/repository"
	"github.com/fastygo/planner/usecase"
)

// Option customizes the domain store.
type Option func(*UseCase)

func WithPublisher(p usecase.ChangePublisher) Option {
	return func(uc *UseCase) { uc.publisher = p }
}

// WithClock replaces time.Now for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(uc *UseCase) {
		if fn != nil {
			uc.idGenerator = fn
		}
	}
}

// UseCase is the domain store holding tasks, the user directory and
// calendar events. Its state lives for the lifetime of the process.
type UseCase struct {
	tasks  repository.TaskRepository
	users  repository.UserRepository
	events repository.EventRepository

	publisher   usecase.ChangePublisher
	logger      *zap.Logger
	now         func() time.Time
	idGenerator func() string

	mu sync.RWMutex
}

func New(
	tasks repository.TaskRepository,
	users repository.UserRepository,
	events repository.EventRepository,
	logger *zap.Logger,
	opts ...Option,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &UseCase{
		tasks:       tasks,
		users:       users,
		events:      events,
		logger:      logger,
		now:         time.Now,
		idGenerator: uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}
