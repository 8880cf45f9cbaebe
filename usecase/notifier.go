package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/planner/domain"
)

// ChangeHandler reacts to a published store change.
type ChangeHandler func(ctx context.Context, change domain.Change)

// ChangePublisher is the port stores use to announce mutations.
type ChangePublisher interface {
	Publish(ctx context.Context, change domain.Change) domain.Change
}

type subscriber struct {
	id   int
	name string
	fn   ChangeHandler
}

// Notifier fans store changes out to subscribers and keeps a bounded history
// for clients that poll.
type Notifier struct {
	mu          sync.RWMutex
	subscribers []subscriber
	history     []domain.Change
	limit       int
	version     int64
	nextID      int
	now         func() time.Time
	logger      *zap.Logger
}

const defaultHistoryLimit = 256

func NewNotifier(limit int, logger *zap.Logger) *Notifier {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		limit:  limit,
		now:    time.Now,
		logger: logger,
	}
}

// Subscribe registers fn and returns a function removing it again.
func (n *Notifier) Subscribe(name string, fn ChangeHandler) func() {
	if fn == nil {
		return func() {}
	}
	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.subscribers = append(n.subscribers, subscriber{id: id, name: name, fn: fn})
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, s := range n.subscribers {
			if s.id == id {
				n.subscribers = append(n.subscribers[:i:i], n.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Publish stamps the change with the next version, records it and calls
// subscribers in registration order.
func (n *Notifier) Publish(ctx context.Context, change domain.Change) domain.Change {
	if n == nil {
		return change
	}
	n.mu.Lock()
	n.version++
	change.Version = n.version
	if change.CreatedAt.IsZero() {
		change.CreatedAt = n.now()
	}
	n.history = append(n.history, change)
	if len(n.history) > n.limit {
		n.history = append([]domain.Change(nil), n.history[len(n.history)-n.limit:]...)
	}
	subs := append([]subscriber(nil), n.subscribers...)
	n.mu.Unlock()

	n.logger.Debug("store changed",
		zap.Int64("version", change.Version),
		zap.String("store", change.Store),
		zap.String("entity", change.Entity),
		zap.String("operation", change.Operation),
		zap.String("entity_id", change.EntityID))

	for _, s := range subs {
		s.fn(ctx, change)
	}
	return change
}

// Since returns the retained changes newer than version.
func (n *Notifier) Since(version int64) []domain.Change {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]domain.Change, 0)
	for _, change := range n.history {
		if change.Version > version {
			out = append(out, change)
		}
	}
	return out
}

// Version returns the version of the latest published change.
func (n *Notifier) Version() int64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.version
}

// Publish forwards to p when it is set.
func Publish(ctx context.Context, p ChangePublisher, store, entity, operation, entityID string, payload interface{}) {
	if p == nil {
		return
	}
	p.Publish(ctx, domain.NewChange(store, entity, operation, entityID, payload))
}
