package memory

import (
	"sync"
)

// collection is an insertion-ordered set of records unique by id.
type collection[T any] struct {
	mu       sync.RWMutex
	items    []T
	idOf     func(T) string
	clone    func(T) T
	notFound error
}

func newCollection[T any](idOf func(T) string, clone func(T) T, notFound error) *collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &collection[T]{idOf: idOf, clone: clone, notFound: notFound}
}

func (c *collection[T]) get(id string) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx := c.indexOf(id)
	if idx < 0 {
		return nil, c.notFound
	}
	item := c.clone(c.items[idx])
	return &item, nil
}

func (c *collection[T]) list() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, c.clone(item))
	}
	return out
}

// put appends item, or replaces the record with the same id in place.
func (c *collection[T]) put(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := c.indexOf(c.idOf(item)); idx >= 0 {
		c.items[idx] = c.clone(item)
		return
	}
	c.items = append(c.items, c.clone(item))
}

func (c *collection[T]) replace(item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexOf(c.idOf(item))
	if idx < 0 {
		return c.notFound
	}
	c.items[idx] = c.clone(item)
	return nil
}

func (c *collection[T]) remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexOf(id)
	if idx < 0 {
		return c.notFound
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	return nil
}

func (c *collection[T]) reorder(ids []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	front := make([]T, 0, len(c.items))
	moved := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := moved[id]; dup {
			continue
		}
		if idx := c.indexOf(id); idx >= 0 {
			front = append(front, c.items[idx])
			moved[id] = struct{}{}
		}
	}
	for _, item := range c.items {
		if _, ok := moved[c.idOf(item)]; !ok {
			front = append(front, item)
		}
	}
	c.items = front
}

func (c *collection[T]) indexOf(id string) int {
	for i, item := range c.items {
		if c.idOf(item) == id {
			return i
		}
	}
	return -1
}
