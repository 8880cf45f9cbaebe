package memory

import (
	"context"
	"sync"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/repository"
)

type localStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewLocalStorage creates a process-local storage. Values are lost on exit.
func NewLocalStorage() repository.LocalStorage {
	return &localStorage{values: make(map[string][]byte)}
}

func (s *localStorage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *localStorage) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *localStorage) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
