package redis

import (
	"context"
	"errors"
	"fmt"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/repository"
)

type localStorage struct {
	client *redislib.Client
	prefix string
}

// NewLocalStorage creates a Redis-backed local storage. Keys never expire,
// matching browser storage semantics.
func NewLocalStorage(client *redislib.Client, namespace string) repository.LocalStorage {
	if namespace == "" {
		namespace = "planner"
	}
	return &localStorage{
		client: client,
		prefix: namespace + ":ls:",
	}
}

func (s *localStorage) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, err
	}
	return result, nil
}

func (s *localStorage) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.key(key), value, 0).Err()
}

func (s *localStorage) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *localStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *localStorage) key(key string) string {
	return fmt.Sprintf("%s%s", s.prefix, key)
}
