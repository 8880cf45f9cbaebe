package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fastygo/planner/domain"
)

// Keys persisted in local storage.
const (
	KeyUser            = "user"
	KeyRegisteredUsers = "registeredUsers"
)

// LocalStorage is a JSON key/value store scoped to one workspace device.
// Get returns domain.ErrKeyNotFound for absent keys.
type LocalStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Pinger is implemented by storage drivers backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// LoadJSON decodes the value stored under key into dst. It reports false
// when the key is absent.
func LoadJSON(ctx context.Context, storage LocalStorage, key string, dst interface{}) (bool, error) {
	raw, err := storage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}
