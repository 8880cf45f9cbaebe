package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/repository"
)

type localStorage struct {
	pool      *pgxpool.Pool
	namespace string
}

// NewLocalStorage instantiates a Postgres-backed local storage. Rows are
// scoped by namespace so several workspaces can share one database.
func NewLocalStorage(pool *pgxpool.Pool, namespace string) repository.LocalStorage {
	if namespace == "" {
		namespace = "planner"
	}
	return &localStorage{pool: pool, namespace: namespace}
}

func (s *localStorage) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `
		SELECT value
		FROM local_storage
		WHERE namespace = $1 AND key = $2
	`
	var value []byte
	if err := s.pool.QueryRow(ctx, query, s.namespace, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *localStorage) Set(ctx context.Context, key string, value []byte) error {
	const query = `
	INSERT INTO local_storage (namespace, key, value, updated_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (namespace, key) DO UPDATE
	SET value = EXCLUDED.value,
		updated_at = NOW();
	`
	_, err := s.pool.Exec(ctx, query, s.namespace, key, jsonValue(value))
	return err
}

func (s *localStorage) Remove(ctx context.Context, key string) error {
	const query = `DELETE FROM local_storage WHERE namespace = $1 AND key = $2`
	_, err := s.pool.Exec(ctx, query, s.namespace, key)
	return err
}

func (s *localStorage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
