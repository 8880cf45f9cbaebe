package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/planner/internal/config"
	pgInfra "github.com/fastygo/planner/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/planner/internal/infrastructure/redis"
	"github.com/fastygo/planner/internal/services/lifecycle"
	"github.com/fastygo/planner/repository"
	"github.com/fastygo/planner/repository/boltdb"
	"github.com/fastygo/planner/repository/memory"
	pgRepo "github.com/fastygo/planner/repository/postgres"
	redisRepo "github.com/fastygo/planner/repository/redis"
)

// openLocalStorage connects the configured driver and registers its teardown.
// The returned pinger is nil for in-process drivers.
func openLocalStorage(ctx context.Context, cfg *config.Config, manager *lifecycle.Manager, logger *zap.Logger) (repository.LocalStorage, repository.Pinger, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		logger.Warn("local storage is in memory; sessions end with the process")
		return memory.NewLocalStorage(), nil, nil

	case config.StorageBolt:
		store, err := boltdb.Open(cfg.Storage.BoltPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open bolt storage: %w", err)
		}
		manager.Register("local_storage", func(context.Context) error {
			return store.Close()
		})
		logger.Info("local storage opened", zap.String("path", cfg.Storage.BoltPath))
		return store, nil, nil

	case config.StorageRedis:
		client, err := redisInfra.NewClient(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("redis connection: %w", err)
		}
		manager.Register("redis", func(context.Context) error {
			return client.Close()
		})
		return withPinger(redisRepo.NewLocalStorage(client, cfg.Storage.Namespace))

	case config.StoragePostgres:
		if err := pgInfra.RunMigrations(cfg.Migrations, cfg.Database, logger); err != nil {
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres connection: %w", err)
		}
		manager.Register("postgres", func(context.Context) error {
			pgInfra.Close(pool, logger)
			return nil
		})
		return withPinger(pgRepo.NewLocalStorage(pool, cfg.Storage.Namespace))

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func withPinger(storage repository.LocalStorage) (repository.LocalStorage, repository.Pinger, error) {
	pinger, _ := storage.(repository.Pinger)
	return storage, pinger, nil
}
