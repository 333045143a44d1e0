package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/portaria-api/internal/domain/repository"
	"github.com/jhoicas/portaria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/portaria-api/pkg/config"
)

// Open abre el KeyValueStore indicado por STORAGE_DRIVER.
func Open(ctx context.Context, cfg *config.Config) (repository.KeyValueStore, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return NewMemoryStore(), nil
	case config.StorageFile:
		return NewFileStore(cfg.Storage.Path)
	case config.StorageRedis:
		return NewRedisStore(ctx, cfg.Redis, cfg.Storage.Prefix)
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		store, err := postgres.NewKVStore(ctx, pool, cfg.Storage.Prefix)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("storage: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Storage.Driver)
	}
}
