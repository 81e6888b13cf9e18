package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Shivanand-hulikatti/event-ease/internal/catalog"
	"github.com/Shivanand-hulikatti/event-ease/internal/config"
	"github.com/Shivanand-hulikatti/event-ease/internal/database"
	"github.com/Shivanand-hulikatti/event-ease/internal/kv"
	"github.com/Shivanand-hulikatti/event-ease/internal/repository"
)

// OpenStore opens the configured document store. The memory driver is
// never persistent.
func OpenStore(ctx context.Context, cfg config.StoreConfig, now func() time.Time) (repository.Store, error) {
	switch cfg.Driver {
	case config.StoreMemory:
		return repository.NewMemoryStore(now), nil
	case config.StoreSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", repository.ErrStorageUnavailable, err)
		}
		return repository.NewSQLiteStore(db, now), nil
	case config.StorePostgres:
		pool, err := database.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", repository.ErrStorageUnavailable, err)
		}
		return repository.NewPostgresStore(pool, now), nil
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", repository.ErrStorageUnavailable, cfg.Driver)
	}
}

// OpenStoreOrFallback opens the configured store and falls back to process
// memory when it is unavailable. persistent is false on the fallback.
func OpenStoreOrFallback(ctx context.Context, cfg config.StoreConfig, now func() time.Time, logger *log.Logger) (store repository.Store, persistent bool) {
	store, err := OpenStore(ctx, cfg, now)
	if err != nil {
		logger.Printf("document store unavailable, continuing without persistence: %v", err)
		return repository.NewMemoryStore(now), false
	}
	return store, cfg.Driver != config.StoreMemory
}

// OpenKV opens the configured key-value blob space.
func OpenKV(ctx context.Context, cfg config.KVConfig) (kv.Store, error) {
	switch cfg.Driver {
	case config.KVMemory:
		return kv.NewMemoryStore(nil), nil
	case config.KVRedis:
		return kv.NewRedisStore(ctx, nil, kv.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return nil, fmt.Errorf("unknown kv driver %q", cfg.Driver)
	}
}

// SeedCatalog seeds the event catalog when enabled and the store is empty.
func SeedCatalog(ctx context.Context, store repository.Store, cfg config.CatalogConfig, logger *log.Logger) error {
	if !cfg.SeedOnStart {
		return nil
	}
	seeded, err := catalog.Seed(ctx, store)
	if err != nil {
		return err
	}
	if seeded {
		logger.Printf("seeded event catalog")
	}
	return nil
}
