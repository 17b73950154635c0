package bootstrap

import (
	"context"
	"fmt"

	"github.com/bunchesapp/bunches-go/internal/config"
	"github.com/bunchesapp/bunches-go/internal/event"
	"github.com/bunchesapp/bunches-go/internal/grocery"
	"github.com/bunchesapp/bunches-go/internal/logger"
	"github.com/bunchesapp/bunches-go/internal/recipe"
	"github.com/bunchesapp/bunches-go/internal/storage"
	"github.com/bunchesapp/bunches-go/internal/storage/file"
	"github.com/bunchesapp/bunches-go/internal/storage/memory"
	"github.com/bunchesapp/bunches-go/internal/storage/postgres"
	"github.com/bunchesapp/bunches-go/internal/storage/sqlitekv"
)

// OpenStore opens the storage backend named by STORAGE_DRIVER. The file
// backend is the single-user default; postgres is for shared deployments and
// memory for tests and throwaway runs.
func OpenStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	var (
		store storage.Store
		err   error
	)

	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		store = memory.New()
	case config.StorageDriverFile:
		store, err = file.New(cfg.DataDir)
	case config.StorageDriverSQLite:
		store, err = sqlitekv.Open(cfg.SQLitePath)
	case config.StorageDriverPostgres:
		store, err = postgres.OpenWithPool(ctx, cfg.GetDBConnString(),
			cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStorageDriver, cfg.StorageDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.StorageDriver, err)
	}

	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("ping %s storage: %w", cfg.StorageDriver, err)
	}

	logger.Info(LogMsgStorageOpened, "driver", cfg.StorageDriver)
	return store, nil
}

// Stores holds the domain stores used by the application. This provides a
// centralized location for store initialization and makes dependency
// injection clearer.
type Stores struct {
	Recipes   recipe.Store
	Groceries grocery.Store
}

// InitializeStores creates the domain stores over the shared storage backend.
// Both stores publish their domain events through the given bus.
func InitializeStores(kv storage.KV, bus event.Bus) *Stores {
	return &Stores{
		Recipes:   recipe.NewStore(kv, bus),
		Groceries: grocery.NewStore(kv, bus),
	}
}
