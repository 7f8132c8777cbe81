package inventory

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/pededrink/internal/config"
	"github.com/tair/pededrink/internal/inventory/delivery/http"
	"github.com/tair/pededrink/internal/inventory/domain"
	"github.com/tair/pededrink/internal/inventory/repository"
)

// ProvideCatalog builds the catalog with the configured price ceiling and
// low-stock threshold.
func ProvideCatalog(cfg config.Config) (*repository.MemoryCatalog, error) {
	maxPrice, err := cfg.MaxPriceDecimal()
	if err != nil {
		return nil, err
	}
	return repository.NewMemoryCatalog(maxPrice, cfg.LowStockThreshold), nil
}

// ProvideLedger provides an empty sales ledger
func ProvideLedger() *repository.MemoryLedger {
	return repository.NewMemoryLedger()
}

// NewSnapshotStore opens the store selected by cfg.StoreDriver and wraps it
// with tracing. db is required for the postgres driver and rdb for redis.
func NewSnapshotStore(cfg config.Config, db *gorm.DB, rdb *redis.Client) (domain.SnapshotStore, error) {
	var store domain.SnapshotStore
	switch cfg.StoreDriver {
	case config.DriverBolt:
		bolt, err := repository.NewBoltSnapshotStore(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		store = bolt
	case config.DriverPostgres:
		if db == nil {
			return nil, fmt.Errorf("postgres store driver requires a database connection")
		}
		gormStore := repository.NewGormSnapshotStore(db)
		if err := gormStore.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		store = gormStore
	case config.DriverRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis store driver requires a redis client")
		}
		store = repository.NewRedisSnapshotStore(rdb, cfg.SnapshotKey)
	case config.DriverMemory:
		store = repository.NewMemorySnapshotStore()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	return repository.NewTracingSnapshotStore(store, cfg.StoreDriver), nil
}

// StoreHealthCheck pings whichever remote backends are in use. It returns nil
// when the store is local.
func StoreHealthCheck(db *gorm.DB, rdb *redis.Client) http.HealthCheck {
	if db == nil && rdb == nil {
		return nil
	}
	return func(ctx context.Context) error {
		if db != nil {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			if err := sqlDB.PingContext(ctx); err != nil {
				return fmt.Errorf("database: %w", err)
			}
		}
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
		}
		return nil
	}
}
