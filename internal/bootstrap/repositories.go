package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/SlotHouse_Go/internal/config"
	"github.com/osse101/SlotHouse_Go/internal/database"
	"github.com/osse101/SlotHouse_Go/internal/database/postgres"
	"github.com/osse101/SlotHouse_Go/internal/database/sqlite"
	"github.com/osse101/SlotHouse_Go/internal/repository"
)

// Storage holds the wallet repository and the pool behind it.
// Pool serves readiness checks and is closed on shutdown.
type Storage struct {
	Wallet repository.Wallet
	Pool   database.Pool
	Driver string
}

// OpenStorage connects to the configured driver, applies migrations and
// returns the matching wallet implementation.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdle, cfg.DBMaxLife)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStorage, err)
		}
		if err := database.MigratePool(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateStorage, err)
		}
		slog.Info(LogMsgStorageReady, "driver", cfg.DBDriver, "host", cfg.DBHost, "db", cfg.DBName)
		return &Storage{Wallet: postgres.NewWalletRepository(pool), Pool: pool, Driver: cfg.DBDriver}, nil

	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStorage, err)
		}
		if err := database.Migrate(ctx, db, database.DriverSQLite); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateStorage, err)
		}
		slog.Info(LogMsgStorageReady, "driver", cfg.DBDriver, "path", cfg.SQLitePath)
		return &Storage{Wallet: sqlite.NewWalletRepository(db), Pool: database.SQLPool{DB: db}, Driver: cfg.DBDriver}, nil

	default:
		return nil, fmt.Errorf("%s: %s %q", ErrMsgFailedOpenStorage, database.ErrMsgUnsupportedDriver, cfg.DBDriver)
	}
}
