package main

import (
	"context"
	"fmt"

	"github.com/osse101/SlotHouse_Go/internal/bootstrap"
	"github.com/osse101/SlotHouse_Go/internal/config"
)

// MigrateCommand applies the embedded migrations for the configured driver
type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Apply embedded database migrations for DB_DRIVER"
}

func (c *MigrateCommand) Run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("Migrating %s", cfg.DBDriver))
	if cfg.DBDriver == config.DriverSQLite {
		PrintInfo("Database file: %s", cfg.SQLitePath)
	}

	// OpenStorage migrates before returning
	storage, err := bootstrap.OpenStorage(context.Background(), cfg)
	if err != nil {
		return err
	}
	storage.Pool.Close()

	PrintSuccess("Migrations applied")
	return nil
}
