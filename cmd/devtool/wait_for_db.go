package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SlotHouse_Go/internal/config"
	"github.com/osse101/SlotHouse_Go/internal/database"
)

const (
	waitForDBRetries  = 30
	waitForDBInterval = 2 * time.Second
	waitForDBPingTime = 3 * time.Second
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for the database to be ready (with retries)"
}

func (c *WaitForDBCommand) Run(args []string) error {
	PrintHeader("Waiting for database...")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ping := pingPostgres(cfg.GetDBConnString())
	if cfg.DBDriver == config.DriverSQLite {
		ping = pingSQLite(cfg.SQLitePath)
	}

	for i := 0; i < waitForDBRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), waitForDBPingTime)
		err = ping(ctx)
		cancel()
		if err == nil {
			PrintSuccess("Database is ready")
			return nil
		}

		fmt.Printf("Database not ready (%d/%d): %v\n", i+1, waitForDBRetries, err)
		time.Sleep(waitForDBInterval)
	}

	return fmt.Errorf("database failed to become ready after %d attempts", waitForDBRetries)
}

func pingPostgres(connString string) func(context.Context) error {
	return func(ctx context.Context) error {
		pool, err := pgxpool.New(ctx, connString)
		if err != nil {
			return err
		}
		defer pool.Close()
		return pool.Ping(ctx)
	}
}

func pingSQLite(path string) func(context.Context) error {
	return func(ctx context.Context) error {
		db, err := database.OpenSQLite(path)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.PingContext(ctx)
	}
}
