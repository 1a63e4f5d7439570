// @title SlotHouse API
// @version 1.0
// @description Slot game outcome engine and wager settlement.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/SlotHouse_Go/internal/bootstrap"
	"github.com/osse101/SlotHouse_Go/internal/config"
	"github.com/osse101/SlotHouse_Go/internal/games"
	"github.com/osse101/SlotHouse_Go/internal/handler"
	"github.com/osse101/SlotHouse_Go/internal/metrics"
	"github.com/osse101/SlotHouse_Go/internal/server"
	"github.com/osse101/SlotHouse_Go/internal/slots"
	"github.com/osse101/SlotHouse_Go/internal/worker"
)

func main() {
	if err := run(); err != nil {
		slog.Error("SlotHouse exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return err
	}

	// A complete .env is mandatory in production; elsewhere defaults are allowed
	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		if cfg.IsProduction() {
			return err
		}
		fmt.Fprintln(os.Stderr, "WARNING:", err)
	}
	for _, warning := range warnings {
		fmt.Fprintln(os.Stderr, "WARNING:", warning)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	if cfg.Version != "" {
		handler.Version = cfg.Version
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}

	registry, err := games.NewRegistry()
	if err != nil {
		storage.Pool.Close()
		return fmt.Errorf("failed to load game catalog: %w", err)
	}

	slotsService := slots.NewService(storage.Wallet, registry, slots.Config{
		StartingBalance:      cfg.StartingBalance,
		SettlementTimeout:    cfg.SettlementTimeout,
		IdempotencyCacheSize: cfg.IdempotencyCacheSize,
		IdempotencyTTL:       cfg.IdempotencyTTL,
	}, slots.WithRecorder(metrics.NewSettlementRecorder()))

	reporter, err := worker.NewRTPReporter(storage.Wallet, cfg.RTPReportSchedule, registry.List())
	if err != nil {
		storage.Pool.Close()
		return err
	}
	reporter.Start()

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, storage.Pool, slotsService)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err = <-serverErr:
		slog.Error("Server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:       srv,
		SlotsService: slotsService,
		RTPReporter:  reporter,
		Pool:         storage.Pool,
	})
	return err
}
