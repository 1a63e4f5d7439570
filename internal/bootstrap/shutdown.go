package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/SlotHouse_Go/internal/database"
	"github.com/osse101/SlotHouse_Go/internal/server"
	"github.com/osse101/SlotHouse_Go/internal/slots"
	"github.com/osse101/SlotHouse_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server       *server.Server
	SlotsService slots.Service
	RTPReporter  *worker.RTPReporter
	Pool         database.Pool
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. RTP reporter (finish a running report)
// 3. Slots service (wait for in-flight settlements)
// 4. Storage pool
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.RTPReporter != nil {
		shutdownComponent(ctx, ComponentNameRTPReporter, components.RTPReporter)
	}
	if components.SlotsService != nil {
		shutdownComponent(ctx, ComponentNameSlots, components.SlotsService)
	}

	if components.Pool != nil {
		slog.Info(LogMsgClosingStorage)
		components.Pool.Close()
	}

	slog.Info(LogMsgServerStopped)
}

type shutdownable interface {
	Shutdown(context.Context) error
}

func shutdownComponent(ctx context.Context, name string, c shutdownable) {
	if err := c.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
