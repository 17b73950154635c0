package bootstrap

import (
	"context"

	"github.com/bunchesapp/bunches-go/internal/event"
	"github.com/bunchesapp/bunches-go/internal/logger"
	"github.com/bunchesapp/bunches-go/internal/scheduler"
	"github.com/bunchesapp/bunches-go/internal/server"
	"github.com/bunchesapp/bunches-go/internal/sse"
	"github.com/bunchesapp/bunches-go/internal/storage"
	"github.com/bunchesapp/bunches-go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Optional components may be nil.
type ShutdownComponents struct {
	Server             *server.Server
	EventStreamHub     *sse.Hub
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	Store              storage.Store
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops the application components in dependency order:
// the HTTP server first so no new requests arrive, then the scheduler and
// worker pool so background jobs drain, then storage, and the event
// publisher last so every event raised during shutdown still gets flushed.
//
// Errors during shutdown are logged but do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	logger.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			logger.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	// After the server, so disconnecting stream clients have already drained.
	if components.EventStreamHub != nil {
		components.EventStreamHub.Stop()
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	if components.Store != nil {
		if err := components.Store.Close(); err != nil {
			logger.Error(LogMsgStorageCloseFailed, "error", err)
		}
	}

	if components.ResilientPublisher != nil {
		logger.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			logger.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	logger.Info(LogMsgServerStopped)
}
