package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bunchesapp/bunches-go/internal/bootstrap"
	"github.com/bunchesapp/bunches-go/internal/config"
	"github.com/bunchesapp/bunches-go/internal/handler"
	"github.com/bunchesapp/bunches-go/internal/logger"
	"github.com/bunchesapp/bunches-go/internal/scheduler"
	"github.com/bunchesapp/bunches-go/internal/server"
	"github.com/bunchesapp/bunches-go/internal/sse"
	"github.com/bunchesapp/bunches-go/internal/undo"
	"github.com/bunchesapp/bunches-go/internal/worker"
)

const (
	// ShutdownTimeout bounds graceful shutdown before the process exits anyway
	ShutdownTimeout = 10 * time.Second

	// PurgeWorkerCount and PurgeQueueSize size the background pool. One worker
	// is enough; purge jobs serialize on the recipe store mutex regardless.
	PurgeWorkerCount = 1
	PurgeQueueSize   = 4
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	for _, warning := range cfg.Warnings() {
		logger.Warn(warning)
	}

	handler.InitValidator()

	ctx := context.Background()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		logger.Error("Storage setup failed", "error", err)
		os.Exit(1)
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		logger.Error("Event system setup failed", "error", err)
		os.Exit(1)
	}

	if err := bootstrap.RegisterEventHandlers(eventBus); err != nil {
		logger.Error("Event handler registration failed", "error", err)
		os.Exit(1)
	}

	// Stores publish through the resilient publisher so transient handler
	// failures retry instead of dropping events.
	stores := bootstrap.InitializeStores(store, publisher)
	if err := stores.Recipes.Load(ctx); err != nil {
		logger.Error("Recipe collection load failed", "error", err)
		os.Exit(1)
	}
	if err := stores.Groceries.Load(ctx); err != nil {
		logger.Error("Grocery list load failed", "error", err)
		os.Exit(1)
	}

	undoStack := undo.NewStack(cfg.UndoVisibility, publisher)
	extractor := bootstrap.InitializeExtractor(cfg)

	// Live event stream for connected clients.
	hub := sse.NewHub()
	hub.Start()
	sse.NewSubscriber(hub, eventBus).Subscribe()

	// Background trash purge. TRASH_RETENTION_DAYS=0 turns it off.
	var (
		pool  *worker.Pool
		sched *scheduler.Scheduler
	)
	if cfg.TrashRetentionDays > 0 {
		pool = worker.NewPool(PurgeWorkerCount, PurgeQueueSize)
		pool.Start()
		sched = scheduler.New(pool)
		sched.Schedule(worker.DefaultPurgeInterval,
			worker.NewTrashRetentionWorker(stores.Recipes, cfg.TrashRetention()))
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil,
		store, stores.Recipes, stores.Groceries, undoStack, extractor, hub)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	// Wait for a termination signal or a server failure.
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	select {
	case sig := <-sc:
		logger.Info("Received shutdown signal", "signal", sig.String())
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		EventStreamHub:     hub,
		Scheduler:          sched,
		WorkerPool:         pool,
		Store:              store,
		ResilientPublisher: publisher,
	})
}
