package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/taehan09/studio/internal/api"
	"github.com/taehan09/studio/internal/auth"
	"github.com/taehan09/studio/internal/blob"
	"github.com/taehan09/studio/internal/config"
	"github.com/taehan09/studio/internal/flows"
	"github.com/taehan09/studio/internal/metrics"
	"github.com/taehan09/studio/internal/repository"
	"github.com/taehan09/studio/internal/storage"
	"github.com/taehan09/studio/internal/watch"
)

func main() {
	cfg := config.Load()

	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to PostgreSQL
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Run migrations
	if err := storage.RunMigrations(ctx, pool); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("migrations complete")

	prometheus.MustRegister(metrics.NewPoolCollector(pool))

	store := storage.NewPostgresStore(pool, cfg.QueryTimeout)

	// Content change fan-out: local writes publish directly, the watcher
	// picks up writes from other instances.
	hub := watch.NewHub()
	repo := repository.New(store, hub, logger)

	nodeID, err := os.Hostname()
	if err != nil || nodeID == "" {
		nodeID = uuid.NewString()
	}
	checkpoint := watch.NewPostgresCheckpoint(pool)
	watcher := watch.NewWatcher(store, hub, checkpoint, nodeID, cfg.WatchPollInterval, cfg.WatchBatchSize, logger)
	go watcher.Run(ctx)
	logger.Info("content watcher started", "node", nodeID)

	blobs, err := blob.New(cfg.MediaDir, cfg.PublicBaseURL, logger)
	if err != nil {
		logger.Error("failed to open media store", "dir", cfg.MediaDir, "error", err)
		os.Exit(1)
	}

	authSvc := auth.NewService(store, cfg.AdminUsername, cfg.AdminPasswordHash, cfg.SessionTTL, logger)

	var flowSvc *flows.Service
	if cfg.GenAIAPIKey != "" {
		client, err := flows.NewClient(ctx, cfg.GenAIAPIKey, cfg.GenAIModel)
		if err != nil {
			logger.Error("failed to create GenAI client", "error", err)
			os.Exit(1)
		}
		flowSvc = flows.NewService(client, logger)
		logger.Info("generative flows enabled", "model", cfg.GenAIModel)
	} else {
		logger.Warn("GENAI_API_KEY not set, generative flows disabled")
	}

	// Start HTTP server
	handler := api.NewServer(api.ServerConfig{
		Logger:       logger,
		Repo:         repo,
		Appointments: store,
		Auth:         authSvc,
		Media:        blobs,
		Flows:        flowSvc,
		DB:           pool,
	})
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		logger.Info("starting HTTP server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutting down...")

	// Cancel context to stop the content watcher
	cancel()

	// Graceful HTTP shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
