// Package app wires configuration, storage, services, and the HTTP server
// together and owns the process lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/family-timeline/internal/adapter/blob"
	"github.com/heartmarshall/family-timeline/internal/adapter/postgres"
	entryrepo "github.com/heartmarshall/family-timeline/internal/adapter/postgres/entry"
	mediarepo "github.com/heartmarshall/family-timeline/internal/adapter/postgres/media"
	"github.com/heartmarshall/family-timeline/internal/config"
	"github.com/heartmarshall/family-timeline/internal/service/auth"
	"github.com/heartmarshall/family-timeline/internal/service/timeline"
	"github.com/heartmarshall/family-timeline/internal/transport/middleware"
	"github.com/heartmarshall/family-timeline/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// Postgres and the object store, assembles the service and transport layers,
// and serves until SIGINT/SIGTERM, then shuts down gracefully.
func Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	blobs, err := blob.NewStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("connect object store: %w", err)
	}

	entries := entryrepo.New(pool)
	media := mediarepo.New(pool)
	txm := postgres.NewTxManager(pool)

	authSvc := auth.NewService(cfg.Auth, logger)
	timelineSvc := timeline.NewService(entries, media, blobs, txm, authSvc.Token(), logger)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	router := rest.NewRouter(
		*cfg,
		logger,
		authSvc,
		limiter,
		rest.NewAuthHandler(authSvc, logger),
		rest.NewTimelineHandler(timelineSvc, logger),
		rest.NewHealthHandler(pool, BuildVersion()),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}
