// Package app provides the main application struct for centralized dependency
// management and lifecycle control of the blog API server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"blogapi/config"
	"blogapi/internal/posts"
	"blogapi/internal/server"
	"blogapi/internal/storage"
)

// App represents the application with all its dependencies.
// It owns the database connection and the HTTP listener; no other
// component opens or closes them.
type App struct {
	config  *config.Config
	storage *storage.Mongo
	store   posts.Store
	server  *server.Server

	shutdownMu sync.Mutex
	shutdown   bool
}

// New creates a new App with all dependencies initialized. An unreachable
// database surfaces here, before the server ever starts. The caller must
// call Shutdown to release resources.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	mongo, err := storage.Connect(ctx, storage.Config{
		URL:      cfg.Storage.URL,
		Database: cfg.Storage.Database,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}

	store, err := posts.NewMongoStore(mongo.Database())
	if err != nil {
		closeErr := mongo.Close(ctx)
		if closeErr != nil {
			return nil, fmt.Errorf("failed to create post store: %w (also: storage close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to create post store: %w", err)
	}

	srv := server.New(store, &server.Config{
		MetricsEnabled: cfg.Metrics.Enabled,
	})

	return &App{
		config:  cfg,
		storage: mongo,
		store:   store,
		server:  srv,
	}, nil
}

// Store returns the post store backing the HTTP layer.
func (a *App) Store() posts.Store {
	return a.store
}

// Storage returns the owned database handle.
func (a *App) Storage() *storage.Mongo {
	return a.storage
}

// Start starts the HTTP server on the given address.
// This is a blocking call that returns when the server stops.
func (a *App) Start(addr string) error {
	if a.server == nil {
		return fmt.Errorf("server is not initialized")
	}
	slog.Info("starting server", "address", addr)
	if err := a.server.Start(addr); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			slog.Info("server stopped gracefully")
			return nil
		}
		return fmt.Errorf("server failed to start: %w", err)
	}
	return nil
}

// Shutdown tears down the app: HTTP listener first (stop accepting new
// requests), then the database connection. Safe for repeated calls; after
// the first call, subsequent calls are no-ops. It attempts every close step
// and returns a joined error if any step fails.
func (a *App) Shutdown(ctx context.Context) error {
	a.shutdownMu.Lock()
	if a.shutdown {
		a.shutdownMu.Unlock()
		return nil
	}
	a.shutdown = true
	a.shutdownMu.Unlock()

	slog.Info("shutting down application")

	var errs []error

	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			slog.Error("server shutdown error", "error", err)
			errs = append(errs, fmt.Errorf("server shutdown: %w", err))
		}
	}

	if a.storage != nil {
		if err := a.storage.Close(ctx); err != nil {
			slog.Error("storage close error", "error", err)
			errs = append(errs, fmt.Errorf("storage close: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %w", errors.Join(errs...))
	}

	slog.Info("application shutdown complete")
	return nil
}
