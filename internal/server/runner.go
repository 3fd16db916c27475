// Package server runs the daemon's long-lived components.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/plexdeck/internal/services"
)

// Config for the runner.
type Config struct {
	Addr             string
	ShutdownTimeout  time.Duration
	HistoryRetention time.Duration // zero keeps every event
}

// ClientWatcher rebuilds service clients when the config changes.
type ClientWatcher interface {
	Run(ctx context.Context, bus services.Subscriber) error
}

// Pruner drops old history.
type Pruner interface {
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Runner serves HTTP and keeps the client registry in step with the
// config until its context is canceled.
type Runner struct {
	config  Config
	handler http.Handler
	bus     services.Subscriber
	clients ClientWatcher
	history Pruner
	logger  *slog.Logger
}

// NewRunner creates a new runner. history may be nil.
func NewRunner(cfg Config, handler http.Handler, bus services.Subscriber, clients ClientWatcher, history Pruner, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	return &Runner{
		config:  cfg,
		handler: handler,
		bus:     bus,
		clients: clients,
		history: history,
		logger:  logger.With("component", "runner"),
	}
}

// Run listens on the configured address and serves until ctx is canceled.
func (r *Runner) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", r.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", r.config.Addr, err)
	}
	return r.Serve(ctx, ln)
}

// Serve runs every component on ln. It blocks until ctx is canceled or a
// component fails, then shuts the HTTP server down gracefully.
func (r *Runner) Serve(ctx context.Context, ln net.Listener) error {
	r.pruneHistory(ctx)

	srv := &http.Server{
		Handler:           r.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("http server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		r.logger.Info("http server stopped")
		return nil
	})

	g.Go(func() error {
		return r.clients.Run(ctx, r.bus)
	})

	return g.Wait()
}

func (r *Runner) pruneHistory(ctx context.Context) {
	if r.history == nil || r.config.HistoryRetention <= 0 {
		return
	}
	n, err := r.history.Prune(ctx, r.config.HistoryRetention)
	if err != nil {
		r.logger.Warn("history prune failed", "error", err)
		return
	}
	if n > 0 {
		r.logger.Info("pruned history", "events", n, "older_than", r.config.HistoryRetention)
	}
}
