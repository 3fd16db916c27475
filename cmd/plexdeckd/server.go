package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"gopkg.in/natefinch/lumberjack.v2"
	_ "modernc.org/sqlite"

	v1 "github.com/vmunix/plexdeck/internal/api/v1"
	"github.com/vmunix/plexdeck/internal/config"
	"github.com/vmunix/plexdeck/internal/events"
	"github.com/vmunix/plexdeck/internal/migrations"
	"github.com/vmunix/plexdeck/internal/reconcile"
	"github.com/vmunix/plexdeck/internal/server"
	"github.com/vmunix/plexdeck/internal/services"
	"github.com/vmunix/plexdeck/internal/workflow"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// logOutput returns stdout, teed into a rotating file when path is set.
func logOutput(path string) (io.Writer, func() error) {
	if path == "" {
		return os.Stdout, func() error { return nil }
	}
	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
		LocalTime:  true,
	}
	return io.MultiWriter(os.Stdout, file), file.Close
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// withCORS lets the listed browser origins call the API. No origins means
// same-origin only.
func withCORS(next http.Handler, origins []string) http.Handler {
	if len(origins) == 0 {
		return next
	}
	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(next)
}

// resolveConfigPath returns path, the discovered config, or a freshly
// written default at DefaultPath when nothing exists yet. The bool reports
// whether the default was written.
func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		return path, false, nil
	}
	found, err := config.Discover()
	if err == nil {
		return found, false, nil
	}
	if !errors.Is(err, config.ErrNotFound) {
		return "", false, err
	}
	path = config.DefaultPath()
	if err := config.WriteDefault(path); err != nil {
		return "", false, fmt.Errorf("write default config: %w", err)
	}
	return path, true, nil
}

func openDB(ctx context.Context, path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := migrations.Apply(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func runServer(configPath string, retention time.Duration) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path, created, err := resolveConfigPath(configPath)
	if err != nil {
		return err
	}

	// The server section is read once; changing it needs a restart.
	boot, loadErr := config.Load(path)

	out, closeLog := logOutput(boot.Server.LogFile)
	defer func() { _ = closeLog() }()
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: parseLogLevel(boot.Server.LogLevel),
	}))
	if created {
		logger.Info("wrote default config", "path", path)
	}
	var cerr *config.ConfigError
	if errors.As(loadErr, &cerr) {
		for _, missing := range cerr.Missing {
			logger.Warn("config references unset environment variable", "name", missing)
		}
	}

	db, err := openDB(ctx, boot.Database.Path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	// === Events ===
	eventLog := events.NewEventLog(db)
	bus := events.NewBus(eventLog, logger.With("component", "bus"))
	defer func() { _ = bus.Close() }()

	// === Config and clients ===
	store := config.NewStore(path, bus, logger)
	store.Load()
	clientOpts := services.BuildOptions{Logger: logger}
	registry := services.NewRegistry(store, clientOpts)

	// === HTTP Setup ===
	api, err := v1.New(v1.ServerDeps{
		Config:        store,
		Clients:       registry,
		Search:        reconcile.NewAggregator(logger),
		Workflows:     workflow.New(bus, logger),
		History:       eventLog,
		ClientOptions: clientOpts,
		Version:       version,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	mux := http.NewServeMux()
	api.RegisterRoutes(mux)
	handler := withCORS(logRequests(mux, logger), boot.Server.CORSOrigins)

	addr := net.JoinHostPort(boot.Server.Host, strconv.Itoa(boot.Server.Port))
	logger.Info("server starting",
		"addr", addr,
		"config", path,
		"database", boot.Database.Path,
		"configured", registry.Current().Configured(),
		"log_level", boot.Server.LogLevel,
	)

	runner := server.NewRunner(server.Config{
		Addr:             addr,
		ShutdownTimeout:  30 * time.Second,
		HistoryRetention: retention,
	}, handler, bus, registry, eventLog, logger)
	if err := runner.Run(ctx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
