package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), tt.in)
	}
}

func TestLogRequests_RecordsFirstStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := logRequests(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusOK)
	}), logger)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	assert.Contains(t, buf.String(), "status=418")
	assert.Contains(t, buf.String(), "path=/api/v1/status")
}

func TestWithCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("no origins leaves handler alone", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
		req.Header.Set("Origin", "http://dashboard.local")
		withCORS(ok, nil).ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("listed origin is allowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
		req.Header.Set("Origin", "http://dashboard.local")
		withCORS(ok, []string{"http://dashboard.local"}).ServeHTTP(rec, req)
		assert.Equal(t, "http://dashboard.local", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("other origin is not", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
		req.Header.Set("Origin", "http://evil.example")
		withCORS(ok, []string{"http://dashboard.local"}).ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestResolveConfigPath_Explicit(t *testing.T) {
	path, created, err := resolveConfigPath("/srv/plexdeck.toml")
	require.NoError(t, err)
	assert.Equal(t, "/srv/plexdeck.toml", path)
	assert.False(t, created)
}

func TestResolveConfigPath_WritesDefault(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PLEXDECK_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	path, created, err := resolveConfigPath("")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, filepath.Join(dir, "xdg", "plexdeck", "config.toml"), path)
	assert.FileExists(t, path)

	again, created, err := resolveConfigPath("")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, path, again)
}

func TestResolveConfigPath_PinnedMissing(t *testing.T) {
	t.Setenv("PLEXDECK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	_, created, err := resolveConfigPath("")
	require.Error(t, err)
	assert.False(t, created)
}

func TestOpenDB_AppliesMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "plexdeck.db")
	db, err := openDB(context.Background(), path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&n))
	assert.Zero(t, n)
}

func TestLogOutput(t *testing.T) {
	out, closeFn := logOutput("")
	assert.Equal(t, os.Stdout, out)
	require.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "plexdeckd.log")
	out, closeFn = logOutput(path)
	_, err := io.WriteString(out, "hello\n")
	require.NoError(t, err)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}
