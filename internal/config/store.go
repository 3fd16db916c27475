package config

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vmunix/plexdeck/internal/events"
)

// Publisher is the subset of the event bus the store needs.
type Publisher interface {
	Publish(ctx context.Context, e events.Event) error
}

// Store owns the persisted config file and the in-memory current revision.
// Snapshots returned by Current are shared and must not be modified.
type Store struct {
	mu       sync.RWMutex
	path     string
	current  *Config
	revision int64
	bus      Publisher
	log      *slog.Logger
}

// NewStore creates a store for path. Call Load before Current.
func NewStore(path string, bus Publisher, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		path:    path,
		current: Default(),
		bus:     bus,
		log:     log.With("component", "config"),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the file into the store. Degraded loads are logged, never fatal.
func (s *Store) Load() *Config {
	cfg, err := Load(s.path)
	if err != nil {
		s.log.Warn("config loaded with fallbacks", "path", s.path, "error", err)
	}

	s.mu.Lock()
	s.current = cfg
	s.revision++
	s.mu.Unlock()
	return cfg
}

// Current returns the current config snapshot and its revision.
func (s *Store) Current() (*Config, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.revision
}

// Save validates cfg, overwrites the whole file, bumps the revision and
// publishes a config.changed event. It returns the new revision.
func (s *Store) Save(ctx context.Context, cfg *Config) (int64, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return 0, &ConfigError{Path: s.path, Errors: errs}
	}

	next := cfg.Clone()
	next.Version = CurrentVersion

	s.mu.Lock()
	if err := next.Write(s.path); err != nil {
		s.mu.Unlock()
		return 0, err
	}
	prev := s.current
	s.current = next
	s.revision++
	rev := s.revision
	s.mu.Unlock()

	s.log.Info("config saved", "path", s.path, "revision", rev)

	if s.bus != nil {
		e := events.NewConfigChanged(rev, changedServices(prev, next))
		if err := s.bus.Publish(ctx, e); err != nil {
			s.log.Error("failed to publish config change", "revision", rev, "error", err)
		}
	}
	return rev, nil
}

func changedServices(prev, next *Config) []string {
	var changed []string
	if prev.Connections.Plex != next.Connections.Plex {
		changed = append(changed, "plex")
	}
	if prev.Connections.Sonarr != next.Connections.Sonarr {
		changed = append(changed, "sonarr")
	}
	if prev.Connections.Radarr != next.Connections.Radarr {
		changed = append(changed, "radarr")
	}
	if prev.TMDB != next.TMDB {
		changed = append(changed, "tmdb")
	}
	return changed
}
