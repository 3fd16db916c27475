// Package services builds the immutable set of upstream clients for one
// config revision and swaps it atomically when the config changes.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/vmunix/plexdeck/internal/arr"
	"github.com/vmunix/plexdeck/internal/config"
	"github.com/vmunix/plexdeck/internal/events"
	"github.com/vmunix/plexdeck/internal/plex"
	"github.com/vmunix/plexdeck/internal/tmdb"
	"github.com/vmunix/plexdeck/internal/upstream"
)

// ConfigSource provides the current config and its revision.
type ConfigSource interface {
	Current() (*config.Config, int64)
}

// Subscriber is the subset of the event bus the registry listens on.
type Subscriber interface {
	Subscribe(eventType string, bufferSize int) <-chan events.Event
	Unsubscribe(ch <-chan events.Event)
}

// Clients is the client set for one config revision. A nil client means
// the service is not configured; Errors says why when it is half
// configured. Clients is never modified after Build returns.
type Clients struct {
	Revision int64
	Plex     *plex.Client
	Sonarr   *arr.SonarrClient
	Radarr   *arr.RadarrClient
	TMDB     *tmdb.Client
	Errors   map[upstream.Service]error
}

// Configured lists the services with a client.
func (c *Clients) Configured() []upstream.Service {
	var out []upstream.Service
	if c.Plex != nil {
		out = append(out, upstream.Plex)
	}
	if c.Sonarr != nil {
		out = append(out, upstream.Sonarr)
	}
	if c.Radarr != nil {
		out = append(out, upstream.Radarr)
	}
	if c.TMDB != nil {
		out = append(out, upstream.TMDB)
	}
	return out
}

// Err returns why svc has no client: nil when it has one,
// upstream.ErrConfigIncomplete otherwise.
func (c *Clients) Err(svc upstream.Service) error {
	if err, ok := c.Errors[svc]; ok {
		return err
	}
	if c.has(svc) {
		return nil
	}
	return fmt.Errorf("%s: %w", svc, upstream.ErrConfigIncomplete)
}

func (c *Clients) has(svc upstream.Service) bool {
	switch svc {
	case upstream.Plex:
		return c.Plex != nil
	case upstream.Sonarr:
		return c.Sonarr != nil
	case upstream.Radarr:
		return c.Radarr != nil
	case upstream.TMDB:
		return c.TMDB != nil
	}
	return false
}

// BuildOptions are applied to every client Build creates.
type BuildOptions struct {
	HTTPClient upstream.Doer
	Logger     *slog.Logger
}

// Build constructs the clients cfg describes. An empty credential leaves a
// client absent; a credential without a host records ErrConfigIncomplete.
func Build(cfg *config.Config, revision int64, opts BuildOptions) *Clients {
	c := &Clients{
		Revision: revision,
		Errors:   make(map[upstream.Service]error),
	}
	conns := cfg.Connections

	record := func(svc upstream.Service, conn config.Connection) bool {
		if !conn.Configured() {
			return false
		}
		if !conn.Complete() {
			c.Errors[svc] = fmt.Errorf("%s: %w", svc, upstream.ErrConfigIncomplete)
			return false
		}
		return true
	}

	if record(upstream.Plex, conns.Plex) {
		popts := []plex.Option{plex.WithLogger(opts.Logger)}
		if opts.HTTPClient != nil {
			popts = append(popts, plex.WithHTTPClient(opts.HTTPClient))
		}
		c.Plex, c.Errors[upstream.Plex] = plex.NewClient(conns.Plex.BaseURL(), conns.Plex.Credential, popts...)
	}

	arrOpts := []arr.Option{arr.WithLogger(opts.Logger)}
	if opts.HTTPClient != nil {
		arrOpts = append(arrOpts, arr.WithHTTPClient(opts.HTTPClient))
	}
	if record(upstream.Sonarr, conns.Sonarr) {
		c.Sonarr, c.Errors[upstream.Sonarr] = arr.NewSonarr(conns.Sonarr.BaseURL(), conns.Sonarr.Credential, arrOpts...)
	}
	if record(upstream.Radarr, conns.Radarr) {
		c.Radarr, c.Errors[upstream.Radarr] = arr.NewRadarr(conns.Radarr.BaseURL(), conns.Radarr.Credential, arrOpts...)
	}

	if cfg.TMDB.APIKey != "" {
		topts := []tmdb.Option{tmdb.WithLogger(opts.Logger)}
		if opts.HTTPClient != nil {
			topts = append(topts, tmdb.WithHTTPClient(opts.HTTPClient))
		}
		c.TMDB, c.Errors[upstream.TMDB] = tmdb.NewClient(cfg.TMDB.APIKey, topts...)
	}

	for svc, err := range c.Errors {
		if err == nil {
			delete(c.Errors, svc)
		}
	}
	return c
}

// Registry holds the current Clients. Readers take a snapshot per request
// with Current and never see a half-built set.
type Registry struct {
	source  ConfigSource
	opts    BuildOptions
	log     *slog.Logger
	current atomic.Pointer[Clients]
}

// NewRegistry builds the initial client set from source.
func NewRegistry(source ConfigSource, opts BuildOptions) *Registry {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	r := &Registry{
		source: source,
		opts:   opts,
		log:    opts.Logger.With("component", "services"),
	}
	r.Refresh()
	return r
}

// Current returns the client set for the newest config revision seen.
func (r *Registry) Current() *Clients {
	return r.current.Load()
}

// Refresh rebuilds the clients when the config revision is newer than the
// current set. It reports whether a rebuild happened.
func (r *Registry) Refresh() bool {
	cfg, rev := r.source.Current()
	for {
		cur := r.current.Load()
		if cur != nil && cur.Revision >= rev {
			return false
		}
		next := Build(cfg, rev, r.opts)
		if r.current.CompareAndSwap(cur, next) {
			for svc, err := range next.Errors {
				r.log.Warn("service not available", "service", svc, "error", err)
			}
			r.log.Info("clients rebuilt", "revision", rev, "configured", next.Configured())
			return true
		}
	}
}

// Run rebuilds the clients on every config.changed event until ctx is done.
func (r *Registry) Run(ctx context.Context, bus Subscriber) error {
	ch := bus.Subscribe(events.EventConfigChanged, 8)
	defer bus.Unsubscribe(ch)

	// Catch up on saves made before the subscription existed.
	r.Refresh()

	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-ch:
			if !ok {
				return nil
			}
			if cc, ok := e.(*events.ConfigChanged); ok && cc.Revision <= r.Current().Revision {
				r.log.Debug("ignoring stale config revision", "revision", cc.Revision)
				continue
			}
			r.Refresh()
		}
	}
}
