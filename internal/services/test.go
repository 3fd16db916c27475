package services

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/plexdeck/internal/upstream"
)

// TestResult is the outcome of one connection test.
type TestResult struct {
	Success bool   `json:"success"`
	Version string `json:"version,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Test checks every service concurrently. Unconfigured services report
// "not configured" without a network call.
func (c *Clients) Test(ctx context.Context) map[upstream.Service]TestResult {
	var (
		mu  sync.Mutex
		out = make(map[upstream.Service]TestResult, 4)
	)
	set := func(svc upstream.Service, version string, err error) {
		r := TestResult{Success: err == nil, Version: version}
		if err != nil {
			r.Error = upstream.Message(err)
		}
		mu.Lock()
		out[svc] = r
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, svc := range []upstream.Service{upstream.Plex, upstream.Sonarr, upstream.Radarr, upstream.TMDB} {
		if err := c.Err(svc); err != nil {
			set(svc, "", err)
			continue
		}
		g.Go(func() error {
			version, err := c.probe(gctx, svc)
			set(svc, version, err)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (c *Clients) probe(ctx context.Context, svc upstream.Service) (string, error) {
	switch svc {
	case upstream.Plex:
		id, err := c.Plex.Identity(ctx)
		if err != nil {
			return "", err
		}
		return id.Version, nil
	case upstream.Sonarr:
		st, err := c.Sonarr.SystemStatus(ctx)
		if err != nil {
			return "", err
		}
		return st.Version, nil
	case upstream.Radarr:
		st, err := c.Radarr.SystemStatus(ctx)
		if err != nil {
			return "", err
		}
		return st.Version, nil
	default:
		_, err := c.TMDB.SearchMovies(ctx, "test")
		return "", err
	}
}
