package v1

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/plexdeck/internal/arr"
	"github.com/vmunix/plexdeck/internal/media"
	"github.com/vmunix/plexdeck/internal/reconcile"
	"github.com/vmunix/plexdeck/internal/services"
	"github.com/vmunix/plexdeck/internal/upstream"
)

// acquirer is what Sonarr and Radarr have in common.
type acquirer interface {
	Queue(ctx context.Context) ([]arr.QueueItem, error)
	QualityProfiles(ctx context.Context) ([]arr.QualityProfile, error)
	RootFolders(ctx context.Context) ([]arr.RootFolder, error)
}

type acquirerTarget struct {
	service upstream.Service
	source  media.Source
	client  acquirer
}

func acquirers(c *services.Clients) []acquirerTarget {
	var out []acquirerTarget
	if c.Sonarr != nil {
		out = append(out, acquirerTarget{upstream.Sonarr, media.SourceTVAcquisition, c.Sonarr})
	}
	if c.Radarr != nil {
		out = append(out, acquirerTarget{upstream.Radarr, media.SourceMovieAcquisition, c.Radarr})
	}
	return out
}

type fanResult[T any] struct {
	service upstream.Service
	value   T
}

// fanOut calls call on every configured acquisition service concurrently.
// A failing service is reported, never fatal; results keep Sonarr first.
func fanOut[T any](ctx context.Context, c *services.Clients, call func(acquirer, context.Context) (T, error)) ([]fanResult[T], []reconcile.SourceFailure) {
	targets := acquirers(c)
	results := make([]fanResult[T], len(targets))
	errs := make([]error, len(targets))

	var g errgroup.Group
	for i, t := range targets {
		g.Go(func() error {
			results[i].service = t.service
			results[i].value, errs[i] = call(t.client, ctx)
			return nil
		})
	}
	_ = g.Wait()

	var (
		ok       []fanResult[T]
		failures []reconcile.SourceFailure
	)
	for i, t := range targets {
		if errs[i] != nil {
			failures = append(failures, reconcile.SourceFailure{
				Source:  t.source,
				Service: t.service,
				Message: upstream.Message(errs[i]),
			})
			continue
		}
		ok = append(ok, results[i])
	}
	return ok, failures
}

func (s *Server) listQueue(w http.ResponseWriter, r *http.Request, c *services.Clients) {
	results, failures := fanOut(r.Context(), c, acquirer.Queue)
	resp := queueResponse{Items: []queueItem{}, Failures: failures}
	for _, res := range results {
		for _, q := range res.value {
			resp.Items = append(resp.Items, newQueueItem(res.service, q))
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listProfiles(w http.ResponseWriter, r *http.Request, c *services.Clients) {
	results, failures := fanOut(r.Context(), c, acquirer.QualityProfiles)
	resp := profilesResponse{Services: []serviceProfiles{}, Failures: failures}
	for _, res := range results {
		profiles := res.value
		if profiles == nil {
			profiles = []arr.QualityProfile{}
		}
		resp.Services = append(resp.Services, serviceProfiles{Service: res.service, Profiles: profiles})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listRootFolders(w http.ResponseWriter, r *http.Request, c *services.Clients) {
	results, failures := fanOut(r.Context(), c, acquirer.RootFolders)
	resp := rootFoldersResponse{Services: []serviceRootFolders{}, Failures: failures}
	for _, res := range results {
		folders := res.value
		if folders == nil {
			folders = []arr.RootFolder{}
		}
		resp.Services = append(resp.Services, serviceRootFolders{Service: res.service, RootFolders: folders})
	}
	writeJSON(w, http.StatusOK, resp)
}
