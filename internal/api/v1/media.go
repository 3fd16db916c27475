package v1

import (
	"context"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/plexdeck/internal/arr"
	"github.com/vmunix/plexdeck/internal/media"
	"github.com/vmunix/plexdeck/internal/plex"
	"github.com/vmunix/plexdeck/internal/reconcile"
	"github.com/vmunix/plexdeck/internal/services"
	"github.com/vmunix/plexdeck/internal/upstream"
)

// libraryItem loads the Plex item named by the id path value, writing the
// error response when it cannot.
func (s *Server) libraryItem(w http.ResponseWriter, r *http.Request, c *services.Clients) (*plex.Metadata, bool) {
	m, err := c.Plex.Metadata(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeUpstreamError(w, r, err)
		return nil, false
	}
	if m == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "media not found")
		return nil, false
	}
	return m, true
}

func (s *Server) getMedia(w http.ResponseWriter, r *http.Request, c *services.Clients) {
	m, ok := s.libraryItem(w, r, c)
	if !ok {
		return
	}
	resp := mediaResponse{Item: reconcile.FromPlex(m, c.Plex)}

	candidates, svc, err := acquisitionCandidates(r.Context(), c, resp.Item.Kind)
	switch {
	case svc == "":
	case err != nil:
		s.log.Warn("counterpart lookup failed", "id", m.RatingKey, "service", svc, "error", err)
		resp.Failures = append(resp.Failures, reconcile.SourceFailure{
			Source:  resp.Item.Kind.Acquirer(),
			Service: svc,
			Message: upstream.Message(err),
		})
	default:
		if match := reconcile.Counterpart(resp.Item, candidates); match.Item != nil {
			resp.Counterpart = &counterpartResponse{Item: *match.Item, By: match.By, Ambiguous: match.Ambiguous}
			resp.Item.Monitored = match.Item.Monitored
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// acquisitionCandidates lists everything the acquisition service for kind
// manages. svc is empty when no configured service handles kind.
func acquisitionCandidates(ctx context.Context, c *services.Clients, kind media.Kind) ([]media.Item, upstream.Service, error) {
	switch {
	case kind == media.KindMovie && c.Radarr != nil:
		movies, err := c.Radarr.ListMovies(ctx)
		if err != nil {
			return nil, upstream.Radarr, err
		}
		items := make([]media.Item, len(movies))
		for i := range movies {
			items[i] = reconcile.FromMovie(&movies[i])
		}
		return items, upstream.Radarr, nil
	case kind == media.KindShow && c.Sonarr != nil:
		series, err := c.Sonarr.ListSeries(ctx)
		if err != nil {
			return nil, upstream.Sonarr, err
		}
		items := make([]media.Item, len(series))
		for i := range series {
			items[i] = reconcile.FromSeries(&series[i])
		}
		return items, upstream.Sonarr, nil
	}
	return nil, "", nil
}

func (s *Server) listSeasons(w http.ResponseWriter, r *http.Request, c *services.Clients) {
	m, ok := s.libraryItem(w, r, c)
	if !ok {
		return
	}
	item := reconcile.FromPlex(m, c.Plex)
	if item.Kind != media.KindShow {
		writeError(w, http.StatusBadRequest, "NOT_A_SHOW", "media is not a show")
		return
	}
	ctx := r.Context()

	in := reconcile.SeasonInput{LibraryEpisodes: make(map[string][]plex.Metadata)}
	seasons, err := c.Plex.Children(ctx, m.RatingKey)
	if err != nil {
		s.writeUpstreamError(w, r, err)
		return
	}
	in.LibrarySeasons = seasons

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, season := range seasons {
		g.Go(func() error {
			episodes, err := c.Plex.Children(gctx, season.RatingKey)
			if err != nil {
				return err
			}
			mu.Lock()
			in.LibraryEpisodes[season.RatingKey] = episodes
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.writeUpstreamError(w, r, err)
		return
	}

	var resp seasonsResponse
	if c.Sonarr != nil {
		if err := loadSeries(ctx, c.Sonarr, item, &in); err != nil {
			s.log.Warn("sonarr seasons unavailable", "id", m.RatingKey, "error", err)
			in.Series, in.Episodes, in.Queue = nil, nil, nil
			resp.Failures = append(resp.Failures, reconcile.SourceFailure{
				Source:  media.SourceTVAcquisition,
				Service: upstream.Sonarr,
				Message: upstream.Message(err),
			})
		}
	}
	if in.Series != nil {
		resp.SeriesID = in.Series.ID
	}
	resp.Seasons = reconcile.Seasons(in)
	writeJSON(w, http.StatusOK, resp)
}

// loadSeries finds show's Sonarr counterpart and loads its episodes and
// queue into in. It leaves in untouched when there is no counterpart.
func loadSeries(ctx context.Context, sonarr *arr.SonarrClient, show media.Item, in *reconcile.SeasonInput) error {
	all, err := sonarr.ListSeries(ctx)
	if err != nil {
		return err
	}
	candidates := make([]media.Item, len(all))
	for i := range all {
		candidates[i] = reconcile.FromSeries(&all[i])
	}
	match := reconcile.Counterpart(show, candidates)
	if match.Item == nil {
		return nil
	}
	series := &all[match.Index]

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		episodes, err := sonarr.Episodes(gctx, series.ID)
		in.Episodes = episodes
		return err
	})
	g.Go(func() error {
		queue, err := sonarr.Queue(gctx)
		in.Queue = queue
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	in.Series = series
	return nil
}

func (s *Server) markWatched(w http.ResponseWriter, r *http.Request, c *services.Clients) {
	if err := c.Plex.Scrobble(r.Context(), r.PathValue("id")); err != nil {
		s.writeUpstreamError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) markUnwatched(w http.ResponseWriter, r *http.Request, c *services.Clients) {
	if err := c.Plex.Unscrobble(r.Context(), r.PathValue("id")); err != nil {
		s.writeUpstreamError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getStream(w http.ResponseWriter, r *http.Request, c *services.Clients) {
	m, ok := s.libraryItem(w, r, c)
	if !ok {
		return
	}
	resp := streamResponse{
		TranscodeURL: c.Plex.TranscodeURL(m.RatingKey),
		Duration:     m.Duration,
		ViewOffset:   m.ViewOffset,
	}
	if part := m.FirstPart(); part != nil {
		resp.StreamURL = c.Plex.StreamURL(*part)
		resp.Container = part.Container
	}
	writeJSON(w, http.StatusOK, resp)
}
