package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/vmunix/plexdeck/internal/arr"
	"github.com/vmunix/plexdeck/internal/media"
	"github.com/vmunix/plexdeck/internal/reconcile"
	"github.com/vmunix/plexdeck/internal/services"
)

func (s *Server) search(w http.ResponseWriter, r *http.Request, c *services.Clients) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "MISSING_QUERY", "q is required")
		return
	}
	scope, err := reconcile.ParseScope(r.URL.Query().Get("scope"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_SCOPE", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Search.Search(r.Context(), reconcile.SourcesFrom(c), query, scope))
}

// acquirable rejects items that did not come from the acquisition service
// for want.
func acquirable(w http.ResponseWriter, item media.Item, want media.Kind) bool {
	if item.Kind != want || !item.CanMonitor() {
		writeError(w, http.StatusConflict, "NOT_ACQUIRABLE",
			fmt.Sprintf("%q is not a %s result from its acquisition service", item.Title, want))
		return false
	}
	return true
}

// lookupTerm prefers the service's own identifier scheme over the title.
func lookupTerm(prefix string, id int64, title string) string {
	if id != 0 {
		return fmt.Sprintf("%s:%d", prefix, id)
	}
	return title
}

func (s *Server) addSeries(w http.ResponseWriter, r *http.Request, c *services.Clients) {
	var req addRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if !acquirable(w, req.Item, media.KindShow) {
		return
	}
	ctx := r.Context()

	found, err := c.Sonarr.LookupSeries(ctx, lookupTerm("tvdb", req.Item.ExternalIDs.TVDB, req.Item.Title))
	if err != nil {
		s.writeUpstreamError(w, r, err)
		return
	}
	candidates := make([]media.Item, len(found))
	for i := range found {
		candidates[i] = reconcile.FromSeries(&found[i])
	}
	match := reconcile.Counterpart(req.Item, candidates)
	if match.Item == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "series not found in lookup")
		return
	}
	series := found[match.Index]
	if series.ID != 0 {
		writeError(w, http.StatusConflict, "ALREADY_ADDED", fmt.Sprintf("series already added with id %d", series.ID))
		return
	}

	added, err := c.Sonarr.AddSeries(ctx, series, arr.AddSeriesOptions{
		QualityProfileID:         req.QualityProfileID,
		RootFolderPath:           req.RootFolderPath,
		Monitored:                req.monitored(),
		SeasonFolder:             req.SeasonFolder == nil || *req.SeasonFolder,
		SearchForMissingEpisodes: req.Search,
		Tags:                     req.Tags,
	})
	if err != nil {
		s.writeUpstreamError(w, r, err)
		return
	}
	s.log.Info("series added", "id", added.ID, "title", added.Title, "tvdb_id", added.TVDBID)
	writeJSON(w, http.StatusCreated, reconcile.FromSeries(added))
}

func (s *Server) addMovie(w http.ResponseWriter, r *http.Request, c *services.Clients) {
	var req addRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if !acquirable(w, req.Item, media.KindMovie) {
		return
	}
	ctx := r.Context()

	found, err := c.Radarr.LookupMovie(ctx, lookupTerm("tmdb", req.Item.ExternalIDs.TMDB, req.Item.Title))
	if err != nil {
		s.writeUpstreamError(w, r, err)
		return
	}
	candidates := make([]media.Item, len(found))
	for i := range found {
		candidates[i] = reconcile.FromMovie(&found[i])
	}
	match := reconcile.Counterpart(req.Item, candidates)
	if match.Item == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "movie not found in lookup")
		return
	}
	movie := found[match.Index]
	if movie.ID != 0 {
		writeError(w, http.StatusConflict, "ALREADY_ADDED", fmt.Sprintf("movie already added with id %d", movie.ID))
		return
	}

	added, err := c.Radarr.AddMovie(ctx, movie, arr.AddMovieOptions{
		QualityProfileID:    req.QualityProfileID,
		RootFolderPath:      req.RootFolderPath,
		Monitored:           req.monitored(),
		MinimumAvailability: req.MinimumAvailability,
		SearchForMovie:      req.Search,
		Tags:                req.Tags,
	})
	if err != nil {
		s.writeUpstreamError(w, r, err)
		return
	}
	s.log.Info("movie added", "id", added.ID, "title", added.Title, "tmdb_id", added.TMDBID)
	writeJSON(w, http.StatusCreated, reconcile.FromMovie(added))
}
