package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vmunix/plexdeck/internal/events"
	"github.com/vmunix/plexdeck/internal/services"
	"github.com/vmunix/plexdeck/internal/workflow"
)

// outcomeStatus picks the HTTP status for a workflow outcome. The outcome
// itself is always the body.
func outcomeStatus(out *workflow.Outcome) int {
	switch out.Status {
	case workflow.StatusQueued, workflow.StatusPartiallyFailed:
		return http.StatusAccepted
	case workflow.StatusNoOp:
		return http.StatusOK
	}
	if err := out.Err(); errors.Is(err, workflow.ErrNotFound) || errors.Is(err, workflow.ErrUnknownSeason) {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func (s *Server) downloadEpisode(w http.ResponseWriter, r *http.Request, c *services.Clients) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	out := s.deps.Workflows.DownloadEpisode(r.Context(), c.Sonarr, id)
	writeJSON(w, outcomeStatus(out), out)
}

func (s *Server) downloadSeason(w http.ResponseWriter, r *http.Request, c *services.Clients) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	season, err := strconv.Atoi(r.PathValue("season"))
	if err != nil || season < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_SEASON", "season must be a non-negative integer")
		return
	}
	out := s.deps.Workflows.DownloadSeason(r.Context(), c.Sonarr, id, season)
	writeJSON(w, outcomeStatus(out), out)
}

func (s *Server) downloadMovie(w http.ResponseWriter, r *http.Request, c *services.Clients) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	out := s.deps.Workflows.DownloadMovie(r.Context(), c.Radarr, id)
	writeJSON(w, outcomeStatus(out), out)
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	if limit < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_PAGINATION", "limit must be non-negative")
		return
	}
	const maxLimit = 1000
	if limit == 0 || limit > maxLimit {
		limit = maxLimit
	}

	if s.deps.History == nil {
		writeError(w, http.StatusServiceUnavailable, "NO_EVENT_LOG", "Event log not configured")
		return
	}

	raws, err := s.deps.History.List(r.Context(), events.Filter{
		TypePrefix: "workflow.",
		EntityType: r.URL.Query().Get("kind"),
		Limit:      limit,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "EVENT_ERROR", err.Error())
		return
	}

	reg := events.DefaultRegistry()
	resp := historyResponse{Items: make([]historyEntry, 0, len(raws)), Limit: limit}
	for _, raw := range raws {
		e, err := reg.Unmarshal(raw)
		if err != nil {
			s.log.Warn("skipping unreadable history event", "id", raw.ID, "error", err)
			continue
		}
		wc, ok := e.(*events.WorkflowCompleted)
		if !ok {
			continue
		}
		resp.Items = append(resp.Items, historyEntry{
			ID:         raw.ID,
			EventType:  raw.EventType,
			OutcomeID:  wc.OutcomeID,
			Kind:       wc.Kind,
			Service:    wc.Service,
			EntityID:   raw.EntityID,
			Season:     wc.Season,
			Status:     wc.Status,
			Reason:     wc.Reason,
			Units:      wc.Units,
			OccurredAt: raw.OccurredAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
