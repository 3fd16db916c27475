package v1

import (
	"net/http"

	"github.com/vmunix/plexdeck/internal/services"
	"github.com/vmunix/plexdeck/internal/upstream"
)

// clientsHandler receives the client snapshot taken when the request
// arrived, so a config change mid-request cannot mix revisions.
type clientsHandler func(w http.ResponseWriter, r *http.Request, c *services.Clients)

// withClients passes the current client snapshot to next.
func (s *Server) withClients(next clientsHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next(w, r, s.deps.Clients.Current())
	}
}

// requireService wraps a handler and returns 503 if svc has no client.
func (s *Server) requireService(svc upstream.Service, next clientsHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := s.deps.Clients.Current()
		if err := c.Err(svc); err != nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", err.Error())
			return
		}
		next(w, r, c)
	}
}

// requirePlex wraps a handler and returns 503 if Plex is not configured.
func (s *Server) requirePlex(next clientsHandler) http.HandlerFunc {
	return s.requireService(upstream.Plex, next)
}

// requireSonarr wraps a handler and returns 503 if Sonarr is not configured.
func (s *Server) requireSonarr(next clientsHandler) http.HandlerFunc {
	return s.requireService(upstream.Sonarr, next)
}

// requireRadarr wraps a handler and returns 503 if Radarr is not configured.
func (s *Server) requireRadarr(next clientsHandler) http.HandlerFunc {
	return s.requireService(upstream.Radarr, next)
}
