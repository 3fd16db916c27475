package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vmunix/plexdeck/internal/config"
	"github.com/vmunix/plexdeck/internal/services"
	"github.com/vmunix/plexdeck/internal/upstream"
)

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	c := s.deps.Clients.Current()
	resp := statusResponse{
		Status:     "ok",
		Version:    s.deps.Version,
		Revision:   c.Revision,
		Configured: c.Configured(),
	}
	if resp.Configured == nil {
		resp.Configured = []upstream.Service{}
	}
	if len(c.Errors) > 0 {
		resp.Unavailable = make(map[upstream.Service]string, len(c.Errors))
		for svc, err := range c.Errors {
			resp.Unavailable[svc] = err.Error()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getConfig(w http.ResponseWriter, r *http.Request) {
	cfg, rev := s.deps.Config.Current()
	writeJSON(w, http.StatusOK, configResponse{Revision: rev, Config: cfg.Redacted()})
}

// decodeConfig reads a configRequest over the current config and returns
// the resulting config with masked credentials restored.
func (s *Server) decodeConfig(w http.ResponseWriter, r *http.Request) (*config.Config, bool) {
	current, _ := s.deps.Config.Current()
	req := newConfigRequest(current.Redacted())
	if !s.decodeBody(w, r, req) {
		return nil, false
	}
	cfg := req.config()
	cfg.Unmask(current)
	return cfg, true
}

func (s *Server) putConfig(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.decodeConfig(w, r)
	if !ok {
		return
	}

	rev, err := s.deps.Config.Save(r.Context(), cfg)
	if err != nil {
		var cerr *config.ConfigError
		if errors.As(err, &cerr) {
			writeError(w, http.StatusBadRequest, "INVALID_CONFIG", strings.Join(cerr.Errors, "; "))
			return
		}
		s.log.Error("save config failed", "error", err)
		writeError(w, http.StatusInternalServerError, "CONFIG_ERROR", err.Error())
		return
	}

	// Rebuild before answering so the next request already runs on the
	// saved settings. The config.changed subscriber finds nothing to do.
	s.deps.Clients.Refresh()

	saved, _ := s.deps.Config.Current()
	writeJSON(w, http.StatusOK, configResponse{Revision: rev, Config: saved.Redacted()})
}

// testConfig tests the saved settings, or the settings in the body when
// one is sent, without saving them.
func (s *Server) testConfig(w http.ResponseWriter, r *http.Request) {
	clients := s.deps.Clients.Current()
	if r.ContentLength != 0 {
		cfg, ok := s.decodeConfig(w, r)
		if !ok {
			return
		}
		clients = services.Build(cfg, 0, s.deps.ClientOptions)
	}
	writeJSON(w, http.StatusOK, testResponse{Results: clients.Test(r.Context())})
}
