// Package v1 implements the dashboard's JSON API.
package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vmunix/plexdeck/internal/tmdb"
	"github.com/vmunix/plexdeck/internal/upstream"
)

const maxBodyBytes = 1 << 20

// Server is the v1 API server.
type Server struct {
	deps     ServerDeps
	validate *validator.Validate
	log      *slog.Logger
}

// New creates a new v1 API server.
func New(deps ServerDeps) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return &Server{
		deps:     deps,
		validate: v,
		log:      log.With("component", "api"),
	}, nil
}

// jsonFieldName makes validation errors name fields the way clients send
// them.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
	mux.HandleFunc("GET /api/v1/config", s.getConfig)
	mux.HandleFunc("PUT /api/v1/config", s.putConfig)
	mux.HandleFunc("POST /api/v1/config/test", s.testConfig)

	// Library
	mux.HandleFunc("GET /api/v1/library/sections", s.requirePlex(s.listSections))
	mux.HandleFunc("GET /api/v1/library/sections/{id}/items", s.requirePlex(s.listSectionItems))
	mux.HandleFunc("GET /api/v1/library/recent", s.requirePlex(s.listRecent))
	mux.HandleFunc("GET /api/v1/library/ondeck", s.requirePlex(s.listOnDeck))

	// Media
	mux.HandleFunc("GET /api/v1/media/{id}", s.requirePlex(s.getMedia))
	mux.HandleFunc("GET /api/v1/media/{id}/seasons", s.requirePlex(s.listSeasons))
	mux.HandleFunc("POST /api/v1/media/{id}/watched", s.requirePlex(s.markWatched))
	mux.HandleFunc("DELETE /api/v1/media/{id}/watched", s.requirePlex(s.markUnwatched))
	mux.HandleFunc("GET /api/v1/media/{id}/stream", s.requirePlex(s.getStream))

	// Search & acquisition
	mux.HandleFunc("GET /api/v1/search", s.withClients(s.search))
	mux.HandleFunc("POST /api/v1/series", s.requireSonarr(s.addSeries))
	mux.HandleFunc("POST /api/v1/movies", s.requireRadarr(s.addMovie))

	// Workflows
	mux.HandleFunc("POST /api/v1/episodes/{id}/download", s.requireSonarr(s.downloadEpisode))
	mux.HandleFunc("POST /api/v1/series/{id}/seasons/{season}/download", s.requireSonarr(s.downloadSeason))
	mux.HandleFunc("POST /api/v1/movies/{id}/download", s.requireRadarr(s.downloadMovie))
	mux.HandleFunc("GET /api/v1/history", s.listHistory)

	// Acquisition services
	mux.HandleFunc("GET /api/v1/queue", s.withClients(s.listQueue))
	mux.HandleFunc("GET /api/v1/profiles", s.withClients(s.listProfiles))
	mux.HandleFunc("GET /api/v1/rootfolders", s.withClients(s.listRootFolders))
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// writeUpstreamError maps a client error onto a response: 503 for an
// unconfigured service, 404 for a missing record, 502 otherwise.
func (s *Server) writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, upstream.ErrConfigIncomplete):
		writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", err.Error())
	case errors.Is(err, tmdb.ErrNotFound), upstream.IsNotFound(err):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		s.log.Warn("upstream request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
	}
}

// pathID extracts an integer ID from the URL path.
func pathID(r *http.Request, name string) (int64, error) {
	idStr := r.PathValue(name)
	if idStr == "" {
		return 0, fmt.Errorf("missing path parameter: %s", name)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, idStr)
	}
	return id, nil
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

// decodeBody reads a JSON body into dst and validates its struct tags.
// It writes the error response itself and reports whether to continue.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		if fe.Param() != "" {
			msgs[i] = fmt.Sprintf("%s: failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param())
		} else {
			msgs[i] = fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag())
		}
	}
	return strings.Join(msgs, "; ")
}
