// Package upstream holds the request plumbing and error taxonomy shared by
// the Plex, Sonarr, Radarr and TMDB clients.
package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// Service names an external API.
type Service string

const (
	Plex   Service = "plex"
	Sonarr Service = "sonarr"
	Radarr Service = "radarr"
	TMDB   Service = "tmdb"
)

// ErrConfigIncomplete is returned when a client is requested for a service
// whose host or credential is missing. No network call is made.
var ErrConfigIncomplete = errors.New("configuration incomplete")

// RequestError is returned for any non-2xx response or transport failure.
// StatusCode is zero when the request never got a response.
type RequestError struct {
	Service    Service
	Method     string
	Path       string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s %s: HTTP %d", e.Service, e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Service, e.Method, e.Path, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// StatusCode extracts the HTTP status from a RequestError chain, or 0.
func StatusCode(err error) int {
	var re *RequestError
	if errors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 RequestError.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// Message renders err the way connection tests and partial failures report
// it: "HTTP <status>" when a status is known, the error text otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if code := StatusCode(err); code != 0 {
		return fmt.Sprintf("HTTP %d", code)
	}
	if errors.Is(err, ErrConfigIncomplete) {
		return "not configured"
	}
	return err.Error()
}
