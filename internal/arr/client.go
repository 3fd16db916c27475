// Package arr provides clients for the Sonarr and Radarr v3 APIs.
package arr

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vmunix/plexdeck/internal/upstream"
)

const apiBase = "/api/v3"

// client holds the request plumbing shared by Sonarr and Radarr.
type client struct {
	service    upstream.Service
	baseURL    string
	apiKey     string
	httpClient upstream.Doer
	log        *slog.Logger
}

// Option configures a client.
type Option func(*client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc upstream.Doer) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *client) {
		if log != nil {
			c.log = log
		}
	}
}

func newClient(service upstream.Service, baseURL, apiKey string, opts []Option) (*client, error) {
	if baseURL == "" || apiKey == "" {
		return nil, fmt.Errorf("%s: %w", service, upstream.ErrConfigIncomplete)
	}
	c := &client{
		service: service,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", string(service))
	return c, nil
}

func (c *client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + apiBase + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := upstream.NewRequest(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	if err := upstream.Do(c.httpClient, c.service, req, out); err != nil {
		c.log.Debug("request failed", "method", method, "path", path, "error", err)
		return err
	}
	return nil
}

// getOptional is a GET that maps 404 to found=false.
func (c *client) getOptional(ctx context.Context, path string, out any) (bool, error) {
	err := c.do(ctx, http.MethodGet, path, nil, nil, out)
	if err != nil {
		if upstream.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SystemStatus is used as the connection test.
func (c *client) SystemStatus(ctx context.Context) (*SystemStatus, error) {
	var st SystemStatus
	if err := c.do(ctx, http.MethodGet, "/system/status", nil, nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// QualityProfiles lists quality profiles.
func (c *client) QualityProfiles(ctx context.Context) ([]QualityProfile, error) {
	var out []QualityProfile
	if err := c.do(ctx, http.MethodGet, "/qualityprofile", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RootFolders lists root folders.
func (c *client) RootFolders(ctx context.Context) ([]RootFolder, error) {
	var out []RootFolder
	if err := c.do(ctx, http.MethodGet, "/rootfolder", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Tags lists tags.
func (c *client) Tags(ctx context.Context) ([]Tag, error) {
	var out []Tag
	if err := c.do(ctx, http.MethodGet, "/tag", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) queue(ctx context.Context, query url.Values) ([]QueueItem, error) {
	var page queuePage
	if err := c.do(ctx, http.MethodGet, "/queue", query, nil, &page); err != nil {
		return nil, err
	}
	return page.Records, nil
}

func (c *client) command(ctx context.Context, body any) (*Command, error) {
	var cmd Command
	if err := c.do(ctx, http.MethodPost, "/command", nil, body, &cmd); err != nil {
		return nil, err
	}
	return &cmd, nil
}
