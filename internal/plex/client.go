// Package plex is a client for the Plex Media Server library API.
package plex

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/plexdeck/internal/upstream"
)

// Client talks to one Plex server. It is immutable once constructed.
type Client struct {
	baseURL    string
	token      string
	httpClient upstream.Doer
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc upstream.Doer) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log.With("component", "plex")
		}
	}
}

// NewClient creates a Plex client. An empty baseURL or token yields
// upstream.ErrConfigIncomplete.
func NewClient(baseURL, token string, opts ...Option) (*Client, error) {
	if baseURL == "" || token == "" {
		return nil, fmt.Errorf("plex: %w", upstream.ErrConfigIncomplete)
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: slog.Default().With("component", "plex"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the server root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) url(path string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	query.Set("X-Plex-Token", c.token)
	return c.baseURL + path + "?" + query.Encode()
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*mediaContainer, error) {
	req, err := upstream.NewRequest(ctx, http.MethodGet, c.url(path, query), nil)
	if err != nil {
		return nil, err
	}

	var mc mediaContainer
	if err := upstream.Do(c.httpClient, upstream.Plex, req, &mc); err != nil {
		c.log.Debug("request failed", "path", path, "error", err)
		return nil, err
	}
	return &mc, nil
}

// Identity returns the server identity. Used as the connection test.
func (c *Client) Identity(ctx context.Context) (*Identity, error) {
	mc, err := c.get(ctx, "/", nil)
	if err != nil {
		return nil, err
	}
	return &Identity{
		FriendlyName:      mc.MediaContainer.FriendlyName,
		MachineIdentifier: mc.MediaContainer.MachineIdentifier,
		Version:           mc.MediaContainer.Version,
	}, nil
}

// Sections lists library sections.
func (c *Client) Sections(ctx context.Context) ([]Section, error) {
	mc, err := c.get(ctx, "/library/sections", nil)
	if err != nil {
		return nil, err
	}
	return mc.MediaContainer.Directory, nil
}

// withGuids asks for the Guid list, which newer agents omit from list
// responses by default.
func withGuids(q url.Values) url.Values {
	if q == nil {
		q = url.Values{}
	}
	q.Set("includeGuids", "1")
	return q
}

// SectionItems lists every item in a section.
func (c *Client) SectionItems(ctx context.Context, sectionKey string) ([]Metadata, error) {
	mc, err := c.get(ctx, "/library/sections/"+url.PathEscape(sectionKey)+"/all", withGuids(nil))
	if err != nil {
		return nil, err
	}
	return mc.MediaContainer.Metadata, nil
}

// Library lists every movie and show across all movie and show sections.
// Any section failing fails the whole listing.
func (c *Client) Library(ctx context.Context) ([]Metadata, error) {
	sections, err := c.Sections(ctx)
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, s := range sections {
		if s.Type == "movie" || s.Type == "show" {
			keys = append(keys, s.Key)
		}
	}

	perSection := make([][]Metadata, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, key := range keys {
		g.Go(func() error {
			items, err := c.SectionItems(gctx, key)
			if err != nil {
				return fmt.Errorf("section %s: %w", key, err)
			}
			perSection[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Metadata
	for _, items := range perSection {
		all = append(all, items...)
	}
	return all, nil
}

// Metadata fetches a single item. A missing item returns (nil, nil).
func (c *Client) Metadata(ctx context.Context, ratingKey string) (*Metadata, error) {
	mc, err := c.get(ctx, "/library/metadata/"+url.PathEscape(ratingKey), nil)
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(mc.MediaContainer.Metadata) == 0 {
		return nil, nil
	}
	return &mc.MediaContainer.Metadata[0], nil
}

// Children lists the seasons of a show or the episodes of a season.
func (c *Client) Children(ctx context.Context, ratingKey string) ([]Metadata, error) {
	mc, err := c.get(ctx, "/library/metadata/"+url.PathEscape(ratingKey)+"/children", nil)
	if err != nil {
		return nil, err
	}
	return mc.MediaContainer.Metadata, nil
}

// Search runs a library-wide title search.
func (c *Client) Search(ctx context.Context, query string) ([]Metadata, error) {
	mc, err := c.get(ctx, "/search", withGuids(url.Values{"query": {query}}))
	if err != nil {
		return nil, err
	}
	return mc.MediaContainer.Metadata, nil
}

// RecentlyAdded lists recently added items across all sections.
func (c *Client) RecentlyAdded(ctx context.Context) ([]Metadata, error) {
	mc, err := c.get(ctx, "/library/recentlyAdded", nil)
	if err != nil {
		return nil, err
	}
	return mc.MediaContainer.Metadata, nil
}

// OnDeck lists in-progress and next-up items.
func (c *Client) OnDeck(ctx context.Context) ([]Metadata, error) {
	mc, err := c.get(ctx, "/library/onDeck", nil)
	if err != nil {
		return nil, err
	}
	return mc.MediaContainer.Metadata, nil
}

// Scrobble marks an item watched.
func (c *Client) Scrobble(ctx context.Context, ratingKey string) error {
	return c.watchAction(ctx, "/:/scrobble", ratingKey)
}

// Unscrobble marks an item unwatched.
func (c *Client) Unscrobble(ctx context.Context, ratingKey string) error {
	return c.watchAction(ctx, "/:/unscrobble", ratingKey)
}

func (c *Client) watchAction(ctx context.Context, path, ratingKey string) error {
	q := url.Values{
		"key":        {ratingKey},
		"identifier": {"com.plexapp.plugins.library"},
	}
	req, err := upstream.NewRequest(ctx, http.MethodGet, c.url(path, q), nil)
	if err != nil {
		return err
	}
	return upstream.Do(c.httpClient, upstream.Plex, req, nil)
}

// StreamURL returns a direct-play URL for a file part.
func (c *Client) StreamURL(p Part) string {
	path := p.Key
	if path == "" {
		path = fmt.Sprintf("/library/parts/%d/file", p.ID)
	}
	return c.url(path, nil)
}

// TranscodeURL returns a universal transcoder URL for an item, the
// fallback when no direct part is available.
func (c *Client) TranscodeURL(ratingKey string) string {
	q := url.Values{
		"mediaIndex": {"0"},
		"partIndex":  {"0"},
		"protocol":   {"http"},
		"path":       {"/library/metadata/" + ratingKey},
	}
	return c.url("/video/:/transcode/universal/start", q)
}

// ImageURL returns an authenticated URL for a thumb or art path.
func (c *Client) ImageURL(path string) string {
	if path == "" {
		return ""
	}
	return c.url(path, nil)
}
