package tmdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vmunix/plexdeck/internal/upstream"
)

const defaultBaseURL = "https://api.themoviedb.org"
const defaultCacheTTL = 24 * time.Hour

// ErrNotFound is returned when a movie or show doesn't exist in TMDB.
var ErrNotFound = errors.New("not found in tmdb")

// Client is a TMDB API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient upstream.Doer
	log        *slog.Logger
	movies     *cache[Movie]
	shows      *cache[Show]
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithCacheTTL sets the detail cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.movies = newCache[Movie](ttl)
		c.shows = newCache[Show](ttl)
	}
}

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
			c.log = log
		}
	}
}

// NewClient creates a new TMDB client. An empty apiKey yields
// upstream.ErrConfigIncomplete.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("tmdb: %w", upstream.ErrConfigIncomplete)
	}
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log:    slog.Default(),
		movies: newCache[Movie](defaultCacheTTL),
		shows:  newCache[Show](defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "tmdb")
	return c, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	query.Set("language", "en-US")

	req, err := upstream.NewRequest(ctx, http.MethodGet, c.baseURL+"/3"+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if err := upstream.Do(c.httpClient, upstream.TMDB, req, out); err != nil {
		if upstream.IsNotFound(err) {
			return ErrNotFound
		}
		c.log.Debug("request failed", "path", path, "error", err)
		return err
	}
	return nil
}

func searchQuery(q string) url.Values {
	return url.Values{
		"query":         {q},
		"include_adult": {"false"},
		"page":          {"1"},
	}
}

// SearchMovies returns the first page of movie matches for q.
func (c *Client) SearchMovies(ctx context.Context, q string) ([]Movie, error) {
	var p page[Movie]
	if err := c.get(ctx, "/search/movie", searchQuery(q), &p); err != nil {
		return nil, err
	}
	return p.Results, nil
}

// SearchTV returns the first page of TV matches for q.
func (c *Client) SearchTV(ctx context.Context, q string) ([]Show, error) {
	var p page[Show]
	if err := c.get(ctx, "/search/tv", searchQuery(q), &p); err != nil {
		return nil, err
	}
	return p.Results, nil
}

// GetMovie fetches movie metadata by TMDB ID.
func (c *Client) GetMovie(ctx context.Context, tmdbID int64) (*Movie, error) {
	if movie, ok := c.movies.get(tmdbID); ok {
		return movie, nil
	}

	var movie Movie
	if err := c.get(ctx, "/movie/"+strconv.FormatInt(tmdbID, 10), nil, &movie); err != nil {
		return nil, err
	}

	c.movies.set(tmdbID, &movie)
	return &movie, nil
}

// GetShow fetches show metadata, with external ids, by TMDB ID.
func (c *Client) GetShow(ctx context.Context, tmdbID int64) (*Show, error) {
	if show, ok := c.shows.get(tmdbID); ok {
		return show, nil
	}

	var show Show
	q := url.Values{"append_to_response": {"external_ids"}}
	if err := c.get(ctx, "/tv/"+strconv.FormatInt(tmdbID, 10), q, &show); err != nil {
		return nil, err
	}

	c.shows.set(tmdbID, &show)
	return &show, nil
}
