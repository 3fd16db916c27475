package arr

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vmunix/plexdeck/internal/upstream"
)

// Movie is a Radarr movie. Fields not modelled here are preserved.
type Movie struct {
	ID                  int64    `json:"id,omitempty"`
	Title               string   `json:"title"`
	OriginalTitle       string   `json:"originalTitle,omitempty"`
	SortTitle           string   `json:"sortTitle,omitempty"`
	TitleSlug           string   `json:"titleSlug,omitempty"`
	TMDBID              int64    `json:"tmdbId"`
	IMDBID              string   `json:"imdbId,omitempty"`
	Year                int      `json:"year"`
	Overview            string   `json:"overview,omitempty"`
	Studio              string   `json:"studio,omitempty"`
	Status              string   `json:"status,omitempty"`
	HasFile             bool     `json:"hasFile"`
	Monitored           bool     `json:"monitored"`
	IsAvailable         bool     `json:"isAvailable"`
	MinimumAvailability string   `json:"minimumAvailability,omitempty"`
	QualityProfileID    int      `json:"qualityProfileId,omitempty"`
	RootFolderPath      string   `json:"rootFolderPath,omitempty"`
	Path                string   `json:"path,omitempty"`
	Runtime             int      `json:"runtime,omitempty"`
	Genres              []string `json:"genres,omitempty"`
	Images              []Image  `json:"images,omitempty"`
	Ratings             Ratings  `json:"ratings"`
	Tags                []int    `json:"tags"`
	Added               string   `json:"added,omitempty"`

	extra extra
}

type movieFields Movie

func (m *Movie) UnmarshalJSON(data []byte) error {
	var f movieFields
	raw, err := unmarshalWithExtra(data, &f)
	if err != nil {
		return err
	}
	*m = Movie(f)
	m.extra = raw
	return nil
}

func (m Movie) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(movieFields(m), m.extra)
}

// Poster returns the poster image URL.
func (m *Movie) Poster() string {
	return posterURL(m.Images)
}

// RadarrClient is a client for the Radarr v3 API.
type RadarrClient struct {
	*client
}

// NewRadarr creates a Radarr client. An empty baseURL or apiKey yields
// upstream.ErrConfigIncomplete.
func NewRadarr(baseURL, apiKey string, opts ...Option) (*RadarrClient, error) {
	c, err := newClient(upstream.Radarr, baseURL, apiKey, opts)
	if err != nil {
		return nil, err
	}
	return &RadarrClient{client: c}, nil
}

// ListMovies lists every movie Radarr manages.
func (c *RadarrClient) ListMovies(ctx context.Context) ([]Movie, error) {
	var out []Movie
	if err := c.do(ctx, http.MethodGet, "/movie", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Movie fetches one movie. A missing movie returns (nil, nil).
func (c *RadarrClient) Movie(ctx context.Context, id int64) (*Movie, error) {
	var m Movie
	found, err := c.getOptional(ctx, "/movie/"+strconv.FormatInt(id, 10), &m)
	if err != nil || !found {
		return nil, err
	}
	return &m, nil
}

// LookupMovie searches Radarr's metadata source. term may be a title or
// "tmdb:<id>".
func (c *RadarrClient) LookupMovie(ctx context.Context, term string) ([]Movie, error) {
	var out []Movie
	if err := c.do(ctx, http.MethodGet, "/movie/lookup", url.Values{"term": {term}}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddMovieOptions are the user choices applied to a looked-up movie.
type AddMovieOptions struct {
	QualityProfileID    int
	RootFolderPath      string
	Monitored           bool
	MinimumAvailability string
	SearchForMovie      bool
	Tags                []int
}

// AddMovie adds a movie obtained from LookupMovie.
func (c *RadarrClient) AddMovie(ctx context.Context, m Movie, opts AddMovieOptions) (*Movie, error) {
	m.ID = 0
	m.QualityProfileID = opts.QualityProfileID
	m.RootFolderPath = opts.RootFolderPath
	m.Monitored = opts.Monitored
	m.MinimumAvailability = opts.MinimumAvailability
	if m.MinimumAvailability == "" {
		m.MinimumAvailability = "released"
	}
	m.Tags = opts.Tags
	if m.Tags == nil {
		m.Tags = []int{}
	}
	m.extra = withAddOptions(m.extra, map[string]any{
		"searchForMovie": opts.SearchForMovie,
	})
	delete(m.extra, "id")

	var created Movie
	if err := c.do(ctx, http.MethodPost, "/movie", nil, m, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateMovie replaces the full movie record.
func (c *RadarrClient) UpdateMovie(ctx context.Context, m *Movie) error {
	if m.ID == 0 {
		return fmt.Errorf("update movie: missing id")
	}
	return c.do(ctx, http.MethodPut, "/movie/"+strconv.FormatInt(m.ID, 10), nil, m, nil)
}

// SearchMovies queues a MoviesSearch command.
func (c *RadarrClient) SearchMovies(ctx context.Context, ids []int64) (*Command, error) {
	return c.command(ctx, map[string]any{
		"name":     "MoviesSearch",
		"movieIds": ids,
	})
}

// Queue lists active downloads with movie summaries.
func (c *RadarrClient) Queue(ctx context.Context) ([]QueueItem, error) {
	return c.queue(ctx, url.Values{
		"page":         {"1"},
		"pageSize":     {"200"},
		"includeMovie": {"true"},
	})
}
