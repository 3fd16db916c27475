package arr

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vmunix/plexdeck/internal/upstream"
)

// Series is a Sonarr series. Fields not modelled here are preserved.
type Series struct {
	ID               int64    `json:"id,omitempty"`
	Title            string   `json:"title"`
	SortTitle        string   `json:"sortTitle,omitempty"`
	TitleSlug        string   `json:"titleSlug,omitempty"`
	TVDBID           int64    `json:"tvdbId"`
	TMDBID           int64    `json:"tmdbId,omitempty"`
	IMDBID           string   `json:"imdbId,omitempty"`
	Year             int      `json:"year"`
	Overview         string   `json:"overview,omitempty"`
	Network          string   `json:"network,omitempty"`
	Status           string   `json:"status,omitempty"`
	Monitored        bool     `json:"monitored"`
	QualityProfileID int      `json:"qualityProfileId,omitempty"`
	RootFolderPath   string   `json:"rootFolderPath,omitempty"`
	Path             string   `json:"path,omitempty"`
	SeasonFolder     bool     `json:"seasonFolder"`
	Genres           []string `json:"genres,omitempty"`
	Images           []Image  `json:"images,omitempty"`
	Ratings          Ratings  `json:"ratings"`
	Seasons          []Season `json:"seasons"`
	Tags             []int    `json:"tags"`
	Added            string   `json:"added,omitempty"`

	extra extra
}

type seriesFields Series

func (s *Series) UnmarshalJSON(data []byte) error {
	var f seriesFields
	raw, err := unmarshalWithExtra(data, &f)
	if err != nil {
		return err
	}
	*s = Series(f)
	s.extra = raw
	return nil
}

func (s Series) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(seriesFields(s), s.extra)
}

// Poster returns the poster image URL.
func (s *Series) Poster() string {
	return posterURL(s.Images)
}

// Season returns the season with the given number, or nil.
func (s *Series) Season(number int) *Season {
	for i := range s.Seasons {
		if s.Seasons[i].SeasonNumber == number {
			return &s.Seasons[i]
		}
	}
	return nil
}

// Season is a season entry embedded in Series.
type Season struct {
	SeasonNumber int               `json:"seasonNumber"`
	Monitored    bool              `json:"monitored"`
	Statistics   *SeasonStatistics `json:"statistics,omitempty"`

	extra extra
}

type seasonFields Season

func (s *Season) UnmarshalJSON(data []byte) error {
	var f seasonFields
	raw, err := unmarshalWithExtra(data, &f)
	if err != nil {
		return err
	}
	*s = Season(f)
	s.extra = raw
	return nil
}

func (s Season) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(seasonFields(s), s.extra)
}

type SeasonStatistics struct {
	EpisodeCount      int     `json:"episodeCount"`
	EpisodeFileCount  int     `json:"episodeFileCount"`
	TotalEpisodeCount int     `json:"totalEpisodeCount"`
	SizeOnDisk        int64   `json:"sizeOnDisk"`
	PercentOfEpisodes float64 `json:"percentOfEpisodes"`
}

// Episode is a Sonarr episode. Fields not modelled here are preserved.
type Episode struct {
	ID                    int64  `json:"id"`
	SeriesID              int64  `json:"seriesId"`
	TVDBID                int64  `json:"tvdbId,omitempty"`
	EpisodeFileID         int64  `json:"episodeFileId"`
	SeasonNumber          int    `json:"seasonNumber"`
	EpisodeNumber         int    `json:"episodeNumber"`
	AbsoluteEpisodeNumber int    `json:"absoluteEpisodeNumber,omitempty"`
	Title                 string `json:"title"`
	AirDate               string `json:"airDate,omitempty"`
	AirDateUTC            string `json:"airDateUtc,omitempty"`
	Overview              string `json:"overview,omitempty"`
	HasFile               bool   `json:"hasFile"`
	Monitored             bool   `json:"monitored"`

	extra extra
}

type episodeFields Episode

func (e *Episode) UnmarshalJSON(data []byte) error {
	var f episodeFields
	raw, err := unmarshalWithExtra(data, &f)
	if err != nil {
		return err
	}
	*e = Episode(f)
	e.extra = raw
	return nil
}

func (e Episode) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(episodeFields(e), e.extra)
}

// SonarrClient is a client for the Sonarr v3 API.
type SonarrClient struct {
	*client
}

// NewSonarr creates a Sonarr client. An empty baseURL or apiKey yields
// upstream.ErrConfigIncomplete.
func NewSonarr(baseURL, apiKey string, opts ...Option) (*SonarrClient, error) {
	c, err := newClient(upstream.Sonarr, baseURL, apiKey, opts)
	if err != nil {
		return nil, err
	}
	return &SonarrClient{client: c}, nil
}

// ListSeries lists every series Sonarr manages.
func (c *SonarrClient) ListSeries(ctx context.Context) ([]Series, error) {
	var out []Series
	if err := c.do(ctx, http.MethodGet, "/series", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Series fetches one series. A missing series returns (nil, nil).
func (c *SonarrClient) Series(ctx context.Context, id int64) (*Series, error) {
	var s Series
	found, err := c.getOptional(ctx, "/series/"+strconv.FormatInt(id, 10), &s)
	if err != nil || !found {
		return nil, err
	}
	return &s, nil
}

// LookupSeries searches Sonarr's metadata source. term may be a title or
// "tvdb:<id>".
func (c *SonarrClient) LookupSeries(ctx context.Context, term string) ([]Series, error) {
	var out []Series
	if err := c.do(ctx, http.MethodGet, "/series/lookup", url.Values{"term": {term}}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddSeriesOptions are the user choices applied to a looked-up series.
type AddSeriesOptions struct {
	QualityProfileID         int
	RootFolderPath           string
	Monitored                bool
	SeasonFolder             bool
	SearchForMissingEpisodes bool
	Tags                     []int
}

// AddSeries adds a series obtained from LookupSeries.
func (c *SonarrClient) AddSeries(ctx context.Context, s Series, opts AddSeriesOptions) (*Series, error) {
	s.ID = 0
	s.QualityProfileID = opts.QualityProfileID
	s.RootFolderPath = opts.RootFolderPath
	s.Monitored = opts.Monitored
	s.SeasonFolder = opts.SeasonFolder
	s.Tags = opts.Tags
	if s.Tags == nil {
		s.Tags = []int{}
	}
	monitor := "none"
	if opts.Monitored {
		monitor = "all"
	}
	s.extra = withAddOptions(s.extra, map[string]any{
		"searchForMissingEpisodes": opts.SearchForMissingEpisodes,
		"monitor":                  monitor,
	})
	delete(s.extra, "id")

	var created Series
	if err := c.do(ctx, http.MethodPost, "/series", nil, s, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateSeries replaces the full series record.
func (c *SonarrClient) UpdateSeries(ctx context.Context, s *Series) error {
	if s.ID == 0 {
		return fmt.Errorf("update series: missing id")
	}
	return c.do(ctx, http.MethodPut, "/series/"+strconv.FormatInt(s.ID, 10), nil, s, nil)
}

// Episodes lists every episode of a series.
func (c *SonarrClient) Episodes(ctx context.Context, seriesID int64) ([]Episode, error) {
	var out []Episode
	q := url.Values{"seriesId": {strconv.FormatInt(seriesID, 10)}}
	if err := c.do(ctx, http.MethodGet, "/episode", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Episode fetches one episode. A missing episode returns (nil, nil).
func (c *SonarrClient) Episode(ctx context.Context, id int64) (*Episode, error) {
	var e Episode
	found, err := c.getOptional(ctx, "/episode/"+strconv.FormatInt(id, 10), &e)
	if err != nil || !found {
		return nil, err
	}
	return &e, nil
}

// UpdateEpisode replaces the full episode record.
func (c *SonarrClient) UpdateEpisode(ctx context.Context, e *Episode) error {
	if e.ID == 0 {
		return fmt.Errorf("update episode: missing id")
	}
	return c.do(ctx, http.MethodPut, "/episode/"+strconv.FormatInt(e.ID, 10), nil, e, nil)
}

// SearchEpisodes queues an EpisodeSearch command.
func (c *SonarrClient) SearchEpisodes(ctx context.Context, ids []int64) (*Command, error) {
	return c.command(ctx, map[string]any{
		"name":       "EpisodeSearch",
		"episodeIds": ids,
	})
}

// SearchSeason queues a SeasonSearch command.
func (c *SonarrClient) SearchSeason(ctx context.Context, seriesID int64, season int) (*Command, error) {
	return c.command(ctx, map[string]any{
		"name":         "SeasonSearch",
		"seriesId":     seriesID,
		"seasonNumber": season,
	})
}

// Queue lists active downloads with series and episode summaries.
func (c *SonarrClient) Queue(ctx context.Context) ([]QueueItem, error) {
	return c.queue(ctx, url.Values{
		"page":           {"1"},
		"pageSize":       {"200"},
		"includeSeries":  {"true"},
		"includeEpisode": {"true"},
	})
}
