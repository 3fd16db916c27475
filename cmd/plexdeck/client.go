package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vmunix/plexdeck/internal/arr"
	"github.com/vmunix/plexdeck/internal/config"
	"github.com/vmunix/plexdeck/internal/events"
	"github.com/vmunix/plexdeck/internal/media"
	"github.com/vmunix/plexdeck/internal/plex"
	"github.com/vmunix/plexdeck/internal/reconcile"
	"github.com/vmunix/plexdeck/internal/services"
	"github.com/vmunix/plexdeck/internal/upstream"
	"github.com/vmunix/plexdeck/internal/workflow"
)

// Client wraps HTTP calls to the plexdeck server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new plexdeck API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is a non-2xx reply from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var parsed struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		return &APIError{Status: resp.StatusCode, Code: parsed.Code, Message: parsed.Error}
	}
	return &APIError{Status: resp.StatusCode, Message: string(bytes.TrimSpace(body))}
}

// do sends a request and decodes a 2xx reply into result.
func (c *Client) do(method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}
	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *Client) get(path string, result any) error {
	return c.do(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body any, result any) error {
	return c.do(http.MethodPost, path, body, result)
}

func (c *Client) put(path string, body any, result any) error {
	return c.do(http.MethodPut, path, body, result)
}

func (c *Client) delete(path string) error {
	return c.do(http.MethodDelete, path, nil, nil)
}

// API response types (mirror server types)

type StatusResponse struct {
	Status      string                      `json:"status"`
	Version     string                      `json:"version"`
	Revision    int64                       `json:"revision"`
	Configured  []upstream.Service          `json:"configured"`
	Unavailable map[upstream.Service]string `json:"unavailable,omitempty"`
}

type ConfigResponse struct {
	Revision int64          `json:"revision"`
	Config   *config.Config `json:"config"`
}

type TestResponse struct {
	Results map[upstream.Service]services.TestResult `json:"results"`
}

type SectionsResponse struct {
	Sections []plex.Section `json:"sections"`
}

type ItemsResponse struct {
	Items []media.Item `json:"items"`
}

type Counterpart struct {
	Item      media.Item          `json:"item"`
	By        reconcile.MatchedBy `json:"by"`
	Ambiguous bool                `json:"ambiguous,omitempty"`
}

type MediaResponse struct {
	Item        media.Item                `json:"item"`
	Counterpart *Counterpart              `json:"counterpart,omitempty"`
	Failures    []reconcile.SourceFailure `json:"failures,omitempty"`
}

type SeasonsResponse struct {
	SeriesID int64                     `json:"seriesId,omitempty"`
	Seasons  []media.Season            `json:"seasons"`
	Failures []reconcile.SourceFailure `json:"failures,omitempty"`
}

type QueueItem struct {
	Service   upstream.Service `json:"service"`
	ID        int64            `json:"id"`
	Title     string           `json:"title"`
	Series    string           `json:"series,omitempty"`
	Movie     string           `json:"movie,omitempty"`
	Season    int              `json:"season,omitempty"`
	Episode   int              `json:"episode,omitempty"`
	SeriesID  int64            `json:"seriesId,omitempty"`
	EpisodeID int64            `json:"episodeId,omitempty"`
	MovieID   int64            `json:"movieId,omitempty"`
	Status    string           `json:"status"`
	Size      float64          `json:"size"`
	SizeLeft  float64          `json:"sizeLeft"`
	Progress  float64          `json:"progress"`
	TimeLeft  string           `json:"timeLeft,omitempty"`
	Client    string           `json:"downloadClient,omitempty"`
	Protocol  string           `json:"protocol,omitempty"`
}

type QueueResponse struct {
	Items    []QueueItem               `json:"items"`
	Failures []reconcile.SourceFailure `json:"failures,omitempty"`
}

type ServiceProfiles struct {
	Service  upstream.Service     `json:"service"`
	Profiles []arr.QualityProfile `json:"profiles"`
}

type ProfilesResponse struct {
	Services []ServiceProfiles         `json:"services"`
	Failures []reconcile.SourceFailure `json:"failures,omitempty"`
}

type ServiceRootFolders struct {
	Service     upstream.Service `json:"service"`
	RootFolders []arr.RootFolder `json:"rootFolders"`
}

type RootFoldersResponse struct {
	Services []ServiceRootFolders      `json:"services"`
	Failures []reconcile.SourceFailure `json:"failures,omitempty"`
}

type HistoryEntry struct {
	ID         int64                 `json:"id"`
	EventType  string                `json:"eventType"`
	OutcomeID  string                `json:"outcomeId"`
	Kind       string                `json:"kind"`
	Service    string                `json:"service"`
	EntityID   int64                 `json:"entityId"`
	Season     *int                  `json:"season,omitempty"`
	Status     string                `json:"status"`
	Reason     string                `json:"reason,omitempty"`
	Units      []events.WorkflowUnit `json:"units,omitempty"`
	OccurredAt time.Time             `json:"occurredAt"`
}

type HistoryResponse struct {
	Items []HistoryEntry `json:"items"`
	Limit int            `json:"limit"`
}

// AddRequest adds a search result to Sonarr or Radarr.
type AddRequest struct {
	Item             media.Item `json:"item"`
	QualityProfileID int        `json:"qualityProfileId"`
	RootFolderPath   string     `json:"rootFolderPath"`
	Monitored        *bool      `json:"monitored,omitempty"`
	Search           bool       `json:"search"`
}

// Status fetches daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Config fetches the redacted configuration.
func (c *Client) Config() (*ConfigResponse, error) {
	var resp ConfigResponse
	if err := c.get("/api/v1/config", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SaveConfig replaces the configuration. Masked credentials keep their
// stored values.
func (c *Client) SaveConfig(cfg *config.Config) (*ConfigResponse, error) {
	var resp ConfigResponse
	if err := c.put("/api/v1/config", cfg, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TestConfig tests connections. A nil cfg tests the saved config.
func (c *Client) TestConfig(cfg *config.Config) (*TestResponse, error) {
	var body any
	if cfg != nil {
		body = cfg
	}
	var resp TestResponse
	if err := c.post("/api/v1/config/test", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Sections lists Plex library sections.
func (c *Client) Sections() (*SectionsResponse, error) {
	var resp SectionsResponse
	if err := c.get("/api/v1/library/sections", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SectionItems lists the items in one library section.
func (c *Client) SectionItems(key string) (*ItemsResponse, error) {
	var resp ItemsResponse
	if err := c.get("/api/v1/library/sections/"+url.PathEscape(key)+"/items", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Recent lists recently added items. limit <= 0 returns all.
func (c *Client) Recent(limit int) (*ItemsResponse, error) {
	path := "/api/v1/library/recent"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var resp ItemsResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// OnDeck lists in-progress items.
func (c *Client) OnDeck(limit int) (*ItemsResponse, error) {
	path := "/api/v1/library/ondeck"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var resp ItemsResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Media fetches one library item and its acquisition counterpart.
func (c *Client) Media(id string) (*MediaResponse, error) {
	var resp MediaResponse
	if err := c.get("/api/v1/media/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Seasons fetches the merged season view of a library show.
func (c *Client) Seasons(id string) (*SeasonsResponse, error) {
	var resp SeasonsResponse
	if err := c.get("/api/v1/media/"+url.PathEscape(id)+"/seasons", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetWatched marks a library item watched or unwatched.
func (c *Client) SetWatched(id string, watched bool) error {
	path := "/api/v1/media/" + url.PathEscape(id) + "/watched"
	if watched {
		return c.post(path, struct{}{}, nil)
	}
	return c.delete(path)
}

// Search runs an aggregate search. An empty scope means all sources.
func (c *Client) Search(query, scope string) (*reconcile.Result, error) {
	params := url.Values{}
	params.Set("q", query)
	if scope != "" {
		params.Set("scope", scope)
	}
	var resp reconcile.Result
	if err := c.get("/api/v1/search?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddSeries adds a Sonarr lookup result to Sonarr.
func (c *Client) AddSeries(req *AddRequest) (*media.Item, error) {
	var resp media.Item
	if err := c.post("/api/v1/series", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddMovie adds a Radarr lookup result to Radarr.
func (c *Client) AddMovie(req *AddRequest) (*media.Item, error) {
	var resp media.Item
	if err := c.post("/api/v1/movies", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DownloadEpisode runs the episode download workflow.
func (c *Client) DownloadEpisode(id int64) (*workflow.Outcome, error) {
	return c.download(fmt.Sprintf("/api/v1/episodes/%d/download", id))
}

// DownloadSeason runs the season download workflow.
func (c *Client) DownloadSeason(seriesID int64, season int) (*workflow.Outcome, error) {
	return c.download(fmt.Sprintf("/api/v1/series/%d/seasons/%d/download", seriesID, season))
}

// DownloadMovie runs the movie download workflow.
func (c *Client) DownloadMovie(id int64) (*workflow.Outcome, error) {
	return c.download(fmt.Sprintf("/api/v1/movies/%d/download", id))
}

// download returns the workflow outcome whenever the server produced one,
// including failed workflows. Other errors come back as *APIError.
func (c *Client) download(path string) (*workflow.Outcome, error) {
	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNotFound, http.StatusBadGateway:
	default:
		return nil, apiError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	var out workflow.Outcome
	if err := json.Unmarshal(body, &out); err != nil || out.Status == "" {
		resp.Body = io.NopCloser(bytes.NewReader(body))
		return nil, apiError(resp)
	}
	return &out, nil
}

// Queue lists Sonarr and Radarr download queues.
func (c *Client) Queue() (*QueueResponse, error) {
	var resp QueueResponse
	if err := c.get("/api/v1/queue", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profiles lists quality profiles per acquisition service.
func (c *Client) Profiles() (*ProfilesResponse, error) {
	var resp ProfilesResponse
	if err := c.get("/api/v1/profiles", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RootFolders lists root folders per acquisition service.
func (c *Client) RootFolders() (*RootFoldersResponse, error) {
	var resp RootFoldersResponse
	if err := c.get("/api/v1/rootfolders", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// History lists past workflow outcomes, newest first.
func (c *Client) History(kind string, limit int) (*HistoryResponse, error) {
	params := url.Values{}
	if kind != "" {
		params.Set("kind", kind)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/v1/history"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var resp HistoryResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// isCode reports whether err is an APIError with the given code.
func isCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}
