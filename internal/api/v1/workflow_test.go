package v1

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	_ "modernc.org/sqlite"

	"github.com/vmunix/plexdeck/internal/config"
	"github.com/vmunix/plexdeck/internal/events"
	"github.com/vmunix/plexdeck/internal/migrations"
	"github.com/vmunix/plexdeck/internal/upstream"
	"github.com/vmunix/plexdeck/internal/workflow"
)

// acquisitionConfig configures Sonarr and Radarr at addresses nothing
// listens on; tests using it never reach them.
func acquisitionConfig() *config.Config {
	cfg := config.Default()
	cfg.Connections.Sonarr.Credential = "sonarr-key"
	cfg.Connections.Radarr.Credential = "radarr-key"
	return cfg
}

func TestOutcomeStatus(t *testing.T) {
	tests := []struct {
		status workflow.Status
		want   int
	}{
		{workflow.StatusQueued, http.StatusAccepted},
		{workflow.StatusPartiallyFailed, http.StatusAccepted},
		{workflow.StatusNoOp, http.StatusOK},
		{workflow.StatusFailed, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, outcomeStatus(&workflow.Outcome{Status: tt.status}))
		})
	}
}

func TestDownloadEpisode(t *testing.T) {
	ts := newTestServer(t, acquisitionConfig())
	ts.workflows.EXPECT().
		DownloadEpisode(gomock.Any(), gomock.Not(gomock.Nil()), int64(50)).
		Return(&workflow.Outcome{
			ID:      "o-1",
			Kind:    workflow.KindEpisode,
			Service: upstream.Sonarr,
			Target:  workflow.Target{ID: 50},
			Status:  workflow.StatusQueued,
			Units:   []workflow.UnitResult{{ID: 50, State: workflow.StateSearchTriggered}},
		})

	rec := ts.do(http.MethodPost, "/api/v1/episodes/50/download", "")
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	out := decodeResponse[workflow.Outcome](t, rec)
	assert.Equal(t, "o-1", out.ID)
	assert.Equal(t, workflow.StatusQueued, out.Status)
	require.Len(t, out.Units, 1)
	assert.Equal(t, workflow.StateSearchTriggered, out.Units[0].State)
}

func TestDownloadSeason_NoOp(t *testing.T) {
	ts := newTestServer(t, acquisitionConfig())
	season := 0
	ts.workflows.EXPECT().
		DownloadSeason(gomock.Any(), gomock.Any(), int64(5), 0).
		Return(&workflow.Outcome{
			Kind:   workflow.KindSeason,
			Target: workflow.Target{SeriesID: 5, Season: &season},
			Status: workflow.StatusNoOp,
			Units:  []workflow.UnitResult{},
		})

	rec := ts.do(http.MethodPost, "/api/v1/series/5/seasons/0/download", "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, workflow.StatusNoOp, decodeResponse[workflow.Outcome](t, rec).Status)
}

func TestDownloadMovie_Partial(t *testing.T) {
	ts := newTestServer(t, acquisitionConfig())
	ts.workflows.EXPECT().
		DownloadMovie(gomock.Any(), gomock.Any(), int64(7)).
		Return(&workflow.Outcome{
			Kind:   workflow.KindMovie,
			Status: workflow.StatusPartiallyFailed,
			Reason: "1 of 1 failed: search: HTTP 500",
			Units:  []workflow.UnitResult{{ID: 7, State: workflow.StateMonitoringRequested, Error: "search: HTTP 500"}},
		})

	rec := ts.do(http.MethodPost, "/api/v1/movies/7/download", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "1 of 1 failed: search: HTTP 500", decodeResponse[workflow.Outcome](t, rec).Reason)
}

func TestDownload_BadPath(t *testing.T) {
	ts := newTestServer(t, acquisitionConfig())

	tests := []struct {
		path string
		code string
	}{
		{"/api/v1/episodes/abc/download", "INVALID_ID"},
		{"/api/v1/episodes/0/download", "INVALID_ID"},
		{"/api/v1/movies/-3/download", "INVALID_ID"},
		{"/api/v1/series/5/seasons/one/download", "INVALID_SEASON"},
		{"/api/v1/series/5/seasons/-1/download", "INVALID_SEASON"},
	}
	for _, tt := range tests {
		rec := ts.do(http.MethodPost, tt.path, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, tt.path)
		assert.Equal(t, tt.code, errorCode(t, rec), tt.path)
	}
}

func TestDownload_ServiceUnconfigured(t *testing.T) {
	ts := newTestServer(t, config.Default())

	rec := ts.do(http.MethodPost, "/api/v1/movies/7/download", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, decodeResponse[errorResponse](t, rec).Error, "radarr")
}

func TestDownloadEpisode_NotFound(t *testing.T) {
	sonarr := newUpstream(t)
	cfg := config.Default()
	cfg.Connections.Sonarr = connTo(t, sonarr.Server, "sonarr-key")
	ts := newTestServer(t, cfg, func(d *ServerDeps) {
		d.Workflows = workflow.New(nil, testLogger())
	})

	rec := ts.do(http.MethodPost, "/api/v1/episodes/77/download", "")
	require.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())

	out := decodeResponse[workflow.Outcome](t, rec)
	assert.Equal(t, workflow.StatusFailed, out.Status)
	assert.Contains(t, out.Reason, "not found")
	assert.Empty(t, out.Units)

	reqs := sonarr.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/api/v3/episode/77", reqs[0].URL.Path)
}

func TestListQueue_PartialFailure(t *testing.T) {
	sonarr := newUpstream(t)
	sonarr.json(http.MethodGet, "/api/v3/queue", http.StatusOK, `{"records":[{
		"id":900,"seriesId":5,"episodeId":51,"title":"Severance.S01E02.1080p","status":"downloading",
		"size":200,"sizeleft":50,"timeleft":"00:10:00","downloadClient":"SABnzbd","protocol":"usenet",
		"series":{"title":"Severance","year":2022},
		"episode":{"title":"Half Loop","seasonNumber":1,"episodeNumber":2}}]}`)
	radarr := newUpstream(t)
	radarr.json(http.MethodGet, "/api/v3/queue", http.StatusInternalServerError, `{}`)
	cfg := config.Default()
	cfg.Connections.Sonarr = connTo(t, sonarr.Server, "sonarr-key")
	cfg.Connections.Radarr = connTo(t, radarr.Server, "radarr-key")
	ts := newTestServer(t, cfg)

	rec := ts.do(http.MethodGet, "/api/v1/queue", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeResponse[queueResponse](t, rec)
	require.Len(t, resp.Items, 1)
	item := resp.Items[0]
	assert.Equal(t, upstream.Sonarr, item.Service)
	assert.Equal(t, "Severance", item.Series)
	assert.Equal(t, 1, item.Season)
	assert.Equal(t, 2, item.Episode)
	assert.InDelta(t, 0.75, item.Progress, 0.0001)
	assert.Equal(t, "SABnzbd", item.Client)

	require.Len(t, resp.Failures, 1)
	assert.Equal(t, upstream.Radarr, resp.Failures[0].Service)
	assert.Equal(t, "HTTP 500", resp.Failures[0].Message)
}

func TestListQueue_NothingConfigured(t *testing.T) {
	ts := newTestServer(t, config.Default())

	rec := ts.do(http.MethodGet, "/api/v1/queue", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
}

func TestListProfilesAndRootFolders(t *testing.T) {
	sonarr := newUpstream(t)
	sonarr.json(http.MethodGet, "/api/v3/qualityprofile", http.StatusOK, `[{"id":1,"name":"HD-1080p"}]`)
	sonarr.json(http.MethodGet, "/api/v3/rootfolder", http.StatusOK, `[{"id":1,"path":"/tv","accessible":true,"freeSpace":1000}]`)
	radarr := newUpstream(t)
	radarr.json(http.MethodGet, "/api/v3/qualityprofile", http.StatusOK, `[{"id":4,"name":"Ultra-HD"}]`)
	radarr.json(http.MethodGet, "/api/v3/rootfolder", http.StatusOK, `[]`)
	cfg := config.Default()
	cfg.Connections.Sonarr = connTo(t, sonarr.Server, "sonarr-key")
	cfg.Connections.Radarr = connTo(t, radarr.Server, "radarr-key")
	ts := newTestServer(t, cfg)

	rec := ts.do(http.MethodGet, "/api/v1/profiles", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	profiles := decodeResponse[profilesResponse](t, rec)
	require.Len(t, profiles.Services, 2)
	assert.Equal(t, upstream.Sonarr, profiles.Services[0].Service)
	assert.Equal(t, "HD-1080p", profiles.Services[0].Profiles[0].Name)
	assert.Equal(t, 4, profiles.Services[1].Profiles[0].ID)

	rec = ts.do(http.MethodGet, "/api/v1/rootfolders", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	folders := decodeResponse[rootFoldersResponse](t, rec)
	require.Len(t, folders.Services, 2)
	assert.Equal(t, "/tv", folders.Services[0].RootFolders[0].Path)
	assert.Empty(t, folders.Services[1].RootFolders)
}

func setupEventLog(t *testing.T) *events.EventLog {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Apply(context.Background(), db))
	return events.NewEventLog(db)
}

func TestListHistory(t *testing.T) {
	log := setupEventLog(t)
	ctx := context.Background()

	season := 1
	_, err := log.Append(ctx, &events.WorkflowCompleted{
		BaseEvent: events.NewBaseEvent(events.EventWorkflowQueued, events.EntitySeason, 5),
		OutcomeID: "o-season",
		Kind:      "season",
		Service:   "sonarr",
		Season:    &season,
		Status:    "queued",
		Units:     []events.WorkflowUnit{{ID: 51, State: "search_triggered"}},
	})
	require.NoError(t, err)
	_, err = log.Append(ctx, events.NewConfigChanged(2, []string{"radarr"}))
	require.NoError(t, err)
	_, err = log.Append(ctx, &events.WorkflowCompleted{
		BaseEvent: events.NewBaseEvent(events.EventWorkflowFailed, events.EntityMovie, 7),
		OutcomeID: "o-movie",
		Kind:      "movie",
		Service:   "radarr",
		Status:    "failed",
		Reason:    "movie 7: not found",
	})
	require.NoError(t, err)

	ts := newTestServer(t, config.Default(), func(d *ServerDeps) { d.History = log })

	rec := ts.do(http.MethodGet, "/api/v1/history", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeResponse[historyResponse](t, rec)
	assert.Equal(t, 50, resp.Limit)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "o-movie", resp.Items[0].OutcomeID)
	assert.Equal(t, "movie 7: not found", resp.Items[0].Reason)
	assert.Equal(t, int64(7), resp.Items[0].EntityID)
	assert.Equal(t, "o-season", resp.Items[1].OutcomeID)
	require.NotNil(t, resp.Items[1].Season)
	assert.Equal(t, 1, *resp.Items[1].Season)
	require.Len(t, resp.Items[1].Units, 1)

	rec = ts.do(http.MethodGet, "/api/v1/history?kind=season&limit=5000", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeResponse[historyResponse](t, rec)
	assert.Equal(t, 1000, resp.Limit)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "o-season", resp.Items[0].OutcomeID)
}

func TestListHistory_Errors(t *testing.T) {
	ts := newTestServer(t, config.Default())

	rec := ts.do(http.MethodGet, "/api/v1/history?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PAGINATION", errorCode(t, rec))

	ts.history.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("disk I/O error"))
	rec = ts.do(http.MethodGet, "/api/v1/history", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "EVENT_ERROR", errorCode(t, rec))

	ts = newTestServer(t, config.Default(), func(d *ServerDeps) { d.History = nil })
	rec = ts.do(http.MethodGet, "/api/v1/history", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "NO_EVENT_LOG", errorCode(t, rec))
}
