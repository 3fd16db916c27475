package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/plexdeck/internal/arr"
	"github.com/vmunix/plexdeck/internal/config"
	"github.com/vmunix/plexdeck/internal/media"
	"github.com/vmunix/plexdeck/internal/reconcile"
	"github.com/vmunix/plexdeck/internal/services"
	"github.com/vmunix/plexdeck/internal/upstream"
	"github.com/vmunix/plexdeck/internal/workflow"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"The Lord of the Rings", 10, "The Lor..."},
		{"Amélie Poulain", 8, "Améli..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.n), tt.in)
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "0", "-3"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestSetConfigValue(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, setConfigValue(cfg, "connections.sonarr.host", "nas.local"))
	require.NoError(t, setConfigValue(cfg, "connections.sonarr.port", "8990"))
	require.NoError(t, setConfigValue(cfg, "Connections.Radarr.Credential", "radarr-key"))
	require.NoError(t, setConfigValue(cfg, "connections.plex.token", "plex-token"))
	require.NoError(t, setConfigValue(cfg, "connections.plex.scheme", "https"))
	require.NoError(t, setConfigValue(cfg, "server.port", "9000"))
	require.NoError(t, setConfigValue(cfg, "server.log_level", "debug"))
	require.NoError(t, setConfigValue(cfg, "tmdb.api_key", "tmdb-key"))
	require.NoError(t, setConfigValue(cfg, "database.path", "/var/lib/plexdeck.db"))

	assert.Equal(t, "nas.local", cfg.Connections.Sonarr.Host)
	assert.Equal(t, 8990, cfg.Connections.Sonarr.Port)
	assert.Equal(t, "radarr-key", cfg.Connections.Radarr.Credential)
	assert.Equal(t, "plex-token", cfg.Connections.Plex.Credential)
	assert.Equal(t, "https", cfg.Connections.Plex.Scheme)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "tmdb-key", cfg.TMDB.APIKey)
	assert.Equal(t, "/var/lib/plexdeck.db", cfg.Database.Path)
}

func TestSetConfigValue_Errors(t *testing.T) {
	cfg := config.Default()
	tests := []struct {
		key, value, want string
	}{
		{"connections.jellyfin.host", "x", "unknown service"},
		{"connections.sonarr.path", "x", "unknown config key"},
		{"server.port", "http", "invalid port"},
		{"connections.radarr.port", "70000", "invalid port"},
		{"libraries.movies", "x", "unknown config key"},
	}
	for _, tt := range tests {
		err := setConfigValue(cfg, tt.key, tt.value)
		require.Error(t, err, tt.key)
		assert.Contains(t, err.Error(), tt.want, tt.key)
	}
}

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	printStatus(&buf, "http://localhost:8585", &StatusResponse{
		Version:     "1.0.0",
		Revision:    2,
		Configured:  []upstream.Service{upstream.Sonarr},
		Unavailable: map[upstream.Service]string{upstream.Plex: "configuration incomplete: host is empty"},
	})

	out := buf.String()
	assert.Contains(t, out, "plexdeck v1.0.0 | Server: http://localhost:8585 | Config revision: 2")
	assert.Contains(t, out, "sonarr   configured")
	assert.Contains(t, out, "plex     unavailable: configuration incomplete: host is empty")
	assert.Contains(t, out, "radarr   not configured")
	assert.Contains(t, out, "tmdb     not configured")
}

func TestPrintTestResults_CountsFailures(t *testing.T) {
	var buf bytes.Buffer
	failed := printTestResults(&buf, &TestResponse{Results: map[upstream.Service]services.TestResult{
		upstream.Plex:   {Success: true, Version: "1.40.2"},
		upstream.Sonarr: {Error: "connection refused"},
		upstream.Radarr: {Error: "not configured"},
	}})

	assert.Equal(t, 1, failed)
	out := buf.String()
	assert.Contains(t, out, "plex     ok (v1.40.2)")
	assert.Contains(t, out, "sonarr   FAILED: connection refused")
	assert.Contains(t, out, "radarr   not configured")
	assert.NotContains(t, out, "tmdb")
}

func TestPrintConfigSummary_HidesCredentials(t *testing.T) {
	cfg := config.Default()
	cfg.Connections.Sonarr.Credential = "super-secret"

	var buf bytes.Buffer
	printConfigSummary(&buf, cfg)

	out := buf.String()
	assert.NotContains(t, out, "super-secret")
	assert.Contains(t, out, "http://localhost:8989")
	assert.Regexp(t, `sonarr\s+http://localhost:8989\s+credential: set`, out)
	assert.Regexp(t, `radarr\s+http://localhost:7878\s+credential: not set`, out)
}

func TestPrintItems(t *testing.T) {
	var buf bytes.Buffer
	printItems(&buf, "Recently Added", []media.Item{
		{ID: "101", Title: "The Matrix", Year: 1999, Kind: media.KindMovie, InLibrary: true},
		{ID: "7", Title: "Dune: Part Two", Kind: media.KindMovie, Monitored: true},
	})

	out := buf.String()
	assert.Contains(t, out, "Recently Added (2):")
	assert.Regexp(t, `101\s+movie\s+1999\s+The Matrix\s+in library`, out)
	assert.Regexp(t, `7\s+movie\s+-\s+Dune: Part Two\s+wanted`, out)

	buf.Reset()
	printItems(&buf, "On Deck", nil)
	assert.Equal(t, "On Deck: nothing found\n", buf.String())
}

func TestItemStatus(t *testing.T) {
	assert.Equal(t, "-", itemStatus(media.Item{}))
	assert.Equal(t, "in library, downloading", itemStatus(media.Item{InLibrary: true, Downloading: true, Monitored: true}))
	assert.Equal(t, "-", itemStatus(media.Item{Monitored: true, HasFile: true}))
}

func TestPrintMedia_Counterpart(t *testing.T) {
	var buf bytes.Buffer
	printMedia(&buf, &MediaResponse{
		Item: media.Item{
			ID: "101", Title: "The Matrix", Year: 1999, Kind: media.KindMovie,
			ExternalIDs: media.ExternalIDs{TMDB: 603, IMDB: "tt0133093"},
		},
		Counterpart: &Counterpart{
			Item: media.Item{ID: "7", Origins: []media.Source{media.SourceMovieAcquisition}, Monitored: true, HasFile: true},
			By:   reconcile.ByIdentifier,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "The Matrix (1999)")
	assert.Contains(t, out, "tmdb:603 imdb:tt0133093")
	assert.Contains(t, out, "In radarr as #7 (matched by identifier)")
	assert.Contains(t, out, "Monitored:  yes")
}

func TestPrintMedia_LookupFailed(t *testing.T) {
	var buf bytes.Buffer
	printMedia(&buf, &MediaResponse{
		Item:     media.Item{ID: "101", Title: "The Matrix", Kind: media.KindMovie},
		Failures: []reconcile.SourceFailure{{Service: upstream.Radarr, Message: "HTTP 500"}},
	})

	out := buf.String()
	assert.NotContains(t, out, "Not tracked")
	assert.Contains(t, out, "warning: radarr unavailable: HTTP 500")
}

func TestPrintSeasons(t *testing.T) {
	var buf bytes.Buffer
	printSeasons(&buf, &SeasonsResponse{
		SeriesID: 5,
		Seasons: []media.Season{{
			Number: 1, EpisodeCount: 2, FileCount: 1, Monitored: true,
			Episodes: []media.Episode{
				{SeasonNumber: 1, EpisodeNumber: 1, Title: "Good News About Hell", LibraryID: "200", AcquisitionID: 50, HasFile: true, Monitored: true},
				{SeasonNumber: 1, EpisodeNumber: 2, Title: "Half Loop", AcquisitionID: 51, Monitored: true, Downloading: true},
			},
		}},
	})

	out := buf.String()
	assert.Contains(t, out, "Sonarr series #5")
	assert.Contains(t, out, "Season 1  (1/2 files, monitored: yes)")
	assert.Regexp(t, `PFM-\s+S01E01\s+Good News About Hell\s+#50`, out)
	assert.Regexp(t, `--MD\s+S01E02\s+Half Loop\s+#51`, out)
}

func TestPrintQueue(t *testing.T) {
	var buf bytes.Buffer
	printQueue(&buf, &QueueResponse{
		Items: []QueueItem{
			{Service: upstream.Sonarr, Title: "Severance.S02E03.1080p", Series: "Severance", Season: 2, Episode: 3,
				Status: "downloading", Size: 2_000_000_000, SizeLeft: 500_000_000, Progress: 0.75},
			{Service: upstream.Radarr, Title: "Dune.Part.Two.2024.2160p", Movie: "Dune: Part Two", Status: "queued"},
		},
		Failures: []reconcile.SourceFailure{{Service: upstream.Radarr, Message: "timeout"}},
	})

	out := buf.String()
	assert.Contains(t, out, "Active Downloads (2):")
	assert.Regexp(t, `sonarr\s+downloading\s+Severance S02E03\s+75%\s+500 MB of 2.0 GB left`, out)
	assert.Regexp(t, `radarr\s+queued\s+Dune: Part Two\s+0%\s+-`, out)
	assert.Contains(t, out, "warning: radarr unavailable: timeout")
}

func TestPrintHistory(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	season := 2
	var buf bytes.Buffer
	printHistory(&buf, []HistoryEntry{
		{Kind: "season", Service: "sonarr", EntityID: 42, Season: &season, Status: "queued", OccurredAt: now.Add(-2 * time.Hour)},
		{Kind: "movie", Service: "radarr", EntityID: 7, Status: "failed", Reason: "movie 7 not found", OccurredAt: now.Add(-3 * 24 * time.Hour)},
	}, now)

	out := buf.String()
	assert.Regexp(t, `2 hours ago\s+season\s+sonarr\s+#42 season 2\s+queued`, out)
	assert.Regexp(t, `3 days ago\s+movie\s+radarr\s+#7\s+failed: movie 7 not found`, out)
}

func TestPrintProfiles(t *testing.T) {
	var buf bytes.Buffer
	printProfiles(&buf,
		&ProfilesResponse{Services: []ServiceProfiles{{Service: upstream.Sonarr, Profiles: []arr.QualityProfile{{ID: 4, Name: "HD-1080p"}}}}},
		&RootFoldersResponse{Services: []ServiceRootFolders{{Service: upstream.Sonarr, RootFolders: []arr.RootFolder{{Path: "/tv", FreeSpace: 3_000_000_000_000}}}}},
	)

	out := buf.String()
	assert.Contains(t, out, "sonarr quality profiles:")
	assert.Contains(t, out, "  4  HD-1080p")
	assert.Regexp(t, `/tv\s+3.0 TB free`, out)
}

func TestPickCandidate(t *testing.T) {
	items := []media.Item{
		{ID: "tmdb:1", Title: "Dune", Origins: []media.Source{media.SourceMetadataSearch}},
		{ID: "lookup:2", Title: "Dune", Origins: []media.Source{media.SourceMovieAcquisition}},
		{ID: "lookup:3", Title: "Dune: Part Two", Origins: []media.Source{media.SourceMovieAcquisition, media.SourceMetadataSearch}},
	}

	got, err := pickCandidate(items, media.SourceMovieAcquisition, 2)
	require.NoError(t, err)
	assert.Equal(t, "lookup:3", got.ID)

	_, err = pickCandidate(items, media.SourceMovieAcquisition, 3)
	assert.ErrorContains(t, err, "only 2 results")

	_, err = pickCandidate(items, media.SourceTVAcquisition, 1)
	assert.ErrorContains(t, err, "no sonarr results")
}

func TestRunConfigSet_MergesIntoCurrent(t *testing.T) {
	var saved config.Config
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/config", r.URL.Path)
		current := config.Default().Redacted()
		current.Connections.Radarr.Credential = config.Mask
		switch r.Method {
		case http.MethodGet:
			respondJSON(t, w, http.StatusOK, ConfigResponse{Revision: 1, Config: current})
		case http.MethodPut:
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&saved))
			respondJSON(t, w, http.StatusOK, ConfigResponse{Revision: 2, Config: current})
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()
	defer withServerURL(srv.URL)()

	err := runConfigSet(nil, []string{"connections.sonarr.host=nas.local", "connections.sonarr.credential=abc"})
	require.NoError(t, err)
	assert.Equal(t, "nas.local", saved.Connections.Sonarr.Host)
	assert.Equal(t, "abc", saved.Connections.Sonarr.Credential)
	assert.Equal(t, config.Mask, saved.Connections.Radarr.Credential)
}

func TestRunConfigSet_BadArgument(t *testing.T) {
	srv := newMockServer(t).RespondJSON(ConfigResponse{Revision: 1, Config: config.Default()}).Build()
	defer srv.Close()
	defer withServerURL(srv.URL)()

	err := runConfigSet(nil, []string{"server.port"})
	assert.ErrorContains(t, err, "expected key=value")
}

func TestRunConfigImport_KeepsServerSettings(t *testing.T) {
	blob := `{"plex":{"host":"plex.lan","port":32400,"token":"plex-token"},"sonarr":{"host":"nas","apiKey":"sonarr-key"}}`
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(blob), 0644))

	var saved config.Config
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current := config.Default()
		current.Server.Port = 9090
		if r.Method == http.MethodPut {
			body, _ := io.ReadAll(r.Body)
			assert.NoError(t, json.Unmarshal(body, &saved))
		}
		respondJSON(t, w, http.StatusOK, ConfigResponse{Revision: 5, Config: current})
	}))
	defer srv.Close()
	defer withServerURL(srv.URL)()

	require.NoError(t, runConfigImport(nil, []string{path}))
	assert.Equal(t, 9090, saved.Server.Port)
	assert.Equal(t, "plex.lan", saved.Connections.Plex.Host)
	assert.Equal(t, "plex-token", saved.Connections.Plex.Credential)
	assert.Equal(t, "nas", saved.Connections.Sonarr.Host)
	assert.Equal(t, "sonarr-key", saved.Connections.Sonarr.Credential)
	assert.Empty(t, saved.Connections.Radarr.Credential)
}

func TestRunConfigCheck(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.toml")
	require.NoError(t, config.Default().Write(good))
	assert.NoError(t, runConfigCheck(nil, []string{good}))

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[server]\nlog_level = \"loud\"\n"), 0644))
	assert.ErrorContains(t, runConfigCheck(nil, []string{bad}), "configuration invalid")
}

func TestRunDownloadEpisode_FailedOutcomeExitsNonZero(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/episodes/77/download").
		RespondStatusJSON(http.StatusBadGateway, workflow.Outcome{
			Kind: workflow.KindEpisode, Status: workflow.StatusFailed, Reason: "sonarr: HTTP 500", Units: []workflow.UnitResult{},
		}).
		Build()
	defer srv.Close()
	defer withServerURL(srv.URL)()

	err := runDownloadEpisode(nil, []string{"77"})
	assert.ErrorContains(t, err, "sonarr: HTTP 500")
}

func TestRunDownloadSeason_InvalidArgs(t *testing.T) {
	assert.ErrorContains(t, runDownloadSeason(nil, []string{"abc", "1"}), "invalid ID")
	assert.ErrorContains(t, runDownloadSeason(nil, []string{"42", "one"}), "invalid season")
}

func TestPrintOutcome(t *testing.T) {
	var buf bytes.Buffer
	printOutcome(&buf, &workflow.Outcome{
		Kind:    workflow.KindSeason,
		Service: upstream.Sonarr,
		Status:  workflow.StatusPartiallyFailed,
		Units: []workflow.UnitResult{
			{ID: 50, State: workflow.StateSearchTriggered},
			{ID: 51, State: workflow.StateMonitoringRequested, Error: "HTTP 500"},
		},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Search started, but some seasons failed in sonarr", lines[0])
	assert.Contains(t, lines[2], "HTTP 500")
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"status", "config", "library", "search", "add", "show", "seasons", "watched", "download", "queue", "history", "profiles", "completion"}
	have := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		assert.True(t, have[name], "missing command %q", name)
	}
}
