package v1

import (
	"time"

	"github.com/vmunix/plexdeck/internal/arr"
	"github.com/vmunix/plexdeck/internal/config"
	"github.com/vmunix/plexdeck/internal/events"
	"github.com/vmunix/plexdeck/internal/media"
	"github.com/vmunix/plexdeck/internal/plex"
	"github.com/vmunix/plexdeck/internal/reconcile"
	"github.com/vmunix/plexdeck/internal/services"
	"github.com/vmunix/plexdeck/internal/upstream"
)

type statusResponse struct {
	Status      string                      `json:"status"`
	Version     string                      `json:"version"`
	Revision    int64                       `json:"revision"`
	Configured  []upstream.Service          `json:"configured"`
	Unavailable map[upstream.Service]string `json:"unavailable,omitempty"`
}

type configResponse struct {
	Revision int64          `json:"revision"`
	Config   *config.Config `json:"config"`
}

// connectionRequest is one service's connection settings. A credential of
// config.Mask keeps the stored one.
type connectionRequest struct {
	Host       string `json:"host" validate:"required_with=Credential"`
	Port       int    `json:"port" validate:"omitempty,min=1,max=65535"`
	Scheme     string `json:"scheme" validate:"omitempty,oneof=http https"`
	Credential string `json:"credential"`
}

func newConnectionRequest(c config.Connection) connectionRequest {
	return connectionRequest{Host: c.Host, Port: c.Port, Scheme: c.Scheme, Credential: c.Credential}
}

func (c connectionRequest) connection() config.Connection {
	return config.Connection{Host: c.Host, Port: c.Port, Scheme: c.Scheme, Credential: c.Credential}
}

type serverRequest struct {
	Host        string   `json:"host"`
	Port        int      `json:"port" validate:"min=1,max=65535"`
	LogLevel    string   `json:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFile     string   `json:"log_file"`
	CORSOrigins []string `json:"cors_origins" validate:"dive,required"`
}

// configRequest is the body of PUT /config and POST /config/test. It is
// pre-filled from the current config, so omitted sections keep their
// values.
type configRequest struct {
	Server   serverRequest `json:"server"`
	Database struct {
		Path string `json:"path" validate:"required"`
	} `json:"database"`
	TMDB struct {
		APIKey string `json:"api_key"`
	} `json:"tmdb"`
	Connections struct {
		Plex   connectionRequest `json:"plex"`
		Sonarr connectionRequest `json:"sonarr"`
		Radarr connectionRequest `json:"radarr"`
	} `json:"connections"`
}

func newConfigRequest(cfg *config.Config) *configRequest {
	req := &configRequest{
		Server: serverRequest{
			Host:        cfg.Server.Host,
			Port:        cfg.Server.Port,
			LogLevel:    cfg.Server.LogLevel,
			LogFile:     cfg.Server.LogFile,
			CORSOrigins: cfg.Server.CORSOrigins,
		},
	}
	req.Database.Path = cfg.Database.Path
	req.TMDB.APIKey = cfg.TMDB.APIKey
	req.Connections.Plex = newConnectionRequest(cfg.Connections.Plex)
	req.Connections.Sonarr = newConnectionRequest(cfg.Connections.Sonarr)
	req.Connections.Radarr = newConnectionRequest(cfg.Connections.Radarr)
	return req
}

func (r *configRequest) config() *config.Config {
	return &config.Config{
		Version: config.CurrentVersion,
		Server: config.ServerConfig{
			Host:        r.Server.Host,
			Port:        r.Server.Port,
			LogLevel:    r.Server.LogLevel,
			LogFile:     r.Server.LogFile,
			CORSOrigins: r.Server.CORSOrigins,
		},
		Database: config.DatabaseConfig{Path: r.Database.Path},
		TMDB:     config.TMDBConfig{APIKey: r.TMDB.APIKey},
		Connections: config.ConnectionsConfig{
			Plex:   r.Connections.Plex.connection(),
			Sonarr: r.Connections.Sonarr.connection(),
			Radarr: r.Connections.Radarr.connection(),
		},
	}
}

type testResponse struct {
	Results map[upstream.Service]services.TestResult `json:"results"`
}

type listSectionsResponse struct {
	Sections []plex.Section `json:"sections"`
}

type listItemsResponse struct {
	Items []media.Item `json:"items"`
}

type counterpartResponse struct {
	Item      media.Item          `json:"item"`
	By        reconcile.MatchedBy `json:"by"`
	Ambiguous bool                `json:"ambiguous,omitempty"`
}

type mediaResponse struct {
	Item        media.Item                `json:"item"`
	Counterpart *counterpartResponse      `json:"counterpart,omitempty"`
	Failures    []reconcile.SourceFailure `json:"failures,omitempty"`
}

type seasonsResponse struct {
	SeriesID int64                     `json:"seriesId,omitempty"`
	Seasons  []media.Season            `json:"seasons"`
	Failures []reconcile.SourceFailure `json:"failures,omitempty"`
}

type streamResponse struct {
	StreamURL    string `json:"streamUrl,omitempty"`
	TranscodeURL string `json:"transcodeUrl"`
	Container    string `json:"container,omitempty"`
	Duration     int64  `json:"duration,omitempty"`
	ViewOffset   int64  `json:"viewOffset,omitempty"`
}

// addRequest adds a search result to its acquisition service. Only items
// that came from that service carry the identifiers it needs.
type addRequest struct {
	Item                media.Item `json:"item"`
	QualityProfileID    int        `json:"qualityProfileId" validate:"required,gt=0"`
	RootFolderPath      string     `json:"rootFolderPath" validate:"required"`
	Monitored           *bool      `json:"monitored"`
	Search              bool       `json:"search"`
	SeasonFolder        *bool      `json:"seasonFolder"`
	MinimumAvailability string     `json:"minimumAvailability" validate:"omitempty,oneof=announced inCinemas released"`
	Tags                []int      `json:"tags"`
}

func (r *addRequest) monitored() bool {
	return r.Monitored == nil || *r.Monitored
}

type queueItem struct {
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

func newQueueItem(svc upstream.Service, q arr.QueueItem) queueItem {
	out := queueItem{
		Service:   svc,
		ID:        q.ID,
		Title:     q.Title,
		SeriesID:  q.SeriesID,
		EpisodeID: q.EpisodeID,
		MovieID:   q.MovieID,
		Status:    q.Status,
		Size:      q.Size,
		SizeLeft:  q.SizeLeft,
		Progress:  q.Progress(),
		TimeLeft:  q.TimeLeft,
		Client:    q.DownloadClient,
		Protocol:  q.Protocol,
	}
	if q.Series != nil {
		out.Series = q.Series.Title
	}
	if q.Episode != nil {
		out.Season = q.Episode.SeasonNumber
		out.Episode = q.Episode.EpisodeNumber
	}
	if q.Movie != nil {
		out.Movie = q.Movie.Title
	}
	return out
}

type queueResponse struct {
	Items    []queueItem               `json:"items"`
	Failures []reconcile.SourceFailure `json:"failures,omitempty"`
}

type serviceProfiles struct {
	Service  upstream.Service     `json:"service"`
	Profiles []arr.QualityProfile `json:"profiles"`
}

type profilesResponse struct {
	Services []serviceProfiles         `json:"services"`
	Failures []reconcile.SourceFailure `json:"failures,omitempty"`
}

type serviceRootFolders struct {
	Service     upstream.Service `json:"service"`
	RootFolders []arr.RootFolder `json:"rootFolders"`
}

type rootFoldersResponse struct {
	Services []serviceRootFolders      `json:"services"`
	Failures []reconcile.SourceFailure `json:"failures,omitempty"`
}

// historyEntry is one persisted workflow outcome.
type historyEntry struct {
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

type historyResponse struct {
	Items []historyEntry `json:"items"`
	Limit int            `json:"limit"`
}
