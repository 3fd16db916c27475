package v1

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vmunix/plexdeck/internal/config"
	"github.com/vmunix/plexdeck/internal/events"
	"github.com/vmunix/plexdeck/internal/reconcile"
	"github.com/vmunix/plexdeck/internal/services"
	"github.com/vmunix/plexdeck/internal/workflow"
)

//go:generate mockgen -destination=mocks/mock_deps.go -package=mocks . Searcher,Orchestrator,History

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// ConfigStore reads and persists the configuration.
type ConfigStore interface {
	Current() (*config.Config, int64)
	Save(ctx context.Context, cfg *config.Config) (int64, error)
}

// ClientSource hands out the client set for the current config revision.
// Refresh rebuilds the set when the config has moved past it.
type ClientSource interface {
	Current() *services.Clients
	Refresh() bool
}

// Searcher runs an aggregate search across sources.
type Searcher interface {
	Search(ctx context.Context, src reconcile.Sources, query string, scope reconcile.Scope) reconcile.Result
}

// Orchestrator runs the download workflows.
type Orchestrator interface {
	DownloadEpisode(ctx context.Context, svc workflow.SeriesService, episodeID int64) *workflow.Outcome
	DownloadSeason(ctx context.Context, svc workflow.SeriesService, seriesID int64, season int) *workflow.Outcome
	DownloadMovie(ctx context.Context, svc workflow.MovieService, movieID int64) *workflow.Outcome
}

// History lists persisted events.
type History interface {
	List(ctx context.Context, f events.Filter) ([]events.RawEvent, error)
}

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Config    ConfigStore
	Clients   ClientSource
	Search    Searcher
	Workflows Orchestrator

	// Optional dependencies
	History       History               // nil disables /history
	ClientOptions services.BuildOptions // used when testing unsaved settings
	Version       string
	Logger        *slog.Logger
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Config == nil {
		return fmt.Errorf("%w: config store", ErrMissingDependency)
	}
	if d.Clients == nil {
		return fmt.Errorf("%w: client registry", ErrMissingDependency)
	}
	if d.Search == nil {
		return fmt.Errorf("%w: searcher", ErrMissingDependency)
	}
	if d.Workflows == nil {
		return fmt.Errorf("%w: workflow orchestrator", ErrMissingDependency)
	}
	return nil
}
