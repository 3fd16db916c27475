// Package workflow sequences the multi-step download requests against the
// acquisition services: mark monitored, then trigger a search.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/vmunix/plexdeck/internal/arr"
	"github.com/vmunix/plexdeck/internal/events"
	"github.com/vmunix/plexdeck/internal/upstream"
)

//go:generate mockgen -destination=mocks/mock_services.go -package=mocks . SeriesService,MovieService

// SeriesService is the part of the Sonarr client the workflows drive.
type SeriesService interface {
	Series(ctx context.Context, id int64) (*arr.Series, error)
	UpdateSeries(ctx context.Context, s *arr.Series) error
	Episodes(ctx context.Context, seriesID int64) ([]arr.Episode, error)
	Episode(ctx context.Context, id int64) (*arr.Episode, error)
	UpdateEpisode(ctx context.Context, e *arr.Episode) error
	SearchEpisodes(ctx context.Context, ids []int64) (*arr.Command, error)
}

// MovieService is the part of the Radarr client the workflows drive.
type MovieService interface {
	Movie(ctx context.Context, id int64) (*arr.Movie, error)
	UpdateMovie(ctx context.Context, m *arr.Movie) error
	SearchMovies(ctx context.Context, ids []int64) (*arr.Command, error)
}

// Publisher receives workflow outcomes.
type Publisher interface {
	Publish(ctx context.Context, e events.Event) error
}

// Orchestrator runs download workflows. Writes to one series or movie are
// serialized so concurrent requests cannot interleave read-modify-writes.
type Orchestrator struct {
	bus   Publisher
	log   *slog.Logger
	locks *keyLock
}

// New creates an Orchestrator. bus may be nil.
func New(bus Publisher, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		bus:   bus,
		log:   log.With("component", "workflow"),
		locks: newKeyLock(),
	}
}

func seriesKey(id int64) string { return "series:" + strconv.FormatInt(id, 10) }
func movieKey(id int64) string  { return "movie:" + strconv.FormatInt(id, 10) }

// DownloadEpisode marks one episode monitored and searches for it. The
// episode is read once to find its series, then again under that series'
// lock. The search is only sent once the monitor update succeeded.
func (o *Orchestrator) DownloadEpisode(ctx context.Context, svc SeriesService, episodeID int64) *Outcome {
	out := newOutcome(KindEpisode, upstream.Sonarr, Target{ID: episodeID})

	ep, err := svc.Episode(ctx, episodeID)
	if err != nil {
		return o.finish(ctx, out.failWith(fmt.Errorf("get episode: %w", err)))
	}
	if ep == nil {
		return o.finish(ctx, out.failWith(fmt.Errorf("episode %d: %w", episodeID, ErrNotFound)))
	}

	unlock := o.locks.lock(seriesKey(ep.SeriesID))
	defer unlock()

	// Re-read under the series lock so the PUT cannot carry a copy that a
	// season workflow replaced while this request waited.
	ep, err = svc.Episode(ctx, episodeID)
	if err != nil {
		return o.finish(ctx, out.failWith(fmt.Errorf("get episode: %w", err)))
	}
	if ep == nil {
		return o.finish(ctx, out.failWith(fmt.Errorf("episode %d: %w", episodeID, ErrNotFound)))
	}

	out.Units = append(out.Units, o.episode(ctx, svc, ep))
	return o.finish(ctx, out.settle())
}

// DownloadSeason monitors a season and every episode of it without a file,
// then searches for each of those episodes. A season whose episodes all
// have files is left untouched.
func (o *Orchestrator) DownloadSeason(ctx context.Context, svc SeriesService, seriesID int64, season int) *Outcome {
	out := newOutcome(KindSeason, upstream.Sonarr, Target{SeriesID: seriesID, Season: &season})

	unlock := o.locks.lock(seriesKey(seriesID))
	defer unlock()

	episodes, err := svc.Episodes(ctx, seriesID)
	if err != nil {
		return o.finish(ctx, out.failWith(fmt.Errorf("list episodes: %w", err)))
	}
	var missing []arr.Episode
	for _, ep := range episodes {
		if ep.SeasonNumber == season && !ep.HasFile {
			missing = append(missing, ep)
		}
	}
	if len(missing) == 0 {
		out.Reason = "every episode already has a file"
		return o.finish(ctx, out.settle())
	}

	series, err := svc.Series(ctx, seriesID)
	if err != nil {
		return o.finish(ctx, out.failWith(fmt.Errorf("get series: %w", err)))
	}
	if series == nil {
		return o.finish(ctx, out.failWith(fmt.Errorf("series %d: %w", seriesID, ErrNotFound)))
	}
	s := series.Season(season)
	if s == nil {
		return o.finish(ctx, out.failWith(fmt.Errorf("season %d: %w", season, ErrUnknownSeason)))
	}
	s.Monitored = true
	if err := svc.UpdateSeries(ctx, series); err != nil {
		return o.finish(ctx, out.failWith(fmt.Errorf("monitor season: %w", err)))
	}

	for i := range missing {
		if err := ctx.Err(); err != nil {
			u := newUnit(missing[i].ID)
			u.fail(err)
			out.Units = append(out.Units, u.result())
			continue
		}
		out.Units = append(out.Units, o.episode(ctx, svc, &missing[i]))
	}
	return o.finish(ctx, out.settle())
}

// episode runs monitor then search for one episode already fetched in
// full. The full object is sent back so unknown fields survive.
func (o *Orchestrator) episode(ctx context.Context, svc SeriesService, ep *arr.Episode) UnitResult {
	u := newUnit(ep.ID)

	ep.Monitored = true
	if err := svc.UpdateEpisode(ctx, ep); err != nil {
		u.fail(fmt.Errorf("monitor: %w", err))
		return u.result()
	}
	u.advance(StateMonitoringRequested)

	if _, err := svc.SearchEpisodes(ctx, []int64{ep.ID}); err != nil {
		u.fail(fmt.Errorf("search: %w", err))
		return u.result()
	}
	u.advance(StateSearchTriggered)
	return u.result()
}

// DownloadMovie marks a movie monitored and searches for it.
func (o *Orchestrator) DownloadMovie(ctx context.Context, svc MovieService, movieID int64) *Outcome {
	out := newOutcome(KindMovie, upstream.Radarr, Target{ID: movieID})

	unlock := o.locks.lock(movieKey(movieID))
	defer unlock()

	m, err := svc.Movie(ctx, movieID)
	if err != nil {
		return o.finish(ctx, out.failWith(fmt.Errorf("get movie: %w", err)))
	}
	if m == nil {
		return o.finish(ctx, out.failWith(fmt.Errorf("movie %d: %w", movieID, ErrNotFound)))
	}

	u := newUnit(movieID)
	m.Monitored = true
	if err := svc.UpdateMovie(ctx, m); err != nil {
		u.fail(fmt.Errorf("monitor: %w", err))
	} else {
		u.advance(StateMonitoringRequested)
		if _, err := svc.SearchMovies(ctx, []int64{movieID}); err != nil {
			u.fail(fmt.Errorf("search: %w", err))
		} else {
			u.advance(StateSearchTriggered)
		}
	}
	out.Units = append(out.Units, u.result())
	return o.finish(ctx, out.settle())
}

// finish logs and publishes the outcome. Publishing uses a context
// detached from the request so a disconnect does not lose history.
func (o *Orchestrator) finish(ctx context.Context, out *Outcome) *Outcome {
	o.log.Info("workflow finished",
		"outcome_id", out.ID,
		"kind", out.Kind,
		"status", out.Status,
		"units", len(out.Units),
		"reason", out.Reason)

	if o.bus != nil {
		if err := o.bus.Publish(context.WithoutCancel(ctx), out.Event()); err != nil {
			o.log.Error("failed to publish outcome", "outcome_id", out.ID, "error", err)
		}
	}
	return out
}
