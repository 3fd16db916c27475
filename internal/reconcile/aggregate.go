// Package reconcile merges records from the media server, the acquisition
// services and the metadata search into the unified item model.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/plexdeck/internal/arr"
	"github.com/vmunix/plexdeck/internal/match"
	"github.com/vmunix/plexdeck/internal/media"
	"github.com/vmunix/plexdeck/internal/plex"
	"github.com/vmunix/plexdeck/internal/services"
	"github.com/vmunix/plexdeck/internal/tmdb"
	"github.com/vmunix/plexdeck/internal/upstream"
)

// Scope selects which sources a search consults.
type Scope string

const (
	ScopeAll         Scope = "all"
	ScopeLibrary     Scope = "library"
	ScopeAcquisition Scope = "acquisition"
)

// ParseScope maps a query value onto a Scope. Empty means ScopeAll.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(s)) {
	case "", ScopeAll:
		return ScopeAll, nil
	case ScopeLibrary:
		return ScopeLibrary, nil
	case ScopeAcquisition:
		return ScopeAcquisition, nil
	}
	return "", fmt.Errorf("unknown scope %q", s)
}

// LibrarySearcher is the media server search. Library lists the whole
// movie and show library for the existence check.
type LibrarySearcher interface {
	Search(ctx context.Context, query string) ([]plex.Metadata, error)
	Library(ctx context.Context) ([]plex.Metadata, error)
	ImageURL(path string) string
}

// SeriesLookup is the TV acquisition lookup.
type SeriesLookup interface {
	LookupSeries(ctx context.Context, term string) ([]arr.Series, error)
}

// MovieLookup is the movie acquisition lookup.
type MovieLookup interface {
	LookupMovie(ctx context.Context, term string) ([]arr.Movie, error)
}

// MetadataSearcher is the metadata search.
type MetadataSearcher interface {
	SearchMovies(ctx context.Context, q string) ([]tmdb.Movie, error)
	SearchTV(ctx context.Context, q string) ([]tmdb.Show, error)
}

// Sources are the search backends of one request. A nil field is skipped.
type Sources struct {
	Library  LibrarySearcher
	Series   SeriesLookup
	Movies   MovieLookup
	Metadata MetadataSearcher
}

// SourcesFrom adapts a client set. Absent clients stay nil interfaces.
func SourcesFrom(c *services.Clients) Sources {
	var s Sources
	if c.Plex != nil {
		s.Library = c.Plex
	}
	if c.Sonarr != nil {
		s.Series = c.Sonarr
	}
	if c.Radarr != nil {
		s.Movies = c.Radarr
	}
	if c.TMDB != nil {
		s.Metadata = c.TMDB
	}
	return s
}

// SourceFailure reports one source that failed during an aggregate call.
type SourceFailure struct {
	Source  media.Source     `json:"source"`
	Service upstream.Service `json:"service"`
	Message string           `json:"message"`
}

// Result is an aggregate search. It is returned even when every source
// failed.
type Result struct {
	Items    []media.Item    `json:"items"`
	Failures []SourceFailure `json:"failures,omitempty"`
}

// Aggregator runs searches across sources.
type Aggregator struct {
	log *slog.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(log *slog.Logger) *Aggregator {
	if log == nil {
		log = slog.Default()
	}
	return &Aggregator{log: log.With("component", "reconcile")}
}

// sourceOrder fixes the concatenation order before sorting.
var sourceOrder = []media.Source{
	media.SourceMediaServer,
	media.SourceTVAcquisition,
	media.SourceMovieAcquisition,
	media.SourceMetadataSearch,
}

// Search queries every source in scope concurrently. A failing source is
// reported in Failures and never fails the call. Acquisition and metadata
// results already in the library are flagged from the full library list.
func (a *Aggregator) Search(ctx context.Context, src Sources, query string, scope Scope) Result {
	var (
		mu       sync.Mutex
		bySource = make(map[media.Source][]media.Item, len(sourceOrder))
		failures []SourceFailure
		library  []media.Item
	)
	record := func(s media.Source, svc upstream.Service, items []media.Item, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			a.log.Warn("search source failed", "source", s, "error", err)
			failures = append(failures, SourceFailure{Source: s, Service: svc, Message: upstream.Message(err)})
			return
		}
		bySource[s] = items
	}

	// Failures are recorded, never returned, so one source cannot cancel
	// the others.
	var g errgroup.Group

	if src.Library != nil && scope != ScopeAcquisition {
		g.Go(func() error {
			found, err := src.Library.Search(ctx, query)
			items := make([]media.Item, 0, len(found))
			for i := range found {
				items = append(items, FromPlex(&found[i], src.Library))
			}
			record(media.SourceMediaServer, upstream.Plex, items, err)
			return nil
		})
	}

	// The existence check scans the full library so an item whose title
	// does not contain the query still matches by identifier. A failure
	// leaves results unflagged.
	if src.Library != nil && scope != ScopeLibrary {
		g.Go(func() error {
			found, err := src.Library.Library(ctx)
			if err != nil {
				a.log.Debug("library listing for existence check failed", "error", err)
				return nil
			}
			items := make([]media.Item, 0, len(found))
			for i := range found {
				items = append(items, FromPlex(&found[i], src.Library))
			}
			mu.Lock()
			library = items
			mu.Unlock()
			return nil
		})
	}

	if scope != ScopeLibrary {
		if src.Series != nil {
			g.Go(func() error {
				found, err := src.Series.LookupSeries(ctx, query)
				items := make([]media.Item, 0, len(found))
				for i := range found {
					items = append(items, FromSeries(&found[i]))
				}
				record(media.SourceTVAcquisition, upstream.Sonarr, items, err)
				return nil
			})
		}
		if src.Movies != nil {
			g.Go(func() error {
				found, err := src.Movies.LookupMovie(ctx, query)
				items := make([]media.Item, 0, len(found))
				for i := range found {
					items = append(items, FromMovie(&found[i]))
				}
				record(media.SourceMovieAcquisition, upstream.Radarr, items, err)
				return nil
			})
		}
		if src.Metadata != nil {
			g.Go(func() error {
				items, err := a.searchMetadata(ctx, src.Metadata, query)
				record(media.SourceMetadataSearch, upstream.TMDB, items, err)
				return nil
			})
		}
	}
	_ = g.Wait()

	var items []media.Item
	for _, s := range sourceOrder {
		items = append(items, bySource[s]...)
	}
	SortResults(items, query)
	MarkInLibrary(items, append(library, bySource[media.SourceMediaServer]...))

	slices.SortStableFunc(failures, func(x, y SourceFailure) int {
		return slices.Index(sourceOrder, x.Source) - slices.Index(sourceOrder, y.Source)
	})
	if items == nil {
		items = []media.Item{}
	}
	return Result{Items: items, Failures: failures}
}

func (a *Aggregator) searchMetadata(ctx context.Context, m MetadataSearcher, query string) ([]media.Item, error) {
	movies, err := m.SearchMovies(ctx, query)
	if err != nil {
		return nil, err
	}
	shows, err := m.SearchTV(ctx, query)
	if err != nil {
		return nil, err
	}
	items := make([]media.Item, 0, len(movies)+len(shows))
	for i := range movies {
		items = append(items, FromTMDBMovie(&movies[i]))
	}
	for i := range shows {
		items = append(items, FromTMDBShow(&shows[i]))
	}
	return items, nil
}

// SortResults orders items in place: exact case-insensitive title matches
// of query first, then by popularity descending. Equal items keep their
// input order.
func SortResults(items []media.Item, query string) {
	slices.SortStableFunc(items, func(x, y media.Item) int {
		xe, ye := match.TitleEqual(x.Title, query), match.TitleEqual(y.Title, query)
		switch {
		case xe && !ye:
			return -1
		case ye && !xe:
			return 1
		case x.Popularity > y.Popularity:
			return -1
		case x.Popularity < y.Popularity:
			return 1
		}
		return 0
	})
}
