package reconcile

import (
	"strconv"

	"github.com/vmunix/plexdeck/internal/arr"
	"github.com/vmunix/plexdeck/internal/media"
	"github.com/vmunix/plexdeck/internal/plex"
	"github.com/vmunix/plexdeck/internal/tmdb"
)

// ImageResolver turns a Plex thumb or art path into a fetchable URL.
type ImageResolver interface {
	ImageURL(path string) string
}

// FromPlex maps library metadata. images may be nil, in which case the raw
// paths are kept.
func FromPlex(m *plex.Metadata, images ImageResolver) media.Item {
	poster, backdrop := m.Thumb, m.Art
	if images != nil {
		poster, backdrop = images.ImageURL(poster), images.ImageURL(backdrop)
	}
	rating := m.AudienceRating
	if rating == 0 {
		rating = m.Rating
	}
	return media.Item{
		ID:          m.RatingKey,
		Title:       m.Title,
		Year:        m.Year,
		Kind:        media.KindFromPlex(m.Type),
		Origins:     []media.Source{media.SourceMediaServer},
		ExternalIDs: media.ParseExternalIDs(m.GUIDStrings()),
		Popularity:  float64(m.ViewCount),
		InLibrary:   true,
		LibraryID:   m.RatingKey,
		Overview:    m.Summary,
		Poster:      poster,
		Backdrop:    backdrop,
		Rating:      rating,
		Genres:      m.GenreNames(),
		HasFile:     m.FirstPart() != nil,
	}
}

// FromSeries maps a Sonarr series. A lookup result has ID 0.
func FromSeries(s *arr.Series) media.Item {
	it := media.Item{
		Title:   s.Title,
		Year:    s.Year,
		Kind:    media.KindShow,
		Origins: []media.Source{media.SourceTVAcquisition},
		ExternalIDs: media.ExternalIDs{
			TMDB: s.TMDBID,
			TVDB: s.TVDBID,
			IMDB: s.IMDBID,
		},
		Popularity: float64(s.Ratings.Votes),
		Overview:   s.Overview,
		Poster:     s.Poster(),
		Rating:     s.Ratings.Value,
		Genres:     s.Genres,
		Monitored:  s.Monitored,
	}
	if s.ID != 0 {
		it.ID = strconv.FormatInt(s.ID, 10)
	}
	for _, season := range s.Seasons {
		if season.Statistics != nil && season.Statistics.EpisodeFileCount > 0 {
			it.HasFile = true
			break
		}
	}
	return it
}

// FromMovie maps a Radarr movie. A lookup result has ID 0.
func FromMovie(m *arr.Movie) media.Item {
	it := media.Item{
		Title:   m.Title,
		Year:    m.Year,
		Kind:    media.KindMovie,
		Origins: []media.Source{media.SourceMovieAcquisition},
		ExternalIDs: media.ExternalIDs{
			TMDB: m.TMDBID,
			IMDB: m.IMDBID,
		},
		Popularity: float64(m.Ratings.Votes),
		Overview:   m.Overview,
		Poster:     m.Poster(),
		Rating:     m.Ratings.Value,
		Genres:     m.Genres,
		HasFile:    m.HasFile,
		Monitored:  m.Monitored,
	}
	if m.ID != 0 {
		it.ID = strconv.FormatInt(m.ID, 10)
	}
	return it
}

// FromTMDBMovie maps a TMDB movie search result.
func FromTMDBMovie(m *tmdb.Movie) media.Item {
	return media.Item{
		ID:          strconv.FormatInt(m.ID, 10),
		Title:       m.Title,
		Year:        m.Year(),
		Kind:        media.KindMovie,
		Origins:     []media.Source{media.SourceMetadataSearch},
		ExternalIDs: media.ExternalIDs{TMDB: m.ID, IMDB: m.IMDBID},
		Popularity:  float64(m.VoteCount),
		Overview:    m.Overview,
		Poster:      m.PosterURL("w342"),
		Backdrop:    tmdb.ImageURL("w780", m.BackdropPath),
		Rating:      m.VoteAverage,
		Genres:      tmdb.GenreNames(m.Genres, m.GenreIDs),
	}
}

// FromTMDBShow maps a TMDB TV search result. TMDB show ids are not TVDB
// ids; only the appended external ids carry one.
func FromTMDBShow(s *tmdb.Show) media.Item {
	ids := media.ExternalIDs{TMDB: s.ID}
	if s.ExternalIDs != nil {
		ids.TVDB = s.ExternalIDs.TVDBID
		ids.IMDB = s.ExternalIDs.IMDBID
	}
	return media.Item{
		ID:          strconv.FormatInt(s.ID, 10),
		Title:       s.Name,
		Year:        s.Year(),
		Kind:        media.KindShow,
		Origins:     []media.Source{media.SourceMetadataSearch},
		ExternalIDs: ids,
		Popularity:  float64(s.VoteCount),
		Overview:    s.Overview,
		Poster:      s.PosterURL("w342"),
		Backdrop:    tmdb.ImageURL("w780", s.BackdropPath),
		Rating:      s.VoteAverage,
		Genres:      tmdb.GenreNames(s.Genres, s.GenreIDs),
	}
}
