// Package tmdb provides a client for The Movie Database API.
package tmdb

import "strconv"

const imageBaseURL = "https://image.tmdb.org/t/p/"

// Movie represents TMDB movie metadata. Search results fill a subset.
type Movie struct {
	ID            int64   `json:"id"`
	IMDBID        string  `json:"imdb_id,omitempty"` // e.g., "tt0133093"
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title,omitempty"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"` // "2024-03-01"
	PosterPath    string  `json:"poster_path"`  // "/abc123.jpg"
	BackdropPath  string  `json:"backdrop_path"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
	Popularity    float64 `json:"popularity"`
	Runtime       int     `json:"runtime,omitempty"` // minutes
	Genres        []Genre `json:"genres,omitempty"`
	GenreIDs      []int   `json:"genre_ids,omitempty"`
}

// Show represents TMDB TV metadata. Search results fill a subset.
type Show struct {
	ID               int64        `json:"id"`
	Name             string       `json:"name"`
	OriginalName     string       `json:"original_name,omitempty"`
	Overview         string       `json:"overview"`
	FirstAirDate     string       `json:"first_air_date"`
	PosterPath       string       `json:"poster_path"`
	BackdropPath     string       `json:"backdrop_path"`
	VoteAverage      float64      `json:"vote_average"`
	VoteCount        int          `json:"vote_count"`
	Popularity       float64      `json:"popularity"`
	NumberOfSeasons  int          `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int          `json:"number_of_episodes,omitempty"`
	Genres           []Genre      `json:"genres,omitempty"`
	GenreIDs         []int        `json:"genre_ids,omitempty"`
	ExternalIDs      *ExternalIDs `json:"external_ids,omitempty"`
}

// ExternalIDs is appended to show details.
type ExternalIDs struct {
	IMDBID string `json:"imdb_id"`
	TVDBID int64  `json:"tvdb_id"`
}

// Genre represents a movie or show genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type page[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalResults int `json:"total_results"`
}

// Year extracts the year from ReleaseDate.
func (m *Movie) Year() int {
	return yearOf(m.ReleaseDate)
}

// PosterURL returns the full poster image URL.
// Size can be: w92, w154, w185, w342, w500, w780, original
func (m *Movie) PosterURL(size string) string {
	return ImageURL(size, m.PosterPath)
}

// Year extracts the year from FirstAirDate.
func (s *Show) Year() int {
	return yearOf(s.FirstAirDate)
}

func (s *Show) PosterURL(size string) string {
	return ImageURL(size, s.PosterPath)
}

// ImageURL builds an image CDN URL. An empty path yields "".
func ImageURL(size, path string) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + size + path
}

// GenreNames returns the names of genres, falling back to the ids search
// results carry.
func GenreNames(genres []Genre, ids []int) []string {
	if len(genres) > 0 {
		names := make([]string, 0, len(genres))
		for _, g := range genres {
			names = append(names, g.Name)
		}
		return names
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := genreNames[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

var genreNames = map[int]string{
	12: "Adventure", 14: "Fantasy", 16: "Animation", 18: "Drama", 27: "Horror",
	28: "Action", 35: "Comedy", 36: "History", 37: "Western", 53: "Thriller",
	80: "Crime", 99: "Documentary", 878: "Science Fiction", 9648: "Mystery",
	10402: "Music", 10749: "Romance", 10751: "Family", 10752: "War",
	10759: "Action & Adventure", 10762: "Kids", 10765: "Sci-Fi & Fantasy",
	10768: "War & Politics", 10770: "TV Movie",
}

func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
