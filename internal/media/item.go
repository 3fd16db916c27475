// Package media defines the unified item model the dashboard renders,
// independent of which service a record came from.
package media

import "slices"

// Source is a service an item was seen in.
type Source string

const (
	SourceMediaServer      Source = "media-server"
	SourceTVAcquisition    Source = "tv-acquisition"
	SourceMovieAcquisition Source = "movie-acquisition"
	SourceMetadataSearch   Source = "metadata-search"
)

// Kind is the type of an item.
type Kind string

const (
	KindMovie   Kind = "movie"
	KindShow    Kind = "show"
	KindSeason  Kind = "season"
	KindEpisode Kind = "episode"
)

// KindFromPlex maps a Plex metadata type onto a Kind.
func KindFromPlex(t string) Kind {
	switch t {
	case "movie":
		return KindMovie
	case "show":
		return KindShow
	case "season":
		return KindSeason
	case "episode":
		return KindEpisode
	default:
		return Kind(t)
	}
}

// Acquirer returns the acquisition source responsible for items of kind k,
// or "" when none is.
func (k Kind) Acquirer() Source {
	switch k {
	case KindMovie:
		return SourceMovieAcquisition
	case KindShow, KindSeason, KindEpisode:
		return SourceTVAcquisition
	default:
		return ""
	}
}

// Item is one title as seen by one or more services. It is rebuilt on every
// request and never stored.
type Item struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Year        int         `json:"year,omitempty"`
	Kind        Kind        `json:"kind"`
	Origins     []Source    `json:"origins"`
	ExternalIDs ExternalIDs `json:"externalIds"`
	Popularity  float64     `json:"popularity"`
	InLibrary   bool        `json:"inLibrary"`
	LibraryID   string      `json:"libraryId,omitempty"`
	Overview    string      `json:"overview,omitempty"`
	Poster      string      `json:"poster,omitempty"`
	Backdrop    string      `json:"backdrop,omitempty"`
	Rating      float64     `json:"rating,omitempty"`
	Genres      []string    `json:"genres,omitempty"`
	HasFile     bool        `json:"hasFile"`
	Monitored   bool        `json:"monitored"`
	Downloading bool        `json:"downloading"`
}

// HasOrigin reports whether the item was seen in s.
func (it *Item) HasOrigin(s Source) bool {
	return slices.Contains(it.Origins, s)
}

// AddOrigin records s, keeping Origins a set.
func (it *Item) AddOrigin(s Source) {
	if !it.HasOrigin(s) {
		it.Origins = append(it.Origins, s)
	}
}

// CanMonitor reports whether the item came from the acquisition service
// that handles its kind. Only such items may be monitored or downloaded.
func (it *Item) CanMonitor() bool {
	acq := it.Kind.Acquirer()
	return acq != "" && it.HasOrigin(acq)
}

// Season is a reconciled season of a show.
type Season struct {
	Number       int       `json:"number"`
	Title        string    `json:"title,omitempty"`
	LibraryID    string    `json:"libraryId,omitempty"`
	Monitored    bool      `json:"monitored"`
	EpisodeCount int       `json:"episodeCount"`
	FileCount    int       `json:"fileCount"`
	Episodes     []Episode `json:"episodes"`
}

// Episode is identified by (SeasonNumber, EpisodeNumber). LibraryID is the
// Plex rating key and AcquisitionID the Sonarr episode id; either may be
// empty.
type Episode struct {
	SeasonNumber  int    `json:"seasonNumber"`
	EpisodeNumber int    `json:"episodeNumber"`
	Title         string `json:"title"`
	AirDate       string `json:"airDate,omitempty"`
	LibraryID     string `json:"libraryId,omitempty"`
	AcquisitionID int64  `json:"acquisitionId,omitempty"`
	HasFile       bool   `json:"hasFile"`
	Monitored     bool   `json:"monitored"`
	Downloading   bool   `json:"downloading"`
}
