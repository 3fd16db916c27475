package reconcile

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/vmunix/plexdeck/internal/arr"
	"github.com/vmunix/plexdeck/internal/match"
	"github.com/vmunix/plexdeck/internal/media"
	"github.com/vmunix/plexdeck/internal/plex"
)

// SeasonInput is everything known about one show. Any part may be empty:
// a show only in the library has no Series, a show only in Sonarr has no
// library seasons.
type SeasonInput struct {
	LibrarySeasons  []plex.Metadata
	LibraryEpisodes map[string][]plex.Metadata // by season rating key
	Series          *arr.Series
	Episodes        []arr.Episode
	Queue           []arr.QueueItem
}

// Seasons reconciles library seasons and episodes with Sonarr's. Sonarr
// owns HasFile and Monitored when it knows an episode.
func Seasons(in SeasonInput) []media.Season {
	seasons := make(map[int]*media.Season)
	get := func(n int) *media.Season {
		s, ok := seasons[n]
		if !ok {
			s = &media.Season{Number: n}
			seasons[n] = s
		}
		return s
	}

	if in.Series != nil {
		for _, s := range in.Series.Seasons {
			get(s.SeasonNumber).Monitored = s.Monitored
		}
	}
	acqEpisodes := make(map[int][]arr.Episode)
	for _, ep := range in.Episodes {
		get(ep.SeasonNumber)
		acqEpisodes[ep.SeasonNumber] = append(acqEpisodes[ep.SeasonNumber], ep)
	}

	// Library seasons by number; unnumbered ones fill the lowest Sonarr
	// seasons no numbered library season claimed.
	libSeason := make(map[int]plex.Metadata)
	var unnumbered []plex.Metadata
	for _, m := range in.LibrarySeasons {
		if m.Index > 0 || m.Title == "Specials" {
			libSeason[m.Index] = m
		} else {
			unnumbered = append(unnumbered, m)
		}
	}
	if len(unnumbered) > 0 {
		var free []int
		for n := range seasons {
			if _, claimed := libSeason[n]; !claimed && n > 0 {
				free = append(free, n)
			}
		}
		slices.Sort(free)
		next := maxKey(seasons, libSeason) + 1
		for _, m := range unnumbered {
			n := next
			if len(free) > 0 {
				n, free = free[0], free[1:]
			} else {
				next++
			}
			libSeason[n] = m
		}
	}
	for n, m := range libSeason {
		s := get(n)
		s.LibraryID = m.RatingKey
		s.Title = m.Title
	}

	downloading := make(map[int64]bool, len(in.Queue))
	for _, q := range in.Queue {
		if q.EpisodeID != 0 {
			downloading[q.EpisodeID] = true
		}
	}

	out := make([]media.Season, 0, len(seasons))
	for n, s := range seasons {
		var lib []plex.Metadata
		if m, ok := libSeason[n]; ok {
			lib = in.LibraryEpisodes[m.RatingKey]
		}
		s.Episodes = reconcileEpisodes(n, lib, acqEpisodes[n], downloading)
		s.EpisodeCount = len(s.Episodes)
		for _, ep := range s.Episodes {
			if ep.HasFile {
				s.FileCount++
			}
		}
		if s.Title == "" {
			s.Title = seasonTitle(n)
		}
		out = append(out, *s)
	}
	slices.SortFunc(out, func(a, b media.Season) int { return cmp.Compare(a.Number, b.Number) })
	return out
}

// reconcileEpisodes pairs library and Sonarr episodes of one season by
// number, then by title similarity, then by position.
func reconcileEpisodes(season int, lib []plex.Metadata, acq []arr.Episode, downloading map[int64]bool) []media.Episode {
	slices.SortStableFunc(acq, func(a, b arr.Episode) int { return cmp.Compare(a.EpisodeNumber, b.EpisodeNumber) })

	pairs := make(map[int]int) // lib index -> acq index
	acqUsed := make([]bool, len(acq))
	libUsed := make([]bool, len(lib))

	for i, m := range lib {
		if m.Index <= 0 {
			continue
		}
		for j, ep := range acq {
			if !acqUsed[j] && ep.EpisodeNumber == m.Index {
				pairs[i], libUsed[i], acqUsed[j] = j, true, true
				break
			}
		}
	}

	for i, m := range lib {
		if libUsed[i] {
			continue
		}
		var idx []int
		var titles []string
		for j, ep := range acq {
			if !acqUsed[j] {
				idx = append(idx, j)
				titles = append(titles, ep.Title)
			}
		}
		if r := match.Best(m.Title, titles); r.Index >= 0 && r.Score >= match.EpisodeThreshold {
			j := idx[r.Index]
			pairs[i], libUsed[i], acqUsed[j] = j, true, true
		}
	}

	j := 0
	for i := range lib {
		if libUsed[i] {
			continue
		}
		for j < len(acq) && acqUsed[j] {
			j++
		}
		if j == len(acq) {
			break
		}
		pairs[i], libUsed[i], acqUsed[j] = j, true, true
	}

	out := make([]media.Episode, 0, max(len(lib), len(acq)))
	for i, m := range lib {
		ep := media.Episode{
			SeasonNumber:  season,
			EpisodeNumber: m.Index,
			Title:         m.Title,
			AirDate:       m.OriginallyAvailableAt,
			LibraryID:     m.RatingKey,
			HasFile:       true,
		}
		if j, ok := pairs[i]; ok {
			applyAcquisition(&ep, acq[j], downloading)
		}
		out = append(out, ep)
	}
	for j, a := range acq {
		if acqUsed[j] {
			continue
		}
		ep := media.Episode{SeasonNumber: season}
		applyAcquisition(&ep, a, downloading)
		out = append(out, ep)
	}
	slices.SortStableFunc(out, func(a, b media.Episode) int { return cmp.Compare(a.EpisodeNumber, b.EpisodeNumber) })
	return out
}

func applyAcquisition(ep *media.Episode, a arr.Episode, downloading map[int64]bool) {
	ep.EpisodeNumber = a.EpisodeNumber
	ep.AcquisitionID = a.ID
	ep.HasFile = a.HasFile
	ep.Monitored = a.Monitored
	ep.Downloading = downloading[a.ID]
	if ep.Title == "" {
		ep.Title = a.Title
	}
	if ep.AirDate == "" {
		ep.AirDate = a.AirDate
	}
}

func maxKey(a map[int]*media.Season, b map[int]plex.Metadata) int {
	m := 0
	for n := range a {
		m = max(m, n)
	}
	for n := range b {
		m = max(m, n)
	}
	return m
}

func seasonTitle(n int) string {
	if n == 0 {
		return "Specials"
	}
	return "Season " + strconv.Itoa(n)
}
