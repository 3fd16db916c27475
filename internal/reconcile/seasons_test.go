package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/plexdeck/internal/arr"
	"github.com/vmunix/plexdeck/internal/plex"
)

func TestSeasons_MatchesByNumber(t *testing.T) {
	in := SeasonInput{
		LibrarySeasons: []plex.Metadata{{RatingKey: "s1", Title: "Season 1", Index: 1}},
		LibraryEpisodes: map[string][]plex.Metadata{
			"s1": {
				{RatingKey: "e1", Title: "Pilot", Index: 1},
				{RatingKey: "e2", Title: "Cat's in the Bag...", Index: 2},
			},
		},
		Series: &arr.Series{ID: 5, Seasons: []arr.Season{{SeasonNumber: 1, Monitored: true}, {SeasonNumber: 2}}},
		Episodes: []arr.Episode{
			{ID: 11, SeasonNumber: 1, EpisodeNumber: 1, Title: "Pilot", HasFile: true, Monitored: true},
			{ID: 12, SeasonNumber: 1, EpisodeNumber: 2, Title: "Cat's in the Bag...", HasFile: false, Monitored: true},
			{ID: 13, SeasonNumber: 1, EpisodeNumber: 3, Title: "...And the Bag's in the River"},
			{ID: 21, SeasonNumber: 2, EpisodeNumber: 1, Title: "Seven Thirty-Seven"},
		},
		Queue: []arr.QueueItem{{EpisodeID: 12}},
	}

	seasons := Seasons(in)
	require.Len(t, seasons, 2)

	s1 := seasons[0]
	assert.Equal(t, 1, s1.Number)
	assert.Equal(t, "s1", s1.LibraryID)
	assert.True(t, s1.Monitored)
	require.Len(t, s1.Episodes, 3)
	assert.Equal(t, 3, s1.EpisodeCount)
	assert.Equal(t, 1, s1.FileCount)

	e2 := s1.Episodes[1]
	assert.Equal(t, "e2", e2.LibraryID)
	assert.Equal(t, int64(12), e2.AcquisitionID)
	assert.False(t, e2.HasFile, "sonarr owns HasFile")
	assert.True(t, e2.Downloading)

	e3 := s1.Episodes[2]
	assert.Empty(t, e3.LibraryID)
	assert.Equal(t, int64(13), e3.AcquisitionID)

	s2 := seasons[1]
	assert.Equal(t, "Season 2", s2.Title)
	assert.Empty(t, s2.LibraryID)
	require.Len(t, s2.Episodes, 1)
}

func TestSeasons_FallsBackToTitleThenPosition(t *testing.T) {
	in := SeasonInput{
		LibrarySeasons: []plex.Metadata{{RatingKey: "s1", Title: "Season 1", Index: 1}},
		LibraryEpisodes: map[string][]plex.Metadata{
			"s1": {
				// Absolute numbering on the library side.
				{RatingKey: "e101", Title: "The Rains of Castamere", Index: 101},
				{RatingKey: "e102", Title: "Untitled", Index: 102},
			},
		},
		Episodes: []arr.Episode{
			{ID: 1, SeasonNumber: 1, EpisodeNumber: 8, Title: "Mhysa Part One"},
			{ID: 2, SeasonNumber: 1, EpisodeNumber: 9, Title: "Rains of Castamere"},
		},
	}

	seasons := Seasons(in)
	require.Len(t, seasons, 1)
	eps := seasons[0].Episodes
	require.Len(t, eps, 2)

	assert.Equal(t, 8, eps[0].EpisodeNumber)
	assert.Equal(t, "e102", eps[0].LibraryID, "positional fallback")
	assert.Equal(t, 9, eps[1].EpisodeNumber)
	assert.Equal(t, "e101", eps[1].LibraryID, "title similarity")
}

func TestSeasons_UnnumberedLibrarySeasonFillsGap(t *testing.T) {
	in := SeasonInput{
		LibrarySeasons: []plex.Metadata{
			{RatingKey: "a", Title: "Season 1", Index: 1},
			{RatingKey: "b", Title: "Bonus"},
		},
		Series: &arr.Series{Seasons: []arr.Season{{SeasonNumber: 1}, {SeasonNumber: 2}}},
	}

	seasons := Seasons(in)
	require.Len(t, seasons, 2)
	assert.Equal(t, "b", seasons[1].LibraryID)
	assert.Equal(t, 2, seasons[1].Number)
}

func TestSeasons_LibraryOnly(t *testing.T) {
	in := SeasonInput{
		LibrarySeasons:  []plex.Metadata{{RatingKey: "s0", Title: "Specials", Index: 0}},
		LibraryEpisodes: map[string][]plex.Metadata{"s0": {{RatingKey: "x", Title: "Behind the Scenes", Index: 1}}},
	}

	seasons := Seasons(in)
	require.Len(t, seasons, 1)
	assert.Equal(t, 0, seasons[0].Number)
	require.Len(t, seasons[0].Episodes, 1)
	assert.True(t, seasons[0].Episodes[0].HasFile)
	assert.Zero(t, seasons[0].Episodes[0].AcquisitionID)
}
