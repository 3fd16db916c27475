package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseExternalIDs(t *testing.T) {
	tests := []struct {
		name  string
		guids []string
		want  ExternalIDs
	}{
		{"modern", []string{"plex://movie/5d776", "tmdb://603", "imdb://tt0133093"}, ExternalIDs{TMDB: 603, IMDB: "tt0133093"}},
		{"tvdb", []string{"tvdb://81189"}, ExternalIDs{TVDB: 81189}},
		{"legacy movie agent", []string{"com.plexapp.agents.themoviedb://603?lang=en"}, ExternalIDs{TMDB: 603}},
		{"legacy tv agent", []string{"com.plexapp.agents.thetvdb://81189/1/2?lang=en"}, ExternalIDs{TVDB: 81189}},
		{"legacy imdb agent", []string{"com.plexapp.agents.imdb://tt0133093?lang=en"}, ExternalIDs{IMDB: "tt0133093"}},
		{"first wins", []string{"tmdb://1", "tmdb://2"}, ExternalIDs{TMDB: 1}},
		{"garbage", []string{"local://12", "tmdb://abc", "nonsense", "imdb://12"}, ExternalIDs{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseExternalIDs(tt.guids))
		})
	}
}

func TestExternalIDs_Merge(t *testing.T) {
	a := ExternalIDs{TMDB: 603}
	got := a.Merge(ExternalIDs{TMDB: 1, IMDB: "tt0133093"})
	assert.Equal(t, ExternalIDs{TMDB: 603, IMDB: "tt0133093"}, got)
	assert.True(t, ExternalIDs{}.Empty())
	assert.False(t, got.Empty())
}

func TestItem_CanMonitor(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		origins []Source
		want    bool
	}{
		{"movie in radarr", KindMovie, []Source{SourceMovieAcquisition}, true},
		{"movie in plex only", KindMovie, []Source{SourceMediaServer}, false},
		{"movie in sonarr", KindMovie, []Source{SourceTVAcquisition}, false},
		{"show in sonarr", KindShow, []Source{SourceMediaServer, SourceTVAcquisition}, true},
		{"tmdb result", KindShow, []Source{SourceMetadataSearch}, false},
		{"unknown kind", Kind("artist"), []Source{SourceTVAcquisition}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := Item{Kind: tt.kind, Origins: tt.origins}
			assert.Equal(t, tt.want, it.CanMonitor())
		})
	}
}

func TestItem_AddOrigin(t *testing.T) {
	var it Item
	it.AddOrigin(SourceMediaServer)
	it.AddOrigin(SourceMediaServer)
	it.AddOrigin(SourceTVAcquisition)
	assert.Equal(t, []Source{SourceMediaServer, SourceTVAcquisition}, it.Origins)
}

func TestKindFromPlex(t *testing.T) {
	assert.Equal(t, KindMovie, KindFromPlex("movie"))
	assert.Equal(t, KindEpisode, KindFromPlex("episode"))
	assert.Equal(t, Kind("artist"), KindFromPlex("artist"))
}
