package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/plexdeck/internal/upstream"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	client, err := NewClient("test-key", append([]Option{WithBaseURL(server.URL)}, opts...)...)
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient("")
	assert.ErrorIs(t, err, upstream.ErrConfigIncomplete)
}

func TestClient_GetMovie(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/movie/550", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))

		resp := Movie{
			ID:          550,
			Title:       "Fight Club",
			Overview:    "A ticking-time-bomb insomniac...",
			ReleaseDate: "1999-10-15",
			PosterPath:  "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg",
			VoteAverage: 8.4,
			Runtime:     139,
			Genres:      []Genre{{ID: 18, Name: "Drama"}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})

	movie, err := client.GetMovie(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, int64(550), movie.ID)
	assert.Equal(t, "Fight Club", movie.Title)
	assert.Equal(t, 1999, movie.Year())
	assert.Equal(t, 139, movie.Runtime)
	assert.Equal(t, "https://image.tmdb.org/t/p/w342/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg", movie.PosterURL("w342"))
}

func TestClient_GetMovie_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
	})

	movie, err := client.GetMovie(context.Background(), 99999999)
	assert.Nil(t, movie)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_GetMovie_Unauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.GetMovie(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, "HTTP 401", upstream.Message(err))
	assert.NotContains(t, err.Error(), "test-key")
}

func TestClient_GetMovie_Cached(t *testing.T) {
	callCount := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		callCount++
		_ = json.NewEncoder(w).Encode(Movie{ID: 550, Title: "Fight Club"})
	}, WithCacheTTL(time.Hour))

	// First call hits API
	_, err := client.GetMovie(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, 1, callCount)

	// Second call uses cache
	_, err = client.GetMovie(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, 1, callCount, "should use cache, not call API again")
}

func TestClient_SearchMovies(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/movie", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "the matrix", q.Get("query"))
		assert.Equal(t, "false", q.Get("include_adult"))
		assert.Equal(t, "1", q.Get("page"))
		_, _ = w.Write([]byte(`{"page":1,"total_results":2,"results":[
			{"id":603,"title":"The Matrix","release_date":"1999-03-30","vote_count":24000,"genre_ids":[28,878]},
			{"id":604,"title":"The Matrix Reloaded","release_date":"2003-05-15","vote_count":10000}]}`))
	})

	movies, err := client.SearchMovies(context.Background(), "the matrix")
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, 24000, movies[0].VoteCount)
	assert.Equal(t, []string{"Action", "Science Fiction"}, GenreNames(movies[0].Genres, movies[0].GenreIDs))
}

func TestClient_SearchTV(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/tv", r.URL.Path)
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":1396,"name":"Breaking Bad","first_air_date":"2008-01-20","vote_count":13000}]}`))
	})

	shows, err := client.SearchTV(context.Background(), "breaking bad")
	require.NoError(t, err)
	require.Len(t, shows, 1)
	assert.Equal(t, 2008, shows[0].Year())
}

func TestClient_GetShow(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/tv/1396", r.URL.Path)
		assert.Equal(t, "external_ids", r.URL.Query().Get("append_to_response"))
		_, _ = w.Write([]byte(`{"id":1396,"name":"Breaking Bad","number_of_seasons":5,
			"external_ids":{"imdb_id":"tt0903747","tvdb_id":81189}}`))
	})

	show, err := client.GetShow(context.Background(), 1396)
	require.NoError(t, err)
	require.NotNil(t, show.ExternalIDs)
	assert.Equal(t, int64(81189), show.ExternalIDs.TVDBID)
	assert.Equal(t, 5, show.NumberOfSeasons)
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "", ImageURL("w500", ""))
	assert.Equal(t, "https://image.tmdb.org/t/p/original/x.jpg", ImageURL("original", "/x.jpg"))
}
