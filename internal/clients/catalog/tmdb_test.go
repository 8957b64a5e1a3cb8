package catalog

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const movieFixture = `{
	"id": 603,
	"title": "The Matrix",
	"overview": "A computer hacker learns the truth.",
	"release_date": "1999-03-30",
	"runtime": 136,
	"vote_average": 8.2,
	"genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}],
	"poster_path": "/poster.jpg",
	"backdrop_path": "/backdrop.jpg",
	"production_companies": [{"name": "Village Roadshow Pictures"}, {"name": "Warner Bros."}],
	"production_countries": [{"name": "United States of America"}],
	"original_language": "en",
	"credits": {
		"cast": [
			{"name": "Keanu Reeves", "character": "Neo", "profile_path": "/keanu.jpg"},
			{"name": "Carrie-Anne Moss", "character": "Trinity", "profile_path": ""}
		],
		"crew": [
			{"name": "Joel Silver", "job": "Producer"},
			{"name": "Lana Wachowski", "job": "Director"}
		]
	}
}`

const tvFixture = `{
	"id": 1396,
	"name": "Breaking Bad",
	"overview": "A chemistry teacher turns to crime.",
	"first_air_date": "2008-01-20",
	"last_air_date": "2013-09-29",
	"number_of_seasons": 5,
	"number_of_episodes": 62,
	"vote_average": 8.9,
	"genres": [{"id": 18, "name": "Drama"}],
	"poster_path": "/bb.jpg",
	"backdrop_path": null,
	"created_by": [{"name": "Vince Gilligan"}],
	"production_companies": [{"name": "Sony Pictures Television"}],
	"origin_country": ["US"],
	"original_language": "en",
	"credits": {"cast": [], "crew": []}
}`

func newFixtureServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

func TestGetMovieNormalizesDetails(t *testing.T) {
	ts := newFixtureServer(t, map[string]string{"/movie/603": movieFixture})
	defer ts.Close()

	client := NewTMDBClient("test-key", ts.URL, "en-US")
	movie, err := client.GetMovie(603)
	require.NoError(t, err)

	assert.Equal(t, 603, movie.TMDBID)
	assert.Equal(t, "The Matrix", movie.Title)
	require.NotNil(t, movie.Overview)
	assert.Equal(t, "A computer hacker learns the truth.", *movie.Overview)
	require.NotNil(t, movie.Runtime)
	assert.Equal(t, 136, *movie.Runtime)
	require.NotNil(t, movie.Rating)
	assert.InDelta(t, 8.2, *movie.Rating, 0.001)
	assert.Equal(t, []string{"Action", "Science Fiction"}, movie.Genres)
	require.NotNil(t, movie.Studio)
	assert.Equal(t, "Village Roadshow Pictures", *movie.Studio)
	assert.Equal(t, "United States of America", movie.Country)
	assert.Equal(t, "en", movie.Language)
	require.NotNil(t, movie.Director)
	assert.Equal(t, "Lana Wachowski", *movie.Director)
	require.Len(t, movie.Cast, 2)
	assert.Equal(t, "Neo", movie.Cast[0].Character)
	assert.Nil(t, movie.Cast[1].ProfilePath)
}

func TestGetTvShowNormalizesDetails(t *testing.T) {
	ts := newFixtureServer(t, map[string]string{"/tv/1396": tvFixture})
	defer ts.Close()

	client := NewTMDBClient("test-key", ts.URL, "en-US")
	show, err := client.GetTvShow(1396)
	require.NoError(t, err)

	assert.Equal(t, "Breaking Bad", show.Title)
	assert.Equal(t, 5, show.NumberOfSeasons)
	assert.Equal(t, 62, show.NumberOfEpisodes)
	require.NotNil(t, show.Creator)
	assert.Equal(t, "Vince Gilligan", *show.Creator)
	assert.Equal(t, "US", show.Country)
	assert.Nil(t, show.BackdropPath)
}

func TestGetMovieNotFound(t *testing.T) {
	ts := newFixtureServer(t, nil)
	defer ts.Close()

	client := NewTMDBClient("test-key", ts.URL, "")
	_, err := client.GetMovie(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMissingAPIKeyFailsPerRequest(t *testing.T) {
	client := NewTMDBClient("", "http://unreachable.invalid", "")
	_, err := client.GetMovie(603)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not configured")

	client.SetAPIKey("now-set")
	_, err = client.GetMovie(603)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "API key not configured")
}

func TestPopularAndSearchListShapes(t *testing.T) {
	ts := newFixtureServer(t, map[string]string{
		"/movie/popular": `{"results": [{"id": 603}, {"id": 604}]}`,
		"/tv/popular":    `{"results": [{"id": 1396}]}`,
		"/search/multi":  `{"results": [{"id": 603, "media_type": "movie"}, {"id": 1396, "media_type": "tv"}, {"id": 42, "media_type": "person"}]}`,
	})
	defer ts.Close()

	client := NewTMDBClient("test-key", ts.URL, "")

	movieIDs, err := client.PopularMovies()
	require.NoError(t, err)
	assert.Equal(t, []int{603, 604}, movieIDs)

	showIDs, err := client.PopularTvShows()
	require.NoError(t, err)
	assert.Equal(t, []int{1396}, showIDs)

	// person hits are dropped
	hits, err := client.SearchMulti("matrix")
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, 603, hits[0].TMDBID)
	assert.Equal(t, 1396, hits[1].TMDBID)
}

func TestGetSeasonNormalizesEpisodes(t *testing.T) {
	ts := newFixtureServer(t, map[string]string{
		"/tv/1396/season/1": `{"episodes": [
			{"season_number": 1, "episode_number": 1, "name": "Pilot", "overview": "Walt cooks.", "air_date": "2008-01-20", "runtime": 58, "vote_average": 8.1, "still_path": "/still.jpg"},
			{"season_number": 1, "episode_number": 2, "name": "Cat's in the Bag...", "overview": "", "air_date": "2008-01-27", "runtime": 0, "vote_average": 8.0, "still_path": ""}
		]}`,
	})
	defer ts.Close()

	client := NewTMDBClient("test-key", ts.URL, "")
	episodes, err := client.GetSeason(1396, 1)
	require.NoError(t, err)
	require.Len(t, episodes, 2)

	assert.Equal(t, "Pilot", episodes[0].Title)
	require.NotNil(t, episodes[0].Runtime)
	assert.Equal(t, 58, *episodes[0].Runtime)
	assert.Nil(t, episodes[1].Overview)
	assert.Nil(t, episodes[1].Runtime)
	assert.Nil(t, episodes[1].StillPath)
}
