package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streambox/internal/clients/catalog"
	"streambox/internal/clients/notifications"
	"streambox/internal/config"
	"streambox/internal/core"
	"streambox/internal/events"
	"streambox/internal/models"
	"streambox/internal/store"
	"streambox/internal/utils"
)

// stubCatalog implements catalog.Client from fixed fixtures and counts
// detail fetches so tests can assert on cache behavior.
type stubCatalog struct {
	movies        map[int]models.Movie
	shows         map[int]models.TvShow
	popularMovies []int
	popularShows  []int
	hits          []catalog.SearchHit
	episodes      []models.Episode

	movieFetches int
	showFetches  int
}

func (s *stubCatalog) GetMovie(tmdbID int) (*models.Movie, error) {
	s.movieFetches++
	if m, ok := s.movies[tmdbID]; ok {
		return &m, nil
	}
	return nil, catalog.ErrNotFound
}

func (s *stubCatalog) GetTvShow(tmdbID int) (*models.TvShow, error) {
	s.showFetches++
	if sh, ok := s.shows[tmdbID]; ok {
		return &sh, nil
	}
	return nil, catalog.ErrNotFound
}

func (s *stubCatalog) PopularMovies() ([]int, error)  { return s.popularMovies, nil }
func (s *stubCatalog) PopularTvShows() ([]int, error) { return s.popularShows, nil }

func (s *stubCatalog) SearchMulti(string) ([]catalog.SearchHit, error) { return s.hits, nil }

func (s *stubCatalog) GetSeason(int, int) ([]models.Episode, error) { return s.episodes, nil }

func newTestManager(t *testing.T, cat catalog.Client) (*core.Manager, *store.Store) {
	t.Helper()
	st := store.New()
	cfg := &config.Config{}
	manager := core.NewManager(cfg, st, cat, notifications.Noop{}, events.NewHub(), utils.NewLogger(false))
	return manager, st
}

func TestResolveMovieIsIdempotentAfterFirstCall(t *testing.T) {
	cat := &stubCatalog{movies: map[int]models.Movie{
		603: {TMDBID: 603, Title: "The Matrix"},
	}}
	manager, _ := newTestManager(t, cat)

	first, err := manager.ResolveMovie("603")
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := manager.ResolveMovie("603")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, cat.movieFetches)
}

func TestResolveMovieByInternalID(t *testing.T) {
	cat := &stubCatalog{movies: map[int]models.Movie{
		603: {TMDBID: 603, Title: "The Matrix"},
	}}
	manager, _ := newTestManager(t, cat)

	created, err := manager.ResolveMovie("603")
	require.NoError(t, err)

	byInternal, err := manager.ResolveMovie(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byInternal.ID)
	assert.Equal(t, 1, cat.movieFetches)
}

func TestResolveMovieUnknownIdentifier(t *testing.T) {
	manager, _ := newTestManager(t, &stubCatalog{movies: map[int]models.Movie{}})

	_, err := manager.ResolveMovie("not-a-number")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = manager.ResolveMovie("999")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestResolveTvShowIsIdempotentAfterFirstCall(t *testing.T) {
	cat := &stubCatalog{shows: map[int]models.TvShow{
		1396: {TMDBID: 1396, Title: "Breaking Bad"},
	}}
	manager, _ := newTestManager(t, cat)

	first, err := manager.ResolveTvShow("1396")
	require.NoError(t, err)
	second, err := manager.ResolveTvShow("1396")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, cat.showFetches)
}

func TestPopularMoviesWritesThroughOnce(t *testing.T) {
	cat := &stubCatalog{
		movies: map[int]models.Movie{
			603: {TMDBID: 603, Title: "The Matrix"},
			604: {TMDBID: 604, Title: "The Matrix Reloaded"},
		},
		popularMovies: []int{603, 604},
	}
	manager, st := newTestManager(t, cat)

	movies, err := manager.PopularMovies()
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "The Matrix", movies[0].Title)
	assert.Equal(t, "The Matrix Reloaded", movies[1].Title)
	assert.Equal(t, 2, cat.movieFetches)

	// Second call serves from the store; no new detail fetches.
	again, err := manager.PopularMovies()
	require.NoError(t, err)
	assert.Equal(t, 2, cat.movieFetches)
	assert.Equal(t, movies[0].ID, again[0].ID)

	assert.NotNil(t, st.GetMovieByTMDBID(603))
}

func TestSearchBranchesOnMediaType(t *testing.T) {
	cat := &stubCatalog{
		movies: map[int]models.Movie{603: {TMDBID: 603, Title: "The Matrix"}},
		shows:  map[int]models.TvShow{1396: {TMDBID: 1396, Title: "Breaking Bad"}},
		hits: []catalog.SearchHit{
			{TMDBID: 603, MediaType: models.MediaTypeMovie},
			{TMDBID: 1396, MediaType: models.MediaTypeTVShow},
		},
	}
	manager, _ := newTestManager(t, cat)

	results, err := manager.Search("matrix")
	require.NoError(t, err)
	require.Len(t, results.Movies, 1)
	require.Len(t, results.TvShows, 1)
	assert.Equal(t, 2, results.Total)
	assert.Equal(t, "The Matrix", results.Movies[0].Title)
	assert.Equal(t, "Breaking Bad", results.TvShows[0].Title)
}

func TestSeasonEpisodesUpsertsByCompositeKey(t *testing.T) {
	cat := &stubCatalog{
		shows: map[int]models.TvShow{1396: {TMDBID: 1396, Title: "Breaking Bad"}},
		episodes: []models.Episode{
			{SeasonNumber: 1, EpisodeNumber: 1, Title: "Pilot"},
			{SeasonNumber: 1, EpisodeNumber: 2, Title: "Cat's in the Bag..."},
		},
	}
	manager, _ := newTestManager(t, cat)

	eps, err := manager.SeasonEpisodes("1396", 1)
	require.NoError(t, err)
	require.Len(t, eps, 2)
	assert.NotEmpty(t, eps[0].TvShowID)

	again, err := manager.SeasonEpisodes("1396", 1)
	require.NoError(t, err)
	assert.Equal(t, eps[0].ID, again[0].ID)
	assert.Equal(t, eps[1].ID, again[1].ID)
}

func TestWatchlistLifecycle(t *testing.T) {
	cat := &stubCatalog{movies: map[int]models.Movie{
		603: {TMDBID: 603, Title: "The Matrix"},
	}}
	manager, _ := newTestManager(t, cat)

	movie, err := manager.ResolveMovie("603")
	require.NoError(t, err)

	item, err := manager.AddToWatchlist(core.DefaultUserID, movie.ID, models.MediaTypeMovie)
	require.NoError(t, err)
	assert.Equal(t, movie.ID, item.ContentID)

	_, err = manager.AddToWatchlist(core.DefaultUserID, movie.ID, models.MediaTypeMovie)
	assert.ErrorIs(t, err, core.ErrAlreadyInWatchlist)

	entries := manager.Watchlist(core.DefaultUserID)
	require.Len(t, entries, 1)
	content, ok := entries[0].Content.(*models.Movie)
	require.True(t, ok)
	assert.Equal(t, "The Matrix", content.Title)

	assert.True(t, manager.RemoveFromWatchlist(core.DefaultUserID, movie.ID))
	assert.False(t, manager.RemoveFromWatchlist(core.DefaultUserID, movie.ID))
	assert.Empty(t, manager.Watchlist(core.DefaultUserID))
}

func TestAddToWatchlistValidation(t *testing.T) {
	manager, _ := newTestManager(t, &stubCatalog{})

	_, err := manager.AddToWatchlist(core.DefaultUserID, "missing", models.MediaTypeMovie)
	assert.ErrorIs(t, err, core.ErrUnknownContent)

	_, err = manager.AddToWatchlist(core.DefaultUserID, "missing", "podcast")
	assert.ErrorIs(t, err, core.ErrInvalidContentType)
}
