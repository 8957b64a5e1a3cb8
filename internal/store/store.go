// Package store holds all content records for the lifetime of the process.
// It is the only owner of record instances; callers must treat returned
// values as read-only and go through the store for every mutation.
package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"streambox/internal/models"
)

// Store is an in-memory content store with O(1) TMDB-id lookups via
// secondary index maps. It is safe for concurrent use; the check-and-insert
// upserts hold the write lock across the index lookup and the insert, so two
// racing first resolutions of the same catalog id produce a single record.
type Store struct {
	mu           sync.RWMutex
	movies       map[string]*models.Movie
	moviesByTMDB map[int]string
	movieOrder   []string

	shows       map[string]*models.TvShow
	showsByTMDB map[int]string
	showOrder   []string

	episodes     map[string]*models.Episode
	episodeByKey map[episodeKey]string

	watchlist      map[string]*models.WatchlistItem
	watchlistOrder []string

	now func() time.Time
}

type episodeKey struct {
	tvShowID string
	season   int
	episode  int
}

func New() *Store {
	return &Store{
		movies:       make(map[string]*models.Movie),
		moviesByTMDB: make(map[int]string),
		shows:        make(map[string]*models.TvShow),
		showsByTMDB:  make(map[int]string),
		episodes:     make(map[string]*models.Episode),
		episodeByKey: make(map[episodeKey]string),
		watchlist:    make(map[string]*models.WatchlistItem),
		now:          time.Now,
	}
}

// --- Movies ---

func (s *Store) GetMovie(id string) *models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.movies[id]
}

func (s *Store) GetMovieByTMDBID(tmdbID int) *models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.moviesByTMDB[tmdbID]; ok {
		return s.movies[id]
	}
	return nil
}

func (s *Store) CreateMovie(input models.Movie) *models.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertMovie(input)
}

// GetOrCreateMovie returns the existing record for the input's TMDB id, or
// inserts the input as a new record. The lookup and insert happen under one
// lock so duplicate catalog ids cannot be created concurrently.
func (s *Store) GetOrCreateMovie(input models.Movie) (*models.Movie, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.moviesByTMDB[input.TMDBID]; ok {
		return s.movies[id], false
	}
	return s.insertMovie(input), true
}

func (s *Store) insertMovie(input models.Movie) *models.Movie {
	movie := input
	movie.ID = uuid.NewString()
	applyMovieDefaults(&movie)
	s.movies[movie.ID] = &movie
	s.moviesByTMDB[movie.TMDBID] = movie.ID
	s.movieOrder = append(s.movieOrder, movie.ID)
	return &movie
}

// SearchMovies matches the query case-insensitively against titles.
func (s *Store) SearchMovies(query string) []*models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := strings.ToLower(query)
	var out []*models.Movie
	for _, id := range s.movieOrder {
		if strings.Contains(strings.ToLower(s.movies[id].Title), q) {
			out = append(out, s.movies[id])
		}
	}
	return out
}

// PopularMovies returns up to limit movies sorted by rating descending.
// Records without a rating sort as zero; ties keep insertion order.
func (s *Store) PopularMovies(limit int) []*models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Movie, 0, len(s.movieOrder))
	for _, id := range s.movieOrder {
		out = append(out, s.movies[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return ratingOf(out[i].Rating) > ratingOf(out[j].Rating)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// --- TV shows ---

func (s *Store) GetTvShow(id string) *models.TvShow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shows[id]
}

func (s *Store) GetTvShowByTMDBID(tmdbID int) *models.TvShow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.showsByTMDB[tmdbID]; ok {
		return s.shows[id]
	}
	return nil
}

func (s *Store) CreateTvShow(input models.TvShow) *models.TvShow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertTvShow(input)
}

func (s *Store) GetOrCreateTvShow(input models.TvShow) (*models.TvShow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.showsByTMDB[input.TMDBID]; ok {
		return s.shows[id], false
	}
	return s.insertTvShow(input), true
}

func (s *Store) insertTvShow(input models.TvShow) *models.TvShow {
	show := input
	show.ID = uuid.NewString()
	applyTvShowDefaults(&show)
	s.shows[show.ID] = &show
	s.showsByTMDB[show.TMDBID] = show.ID
	s.showOrder = append(s.showOrder, show.ID)
	return &show
}

func (s *Store) SearchTvShows(query string) []*models.TvShow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := strings.ToLower(query)
	var out []*models.TvShow
	for _, id := range s.showOrder {
		if strings.Contains(strings.ToLower(s.shows[id].Title), q) {
			out = append(out, s.shows[id])
		}
	}
	return out
}

func (s *Store) PopularTvShows(limit int) []*models.TvShow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.TvShow, 0, len(s.showOrder))
	for _, id := range s.showOrder {
		out = append(out, s.shows[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return ratingOf(out[i].Rating) > ratingOf(out[j].Rating)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// --- Episodes ---

func (s *Store) GetEpisode(id string) *models.Episode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.episodes[id]
}

func (s *Store) EpisodesByTvShow(tvShowID string) []*models.Episode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Episode
	for _, ep := range s.episodes {
		if ep.TvShowID == tvShowID {
			out = append(out, ep)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SeasonNumber != out[j].SeasonNumber {
			return out[i].SeasonNumber < out[j].SeasonNumber
		}
		return out[i].EpisodeNumber < out[j].EpisodeNumber
	})
	return out
}

func (s *Store) EpisodeBySeasonAndNumber(tvShowID string, season, episode int) *models.Episode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.episodeByKey[episodeKey{tvShowID, season, episode}]; ok {
		return s.episodes[id]
	}
	return nil
}

func (s *Store) CreateEpisode(input models.Episode) *models.Episode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertEpisode(input)
}

// GetOrCreateEpisode upserts by the (show, season, episode) composite key.
func (s *Store) GetOrCreateEpisode(input models.Episode) (*models.Episode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := episodeKey{input.TvShowID, input.SeasonNumber, input.EpisodeNumber}
	if id, ok := s.episodeByKey[key]; ok {
		return s.episodes[id], false
	}
	return s.insertEpisode(input), true
}

func (s *Store) insertEpisode(input models.Episode) *models.Episode {
	ep := input
	ep.ID = uuid.NewString()
	s.episodes[ep.ID] = &ep
	s.episodeByKey[episodeKey{ep.TvShowID, ep.SeasonNumber, ep.EpisodeNumber}] = ep.ID
	return &ep
}

// --- Watchlist ---

func (s *Store) Watchlist(userID string) []*models.WatchlistItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.WatchlistItem
	for _, id := range s.watchlistOrder {
		if item, ok := s.watchlist[id]; ok && item.UserID == userID {
			out = append(out, item)
		}
	}
	return out
}

func (s *Store) AddToWatchlist(input models.WatchlistItem) *models.WatchlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := input
	item.ID = uuid.NewString()
	item.AddedAt = s.now()
	s.watchlist[item.ID] = &item
	s.watchlistOrder = append(s.watchlistOrder, item.ID)
	return &item
}

// RemoveFromWatchlist deletes the first item matching the pair and reports
// whether one existed.
func (s *Store) RemoveFromWatchlist(userID, contentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, id := range s.watchlistOrder {
		item, ok := s.watchlist[id]
		if !ok || item.UserID != userID || item.ContentID != contentID {
			continue
		}
		delete(s.watchlist, id)
		s.watchlistOrder = append(s.watchlistOrder[:i], s.watchlistOrder[i+1:]...)
		return true
	}
	return false
}

func (s *Store) IsInWatchlist(userID, contentID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.watchlist {
		if item.UserID == userID && item.ContentID == contentID {
			return true
		}
	}
	return false
}

// --- defaults ---

func applyMovieDefaults(m *models.Movie) {
	if m.Genres == nil {
		m.Genres = []string{}
	}
	if m.Cast == nil {
		m.Cast = []models.CastMember{}
	}
	if m.Language == "" {
		m.Language = "en"
	}
	if m.Country == "" {
		m.Country = "US"
	}
}

func applyTvShowDefaults(t *models.TvShow) {
	if t.Genres == nil {
		t.Genres = []string{}
	}
	if t.Cast == nil {
		t.Cast = []models.CastMember{}
	}
	if t.Language == "" {
		t.Language = "en"
	}
	if t.Country == "" {
		t.Country = "US"
	}
	if t.NumberOfSeasons == 0 {
		t.NumberOfSeasons = 1
	}
	if t.NumberOfEpisodes == 0 {
		t.NumberOfEpisodes = 1
	}
}

func ratingOf(r *float64) float64 {
	if r == nil {
		return 0
	}
	return *r
}
