package core

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/robfig/cron/v3"

	"streambox/internal/clients/catalog"
	"streambox/internal/clients/notifications"
	"streambox/internal/config"
	"streambox/internal/events"
	"streambox/internal/models"
	"streambox/internal/store"
	"streambox/internal/utils"
)

const (
	// DefaultUserID stands in for a real account until auth exists.
	DefaultUserID = "default-user"

	popularLimit = 20
	searchLimit  = 10
)

var (
	ErrInvalidContentType = errors.New("contentType must be 'movie' or 'tv'")
	ErrUnknownContent     = errors.New("content not found")
	ErrAlreadyInWatchlist = errors.New("item already in watchlist")
)

// SearchResults is the combined outcome of a multi search.
type SearchResults struct {
	Movies  []*models.Movie  `json:"movies"`
	TvShows []*models.TvShow `json:"tvShows"`
	Total   int              `json:"total"`
}

// WatchlistEntry is a watchlist item populated with its content record.
type WatchlistEntry struct {
	models.WatchlistItem
	Content interface{} `json:"content"`
}

// Manager orchestrates lookups: store first, catalog on miss, write-through
// on fill. The store never invalidates; a record is immutable once cached.
type Manager struct {
	config    *config.Config
	store     *store.Store
	catalog   catalog.Client
	notifier  notifications.Notifier
	hub       *events.Hub
	logger    *utils.Logger
	scheduler *cron.Cron
}

func NewManager(cfg *config.Config, st *store.Store, cat catalog.Client,
	notifier notifications.Notifier, hub *events.Hub, logger *utils.Logger) *Manager {
	return &Manager{
		config:    cfg,
		store:     st,
		catalog:   cat,
		notifier:  notifier,
		hub:       hub,
		logger:    logger,
		scheduler: cron.New(),
	}
}

// ResolveMovie resolves an identifier to a movie record. The id may be an
// internal id or a TMDB id; unknown TMDB ids are fetched, normalized and
// cached. Sequential calls with the same id are idempotent, and the locked
// upsert keeps concurrent first calls from inserting duplicates.
func (m *Manager) ResolveMovie(id string) (*models.Movie, error) {
	if movie := m.store.GetMovie(id); movie != nil {
		return movie, nil
	}

	tmdbID, err := strconv.Atoi(id)
	if err != nil {
		return nil, catalog.ErrNotFound
	}

	if movie := m.store.GetMovieByTMDBID(tmdbID); movie != nil {
		return movie, nil
	}

	fetched, err := m.catalog.GetMovie(tmdbID)
	if err != nil {
		return nil, err
	}

	movie, created := m.store.GetOrCreateMovie(*fetched)
	if created {
		m.logger.Debug("Cached movie from catalog:", movie.Title, "tmdb:", movie.TMDBID)
		m.hub.Broadcast(events.TypeCacheFill, movie)
	}
	return movie, nil
}

// ResolveTvShow is the TV counterpart of ResolveMovie.
func (m *Manager) ResolveTvShow(id string) (*models.TvShow, error) {
	if show := m.store.GetTvShow(id); show != nil {
		return show, nil
	}

	tmdbID, err := strconv.Atoi(id)
	if err != nil {
		return nil, catalog.ErrNotFound
	}

	if show := m.store.GetTvShowByTMDBID(tmdbID); show != nil {
		return show, nil
	}

	fetched, err := m.catalog.GetTvShow(tmdbID)
	if err != nil {
		return nil, err
	}

	show, created := m.store.GetOrCreateTvShow(*fetched)
	if created {
		m.logger.Debug("Cached TV show from catalog:", show.Title, "tmdb:", show.TMDBID)
		m.hub.Broadcast(events.TypeCacheFill, show)
	}
	return show, nil
}

// PopularMovies returns the provider's current popular list, hydrating any
// title not yet cached. Order follows the provider; already-cached entries
// are returned as stored.
func (m *Manager) PopularMovies() ([]*models.Movie, error) {
	ids, err := m.catalog.PopularMovies()
	if err != nil {
		return nil, err
	}
	if len(ids) > popularLimit {
		ids = ids[:popularLimit]
	}

	movies := make([]*models.Movie, 0, len(ids))
	for _, tmdbID := range ids {
		movie := m.store.GetMovieByTMDBID(tmdbID)
		if movie == nil {
			fetched, err := m.catalog.GetMovie(tmdbID)
			if err != nil {
				return nil, err
			}
			movie, _ = m.store.GetOrCreateMovie(*fetched)
		}
		movies = append(movies, movie)
	}
	return movies, nil
}

func (m *Manager) PopularTvShows() ([]*models.TvShow, error) {
	ids, err := m.catalog.PopularTvShows()
	if err != nil {
		return nil, err
	}
	if len(ids) > popularLimit {
		ids = ids[:popularLimit]
	}

	shows := make([]*models.TvShow, 0, len(ids))
	for _, tmdbID := range ids {
		show := m.store.GetTvShowByTMDBID(tmdbID)
		if show == nil {
			fetched, err := m.catalog.GetTvShow(tmdbID)
			if err != nil {
				return nil, err
			}
			show, _ = m.store.GetOrCreateTvShow(*fetched)
		}
		shows = append(shows, show)
	}
	return shows, nil
}

// Search runs the combined catalog search and hydrates every hit through
// the same upsert path as single-title resolution. Results are capped at
// searchLimit per media type, in provider order.
func (m *Manager) Search(query string) (*SearchResults, error) {
	hits, err := m.catalog.SearchMulti(query)
	if err != nil {
		return nil, err
	}

	results := &SearchResults{
		Movies:  []*models.Movie{},
		TvShows: []*models.TvShow{},
	}
	for _, hit := range hits {
		switch hit.MediaType {
		case models.MediaTypeMovie:
			if len(results.Movies) >= searchLimit {
				continue
			}
			movie, err := m.ResolveMovie(strconv.Itoa(hit.TMDBID))
			if err != nil {
				return nil, err
			}
			results.Movies = append(results.Movies, movie)
		case models.MediaTypeTVShow:
			if len(results.TvShows) >= searchLimit {
				continue
			}
			show, err := m.ResolveTvShow(strconv.Itoa(hit.TMDBID))
			if err != nil {
				return nil, err
			}
			results.TvShows = append(results.TvShows, show)
		}
	}
	results.Total = len(results.Movies) + len(results.TvShows)
	return results, nil
}

// SeasonEpisodes resolves the show, then lazily caches the season's
// episodes keyed by (show, season, episode).
func (m *Manager) SeasonEpisodes(showID string, season int) ([]*models.Episode, error) {
	show, err := m.ResolveTvShow(showID)
	if err != nil {
		return nil, err
	}

	fetched, err := m.catalog.GetSeason(show.TMDBID, season)
	if err != nil {
		return nil, err
	}

	episodes := make([]*models.Episode, 0, len(fetched))
	for _, input := range fetched {
		input.TvShowID = show.ID
		ep, _ := m.store.GetOrCreateEpisode(input)
		episodes = append(episodes, ep)
	}
	return episodes, nil
}

// Watchlist returns the user's items, each populated with its content
// record. Items whose content is no longer resolvable are skipped.
func (m *Manager) Watchlist(userID string) []WatchlistEntry {
	items := m.store.Watchlist(userID)
	entries := make([]WatchlistEntry, 0, len(items))
	for _, item := range items {
		switch item.ContentType {
		case models.MediaTypeMovie:
			if movie := m.store.GetMovie(item.ContentID); movie != nil {
				entries = append(entries, WatchlistEntry{WatchlistItem: *item, Content: movie})
			}
		case models.MediaTypeTVShow:
			if show := m.store.GetTvShow(item.ContentID); show != nil {
				entries = append(entries, WatchlistEntry{WatchlistItem: *item, Content: show})
			}
		}
	}
	return entries
}

func (m *Manager) AddToWatchlist(userID, contentID string, contentType models.MediaType) (*models.WatchlistItem, error) {
	title, err := m.contentTitle(contentID, contentType)
	if err != nil {
		return nil, err
	}

	if m.store.IsInWatchlist(userID, contentID) {
		return nil, ErrAlreadyInWatchlist
	}

	item := m.store.AddToWatchlist(models.WatchlistItem{
		UserID:      userID,
		ContentID:   contentID,
		ContentType: contentType,
	})

	m.notifier.NotifyWatchlistAdd(title, contentType)
	m.hub.Broadcast(events.TypeWatchlistAdd, item)
	return item, nil
}

func (m *Manager) RemoveFromWatchlist(userID, contentID string) bool {
	if !m.store.RemoveFromWatchlist(userID, contentID) {
		return false
	}
	m.hub.Broadcast(events.TypeWatchlistRemove, map[string]string{
		"userId":    userID,
		"contentId": contentID,
	})
	return true
}

func (m *Manager) contentTitle(contentID string, contentType models.MediaType) (string, error) {
	switch contentType {
	case models.MediaTypeMovie:
		if movie := m.store.GetMovie(contentID); movie != nil {
			return movie.Title, nil
		}
		return "", ErrUnknownContent
	case models.MediaTypeTVShow:
		if show := m.store.GetTvShow(contentID); show != nil {
			return show.Title, nil
		}
		return "", ErrUnknownContent
	default:
		return "", ErrInvalidContentType
	}
}

// StartScheduler begins the optional popular-list prefetch. Records already
// cached stay as they are; the job only pulls in titles that have newly
// entered the provider's popular lists.
func (m *Manager) StartScheduler() error {
	interval := m.config.Refresh.PopularInterval
	if interval == "" {
		return nil
	}

	_, err := m.scheduler.AddFunc(fmt.Sprintf("@every %s", interval), m.prefetchPopular)
	if err != nil {
		return fmt.Errorf("invalid popular_interval %q: %w", interval, err)
	}
	m.scheduler.Start()
	m.logger.Info("Popular prefetch scheduled every", interval)
	return nil
}

func (m *Manager) prefetchPopular() {
	if _, err := m.PopularMovies(); err != nil {
		m.logger.Error("Popular movie prefetch failed:", err)
	}
	if _, err := m.PopularTvShows(); err != nil {
		m.logger.Error("Popular TV prefetch failed:", err)
	}
}

func (m *Manager) Stop() {
	ctx := m.scheduler.Stop()
	<-ctx.Done()
}
