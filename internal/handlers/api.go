package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"streambox/internal/clients/catalog"
	"streambox/internal/config"
	"streambox/internal/core"
	"streambox/internal/models"
	"streambox/internal/utils"
)

type APIHandler struct {
	manager *core.Manager
	logger  *utils.Logger
	config  *config.Config
}

func NewAPIHandler(manager *core.Manager, logger *utils.Logger, config *config.Config) *APIHandler {
	return &APIHandler{manager: manager, logger: logger, config: config}
}

// A helper function to respond with JSON
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// A helper function to respond with a JSON error
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"message": message})
}

// Combined movie/TV search
func (h *APIHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	results, err := h.manager.Search(query)
	if err != nil {
		h.logger.Error("Search failed:", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, results)
}

// Popular movies, capped at 20
func (h *APIHandler) GetPopularMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.manager.PopularMovies()
	if err != nil {
		h.logger.Error("Failed to get popular movies:", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, movies)
}

// Popular TV shows, capped at 20
func (h *APIHandler) GetPopularTvShows(w http.ResponseWriter, r *http.Request) {
	shows, err := h.manager.PopularTvShows()
	if err != nil {
		h.logger.Error("Failed to get popular TV shows:", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, shows)
}

// Resolve a single movie by internal or TMDB id
func (h *APIHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	movie, err := h.manager.ResolveMovie(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Movie not found")
			return
		}
		h.logger.Error("Failed to resolve movie", id, ":", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, movie)
}

// Resolve a single TV show by internal or TMDB id
func (h *APIHandler) GetTvShow(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	show, err := h.manager.ResolveTvShow(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "TV show not found")
			return
		}
		h.logger.Error("Failed to resolve TV show", id, ":", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, show)
}

// Episodes of one season of a show
func (h *APIHandler) GetSeasonEpisodes(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	season, err := strconv.Atoi(vars["season"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid season number")
		return
	}

	episodes, err := h.manager.SeasonEpisodes(vars["id"], season)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Season not found")
			return
		}
		h.logger.Error("Failed to get season episodes:", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, episodes)
}

// Embed server list for a title
func (h *APIHandler) GetServers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	list, err := core.ResolveServers(q.Get("video_id"), q.Get("type"), q.Get("season"), q.Get("episode"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, list)
}

// Watchlist for the demo user, items populated with their content
func (h *APIHandler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.manager.Watchlist(core.DefaultUserID))
}

func (h *APIHandler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ContentID   string `json:"contentId"`
		ContentType string `json:"contentType"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ContentID == "" {
		respondError(w, http.StatusBadRequest, "contentId is required")
		return
	}

	item, err := h.manager.AddToWatchlist(core.DefaultUserID, req.ContentID, models.MediaType(req.ContentType))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, item)
}

func (h *APIHandler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	contentID := mux.Vars(r)["contentId"]

	if !h.manager.RemoveFromWatchlist(core.DefaultUserID, contentID) {
		respondError(w, http.StatusNotFound, "Item not found in watchlist")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Removed from watchlist"})
}
