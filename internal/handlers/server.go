package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"streambox/internal/config"
	"streambox/internal/core"
	"streambox/internal/events"
	"streambox/internal/utils"
)

type Server struct {
	config        *config.Config
	manager       *core.Manager
	logger        *utils.Logger
	httpServer    *http.Server
	apiHandler    *APIHandler
	wsHandler     *WSHandler
	statusHandler *StatusHandler
}

func NewServer(cfg *config.Config, manager *core.Manager, hub *events.Hub, logger *utils.Logger) *Server {
	return &Server{
		config:        cfg,
		manager:       manager,
		logger:        logger,
		apiHandler:    NewAPIHandler(manager, logger, cfg),
		wsHandler:     NewWSHandler(hub, logger),
		statusHandler: NewStatusHandler(hub),
	}
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/search", s.apiHandler.Search).Methods("GET")
	api.HandleFunc("/movies", s.apiHandler.GetPopularMovies).Methods("GET")
	api.HandleFunc("/tv", s.apiHandler.GetPopularTvShows).Methods("GET")
	api.HandleFunc("/movies/{id}", s.apiHandler.GetMovie).Methods("GET")
	api.HandleFunc("/movie/{id}", s.apiHandler.GetMovie).Methods("GET")
	api.HandleFunc("/tv/{id}", s.apiHandler.GetTvShow).Methods("GET")
	api.HandleFunc("/tv/{id}/seasons/{season}", s.apiHandler.GetSeasonEpisodes).Methods("GET")
	api.HandleFunc("/servers", s.apiHandler.GetServers).Methods("GET")

	api.HandleFunc("/watchlist", s.apiHandler.GetWatchlist).Methods("GET")
	api.HandleFunc("/watchlist", s.apiHandler.AddToWatchlist).Methods("POST")
	api.HandleFunc("/watchlist/{contentId}", s.apiHandler.RemoveFromWatchlist).Methods("DELETE")

	api.HandleFunc("/status", s.statusHandler.GetStatus).Methods("GET")
	api.HandleFunc("/events", s.wsHandler.ServeWS).Methods("GET")

	return router
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.App.Port),
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	s.logger.Info("Starting server on port", s.config.App.Port)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
