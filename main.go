package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"streambox/internal/clients/catalog"
	"streambox/internal/clients/notifications"
	"streambox/internal/config"
	"streambox/internal/core"
	"streambox/internal/events"
	"streambox/internal/handlers"
	"streambox/internal/store"
	"streambox/internal/utils"
)

func main() {
	configPath := flag.String("config", "config.yml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Initialize logger to write to both file and console
	if err := os.MkdirAll(cfg.App.DataPath, 0o755); err != nil {
		log.Fatalf("Failed to create data path: %v", err)
	}
	logFile, err := os.OpenFile(filepath.Join(cfg.App.DataPath, "app.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()

	logger := utils.NewLogger(cfg.App.Debug, logFile)

	// Catalog client. A missing API key is not fatal here; requests that
	// need the catalog fail individually until a key is configured.
	tmdbClient := catalog.NewTMDBClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
	if cfg.TMDB.APIKey == "" {
		logger.Error("TMDB API key not configured; catalog requests will fail")
	}

	// Watch the config file so the key can be supplied without a restart.
	watcher, err := config.Watch(*configPath, func(fresh *config.Config) {
		tmdbClient.SetAPIKey(fresh.TMDB.APIKey)
		logger.Info("Configuration reloaded")
	})
	if err != nil {
		logger.Error("Config watch disabled:", err)
	} else {
		defer watcher.Close()
	}

	// Notifications
	var notifier notifications.Notifier = notifications.Noop{}
	if key := cfg.Notifications.Pushbullet.APIKey; key != "" {
		notifier = notifications.NewPushbulletClient(key, logger)
	}

	// Content store, event hub, manager
	contentStore := store.New()
	hub := events.NewHub()
	manager := core.NewManager(cfg, contentStore, tmdbClient, notifier, hub, logger)

	// Start web server
	server := handlers.NewServer(cfg, manager, hub, logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Server failed to start:", err)
		}
	}()

	if err := manager.StartScheduler(); err != nil {
		logger.Fatal("Failed to start scheduler:", err)
	}

	logger.Info("Streambox started successfully on port", cfg.App.Port)

	// Wait for interrupt
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logger.Info("Shutting down...")
	manager.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	server.Stop(ctx)
}
