package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/joseiguti/nowoptics-back/internal/api"
	"github.com/joseiguti/nowoptics-back/internal/config"
	"github.com/joseiguti/nowoptics-back/internal/hub"
	"github.com/joseiguti/nowoptics-back/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	ctx := context.Background()

	// Initialize the message store
	var st store.MessageStore
	if cfg.RedisURL != "" {
		redisStore, err := store.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		st = redisStore
		logger.Info().Msg("connected to Redis")
	} else {
		st = store.NewMemoryStore()
		logger.Warn().Msg("REDIS_URL not set, using in-memory store")
	}
	defer func() {
		_ = st.Close()
	}()

	// WebSocket hub: registry, router, broadcaster
	h := hub.NewHub(logger)
	wsRouter := hub.NewRouter(h, logger)

	// Create router
	router := api.NewRouter(logger, st, h, wsRouter)

	// Create server. No write timeout: the WebSocket endpoint holds
	// connections open indefinitely.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Msg("starting relay server")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	// Graceful shutdown with 30 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	// Close remaining WebSocket connections
	h.Shutdown()

	logger.Info().Msg("server stopped")
}
