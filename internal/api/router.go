package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/joseiguti/nowoptics-back/internal/api/middleware"
	"github.com/joseiguti/nowoptics-back/internal/handlers"
	"github.com/joseiguti/nowoptics-back/internal/hub"
	"github.com/joseiguti/nowoptics-back/internal/store"
)

// NewRouter creates and configures the HTTP router. The WebSocket
// endpoint shares the same listener as the REST API.
func NewRouter(logger zerolog.Logger, st store.MessageStore, h *hub.Hub, router *hub.Router) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(64 * 1024))

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// CORS - the browser frontend is served from anywhere
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	hd := handlers.NewHandler(st, h, logger)

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/health", hd.Health)

	r.Route("/messages", func(r chi.Router) {
		r.Post("/", hd.CreateMessage)
		r.Get("/", hd.ListMessages)
		r.Get("/{id}", hd.GetMessage)
		r.Put("/{id}", hd.UpdateMessage)
		r.Delete("/{id}", hd.DeleteMessage)
	})

	// WebSocket hub: signaling relay plus data-change notifications
	r.Get("/ws", hub.ServeWS(h, router, logger))

	return r
}
