package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/joseiguti/nowoptics-back/internal/hub"
	"github.com/joseiguti/nowoptics-back/internal/store"
)

// Broadcaster pushes a data-change event to every open WebSocket
// connection. Satisfied by *hub.Hub; tests substitute a recorder.
type Broadcaster interface {
	Broadcast(event hub.Event)
}

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	store     store.MessageStore
	broadcast Broadcaster
	logger    zerolog.Logger
}

// NewHandler creates a new Handler with the given store and broadcaster.
func NewHandler(st store.MessageStore, b Broadcaster, logger zerolog.Logger) *Handler {
	return &Handler{store: st, broadcast: b, logger: logger}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}
