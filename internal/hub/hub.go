// Package hub holds the real-time core of the relay: the connection
// registry mapping client keys to live sockets, the router that steers
// inbound signaling frames, and the broadcaster that fans data-change
// events out to every open connection.
package hub

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/joseiguti/nowoptics-back/internal/metrics"
)

// Hub owns the set of open connections and the client-key registry.
// All mutations go through the mutex; connections join and leave from
// their own goroutines.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*Client]struct{}
	registry map[string]*Client
	logger   zerolog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:  make(map[*Client]struct{}),
		registry: make(map[string]*Client),
		logger:   logger.With().Str("component", "hub").Logger(),
	}
}

// Add tracks a newly opened connection. Broadcasts reach every added
// connection whether or not it ever registers a client key.
func (h *Hub) Add(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	metrics.OpenConnections.Set(float64(count))
	h.logger.Info().Str("conn", c.id).Int("open", count).Msg("connection opened")
}

// Remove drops a connection and purges every registry entry that points
// at it. Idempotent: duplicate close notifications are no-ops, and a
// connection that never registered is handled the same way.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	_, present := h.clients[c]
	delete(h.clients, c)
	for key, registered := range h.registry {
		if registered == c {
			delete(h.registry, key)
		}
	}
	open := len(h.clients)
	registered := len(h.registry)
	h.mu.Unlock()

	c.close()

	if present {
		metrics.OpenConnections.Set(float64(open))
		metrics.RegisteredClients.Set(float64(registered))
		h.logger.Info().Str("conn", c.id).Int("open", open).Msg("connection closed")
	}
}

// Register maps a client key to a connection. A duplicate key silently
// replaces the earlier mapping (last writer wins); the superseded
// connection stays open but is no longer routable under that key.
func (h *Hub) Register(key string, c *Client) {
	h.mu.Lock()
	prev, replaced := h.registry[key]
	h.registry[key] = c
	registered := len(h.registry)
	h.mu.Unlock()

	metrics.RegisteredClients.Set(float64(registered))

	evt := h.logger.Info().Str("conn", c.id).Str("client_key", key)
	if replaced && prev != c {
		evt = evt.Str("superseded", prev.id)
	}
	evt.Msg("client registered")
}

// Lookup returns the connection registered under key. Absence is a
// normal outcome: the target is simply offline.
func (h *Hub) Lookup(key string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.registry[key]
	return c, ok
}

// Broadcast serializes an event once and pushes it to every open
// connection. A failed send (closed connection, full buffer) is logged
// and counted but never stops delivery to the remaining connections.
func (h *Hub) Broadcast(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("kind", event.Kind).Msg("failed to encode broadcast event")
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	metrics.EventsBroadcast.WithLabelValues(event.Kind).Inc()

	for _, c := range clients {
		if !c.trySend(data) {
			metrics.BroadcastSendFailures.Inc()
			h.logger.Warn().Str("conn", c.id).Str("kind", event.Kind).Msg("broadcast send failed")
		}
	}
}

// ClientCount returns the number of open connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RegisteredCount returns the number of registered client keys.
func (h *Hub) RegisteredCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.registry)
}

// Shutdown closes every open connection. Used during graceful server
// shutdown; new connections are already refused by then because the
// HTTP listener has stopped.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*Client]struct{})
	h.registry = make(map[string]*Client)
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}

	metrics.OpenConnections.Set(0)
	metrics.RegisteredClients.Set(0)
	h.logger.Info().Int("closed", len(clients)).Msg("hub shut down")
}
