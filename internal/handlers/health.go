package handlers

import (
	"context"
	"net/http"
	"time"
)

const version = "0.1.0"

// Check represents the status of a health check.
type Check struct {
	Status  string `json:"status"`            // "pass" or "fail"
	Latency string `json:"latency,omitempty"` // e.g., "2ms"
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status      string           `json:"status"` // "healthy" or "degraded"
	Version     string           `json:"version"`
	Checks      map[string]Check `json:"checks"`
	Connections int              `json:"connections"`
	Registered  int              `json:"registered"`
	Timestamp   string           `json:"timestamp"`
}

// hubStats is implemented by the hub; the health check reports its
// counters when available.
type hubStats interface {
	ClientCount() int
	RegisteredCount() int
}

// Health handles the health check endpoint. A store outage degrades the
// report but the endpoint itself stays up, as does the WebSocket hub.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := make(map[string]Check)
	allHealthy := true

	storeStart := time.Now()
	if err := h.store.Ping(ctx); err != nil {
		checks["store"] = Check{Status: "fail", Message: "connection failed"}
		allHealthy = false
	} else {
		checks["store"] = Check{Status: "pass", Latency: time.Since(storeStart).String()}
	}

	resp := HealthResponse{
		Status:    "healthy",
		Version:   version,
		Checks:    checks,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if !allHealthy {
		resp.Status = "degraded"
	}

	if stats, ok := h.broadcast.(hubStats); ok {
		resp.Connections = stats.ClientCount()
		resp.Registered = stats.RegisteredCount()
	}

	status := http.StatusOK
	if !allHealthy {
		status = http.StatusServiceUnavailable
	}
	h.JSON(w, status, resp)
}
