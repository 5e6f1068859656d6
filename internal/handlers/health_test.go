package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/joseiguti/nowoptics-back/internal/hub"
	"github.com/joseiguti/nowoptics-back/internal/store"
)

func TestHealth(t *testing.T) {
	h := NewHandler(store.NewMemoryStore(), hub.NewHub(zerolog.Nop()), zerolog.Nop())

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "healthy" {
		t.Fatalf("expected healthy, got %q", resp.Status)
	}
	if resp.Checks["store"].Status != "pass" {
		t.Fatalf("expected store check to pass: %+v", resp.Checks)
	}
	if resp.Connections != 0 || resp.Registered != 0 {
		t.Fatalf("expected zero hub counts, got %+v", resp)
	}
}
