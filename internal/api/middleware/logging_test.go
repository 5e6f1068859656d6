package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func loggedRequest(t *testing.T, path string) string {
	t.Helper()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	handler := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	return buf.String()
}

func TestLoggerWritesCompletionLine(t *testing.T) {
	out := loggedRequest(t, "/messages")

	if !strings.Contains(out, "request completed") {
		t.Fatalf("expected a completion line, got %q", out)
	}
	for _, field := range []string{`"component":"http"`, `"method":"GET"`, `"path":"/messages"`, `"status":418`} {
		if !strings.Contains(out, field) {
			t.Fatalf("expected log to contain %s, got %q", field, out)
		}
	}
}

func TestLoggerSkipsWebSocketEndpoint(t *testing.T) {
	out := loggedRequest(t, "/ws")

	// The hub logs connection lifecycle itself; a per-request line here
	// would only appear at disconnect with the session length as latency.
	if out != "" {
		t.Fatalf("expected no request log for /ws, got %q", out)
	}
}
