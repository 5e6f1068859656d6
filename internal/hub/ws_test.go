package hub

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialTestServer spins up the WebSocket endpoint and dials it.
func dialTestServer(t *testing.T, h *Hub, rt *Router) (*httptest.Server, func() *websocket.Conn) {
	t.Helper()
	srv := httptest.NewServer(ServeWS(h, rt, zerolog.Nop()))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	dial := func() *websocket.Conn {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		require.NoError(t, err)
		t.Cleanup(func() { _ = conn.Close() })
		return conn
	}
	return srv, dial
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var frame map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &frame))
	return frame
}

func TestSignalingRelayOverLiveSockets(t *testing.T) {
	h := NewHub(zerolog.Nop())
	rt := NewRouter(h, zerolog.Nop())
	_, dial := dialTestServer(t, h, rt)

	callee := dial()
	caller := dial()

	require.NoError(t, callee.WriteMessage(websocket.TextMessage,
		[]byte(`{"kind":"register","userKey":"u1"}`)))
	require.Eventually(t, func() bool {
		_, ok := h.Lookup("u1")
		return ok
	}, 2*time.Second, 10*time.Millisecond, "registration not processed")

	require.NoError(t, caller.WriteMessage(websocket.TextMessage,
		[]byte(`{"kind":"offer","userKey":"u2","target":"u1","sdp":"v=0..."}`)))

	frame := readFrame(t, callee)
	assert.Equal(t, "offer", frame["kind"])
	assert.Equal(t, "u2", frame["sender"])
	assert.Equal(t, "v=0...", frame["sdp"])
}

func TestBroadcastOverLiveSockets(t *testing.T) {
	h := NewHub(zerolog.Nop())
	rt := NewRouter(h, zerolog.Nop())
	_, dial := dialTestServer(t, h, rt)

	first := dial()
	second := dial()
	require.Eventually(t, func() bool {
		return h.ClientCount() == 2
	}, 2*time.Second, 10*time.Millisecond)

	// Neither connection registered a client key; data-change events
	// reach every open socket anyway.
	h.Broadcast(Event{Kind: EventNewMessage, Data: map[string]string{"content": "hi"}})

	for _, conn := range []*websocket.Conn{first, second} {
		frame := readFrame(t, conn)
		assert.Equal(t, EventNewMessage, frame["kind"])
	}
}

func TestDisconnectPurgesRegistration(t *testing.T) {
	h := NewHub(zerolog.Nop())
	rt := NewRouter(h, zerolog.Nop())
	_, dial := dialTestServer(t, h, rt)

	conn := dial()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"kind":"register","userKey":"u1"}`)))
	require.Eventually(t, func() bool {
		return h.RegisteredCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return h.ClientCount() == 0 && h.RegisteredCount() == 0
	}, 2*time.Second, 10*time.Millisecond, "close notification did not clean up")
}
