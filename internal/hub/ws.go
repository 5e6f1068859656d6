package hub

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from arbitrary origins, matching the
	// wide-open CORS policy on the HTTP side.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS returns the handler for the WebSocket endpoint. It upgrades
// the request, attaches the connection to the hub, and starts the
// read/write pumps.
func ServeWS(h *Hub, router *Router, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error().Err(err).Str("remote_addr", r.RemoteAddr).Msg("websocket upgrade failed")
			return
		}

		client := newClient(h, router, conn, logger)
		h.Add(client)

		go client.writePump()
		go client.readPump()
	}
}
