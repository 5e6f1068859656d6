package hub

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer. A client that
	// disconnects without a close frame hits this deadline, which turns
	// the silent disconnect into a read error and triggers cleanup.
	pongWait = 60 * time.Second

	// Send pings with this period; must be less than pongWait.
	pingPeriod = 54 * time.Second

	// Maximum inbound frame size. Signaling payloads (SDP blobs) are a
	// few KB at most.
	maxFrameSize = 64 * 1024

	// Outbound frame buffer per connection. A full buffer counts as a
	// failed send.
	sendBufferSize = 256
)

// Client is one live WebSocket connection. Outbound frames go through a
// buffered channel drained by a single write pump, which preserves
// per-connection FIFO ordering.
type Client struct {
	id     string
	hub    *Hub
	router *Router
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	once   sync.Once
	logger zerolog.Logger
}

func newClient(h *Hub, router *Router, conn *websocket.Conn, logger zerolog.Logger) *Client {
	id := uuid.NewString()
	return &Client{
		id:     id,
		hub:    h,
		router: router,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
		logger: logger.With().Str("conn", id).Logger(),
	}
}

// trySend queues a frame for delivery without blocking. It returns false
// when the connection is closed or its buffer is full; the caller decides
// what a failed send means.
func (c *Client) trySend(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// close signals the write pump to stop. Safe to call more than once.
func (c *Client) close() {
	c.once.Do(func() {
		close(c.done)
	})
}

// readPump reads frames from the socket and hands them to the router.
// It exits on the first read error, which is the single close
// notification for this connection: the deferred Remove purges every
// registry entry pointing at it.
func (c *Client) readPump() {
	defer func() {
		c.hub.Remove(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug().Err(err).Msg("connection closed unexpectedly")
			}
			return
		}
		c.router.Route(c, raw)
	}
}

// writePump drains the send channel onto the socket and keeps the
// connection alive with periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Debug().Err(err).Msg("write failed")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
