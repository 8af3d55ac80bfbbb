// Package server broadcasts fluid frames to websocket clients, so a remote page
// or tool can render the simulation running in another process.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pthm-cable/pour/components"
)

// Frame is one broadcast message.
type Frame struct {
	Tick      int32                     `json:"tick"`
	Width     float32                   `json:"width"`
	Height    float32                   `json:"height"`
	Pouring   bool                      `json:"pouring"`
	StreamX   float32                   `json:"stream_x"`
	Cup       components.Cup            `json:"cup"`
	Particles []components.ParticleView `json:"particles"`
}

const (
	sendBuffer   = 4
	writeTimeout = 2 * time.Second
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected clients and fans frames out to them. Slow clients drop
// frames rather than stall the simulation.
type Hub struct {
	upgrader websocket.Upgrader
	interval time.Duration

	mu      sync.Mutex
	clients map[*client]struct{}
	latest  []byte
	lastPub time.Time
}

// NewHub creates a hub publishing at most rate frames per second (0 = unlimited).
func NewHub(rate float64) *Hub {
	var interval time.Duration
	if rate > 0 {
		interval = time.Duration(float64(time.Second) / rate)
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		interval: interval,
		clients:  make(map[*client]struct{}),
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request to a websocket and registers the client. A new
// client immediately receives the latest frame, if any.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		var hsErr websocket.HandshakeError
		if !errors.As(err, &hsErr) {
			slog.Error("websocket upgrade failed", "error", err)
		}
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.latest != nil {
		c.send <- h.latest
	}
	n := len(h.clients)
	h.mu.Unlock()

	slog.Info("client connected", "remote", r.RemoteAddr, "clients", n)

	go h.writeLoop(c)
	go h.readLoop(c)
}

// readLoop discards incoming messages and unregisters the client when it goes away.
func (h *Hub) readLoop(c *client) {
	defer h.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("client read failed", "error", err)
			}
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.remove(c)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// Publish encodes f and queues it for every client. Frames arriving faster than
// the hub's rate are skipped. Returns whether the frame was sent.
func (h *Hub) Publish(f *Frame) (bool, error) {
	h.mu.Lock()
	now := time.Now()
	if h.interval > 0 && !h.lastPub.IsZero() && now.Sub(h.lastPub) < h.interval {
		h.mu.Unlock()
		return false, nil
	}
	h.lastPub = now
	h.mu.Unlock()

	msg, err := json.Marshal(f)
	if err != nil {
		return false, fmt.Errorf("encoding frame: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = msg
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
		}
	}
	return true, nil
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// ListenAndServe serves the hub at /ws on addr until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, h *Hub) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)

	srv := &http.Server{Addr: addr, Handler: mux}
	errc := make(chan error, 1)
	go func() {
		slog.Info("broadcasting frames", "addr", addr, "path", "/ws")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving websocket: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		h.Close()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down websocket server: %w", err)
		}
		return nil
	}
}
