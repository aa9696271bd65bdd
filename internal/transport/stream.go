package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

// Message types pushed to stream clients.
const (
	MessageCarousel = "carousel"
	MessageGallery  = "gallery"
	MessageProfile  = "profile"
)

// Message is one frame on the change stream.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// HubOptions configures a Hub.
type HubOptions struct {
	// AllowedOrigins limits browser origins; empty or "*" allows any.
	AllowedOrigins []string
	// Snapshot returns the messages a client receives on connect. It runs
	// with the hub locked and must not call back into the hub.
	Snapshot func() []Message
	// OnClientCount observes the number of connected clients.
	OnClientCount func(int)
}

type streamClient struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub fans controller snapshots out to WebSocket clients. Slow clients
// are dropped rather than allowed to block a broadcast.
type Hub struct {
	upgrader websocket.Upgrader
	opts     HubOptions
	logger   *slog.Logger

	mu      sync.Mutex
	clients map[string]*streamClient
	closed  bool
}

// NewHub creates a Hub.
func NewHub(opts HubOptions, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &Hub{
		opts:    opts,
		logger:  logger,
		clients: make(map[string]*streamClient),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origins := h.opts.AllowedOrigins
	if len(origins) == 0 || slices.Contains(origins, "*") {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || slices.Contains(origins, origin)
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends msg to every connected client.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("encoding stream message", "type", msg.Type, "error", err)
		return
	}

	h.mu.Lock()
	dropped := false
	for _, c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("dropping slow stream client", "client_id", c.id)
			dropped = h.removeLocked(c) || dropped
		}
	}
	n := len(h.clients)
	h.mu.Unlock()

	if dropped {
		h.reportCount(n)
	}
}

// ServeHTTP upgrades the request and streams messages until the client
// disconnects or the hub closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("stream upgrade failed", "error", err)
		return
	}

	c := &streamClient{id: uuid.NewString(), conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.add(c) {
		conn.Close()
		return
	}
	h.logger.Debug("stream client connected", "client_id", c.id)

	go h.writePump(c)
	h.readPump(c)
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	dropped := false
	for _, c := range h.clients {
		dropped = h.removeLocked(c) || dropped
	}
	h.mu.Unlock()

	if dropped {
		h.reportCount(0)
	}
}

// add registers c and queues the snapshot in the same critical section,
// so any broadcast not reflected in the snapshot is delivered after it.
func (h *Hub) add(c *streamClient) bool {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return false
	}
	if h.opts.Snapshot != nil {
		for _, msg := range h.opts.Snapshot() {
			data, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			select {
			case c.send <- data:
			default:
			}
		}
	}
	h.clients[c.id] = c
	n := len(h.clients)
	h.mu.Unlock()

	h.reportCount(n)
	return true
}

func (h *Hub) remove(c *streamClient) {
	h.mu.Lock()
	removed := h.removeLocked(c)
	n := len(h.clients)
	h.mu.Unlock()

	if removed {
		h.reportCount(n)
	}
}

func (h *Hub) removeLocked(c *streamClient) bool {
	if _, ok := h.clients[c.id]; !ok {
		return false
	}
	delete(h.clients, c.id)
	close(c.send)
	return true
}

func (h *Hub) reportCount(n int) {
	if h.opts.OnClientCount != nil {
		h.opts.OnClientCount(n)
	}
}

func (h *Hub) readPump(c *streamClient) {
	defer func() {
		h.remove(c)
		c.conn.Close()
		h.logger.Debug("stream client disconnected", "client_id", c.id)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *streamClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
