// Package ws pushes task events to websocket subscribers.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gaspigz/taskManagerClg/internal/events"
	"github.com/gaspigz/taskManagerClg/internal/platform/metrics"
)

// Hub tracks connected clients and broadcasts task events to all of them.
// It implements events.EventHandler.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	closed  bool
	logger  *slog.Logger
}

var _ events.EventHandler = (*Hub)(nil)

// NewHub creates an empty Hub.
func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  log.With(slog.String("component", "ws_hub")),
	}
}

// Name implements events.NamedHandler.
func (h *Hub) Name() string { return "websocket" }

// register adds a client. It returns false once the hub is closed.
func (h *Hub) register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	metrics.WSClients.Inc()
	h.logger.Debug("client connected",
		slog.Int64("user_id", c.userID),
		slog.Int("clients", len(h.clients)))
	return true
}

// unregister removes a client and closes its send channel. Safe to call twice.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	metrics.WSClients.Dec()
	h.logger.Debug("client disconnected",
		slog.Int64("user_id", c.userID),
		slog.Int("clients", len(h.clients)))
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues msg for every client. A client whose buffer is full is
// disconnected rather than allowed to stall the others.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("dropping slow websocket client", slog.Int64("user_id", c.userID))
			h.removeLocked(c)
		}
	}
}

// HandleEvent implements events.EventHandler.
func (h *Hub) HandleEvent(ctx context.Context, event *events.TaskEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}
	h.Broadcast(msg)
	return nil
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}
