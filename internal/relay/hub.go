// SPDX-License-Identifier: Apache-2.0

// Package relay implements the broadcast side of the whiteboard: a
// websocket fan-out hub behind a small HTTP surface.
//
// The hub is deliberately dumb. It forwards each inbound frame,
// verbatim and unparsed, to every other open connection. It never
// echoes a frame back to its sender, never retries, never acknowledges
// and never validates payloads; malformed frames are the consumer's
// problem. A recipient that is closed or too slow is skipped, not
// failed.
package relay

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/metrics"
)

const sendBufferSize = 256

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The relay trusts its LAN; origin checks belong to a fronting
	// proxy if one is ever deployed.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type frame struct {
	messageType int
	data        []byte
}

type client struct {
	ws        *websocket.Conn
	send      chan frame
	closeOnce sync.Once
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// Hub owns the set of open connections. The set is shared mutable
// state: fan-out iterates under a read lock while connects and
// disconnects take the write lock, so a connection can never be
// removed mid-iteration.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}

	return &Hub{
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
}

// Len reports the number of open connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleWS upgrades the request and services the connection until the
// peer goes away. One reader goroutine per connection feeds the hub;
// one writer goroutine drains the connection's send buffer.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{ws: ws, send: make(chan frame, sendBufferSize)}
	h.register(c)
	h.logger.Info("participant connected", "remote", ws.RemoteAddr().String())

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	metrics.IncConnections()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	c.close()
	metrics.DecConnections()
}

// broadcast fans one frame out to every open connection except the
// sender. Best-effort: a recipient whose buffer is full loses the
// frame rather than stalling the sender's read loop.
func (h *Hub) broadcast(sender *client, f frame) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for peer := range h.clients {
		if peer == sender {
			continue
		}
		select {
		case peer.send <- f:
			metrics.IncFramesRelayed()
		default:
			metrics.IncFramesDropped(metrics.DropSlowClient)
		}
	}
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.ws.Close()
		h.logger.Info("participant disconnected", "remote", c.ws.RemoteAddr().String())
	}()

	for {
		messageType, data, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		h.broadcast(c, frame{messageType: messageType, data: data})
	}
}

func (h *Hub) writePump(c *client) {
	defer func() {
		_ = c.ws.Close()
	}()

	broken := false
	for f := range c.send {
		if broken {
			// Keep draining so broadcast never blocks on us.
			metrics.IncFramesDropped(metrics.DropClosed)
			continue
		}
		if err := c.ws.WriteMessage(f.messageType, f.data); err != nil {
			metrics.IncFramesDropped(metrics.DropClosed)
			broken = true
		}
	}
	_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
}
