// Package live streams match updates to websocket subscribers. Each
// connection follows one career.
package live

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	service "github.com/okian/matchday/internal/app"
	"github.com/okian/matchday/pkg/logger"
	"github.com/okian/matchday/pkg/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

type client struct {
	hub      *Hub
	careerID string
	conn     *websocket.Conn
	send     chan []byte
}

// Hub fans match updates out to the clients of each career.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
	closed  bool

	logger logger.Logger
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
		logger:  logger.Get().Named("live"),
	}
}

// Publish implements service.Publisher. Slow clients whose buffer is full
// are disconnected.
func (h *Hub) Publish(careerID string, u service.MatchUpdate) {
	h.mu.RLock()
	subs := h.clients[careerID]
	if len(subs) == 0 {
		h.mu.RUnlock()
		return
	}
	msg, err := json.Marshal(u)
	if err != nil {
		h.mu.RUnlock()
		h.logger.Error(context.Background(), "encode update", logger.Career(careerID), logger.Error(err))
		return
	}
	var slow []*client
	for c := range subs {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.unregister(c)
	}
}

// Serve upgrades the request and subscribes it to careerID.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, careerID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn(r.Context(), "websocket upgrade failed", logger.Career(careerID), logger.Error(err))
		return
	}
	c := &client{hub: h, careerID: careerID, conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.register(c) {
		_ = conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, subs := range h.clients {
		n += len(subs)
	}
	return n
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	for id, subs := range h.clients {
		for c := range subs {
			close(c.send)
		}
		delete(h.clients, id)
	}
	h.mu.Unlock()
	metrics.UpdateLiveClients(0)
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return false
	}
	subs, ok := h.clients[c.careerID]
	if !ok {
		subs = make(map[*client]struct{})
		h.clients[c.careerID] = subs
	}
	subs[c] = struct{}{}
	h.mu.Unlock()
	metrics.UpdateLiveClients(h.ClientCount())
	return true
}

// unregister removes c and closes its send channel once.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	subs := h.clients[c.careerID]
	if _, ok := subs[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(subs, c)
	if len(subs) == 0 {
		delete(h.clients, c.careerID)
	}
	close(c.send)
	h.mu.Unlock()
	metrics.UpdateLiveClients(h.ClientCount())
}

// readPump discards client messages and notices disconnects.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
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

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
