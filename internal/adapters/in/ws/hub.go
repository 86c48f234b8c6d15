// Package ws pushes shipment status snapshots to browsers over websockets.
// Each connection follows exactly one tracking code.
package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"logistics/internal/core/domain/model/kernel"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	// sendBuffer is how many undelivered snapshots a slow client may queue
	// before new ones are dropped for it.
	sendBuffer = 16
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub implements ports.Notifier for connected websocket clients.
type Hub struct {
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu          sync.RWMutex
	subscribers map[string]map[*client]struct{}
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		subscribers: make(map[string]map[*client]struct{}),
	}
}

// Publish queues payload for every client following topic. A client whose
// buffer is full misses the message.
func (h *Hub) Publish(_ context.Context, topic string, payload []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.subscribers[topic] {
		select {
		case c.send <- payload:
		default:
			h.logger.Warn("websocket client is too slow, dropping snapshot", zap.String("trackingCode", topic))
		}
	}
	return nil
}

// Subscribers reports how many clients follow topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[topic])
}

// Serve upgrades the request and streams snapshots for code until the client
// goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, code kernel.TrackingCode) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	topic := code.String()
	h.subscribe(topic, c)
	h.logger.Debug("websocket client subscribed",
		zap.String("trackingCode", topic), zap.String("remoteAddr", conn.RemoteAddr().String()))

	done := make(chan struct{})
	go h.writeLoop(c, done)
	h.readLoop(c)

	h.unsubscribe(topic, c)
	close(done)
	h.logger.Debug("websocket client left", zap.String("trackingCode", topic))
	return nil
}

// readLoop discards client messages and returns when the connection fails or
// stops answering pings.
func (h *Hub) readLoop(c *client) {
	defer c.conn.Close()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket connection closed unexpectedly", zap.Error(err))
			}
			return
		}
	}
}

func (h *Hub) writeLoop(c *client, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case payload := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				_ = c.conn.Close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = c.conn.Close()
				return
			}
		}
	}
}

func (h *Hub) subscribe(topic string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subscribers[topic]
	if !ok {
		set = make(map[*client]struct{})
		h.subscribers[topic] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unsubscribe(topic string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set := h.subscribers[topic]
	delete(set, c)
	if len(set) == 0 {
		delete(h.subscribers, topic)
	}
}
