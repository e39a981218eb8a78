package handler

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

const eventsChannel = "pos:events"

// Events announced after a committed state change. At-most-once, no replay:
// a panel that connects later re-fetches over REST.
const (
	EventOrderCreated   = "order_created"
	EventOrderReady     = "order_ready"
	EventOrderDelivered = "order_delivered"
	EventOrderVoided    = "order_voided"
)

// Hub fans events out to every connected panel (kitchen, rider, cashier).
// Events travel through a Redis channel so multiple instances stay in sync.
type Hub struct {
	rdb     *redis.Client
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewHub(redisAddr string) *Hub {
	return &Hub{
		rdb:     redis.NewClient(&redis.Options{Addr: redisAddr}),
		clients: make(map[*websocket.Conn]bool),
	}
}

// Run subscribes to the event channel and forwards every message to all
// connected sockets. Meant to run in its own goroutine for the process
// lifetime.
func (h *Hub) Run() {
	pubsub := h.rdb.Subscribe(context.Background(), eventsChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		payload := []byte(msg.Payload)

		h.mu.Lock()
		for conn := range h.clients {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(h.clients, conn)
			}
		}
		h.mu.Unlock()
	}
}

// Emit publishes an event after a state change has committed. Fire and
// forget: a publish failure is logged, never surfaced to the caller.
func (h *Hub) Emit(event string, payload any) {
	msg, err := json.Marshal(map[string]any{"event": event, "data": payload})
	if err != nil {
		log.Printf("event marshal failed: %v", err)
		return
	}
	if err := h.rdb.Publish(context.Background(), eventsChannel, msg).Err(); err != nil {
		log.Printf("event publish failed: %v", err)
	}
}

// Serve registers a websocket client and blocks until it disconnects.
// Clients only listen; inbound frames are drained and dropped.
func (h *Hub) Serve(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
