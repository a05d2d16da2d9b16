package socket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// sendBuffer bounds the per-client outbound queue. A client that stops
// reading gets messages dropped rather than blocking the hub.
const sendBuffer = 64

// client pairs a connection with its outbound queue. Every write to the
// connection goes through the write pump; gorilla allows a single writer per
// connection.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (c *client) writePump() {
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("WebSocket write failed: %v", err)
		}
	}
}

// Hub manages the connected WebSocket clients (guard-booth kiosks and the
// admin dashboard).
type Hub struct {
	// clients maps a connection id to its client. mu also orders enqueues
	// against the channel close in Unregister.
	clients map[string]*client
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
	}
}

// Register adds a client to the Hub and starts its write pump.
func (h *Hub) Register(clientID string, conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[clientID] = c
	h.mu.Unlock()
	go c.writePump()
	log.Printf("WebSocket client registered: %s", clientID)
}

// Unregister removes a client from the Hub and stops its write pump.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[clientID]; ok {
		delete(h.clients, clientID)
		close(c.send)
		log.Printf("WebSocket client unregistered: %s", clientID)
	}
}

// Send queues a message for one client. An offline client is not an error.
func (h *Hub) Send(clientID string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	c, ok := h.clients[clientID]
	if !ok {
		log.Printf("WebSocket client not found, could not send message: %s", clientID)
		return
	}
	h.enqueue(clientID, c, message)
}

// Broadcast queues an event for every connected client. Used for the live
// entry/exit feed.
func (h *Hub) Broadcast(event interface{}) {
	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("WebSocket broadcast marshal failed: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for clientID, c := range h.clients {
		h.enqueue(clientID, c, message)
	}
}

// enqueue must run under mu so no send races the channel close in Unregister.
func (h *Hub) enqueue(clientID string, c *client, message []byte) {
	select {
	case c.send <- message:
	default:
		log.Printf("WebSocket client %s is not keeping up, dropping message", clientID)
	}
}
