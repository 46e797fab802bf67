package services

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

// OrdersHub fans the live order list out to every connected staff
// client. gorilla/websocket allows only one concurrent writer per
// connection, so every write goes through that connection's own mutex.
type OrdersHub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]*sync.Mutex
}

func NewOrdersHub() *OrdersHub {
	return &OrdersHub{clients: make(map[*websocket.Conn]*sync.Mutex)}
}

func (h *OrdersHub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = &sync.Mutex{}
	h.mu.Unlock()
}

func (h *OrdersHub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

func (h *OrdersHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Send writes one message to a single registered client, serialized
// against concurrent broadcasts to the same connection.
func (h *OrdersHub) Send(conn *websocket.Conn, payload any) error {
	msg, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	h.mu.RLock()
	wmu, ok := h.clients[conn]
	h.mu.RUnlock()
	if !ok {
		return errors.New("connection is not registered")
	}
	wmu.Lock()
	defer wmu.Unlock()
	return conn.WriteMessage(websocket.TextMessage, msg)
}

func (h *OrdersHub) Broadcast(payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	clients := make(map[*websocket.Conn]*sync.Mutex, len(h.clients))
	for conn, wmu := range h.clients {
		clients[conn] = wmu
	}
	h.mu.RUnlock()
	for conn, wmu := range clients {
		wmu.Lock()
		_ = conn.WriteMessage(websocket.TextMessage, msg)
		wmu.Unlock()
	}
}
