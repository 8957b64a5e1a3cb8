// Package events broadcasts store activity to connected websocket clients
// so a browsing UI can react without polling.
package events

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	TypeCacheFill       = "cache_fill"
	TypeWatchlistAdd    = "watchlist_add"
	TypeWatchlistRemove = "watchlist_remove"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
	Time    time.Time   `json:"time"`
}

// Hub fans events out to all registered connections. A connection that
// fails a write is dropped.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]bool)}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	if h.conns[conn] {
		delete(h.conns, conn)
		conn.Close()
	}
	h.mu.Unlock()
}

func (h *Hub) Broadcast(eventType string, payload interface{}) {
	evt := Event{Type: eventType, Payload: payload, Time: time.Now()}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(evt); err != nil {
			delete(h.conns, conn)
			conn.Close()
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
