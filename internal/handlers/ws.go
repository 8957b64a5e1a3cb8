package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"streambox/internal/events"
	"streambox/internal/utils"
)

// WSHandler upgrades /api/events requests and feeds them into the hub.
type WSHandler struct {
	hub      *events.Hub
	logger   *utils.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *events.Hub, logger *utils.Logger) *WSHandler {
	return &WSHandler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Websocket upgrade failed:", err)
		return
	}

	h.hub.Register(conn)

	// The stream is one-way; the read loop only notices disconnects.
	go func() {
		defer h.hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
