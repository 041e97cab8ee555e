package websocket

import (
	"context"

	pkgcanvas "prd-studio-be/pkg/canvas"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs wires one upgraded connection into the hub and the canvas
// event bus, then blocks on the read pump until the peer goes away.
func ServeWs(hub *Hub, bus *pkgcanvas.Bus, c *websocket.Conn, userID uuid.UUID) {
	client := &Client{
		Hub:    hub,
		Conn:   c,
		UserID: userID,
		Send:   make(chan []byte, 256),
		bus:    bus,
		subs:   make(map[uuid.UUID]context.CancelFunc),
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
