package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	pkgcanvas "prd-studio-be/pkg/canvas"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// inboundMessage is what editors send up the socket: canvas topic
// subscriptions, nothing else for now.
type inboundMessage struct {
	Action   string    `json:"action"` // subscribe_canvas | unsubscribe_canvas
	CanvasID uuid.UUID `json:"canvas_id"`
}

// Client is a middleman between one websocket connection and the hub.
type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	UserID uuid.UUID

	// Buffered channel of outbound messages.
	Send chan []byte

	// Canvas event bus for live drawing sync.
	bus *pkgcanvas.Bus

	// Active canvas subscriptions, canvas id -> cancel.
	subMu sync.Mutex
	subs  map[uuid.UUID]context.CancelFunc
}

// subscribeCanvas starts forwarding one canvas's events down this
// connection. Repeat subscriptions are ignored.
func (c *Client) subscribeCanvas(canvasID uuid.UUID) {
	if c.bus == nil {
		return
	}

	c.subMu.Lock()
	if _, exists := c.subs[canvasID]; exists {
		c.subMu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.subs[canvasID] = cancel
	c.subMu.Unlock()

	events, err := c.bus.Subscribe(ctx, canvasID)
	if err != nil {
		cancel()
		return
	}

	go func() {
		for event := range events {
			data, err := json.Marshal(Envelope{Type: "canvas_event", Data: event})
			if err != nil {
				continue
			}
			select {
			case c.Send <- data:
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (c *Client) unsubscribeCanvas(canvasID uuid.UUID) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	if cancel, ok := c.subs[canvasID]; ok {
		cancel()
		delete(c.subs, canvasID)
	}
}

func (c *Client) cancelAllSubscriptions() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for id, cancel := range c.subs {
		cancel()
		delete(c.subs, id)
	}
}

// readPump pumps messages from the websocket connection to the hub.
func (c *Client) readPump() {
	defer func() {
		c.cancelAllSubscriptions()
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		switch msg.Action {
		case "subscribe_canvas":
			c.subscribeCanvas(msg.CanvasID)
		case "unsubscribe_canvas":
			c.unsubscribeCanvas(msg.CanvasID)
		}
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Flush anything already queued into the same frame batch.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
