package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"prd-studio-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// clusterChannel carries cross-instance deliveries. Every instance
// subscribes and forwards to the users it holds locally.
const clusterChannel = "studio_events"

// Envelope is the frame every websocket delivery is wrapped in.
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type Hub struct {
	// UserID -> open connections (a user may have several editors open)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance delivery; nil in single-node mode.
	rdb *redis.Client

	// instanceID marks this hub's own cluster publications so it does
	// not re-deliver them to local clients.
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send delivers an envelope to every open connection of one user, here
// and on other instances.
func (h *Hub) Send(userID uuid.UUID, envelope Envelope) {
	data, err := json.Marshal(envelope)
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal envelope", map[string]interface{}{"error": err.Error()})
		return
	}

	// Sends happen under the read lock so they cannot interleave with
	// the unregister handler closing a channel under the write lock.
	var dropped []*Client
	h.mu.RLock()
	for _, client := range h.clients[userID] {
		select {
		case client.Send <- data:
		default:
			dropped = append(dropped, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range dropped {
		// Slow consumer. The unregister handler owns the single close;
		// closing here too would double-close the channel.
		h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": userID})
		h.unregister <- client
	}

	// Other instances may hold more of this user's devices.
	if h.rdb != nil {
		payload, _ := json.Marshal(clusterPayload{Origin: h.instanceID, TargetUserID: userID.String(), Message: data})
		h.rdb.Publish(context.Background(), clusterChannel, payload)
	}
}

// Broadcast delivers an envelope to every connected client.
func (h *Hub) Broadcast(envelope Envelope) {
	data, err := json.Marshal(envelope)
	if err != nil {
		return
	}

	h.deliverToAll(data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterPayload{Origin: h.instanceID, TargetUserID: "*", Message: data})
		h.rdb.Publish(context.Background(), clusterChannel, payload)
	}
}

type clusterPayload struct {
	Origin       string          `json:"origin"`
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

func (h *Hub) deliverToAll(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

func (h *Hub) deliverToUser(userID uuid.UUID, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients[userID] {
		select {
		case client.Send <- data:
		default:
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterPayload
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Malformed cluster payload", map[string]interface{}{"error": err.Error()})
			continue
		}

		// Local clients already got this directly.
		if payload.Origin == h.instanceID {
			continue
		}

		if payload.TargetUserID == "*" {
			h.deliverToAll(payload.Message)
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}
		h.deliverToUser(uid, payload.Message)
	}
}
