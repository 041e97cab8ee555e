package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type silentLogger struct{}

func (silentLogger) Debug(module, message string, details map[string]interface{}) {}
func (silentLogger) Info(module, message string, details map[string]interface{})  {}
func (silentLogger) Warn(module, message string, details map[string]interface{})  {}
func (silentLogger) Error(module, message string, details map[string]interface{}) {}
func (silentLogger) Sync() error                                                  { return nil }

func registerTestClient(t *testing.T, hub *Hub, userID uuid.UUID) *Client {
	t.Helper()
	client := &Client{
		Hub:    hub,
		UserID: userID,
		Send:   make(chan []byte, 16),
	}
	hub.register <- client
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		for _, c := range hub.clients[userID] {
			if c == client {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
	return client
}

func receiveEnvelope(t *testing.T, client *Client) Envelope {
	t.Helper()
	select {
	case data := <-client.Send:
		var envelope Envelope
		require.NoError(t, json.Unmarshal(data, &envelope))
		return envelope
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
		return Envelope{}
	}
}

func TestHubSendReachesEveryDeviceOfOneUser(t *testing.T) {
	hub := NewHub(nil, silentLogger{})
	go hub.Run()

	userID := uuid.New()
	laptop := registerTestClient(t, hub, userID)
	phone := registerTestClient(t, hub, userID)
	stranger := registerTestClient(t, hub, uuid.New())

	hub.Send(userID, Envelope{Type: "generation_complete", Data: map[string]interface{}{"session_id": "s1"}})

	for _, client := range []*Client{laptop, phone} {
		envelope := receiveEnvelope(t, client)
		assert.Equal(t, "generation_complete", envelope.Type)
	}

	select {
	case <-stranger.Send:
		t.Fatal("delivery leaked to an unrelated user")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubBroadcastReachesEveryone(t *testing.T) {
	hub := NewHub(nil, silentLogger{})
	go hub.Run()

	a := registerTestClient(t, hub, uuid.New())
	b := registerTestClient(t, hub, uuid.New())

	hub.Broadcast(Envelope{Type: "maintenance", Data: "restart in 5m"})

	assert.Equal(t, "maintenance", receiveEnvelope(t, a).Type)
	assert.Equal(t, "maintenance", receiveEnvelope(t, b).Type)
}

func TestHubDeliversAcrossInstancesThroughRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	rdbA := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rdbB := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdbA.Close()
	defer rdbB.Close()

	hubA := NewHub(rdbA, silentLogger{})
	hubB := NewHub(rdbB, silentLogger{})
	go hubA.Run()
	go hubB.Run()

	userID := uuid.New()
	remote := registerTestClient(t, hubB, userID)

	// Both subscribers must be attached before publishing.
	require.Eventually(t, func() bool {
		counts, err := rdbA.PubSubNumSub(context.Background(), clusterChannel).Result()
		return err == nil && counts[clusterChannel] >= 2
	}, 2*time.Second, 10*time.Millisecond)

	hubA.Send(userID, Envelope{Type: "generation_complete", Data: "done"})

	envelope := receiveEnvelope(t, remote)
	assert.Equal(t, "generation_complete", envelope.Type)
}

func TestHubSkipsItsOwnClusterEcho(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	hub := NewHub(rdb, silentLogger{})
	go hub.Run()

	userID := uuid.New()
	client := registerTestClient(t, hub, userID)

	require.Eventually(t, func() bool {
		counts, err := rdb.PubSubNumSub(context.Background(), clusterChannel).Result()
		return err == nil && counts[clusterChannel] > 0
	}, 2*time.Second, 10*time.Millisecond)

	hub.Send(userID, Envelope{Type: "generation_complete", Data: "done"})

	assert.Equal(t, "generation_complete", receiveEnvelope(t, client).Type)

	// The hub's own cluster publication must not come back around.
	select {
	case <-client.Send:
		t.Fatal("local client received the same envelope twice")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestHubDropsSlowConsumerWithoutPanicking(t *testing.T) {
	hub := NewHub(nil, silentLogger{})
	go hub.Run()

	userID := uuid.New()
	slow := &Client{
		Hub:    hub,
		UserID: userID,
		Send:   make(chan []byte, 1),
	}
	hub.register <- slow
	slow.Send <- []byte("backlog") // buffer is now full

	hub.Send(userID, Envelope{Type: "generation_complete"})
	hub.Send(userID, Envelope{Type: "generation_complete"})

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients[userID]) == 0
	}, 2*time.Second, 10*time.Millisecond)

	// The backlog drains, then the channel reads as closed: one close,
	// owned by the unregister handler.
	assert.Equal(t, []byte("backlog"), <-slow.Send)
	_, open := <-slow.Send
	assert.False(t, open)
}
