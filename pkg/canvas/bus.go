package canvas

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// EventType identifies what changed on a canvas.
type EventType string

const (
	EventDataChanged EventType = "data_changed"
	EventNameChanged EventType = "name_changed"
	EventDeleted     EventType = "deleted"
)

// Event is one canvas mutation broadcast to every open editor showing
// that canvas.
type Event struct {
	CanvasID uuid.UUID       `json:"canvas_id"`
	Type     EventType       `json:"type"`
	Name     string          `json:"name,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// Bus fans canvas mutations out to subscribers. Each canvas gets its
// own topic so an editor only receives events for canvases it has open.
type Bus struct {
	pubSub *gochannel.GoChannel
}

func NewBus(logger watermill.LoggerAdapter) *Bus {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &Bus{
		pubSub: gochannel.NewGoChannel(gochannel.Config{}, logger),
	}
}

func topicFor(canvasID uuid.UUID) string {
	return "canvas." + canvasID.String()
}

// Publish broadcasts one event to every subscriber of the canvas topic.
func (b *Bus) Publish(event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal canvas event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return b.pubSub.Publish(topicFor(event.CanvasID), msg)
}

// Subscribe delivers events for one canvas until ctx is cancelled.
// Malformed payloads are acked and dropped rather than retried.
func (b *Bus) Subscribe(ctx context.Context, canvasID uuid.UUID) (<-chan Event, error) {
	messages, err := b.pubSub.Subscribe(ctx, topicFor(canvasID))
	if err != nil {
		return nil, err
	}

	events := make(chan Event)
	go func() {
		defer close(events)
		for msg := range messages {
			var event Event
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				msg.Ack()
				continue
			}
			msg.Ack()
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}

// Close shuts the underlying pub/sub down, closing all subscriptions.
func (b *Bus) Close() error {
	return b.pubSub.Close()
}
