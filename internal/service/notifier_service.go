package service

import (
	"context"

	"prd-studio-be/internal/pkg/logger"
	"prd-studio-be/internal/websocket"
	"prd-studio-be/pkg/events"
	pktNats "prd-studio-be/pkg/nats"

	"github.com/google/uuid"
)

type INotifierService interface {
	Start() error
}

// notifierService consumes domain events off the bus and pushes them to
// connected editors, so other devices and collaborators see document
// and roadmap activity without polling.
type notifierService struct {
	subscriber *pktNats.Subscriber
	hub        *websocket.Hub
	logger     logger.ILogger
}

func NewNotifierService(subscriber *pktNats.Subscriber, hub *websocket.Hub, log logger.ILogger) INotifierService {
	return &notifierService{
		subscriber: subscriber,
		hub:        hub,
		logger:     log,
	}
}

func (s *notifierService) Start() error {
	return s.subscriber.Subscribe("studio.>", "studio-notifier", s.deliver)
}

func (s *notifierService) deliver(ctx context.Context, event events.Event) error {
	envelope := websocket.Envelope{
		Type: event.EventType(),
		Data: event.Payload(),
	}

	// Events carrying a user id go to that user's devices only.
	if raw, ok := event.Payload()["user_id"].(string); ok {
		if userId, err := uuid.Parse(raw); err == nil {
			s.hub.Send(userId, envelope)
			return nil
		}
	}

	s.hub.Broadcast(envelope)
	return nil
}
