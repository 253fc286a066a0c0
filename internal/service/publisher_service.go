package service

import (
	"context"
	"encoding/json"

	"ollama-chat-be/internal/pkg/logger"
	"ollama-chat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	// Publish emits a domain event. Fire-and-forget: failures are logged,
	// never propagated to the caller.
	Publish(ctx context.Context, evt events.Event)
}

type publisherService struct {
	pubSub *gochannel.GoChannel
	topic  string
	logger logger.ILogger
}

func NewPublisherService(pubSub *gochannel.GoChannel, topic string, log logger.ILogger) IPublisherService {
	return &publisherService{
		pubSub: pubSub,
		topic:  topic,
		logger: log,
	}
}

func (p *publisherService) Publish(ctx context.Context, evt events.Event) {
	envelope := events.BaseEvent{
		Type:       evt.EventType(),
		Data:       evt.Payload(),
		OccurredAt: evt.Timestamp(),
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		p.logger.Error("EVENTS", "Failed to marshal event", map[string]interface{}{
			"type": evt.EventType(), "error": err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := p.pubSub.Publish(p.topic, msg); err != nil {
		p.logger.Error("EVENTS", "Failed to publish event", map[string]interface{}{
			"type": evt.EventType(), "error": err.Error(),
		})
	}
}
