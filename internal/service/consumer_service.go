package service

import (
	"context"
	"encoding/json"

	"ollama-chat-be/internal/pkg/logger"
	"ollama-chat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the domain event topic and writes one audit line
// per event. Runs in the background for the process lifetime.
type consumerService struct {
	pubSub *gochannel.GoChannel
	topic  string
	logger logger.ILogger
}

func NewConsumerService(pubSub *gochannel.GoChannel, topic string, log logger.ILogger) IConsumerService {
	return &consumerService{
		pubSub: pubSub,
		topic:  topic,
		logger: log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var evt events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		cs.logger.Warn("EVENTS", "Dropping malformed event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	details := map[string]interface{}{"occurred_at": evt.OccurredAt}
	for k, v := range evt.Data {
		details[k] = v
	}
	cs.logger.Info("EVENTS", evt.Type, details)
	msg.Ack()
}
