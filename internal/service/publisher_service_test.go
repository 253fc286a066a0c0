package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ollama-chat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversEnvelope(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, "TEST_EVENTS")
	require.NoError(t, err)

	publisher := NewPublisherService(pubSub, "TEST_EVENTS", nopLogger{})
	publisher.Publish(ctx, events.New(events.TypeChatCompleted, map[string]interface{}{
		"session_id": "s1",
	}))

	select {
	case msg := <-messages:
		var envelope events.BaseEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &envelope))
		assert.Equal(t, events.TypeChatCompleted, envelope.Type)
		assert.Equal(t, "s1", envelope.Data["session_id"])
		assert.False(t, envelope.OccurredAt.IsZero())
		msg.Ack()
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered within 2s")
	}
}
