package testutil

import (
	"context"
	"sync"

	"github.com/questx-lab/rewardengine/pkg/pubsub"
)

type PublishedMessage struct {
	Topic string
	Pack  *pubsub.Pack
}

// MockPublisher records every published message. PublishFunc, if set, decides
// the returned error.
type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error

	mu       sync.Mutex
	messages []PublishedMessage
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	m.mu.Lock()
	m.messages = append(m.messages, PublishedMessage{Topic: topic, Pack: pack})
	m.mu.Unlock()

	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	return nil
}

func (m *MockPublisher) Messages(topic string) []PublishedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []PublishedMessage
	for _, msg := range m.messages {
		if msg.Topic == topic {
			result = append(result, msg)
		}
	}

	return result
}
