package service

import (
	"context"

	"shop-backend/pkg/logging"
)

// EventPublisher is satisfied by mykafka.Producer. A nil publisher disables
// event publication; persistence never depends on it.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event interface{}) error
}

func publish(ctx context.Context, p EventPublisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("event publish failed", "topic", topic, "error", err)
	}
}
