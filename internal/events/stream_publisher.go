package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// StreamPublisher appends lifecycle events to a Redis stream, giving other
// services an audit feed of admin actions.
type StreamPublisher struct {
	client *redis.Client
	stream string
}

// NewStreamPublisher creates a publisher writing to stream.
func NewStreamPublisher(client *redis.Client, stream string) *StreamPublisher {
	return &StreamPublisher{client: client, stream: stream}
}

// Handle implements EventHandler.
func (p *StreamPublisher) Handle(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"type":  string(event.Type),
			"event": body,
		},
	}
	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("publish event to stream %s: %w", p.stream, err)
	}
	return nil
}
