package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gaspigz/taskManagerClg/internal/events"
	goredis "github.com/redis/go-redis/v9"
)

// Publisher forwards task events to a Redis pub/sub channel so other
// processes can subscribe. It implements events.EventHandler.
type Publisher struct {
	client  *goredis.Client
	channel string
}

var _ events.EventHandler = (*Publisher)(nil)

// NewPublisher creates a Publisher for channel.
func NewPublisher(client *goredis.Client, channel string) *Publisher {
	return &Publisher{client: client, channel: channel}
}

// Name implements events.NamedHandler.
func (p *Publisher) Name() string { return "redis" }

// HandleEvent implements events.EventHandler.
func (p *Publisher) HandleEvent(ctx context.Context, event *events.TaskEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event to %s: %w", p.channel, err)
	}
	return nil
}
