package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const DefaultChannel = "tictactoe:events"

var ErrEmptyChannel = errors.New("redis channel name is empty")

// NewClient - connects to Redis and checks the connection.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// Publisher sends round events to a Redis pub/sub channel. Nothing is stored.
type Publisher struct {
	client  *redis.Client
	channel string
}

func NewPublisher(client *redis.Client, channel string) (*Publisher, error) {
	if channel == "" {
		return nil, ErrEmptyChannel
	}

	return &Publisher{
		client:  client,
		channel: channel,
	}, nil
}

// Notify - publishes the event as JSON.
func (that *Publisher) Notify(ctx context.Context, event entity.Event) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err = that.client.Publish(ctx, that.channel, eventJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish event in Redis: %w", err)
	}

	return nil
}

func (that *Publisher) Channel() string {
	return that.channel
}
