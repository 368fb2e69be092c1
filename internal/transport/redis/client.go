package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

const DefaultChannel = "tictactoe:events"

// Client publishes game events to a Redis pub/sub channel.
type Client struct {
	client  *redis.Client
	channel string
}

// New - connects to Redis and checks the connection with a ping.
func New(ctx context.Context, addr, channel string) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewWithClient(rdb, channel), nil
}

func NewWithClient(client *redis.Client, channel string) *Client {
	if channel == "" {
		channel = DefaultChannel
	}

	return &Client{
		client:  client,
		channel: channel,
	}
}

func (that *Client) Channel() string {
	return that.channel
}

// Publish - sends the event as JSON to the configured channel.
func (that *Client) Publish(ctx context.Context, event *entity.GameEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal game event: %w", err)
	}

	if err = that.client.Publish(ctx, that.channel, eventJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish game event: %w", err)
	}

	return nil
}

func (that *Client) Close() error {
	if err := that.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}

// NopPublisher drops every event. It is used when the event feed is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *entity.GameEvent) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
