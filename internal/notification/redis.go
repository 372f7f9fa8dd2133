package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront-be/internal/event"

	"github.com/redis/go-redis/v9"
)

const OrdersCreatedChannel = "orders.created"

// redisPublisher is the part of *redis.Client the publisher uses.
type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

type RedisPublisher struct {
	client  redisPublisher
	closer  func() error
	channel string
}

func NewRedisPublisher(addr string) *RedisPublisher {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisPublisher{client: client, closer: client.Close, channel: OrdersCreatedChannel}
}

func newRedisPublisherWithClient(client redisPublisher) *RedisPublisher {
	return &RedisPublisher{client: client, closer: func() error { return nil }, channel: OrdersCreatedChannel}
}

func (p *RedisPublisher) Publish(ctx context.Context, msg OrderMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, p.channel, body).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", p.channel, err)
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.closer()
}

func (p *RedisPublisher) Listener() event.Listener {
	return event.Listener{
		Name: "redis",
		Handle: func(ctx context.Context, payload any) error {
			c, err := created(payload)
			if err != nil {
				return err
			}
			return p.Publish(ctx, newOrderMessage(c))
		},
	}
}
