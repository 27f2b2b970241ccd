package confirmation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hotelbook/booking-api/internal/domain/booking"
)

// DefaultChannel is the Redis pub/sub channel for confirmations.
const DefaultChannel = "booking:confirmations"

// RedisPublisher is the part of *redis.Client used by RedisSink.
type RedisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisSink publishes confirmations as JSON on a Redis channel.
type RedisSink struct {
	client   RedisPublisher
	channel  string
	currency string
}

// NewRedisSink creates a Redis sink.
func NewRedisSink(client RedisPublisher, channel, currency string) *RedisSink {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisSink{client: client, channel: channel, currency: currency}
}

func (s *RedisSink) Name() string { return "redis" }

// Confirm implements booking.Sink.
func (s *RedisSink) Confirm(ctx context.Context, c booking.Confirmation) error {
	payload, err := json.Marshal(NewMessage(c, s.currency))
	if err != nil {
		return fmt.Errorf("marshal confirmation: %w", err)
	}
	if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", s.channel, err)
	}
	return nil
}
