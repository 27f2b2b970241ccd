package broker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"
)

// ErrClosed is returned when publishing on a closed publisher.
var ErrClosed = errors.New("broker: publisher closed")

// Publisher publishes JSON events to durable fanout exchanges on RabbitMQ.
type Publisher struct {
	mu     sync.Mutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	closed bool
}

// Dial connects to RabbitMQ and opens a channel.
func Dial(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	log.Info().Msg("Connected to RabbitMQ")
	return &Publisher{conn: conn, ch: ch}, nil
}

// DeclareFanout declares a durable, non auto-deleted fanout exchange.
func (p *Publisher) DeclareFanout(exchange string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if err := p.ch.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return nil
}

// Publish sends a persistent JSON message to exchange.
func (p *Publisher) Publish(ctx context.Context, exchange string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}

	err := p.ch.Publish(exchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", exchange, err)
	}
	return nil
}

// Close closes the channel and the connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	chErr := p.ch.Close()
	connErr := p.conn.Close()
	if err := errors.Join(chErr, connErr); err != nil {
		return err
	}
	log.Info().Msg("RabbitMQ connection closed")
	return nil
}
