package confirmation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hotelbook/booking-api/internal/domain/booking"
)

// DefaultExchange is the fanout exchange confirmations are published to.
const DefaultExchange = "reservation_confirmed"

// ExchangePublisher is the part of *broker.Publisher used by AMQPSink.
type ExchangePublisher interface {
	DeclareFanout(exchange string) error
	Publish(ctx context.Context, exchange string, body []byte) error
}

// AMQPSink publishes confirmations to a durable RabbitMQ fanout exchange.
type AMQPSink struct {
	pub      ExchangePublisher
	exchange string
	currency string
}

// NewAMQPSink declares the exchange and returns the sink.
func NewAMQPSink(pub ExchangePublisher, exchange, currency string) (*AMQPSink, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	if err := pub.DeclareFanout(exchange); err != nil {
		return nil, err
	}
	return &AMQPSink{pub: pub, exchange: exchange, currency: currency}, nil
}

func (s *AMQPSink) Name() string { return "amqp" }

// Confirm implements booking.Sink.
func (s *AMQPSink) Confirm(ctx context.Context, c booking.Confirmation) error {
	body, err := json.Marshal(NewMessage(c, s.currency))
	if err != nil {
		return fmt.Errorf("marshal confirmation: %w", err)
	}
	return s.pub.Publish(ctx, s.exchange, body)
}
