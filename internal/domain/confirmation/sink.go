package confirmation

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hotelbook/booking-api/internal/domain/booking"
	"github.com/hotelbook/booking-api/internal/pkg/logger"
)

// Named is implemented by sinks that report a name in fanout errors.
type Named interface {
	Name() string
}

// Fanout delivers each confirmation to every sink. All sinks are tried;
// their errors are joined.
type Fanout struct {
	sinks []booking.Sink
}

// NewFanout skips nil sinks.
func NewFanout(sinks ...booking.Sink) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

// Len returns the number of wired sinks.
func (f *Fanout) Len() int {
	return len(f.sinks)
}

// Confirm implements booking.Sink.
func (f *Fanout) Confirm(ctx context.Context, c booking.Confirmation) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Confirm(ctx, c); err != nil {
			if n, ok := s.(Named); ok {
				err = fmt.Errorf("%s: %w", n.Name(), err)
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogSink writes one structured line per confirmation.
type LogSink struct {
	currency string
}

// NewLogSink creates a log sink.
func NewLogSink(currency string) *LogSink {
	return &LogSink{currency: currency}
}

func (s *LogSink) Name() string { return "log" }

// Confirm implements booking.Sink.
func (s *LogSink) Confirm(ctx context.Context, c booking.Confirmation) error {
	logEvent(logger.FromContext(ctx).Info(), NewMessage(c, s.currency)).
		Msg("Reservation confirmed")
	return nil
}

func logEvent(e *zerolog.Event, m Message) *zerolog.Event {
	return e.
		Str("reservation_id", m.ReservationID).
		Str("room_id", m.RoomID).
		Str("customer_email", m.Email).
		Str("arrival_date", m.ArrivalDate).
		Str("departure_date", m.DepartureDate).
		Int("nights", m.Nights).
		Int64("total_amount", m.TotalAmount).
		Str("currency", m.Currency).
		Str("payment_method", m.PaymentMethod).
		Str("transaction_id", m.TransactionID)
}
