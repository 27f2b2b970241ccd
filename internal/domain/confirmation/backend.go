package confirmation

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hotelbook/booking-api/internal/domain/booking"
)

// BackendSink hands confirmed reservations to the booking backend's
// reservations table. Inserts are idempotent on reservation_id.
type BackendSink struct {
	db       sqlx.ExecerContext
	currency string
}

// NewBackendSink creates a backend sink; db is usually a *sqlx.DB.
func NewBackendSink(db sqlx.ExecerContext, currency string) *BackendSink {
	return &BackendSink{db: db, currency: currency}
}

func (s *BackendSink) Name() string { return "backend" }

const schema = `
	CREATE TABLE IF NOT EXISTS reservations (
		reservation_id  TEXT PRIMARY KEY,
		room_id         TEXT NOT NULL,
		customer_name   TEXT NOT NULL,
		email           TEXT NOT NULL,
		phone           TEXT NOT NULL,
		arrival_date    DATE NOT NULL,
		departure_date  DATE NOT NULL,
		party_size      INTEGER NOT NULL,
		nights          INTEGER NOT NULL,
		total_amount    BIGINT NOT NULL,
		currency        TEXT NOT NULL,
		payment_method  TEXT NOT NULL,
		transaction_id  TEXT NOT NULL,
		confirmed_at    TIMESTAMPTZ NOT NULL
	)
`

// EnsureSchema creates the reservations table if it is missing.
func (s *BackendSink) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create reservations table: %w", err)
	}
	return nil
}

// Confirm implements booking.Sink.
func (s *BackendSink) Confirm(ctx context.Context, c booking.Confirmation) error {
	m := NewMessage(c, s.currency)
	query := `
		INSERT INTO reservations (
			reservation_id, room_id, customer_name, email, phone,
			arrival_date, departure_date, party_size, nights,
			total_amount, currency, payment_method, transaction_id, confirmed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (reservation_id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		m.ReservationID,
		m.RoomID,
		m.CustomerName,
		m.Email,
		m.Phone,
		m.ArrivalDate,
		m.DepartureDate,
		m.PartySize,
		m.Nights,
		m.TotalAmount,
		m.Currency,
		m.PaymentMethod,
		m.TransactionID,
		m.ConfirmedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reservation %s: %w", m.ReservationID, err)
	}
	return nil
}
