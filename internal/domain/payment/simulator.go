package payment

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultDelay stands in for gateway latency.
const DefaultDelay = 2 * time.Second

// Simulator validates payment forms and resolves them after a delay.
type Simulator struct {
	delay   time.Duration
	outcome OutcomeStrategy
	now     func() time.Time
	newTxID func(time.Time) string
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithDelay sets the simulated processing delay.
func WithDelay(d time.Duration) Option {
	return func(s *Simulator) { s.delay = d }
}

// WithOutcome replaces the outcome strategy.
func WithOutcome(o OutcomeStrategy) Option {
	return func(s *Simulator) { s.outcome = o }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) { s.now = now }
}

// NewSimulator creates a simulator with a 2s delay and a 90% success rate unless overridden.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		delay:   DefaultDelay,
		outcome: NewWeightedOutcome(DefaultSuccessRate),
		now:     time.Now,
		newTxID: transactionID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates req, waits the processing delay, then resolves it.
// Validation failures return immediately. A declined payment returns a
// DeclinedError whose Record has status failed and no transaction id.
func (s *Simulator) Submit(ctx context.Context, req Request) (Record, error) {
	req.Form = req.Form.Normalize()
	if err := Validate(req); err != nil {
		return Record{}, err
	}

	if err := s.wait(ctx); err != nil {
		return Record{}, err
	}

	now := s.now()
	record := Record{
		ReservationID: req.ReservationID,
		Amount:        req.Amount,
		Method:        req.Method,
		ProcessedAt:   now,
	}

	if s.outcome.Decide() == OutcomeFailed {
		record.Status = StatusFailed
		record.Message = DeclinedMessage
		log.Info().
			Str("reservation_id", req.ReservationID).
			Str("method", string(req.Method)).
			Msg("Simulated payment declined")
		return record, &DeclinedError{Record: record}
	}

	record.Status = StatusCompleted
	record.TransactionID = s.newTxID(now)
	log.Info().
		Str("reservation_id", req.ReservationID).
		Str("transaction_id", record.TransactionID).
		Int64("amount", req.Amount).
		Msg("Simulated payment completed")
	return record, nil
}

func (s *Simulator) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// transactionID formats TXN<unix millis><9 uppercase alphanumerics>.
func transactionID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:9]
	return "TXN" + strconv.FormatInt(now.UnixMilli(), 10) + suffix
}
