package booking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hotelbook/booking-api/internal/domain/payment"
	"github.com/hotelbook/booking-api/internal/domain/room"
	"github.com/hotelbook/booking-api/internal/pkg/logger"
)

// ConfirmedMessage is shown once the reservation is paid.
const ConfirmedMessage = "Félicitations! Votre réservation a été confirmée avec succès. Vous allez recevoir un email de confirmation."

// PaymentProcessor resolves a payment attempt.
type PaymentProcessor interface {
	Submit(ctx context.Context, req payment.Request) (payment.Record, error)
}

// Sink receives completed reservations.
type Sink interface {
	Confirm(ctx context.Context, c Confirmation) error
}

// Controller drives one booking flow. It owns the draft and the payment
// attempt; every mutation goes through an event method.
type Controller struct {
	mu sync.Mutex

	payments PaymentProcessor
	sink     Sink
	now      func() time.Time
	newID    func() string

	sessionID    string
	state        State
	room         *room.Room
	draft        *Draft
	fieldErrors  map[string]string
	message      string
	processing   bool
	lastPayment  *payment.Record
	confirmation *Confirmation
	updatedAt    time.Time

	listeners []func(Snapshot)
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithSessionID tags snapshots and logs with a session id.
func WithSessionID(id string) ControllerOption {
	return func(c *Controller) { c.sessionID = id }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) { c.now = now }
}

// WithReservationIDs replaces the reservation id generator.
func WithReservationIDs(newID func() string) ControllerOption {
	return func(c *Controller) { c.newID = newID }
}

// NewController starts a flow in the browsing state.
func NewController(payments PaymentProcessor, sink Sink, opts ...ControllerOption) *Controller {
	c := &Controller{
		payments: payments,
		sink:     sink,
		now:      time.Now,
		newID:    newReservationID,
		state:    StateBrowsing,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.updatedAt = c.now()
	return c
}

func newReservationID() string {
	return "RES-" + strings.ToUpper(uuid.NewString()[:8])
}

// OnChange registers fn to receive a snapshot after every state change.
func (c *Controller) OnChange(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// UpdatedAt returns when the flow last changed.
func (c *Controller) UpdatedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updatedAt
}

// guardLocked checks that ev is accepted now; c.mu must be held.
func (c *Controller) guardLocked(ev Event) error {
	if c.processing {
		return ErrPaymentInProgress
	}
	if !allowed(c.state, ev) {
		return &TransitionError{From: c.state, Event: ev}
	}
	return nil
}

// commitLocked stamps the change and returns the snapshot to publish; c.mu must be held.
func (c *Controller) commitLocked() (Snapshot, []func(Snapshot)) {
	c.updatedAt = c.now()
	listeners := make([]func(Snapshot), len(c.listeners))
	copy(listeners, c.listeners)
	return c.snapshotLocked(), listeners
}

func publish(s Snapshot, listeners []func(Snapshot)) {
	for _, fn := range listeners {
		fn(s)
	}
}

// SelectRoom opens the details step for r.
func (c *Controller) SelectRoom(r room.Room) error {
	c.mu.Lock()
	if err := c.guardLocked(EventSelectRoom); err != nil {
		c.mu.Unlock()
		return err
	}
	if !r.Available {
		c.mu.Unlock()
		return ErrRoomUnavailable
	}

	selected := r.Clone()
	c.room = &selected
	c.state = StateSelecting
	c.fieldErrors = nil
	c.message = ""
	snap, listeners := c.commitLocked()
	c.mu.Unlock()

	publish(snap, listeners)
	return nil
}

// SubmitDetails validates the reservation form. On failure the state is unchanged
// and a ValidationError lists every offending field.
func (c *Controller) SubmitDetails(in DetailsInput) (Draft, error) {
	c.mu.Lock()
	if err := c.guardLocked(EventSubmitDetails); err != nil {
		c.mu.Unlock()
		return Draft{}, err
	}

	if fields := ValidateDetails(*c.room, in); fields != nil {
		c.fieldErrors = fields
		c.message = ""
		snap, listeners := c.commitLocked()
		c.mu.Unlock()

		publish(snap, listeners)
		return Draft{}, &ValidationError{Fields: copyFields(fields)}
	}

	reservationID := c.newID()
	if c.draft != nil {
		reservationID = c.draft.ReservationID
	}
	draft, err := newDraft(reservationID, *c.room, in)
	if err != nil {
		c.mu.Unlock()
		return Draft{}, err
	}

	c.draft = &draft
	c.state = StateDraftPending
	c.fieldErrors = nil
	c.message = ""
	snap, listeners := c.commitLocked()
	c.mu.Unlock()

	publish(snap, listeners)
	return draft, nil
}

// Proceed freezes the total and moves to the payment step.
func (c *Controller) Proceed() (Draft, error) {
	c.mu.Lock()
	if err := c.guardLocked(EventProceed); err != nil {
		c.mu.Unlock()
		return Draft{}, err
	}

	c.draft.TotalAmount = room.TotalPrice(*c.room, c.draft.Nights)
	c.state = StateAwaitingPayment
	c.message = ""
	c.lastPayment = nil
	draft := *c.draft
	snap, listeners := c.commitLocked()
	c.mu.Unlock()

	publish(snap, listeners)
	return draft, nil
}

// ReturnToDraft goes back from the payment step to the details step.
func (c *Controller) ReturnToDraft() error {
	c.mu.Lock()
	if err := c.guardLocked(EventReturnToDraft); err != nil {
		c.mu.Unlock()
		return err
	}

	c.state = StateDraftPending
	c.fieldErrors = nil
	c.message = ""
	c.lastPayment = nil
	snap, listeners := c.commitLocked()
	c.mu.Unlock()

	publish(snap, listeners)
	return nil
}

// SubmitPayment runs one payment attempt for the frozen draft. Only one attempt
// may be in flight. A validation failure or a decline keeps the flow in
// awaiting_payment so the guest can retry or cancel.
func (c *Controller) SubmitPayment(ctx context.Context, method payment.Method, form payment.Form) (Confirmation, error) {
	c.mu.Lock()
	if err := c.guardLocked(EventSubmitPayment); err != nil {
		c.mu.Unlock()
		return Confirmation{}, err
	}

	draft := *c.draft
	c.processing = true
	c.fieldErrors = nil
	c.message = ""
	snap, listeners := c.commitLocked()
	c.mu.Unlock()
	publish(snap, listeners)

	record, err := c.payments.Submit(ctx, payment.Request{
		Method:        method,
		Form:          form,
		Amount:        draft.TotalAmount,
		ReservationID: draft.ReservationID,
	})

	c.mu.Lock()
	c.processing = false

	if err != nil {
		var verr *payment.ValidationError
		var declined *payment.DeclinedError
		switch {
		case errors.As(err, &verr):
			c.fieldErrors = copyFields(verr.Fields)
		case errors.As(err, &declined):
			failed := declined.Record
			c.lastPayment = &failed
			c.message = failed.Message
		default:
			c.message = err.Error()
		}
		snap, listeners := c.commitLocked()
		c.mu.Unlock()

		publish(snap, listeners)
		return Confirmation{}, err
	}

	conf := Confirmation{
		Reservation: draft,
		Payment:     record,
		ConfirmedAt: c.now(),
	}
	c.state = StateCompleted
	c.draft = nil
	c.lastPayment = nil
	c.confirmation = &conf
	c.message = ConfirmedMessage
	snap, listeners = c.commitLocked()
	sessionID := c.sessionID
	c.mu.Unlock()

	// The payment is taken; a sink failure is logged, not surfaced.
	if c.sink != nil {
		if err := c.sink.Confirm(context.WithoutCancel(ctx), conf); err != nil {
			logger.FromContext(ctx).Error().Err(err).
				Str("session_id", sessionID).
				Str("reservation_id", conf.Reservation.ReservationID).
				Msg("Failed to deliver reservation confirmation")
		}
	}

	publish(snap, listeners)
	return conf, nil
}

// Cancel abandons the flow and discards the draft. Cancelling twice is a no-op;
// a completed flow cannot be cancelled, nor can one with a payment in flight.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	if c.state == StateCancelled && !c.processing {
		c.mu.Unlock()
		return nil
	}
	if err := c.guardLocked(EventCancel); err != nil {
		c.mu.Unlock()
		return err
	}

	c.state = StateCancelled
	c.room = nil
	c.draft = nil
	c.fieldErrors = nil
	c.lastPayment = nil
	c.message = ""
	snap, listeners := c.commitLocked()
	c.mu.Unlock()

	publish(snap, listeners)
	return nil
}

func copyFields(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
