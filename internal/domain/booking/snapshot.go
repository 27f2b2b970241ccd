package booking

import (
	"time"

	"github.com/hotelbook/booking-api/internal/domain/payment"
	"github.com/hotelbook/booking-api/internal/domain/room"
)

// Snapshot is a read-only copy of controller state for presentation layers.
type Snapshot struct {
	SessionID    string            `json:"session_id,omitempty"`
	State        State             `json:"state"`
	Room         *room.Room        `json:"room,omitempty"`
	Draft        *Draft            `json:"draft,omitempty"`
	FieldErrors  map[string]string `json:"field_errors,omitempty"`
	Message      string            `json:"message,omitempty"`
	Processing   bool              `json:"processing"`
	LastPayment  *payment.Record   `json:"last_payment,omitempty"`
	Confirmation *Confirmation     `json:"confirmation,omitempty"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// snapshotLocked copies state; c.mu must be held.
func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		SessionID:  c.sessionID,
		State:      c.state,
		Message:    c.message,
		Processing: c.processing,
		UpdatedAt:  c.updatedAt,
	}
	if c.room != nil {
		r := c.room.Clone()
		s.Room = &r
	}
	if c.draft != nil {
		d := *c.draft
		s.Draft = &d
	}
	if len(c.fieldErrors) > 0 {
		s.FieldErrors = make(map[string]string, len(c.fieldErrors))
		for k, v := range c.fieldErrors {
			s.FieldErrors[k] = v
		}
	}
	if c.lastPayment != nil {
		p := *c.lastPayment
		s.LastPayment = &p
	}
	if c.confirmation != nil {
		conf := *c.confirmation
		s.Confirmation = &conf
	}
	return s
}
