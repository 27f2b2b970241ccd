package confirmation

import (
	"context"
	"strconv"
	"strings"

	"github.com/hotelbook/booking-api/internal/domain/booking"
	"github.com/hotelbook/booking-api/internal/domain/payment"
	"github.com/hotelbook/booking-api/internal/domain/room"
	"github.com/hotelbook/booking-api/internal/pkg/email"
)

// Mailer is the part of *email.Service used by EmailSink.
type Mailer interface {
	QueueReservationConfirmed(to, toName string, data email.ReservationEmail) error
}

// RoomLookup resolves a room id; *room.Catalog satisfies it.
type RoomLookup interface {
	Get(id string) (room.Room, error)
}

// EmailSink queues the confirmation email to the guest.
type EmailSink struct {
	mailer   Mailer
	rooms    RoomLookup
	currency string
}

// NewEmailSink creates an email sink.
func NewEmailSink(mailer Mailer, rooms RoomLookup, currency string) *EmailSink {
	return &EmailSink{mailer: mailer, rooms: rooms, currency: currency}
}

func (s *EmailSink) Name() string { return "email" }

// Confirm implements booking.Sink.
func (s *EmailSink) Confirm(_ context.Context, c booking.Confirmation) error {
	r := c.Reservation
	data := email.ReservationEmail{
		CustomerName:  r.CustomerName,
		ReservationID: r.ReservationID,
		RoomNumber:    r.RoomID,
		ArrivalDate:   r.ArrivalDate.Format(displayDate),
		DepartureDate: r.DepartureDate.Format(displayDate),
		Nights:        r.Nights,
		PartySize:     r.PartySize,
		TotalAmount:   FormatAmount(r.TotalAmount, s.currency),
		PaymentMethod: methodLabel(c.Payment.Method),
		TransactionID: c.Payment.TransactionID,
	}
	if s.rooms != nil {
		if rm, err := s.rooms.Get(r.RoomID); err == nil {
			data.RoomNumber = rm.Number
			data.RoomType = string(rm.Type)
		}
	}
	return s.mailer.QueueReservationConfirmed(r.Email, r.CustomerName, data)
}

const displayDate = "02/01/2006"

// FormatAmount renders 70000 as "70 000 FCFA".
func FormatAmount(amount int64, currency string) string {
	digits := strconv.FormatInt(amount, 10)
	neg := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(d)
	}
	if currency != "" {
		b.WriteByte(' ')
		b.WriteString(currency)
	}
	return b.String()
}

func methodLabel(m payment.Method) string {
	for _, info := range payment.Methods() {
		if info.Method == m {
			return info.Label
		}
	}
	return string(m)
}
