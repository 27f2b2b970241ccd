package confirmation

import (
	"time"

	"github.com/hotelbook/booking-api/internal/domain/booking"
	"github.com/hotelbook/booking-api/internal/domain/room"
)

// EventReservationConfirmed is the event name carried by published messages.
const EventReservationConfirmed = "reservation.confirmed"

// Message is the wire form of a confirmed reservation.
type Message struct {
	Event         string    `json:"event"`
	ReservationID string    `json:"reservation_id"`
	RoomID        string    `json:"room_id"`
	CustomerName  string    `json:"customer_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	ArrivalDate   string    `json:"arrival_date"`
	DepartureDate string    `json:"departure_date"`
	PartySize     int       `json:"party_size"`
	Nights        int       `json:"nights"`
	TotalAmount   int64     `json:"total_amount"`
	Currency      string    `json:"currency"`
	PaymentMethod string    `json:"payment_method"`
	TransactionID string    `json:"transaction_id"`
	ConfirmedAt   time.Time `json:"confirmed_at"`
}

// NewMessage flattens c for publishing.
func NewMessage(c booking.Confirmation, currency string) Message {
	r := c.Reservation
	return Message{
		Event:         EventReservationConfirmed,
		ReservationID: r.ReservationID,
		RoomID:        r.RoomID,
		CustomerName:  r.CustomerName,
		Email:         r.Email,
		Phone:         r.Phone,
		ArrivalDate:   r.ArrivalDate.Format(room.DateLayout),
		DepartureDate: r.DepartureDate.Format(room.DateLayout),
		PartySize:     r.PartySize,
		Nights:        r.Nights,
		TotalAmount:   r.TotalAmount,
		Currency:      currency,
		PaymentMethod: string(c.Payment.Method),
		TransactionID: c.Payment.TransactionID,
		ConfirmedAt:   c.ConfirmedAt,
	}
}
