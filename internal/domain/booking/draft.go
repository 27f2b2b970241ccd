package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hotelbook/booking-api/internal/domain/payment"
	"github.com/hotelbook/booking-api/internal/domain/room"
	"github.com/hotelbook/booking-api/internal/pkg/validator"
)

// Draft is the in-progress reservation owned by one controller.
type Draft struct {
	ReservationID string    `json:"reservation_id"`
	RoomID        string    `json:"room_id"`
	CustomerName  string    `json:"customer_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	ArrivalDate   time.Time `json:"arrival_date"`
	DepartureDate time.Time `json:"departure_date"`
	PartySize     int       `json:"party_size"`
	Nights        int       `json:"nights"`
	TotalAmount   int64     `json:"total_amount"`
}

// Confirmation is the reservation and payment pair handed to the sink.
type Confirmation struct {
	Reservation Draft          `json:"reservation"`
	Payment     payment.Record `json:"payment"`
	ConfirmedAt time.Time      `json:"confirmed_at"`
}

// DetailsInput is what the guest types into the reservation form.
type DetailsInput struct {
	CustomerName  string
	Email         string
	Phone         string
	ArrivalDate   time.Time
	DepartureDate time.Time
	PartySize     int
}

type detailsForm struct {
	CustomerName string `json:"customer_name" validate:"notblank"`
	Email        string `json:"email" validate:"notblank,contact_email"`
	Phone        string `json:"phone" validate:"notblank"`
	PartySize    int    `json:"party_size" validate:"gte=1"`
}

const (
	msgNameRequired      = "Le nom est requis"
	msgEmailRequired     = "L'email est requis"
	msgEmailInvalid      = "L'email est invalide"
	msgPhoneRequired     = "Le téléphone est requis"
	msgPartySizeMin      = "Au moins une personne est requise"
	msgArrivalRequired   = "La date d'arrivée est requise"
	msgDepartureRequired = "La date de départ est requise"
	msgDepartureBefore   = "La date de départ doit être après la date d'arrivée"
)

// CapacityMessage is the party_size error for a room that is too small.
func CapacityMessage(capacity int) string {
	plural := ""
	if capacity > 1 {
		plural = "s"
	}
	return fmt.Sprintf("La capacité maximale est de %d personne%s", capacity, plural)
}

// ValidateDetails checks in against r and returns every field error, or nil.
func ValidateDetails(r room.Room, in DetailsInput) map[string]string {
	fields := map[string]string{}

	for field := range validator.Validate(detailsForm{
		CustomerName: in.CustomerName,
		Email:        strings.TrimSpace(in.Email),
		Phone:        in.Phone,
		PartySize:    in.PartySize,
	}) {
		switch field {
		case "customer_name":
			fields[field] = msgNameRequired
		case "email":
			if strings.TrimSpace(in.Email) == "" {
				fields[field] = msgEmailRequired
			} else {
				fields[field] = msgEmailInvalid
			}
		case "phone":
			fields[field] = msgPhoneRequired
		case "party_size":
			fields[field] = msgPartySizeMin
		}
	}

	switch {
	case in.ArrivalDate.IsZero() || in.DepartureDate.IsZero():
		if in.ArrivalDate.IsZero() {
			fields["arrival_date"] = msgArrivalRequired
		}
		if in.DepartureDate.IsZero() {
			fields["departure_date"] = msgDepartureRequired
		}
	default:
		if _, err := room.Nights(in.ArrivalDate, in.DepartureDate); errors.Is(err, room.ErrInvalidRange) {
			fields["departure_date"] = msgDepartureBefore
		}
	}

	if in.PartySize > r.Capacity {
		fields["party_size"] = CapacityMessage(r.Capacity)
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// newDraft builds a draft from validated input.
func newDraft(reservationID string, r room.Room, in DetailsInput) (Draft, error) {
	quote, err := room.QuoteStay(r, in.ArrivalDate, in.DepartureDate)
	if err != nil {
		return Draft{}, err
	}
	return Draft{
		ReservationID: reservationID,
		RoomID:        r.ID,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		Email:         strings.TrimSpace(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		ArrivalDate:   in.ArrivalDate,
		DepartureDate: in.DepartureDate,
		PartySize:     in.PartySize,
		Nights:        quote.Nights,
		TotalAmount:   quote.Total,
	}, nil
}
