package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/hotelbook/booking-api/internal/domain/payment"
	"github.com/hotelbook/booking-api/internal/domain/room"
)

// SelectRoomRequest is the body of POST /booking/session/room.
type SelectRoomRequest struct {
	RoomID string `json:"room_id"`
}

// DetailsRequest is the body of POST /booking/session/details. Dates are YYYY-MM-DD.
type DetailsRequest struct {
	CustomerName  string `json:"customer_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	ArrivalDate   string `json:"arrival_date"`
	DepartureDate string `json:"departure_date"`
	PartySize     int    `json:"party_size"`
}

// PaymentRequest is the body of POST /booking/session/payment.
type PaymentRequest struct {
	Method string `json:"method"`
	payment.Form
}

const (
	msgDateFormat = "Date invalide, format attendu AAAA-MM-JJ"
)

// ToInput parses the dates. Unparseable dates are returned as field errors.
func (r DetailsRequest) ToInput() (DetailsInput, map[string]string) {
	in := DetailsInput{
		CustomerName: r.CustomerName,
		Email:        r.Email,
		Phone:        r.Phone,
		PartySize:    r.PartySize,
	}
	dateErrs := map[string]string{}

	var err error
	if in.ArrivalDate, err = parseDate(r.ArrivalDate, msgArrivalRequired); err != nil {
		dateErrs["arrival_date"] = err.Error()
	}
	if in.DepartureDate, err = parseDate(r.DepartureDate, msgDepartureRequired); err != nil {
		dateErrs["departure_date"] = err.Error()
	}

	if len(dateErrs) == 0 {
		return in, nil
	}
	return in, dateErrs
}

func parseDate(raw, requiredMsg string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New(requiredMsg)
	}
	t, err := room.ParseDate(raw)
	if err != nil {
		return time.Time{}, errors.New(msgDateFormat)
	}
	return t, nil
}
