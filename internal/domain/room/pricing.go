package room

import "time"

// DateLayout is the wire format for stay dates.
const DateLayout = "2006-01-02"

// Quote is the price of a stay in one room.
type Quote struct {
	RoomID       string `json:"room_id"`
	Nights       int    `json:"nights"`
	NightlyPrice int64  `json:"nightly_price"`
	Total        int64  `json:"total"`
}

// ParseDate parses a YYYY-MM-DD date as a UTC calendar day.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// Nights counts whole calendar days between arrival and departure.
// Times of day and locations are ignored; fewer than one night is an InvalidRangeError.
func Nights(arrival, departure time.Time) (int, error) {
	nights := epochDay(departure) - epochDay(arrival)
	if nights < 1 {
		return 0, &InvalidRangeError{Arrival: arrival, Departure: departure}
	}
	return nights, nil
}

// TotalPrice is nights times the room's nightly price.
func TotalPrice(r Room, nights int) int64 {
	return r.NightlyPrice * int64(nights)
}

// QuoteStay prices a stay in r.
func QuoteStay(r Room, arrival, departure time.Time) (Quote, error) {
	nights, err := Nights(arrival, departure)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		RoomID:       r.ID,
		Nights:       nights,
		NightlyPrice: r.NightlyPrice,
		Total:        TotalPrice(r, nights),
	}, nil
}

// epochDay is the number of days between 1970-01-01 and t's calendar date.
func epochDay(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60
