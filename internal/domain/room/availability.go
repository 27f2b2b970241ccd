package room

import "time"

// Criteria narrows the catalog for a stay.
type Criteria struct {
	PartySize int
	Arrival   time.Time
	Departure time.Time
}

// FilterAvailable returns rooms flagged available whose capacity fits the party,
// in their original order. Dates are not checked against existing bookings:
// there is no reservation ledger.
func FilterAvailable(rooms []Room, c Criteria) ([]Room, error) {
	if c.PartySize < 1 {
		return nil, ErrInvalidPartySize
	}

	out := make([]Room, 0, len(rooms))
	for _, r := range rooms {
		if r.Available && r.Capacity >= c.PartySize {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}
