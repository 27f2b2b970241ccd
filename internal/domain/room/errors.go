package room

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrInvalidPartySize = errors.New("party size must be at least 1")
	ErrInvalidRange     = errors.New("departure must be after arrival")
	ErrInvalidCatalog   = errors.New("invalid room catalog")
)

// InvalidRangeError is returned when a stay covers less than one night.
type InvalidRangeError struct {
	Arrival   time.Time
	Departure time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid stay range: departure %s is not after arrival %s",
		e.Departure.Format(DateLayout), e.Arrival.Format(DateLayout))
}

// Is lets errors.Is match ErrInvalidRange.
func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidRange
}
