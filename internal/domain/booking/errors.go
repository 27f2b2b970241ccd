package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidTransition = errors.New("invalid booking transition")
	ErrRoomUnavailable   = errors.New("room is not available")
	ErrPaymentInProgress = errors.New("a payment is already being processed")
	ErrSessionNotFound   = errors.New("booking session not found")
	ErrInvalidDetails    = errors.New("invalid reservation details")
)

// TransitionError is returned when an event is not accepted in the current state.
type TransitionError struct {
	From  State
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Event, e.From)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// ValidationError carries every field-scoped message from a details submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "invalid reservation details: " + strings.Join(names, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidDetails
}
