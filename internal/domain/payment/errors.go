package payment

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrPayment matches every payment failure.
var ErrPayment = errors.New("payment error")

// DeclinedMessage is shown when the simulated gateway refuses a payment.
const DeclinedMessage = "Le paiement a échoué. Veuillez réessayer."

// ValidationError names each missing or malformed form field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid payment fields: %s", strings.Join(names, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrPayment
}

// DeclinedError is returned when a structurally valid payment is refused.
type DeclinedError struct {
	Record Record
}

func (e *DeclinedError) Error() string {
	return "payment declined: " + e.Record.Message
}

func (e *DeclinedError) Is(target error) bool {
	return target == ErrPayment
}
