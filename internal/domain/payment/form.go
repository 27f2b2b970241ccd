package payment

import (
	"strings"
	"unicode"

	"github.com/hotelbook/booking-api/internal/pkg/validator"
)

type cardForm struct {
	CardNumber string `json:"card_number" validate:"required,card_number"`
	HolderName string `json:"holder_name" validate:"notblank"`
	Expiration string `json:"expiration" validate:"notblank"`
	CVV        string `json:"cvv" validate:"notblank"`
}

type mobileMoneyForm struct {
	Operator     string `json:"operator" validate:"required,mobile_operator"`
	MobileNumber string `json:"mobile_number" validate:"notblank"`
}

type bankTransferForm struct {
	TransferReference string `json:"transfer_reference" validate:"notblank"`
}

type requestEnvelope struct {
	Method        string `json:"method" validate:"required,payment_method"`
	Amount        int64  `json:"amount" validate:"gt=0"`
	ReservationID string `json:"reservation_id" validate:"notblank"`
}

// Validate checks req structurally and returns a ValidationError listing every bad field.
func Validate(req Request) error {
	fields := map[string]string{}
	merge(fields, validator.Validate(requestEnvelope{
		Method:        string(req.Method),
		Amount:        req.Amount,
		ReservationID: req.ReservationID,
	}))

	f := req.Form
	switch req.Method {
	case MethodCard:
		merge(fields, validator.Validate(cardForm{
			CardNumber: f.CardNumber,
			HolderName: f.HolderName,
			Expiration: f.Expiration,
			CVV:        f.CVV,
		}))
	case MethodMobileMoney:
		merge(fields, validator.Validate(mobileMoneyForm{
			Operator:     strings.ToLower(strings.TrimSpace(f.Operator)),
			MobileNumber: f.MobileNumber,
		}))
	case MethodBankTransfer:
		merge(fields, validator.Validate(bankTransferForm{
			TransferReference: f.TransferReference,
		}))
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Normalize strips whitespace from the card number and lowercases the operator.
func (f Form) Normalize() Form {
	f.CardNumber = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, f.CardNumber)
	f.HolderName = strings.TrimSpace(f.HolderName)
	f.Expiration = strings.TrimSpace(f.Expiration)
	f.CVV = strings.TrimSpace(f.CVV)
	f.Operator = strings.ToLower(strings.TrimSpace(f.Operator))
	f.MobileNumber = strings.TrimSpace(f.MobileNumber)
	f.TransferReference = strings.TrimSpace(f.TransferReference)
	return f
}

func merge(dst, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}
