package validator

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

// contactEmailPattern mirrors the booking form check: something@something.something, no spaces.
var contactEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// MinCardDigits is the shortest card number accepted by the payment form.
const MinCardDigits = 16

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	validate.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return IsContactEmail(fl.Field().String())
	})

	validate.RegisterValidation("card_number", func(fl validator.FieldLevel) bool {
		return IsCardNumber(fl.Field().String())
	})

	validate.RegisterValidation("mobile_operator", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "mtn", "moov", "orange":
			return true
		}
		return false
	})

	validate.RegisterValidation("room_type", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "simple", "double", "suite", "deluxe":
			return true
		}
		return false
	})

	validate.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "card", "mobile_money", "bank_transfer":
			return true
		}
		return false
	})

	// notblank rejects whitespace-only strings
	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// IsCardNumber reports whether s holds at least MinCardDigits digits once whitespace is removed.
func IsCardNumber(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
		case r >= '0' && r <= '9':
			digits++
		default:
			return false
		}
	}
	return digits >= MinCardDigits
}

// IsContactEmail reports whether s looks like an email address for the booking form.
func IsContactEmail(s string) bool {
	return contactEmailPattern.MatchString(s)
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	errors := make(map[string]string)
	for _, err := range verrs {
		field := err.Field()
		if _, exists := errors[field]; exists {
			continue
		}
		switch err.Tag() {
		case "required", "notblank":
			errors[field] = "This field is required"
		case "contact_email", "email":
			errors[field] = "Invalid email format"
		case "card_number":
			errors[field] = "Invalid card number"
		case "mobile_operator":
			errors[field] = "Invalid operator. Must be: mtn, moov, or orange"
		case "room_type":
			errors[field] = "Invalid room type. Must be: simple, double, suite, or deluxe"
		case "payment_method":
			errors[field] = "Invalid payment method. Must be: card, mobile_money, or bank_transfer"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "gt":
			errors[field] = "Value must be greater than " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}
