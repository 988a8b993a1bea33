package view

import (
	"errors"  // Error matching
	"math"    // Non-finite amounts
	"strconv" // Amount parsing
	"strings" // Field trimming

	"storefront/internal/backend"
)

// ValidationError is a client-side rejection; the request is never sent
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid creates a ValidationError
func Invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// ErrInsufficientBalance blocks a purchase before it reaches the backend
var ErrInsufficientBalance = Invalid("Insufficient wallet balance")

const (
	unavailableText = "Unable to reach the store, please try again"
	expiredText     = "Your session has expired, please log in again"
	genericText     = "Something went wrong, please try again"
)

// ErrorText is the message shown to the user for err. Backend reasons are
// passed through verbatim.
func ErrorText(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, backend.ErrUnauthorized):
		return expiredText
	case backend.Detail(err) != "":
		return backend.Detail(err)
	case errors.Is(err, backend.ErrUnavailable):
		return unavailableText
	}
	return genericText
}

// Required fails on the first listed field that is blank
func Required(values map[string]string, fields ...string) error {
	for _, f := range fields {
		if strings.TrimSpace(values[f]) == "" {
			return Invalid("Please fill in " + strings.ReplaceAll(f, "_", " "))
		}
	}
	return nil
}

// ParseAmount parses a positive decimal amount
func ParseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, Invalid("Please enter a positive amount")
	}
	return v, nil
}
