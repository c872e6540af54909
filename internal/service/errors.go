package service

import (
	"errors"
	"fmt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password too weak")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("email not verified")
	ErrInvalidOTP         = errors.New("invalid or expired code")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrItemUnavailable    = errors.New("menu item not available")
	ErrOrderNotPaid       = errors.New("order is not paid")
)

// PaymentDeclinedError carries the gateway's user-facing message; the
// handler returns it verbatim so the UI can show a retry prompt.
type PaymentDeclinedError struct {
	Message string
	OrderID string
}

func (e *PaymentDeclinedError) Error() string { return e.Message }

type validationErr struct {
	field   string
	message string
}

func (e *validationErr) Error() string {
	return fmt.Sprintf("%s: %s", e.field, e.message)
}

// IsValidation reports whether err is a field-level validation failure
// that should map to a 400 rather than a 500.
func IsValidation(err error) bool {
	var v *validationErr
	return errors.As(err, &v)
}
