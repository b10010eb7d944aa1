package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidDocument     = errors.New("invalid document number")
	ErrProfileRequired     = errors.New("customer profile required")
	ErrLoanNotApproved     = errors.New("loan is not approved")
	ErrGatewayUnavailable  = errors.New("gateway unavailable")
)

// GatewayError reports a non-successful response from the API gateway.
// RetryAfter is set on throttled (429) responses.
type GatewayError struct {
	Status     int
	Message    string
	RetryAfter time.Duration
}

func (e *GatewayError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway responded with status %d", e.Status)
	}
	return e.Message
}

// Unwrap maps the HTTP status onto the matching sentinel.
func (e *GatewayError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrAlreadyExists
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	default:
		return ErrGatewayUnavailable
	}
}

// Message returns the most specific human readable message carried by err.
func Message(err error) string {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) && gwErr.Message != "" {
		return gwErr.Message
	}
	return err.Error()
}
