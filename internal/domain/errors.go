package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure by where it originated.
type ErrorKind string

const (
	// KindConfig marks missing or invalid credentials/configuration at startup.
	KindConfig ErrorKind = "config"
	// KindDomain marks a remote-API or transport failure.
	KindDomain ErrorKind = "domain"
	// KindValidation marks malformed caller input, detected before any remote call.
	KindValidation ErrorKind = "validation"
)

// APIError is the single structured error type used throughout the adapter.
// Status is only meaningful for KindDomain and is 0 when the transport failed
// before a response arrived.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Kind == KindDomain && e.Status != 0 {
		return fmt.Sprintf("API error %d: %s", e.Status, e.Message)
	}
	return e.Message
}

// NewConfigError reports a fatal configuration problem.
func NewConfigError(msg string) *APIError {
	return &APIError{Kind: KindConfig, Message: msg}
}

// NewDomainError reports a remote-API failure. status is 0 for transport
// failures that never produced an HTTP response.
func NewDomainError(status int, msg string) *APIError {
	return &APIError{Kind: KindDomain, Status: status, Message: msg}
}

// NewValidationError reports malformed caller input.
func NewValidationError(msg string) *APIError {
	return &APIError{Kind: KindValidation, Message: msg}
}

// AsAPIError unwraps err into an *APIError if one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
