package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPosts is returned when the listing call succeeded but carried no posts.
	ErrNoPosts = errors.New("no posts found")
	// ErrUpstreamUnavailable is returned while the Reddit circuit breaker is open.
	ErrUpstreamUnavailable = errors.New("reddit api temporarily unavailable")
)

// ValidationError is a problem with the caller's input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// AuthError is a rejected credential exchange.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("failed to get token: %d - %s", e.Status, e.Body)
}

// UpstreamError is a non-success response from the listing endpoint.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("reddit api: %d", e.Status)
}
