package igdb

import (
	"errors"
	"fmt"
)

// AuthError reports a failed credential exchange with the identity endpoint.
// It aborts the triggering request and is never retried by the executor.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("igdb: credential exchange failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// RequestError reports a non-retryable upstream status (4xx other than 429).
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("igdb: upstream returned %d: %s", e.Status, e.Body)
}

// ErrMaxRetries is returned when the per-request retry budget is exhausted,
// or when a fan-out is cut short by its overall deadline. Callers surface it
// as a "try again later" failure.
var ErrMaxRetries = errors.New("igdb: max retries exceeded")

// Retryable conditions recognised by the executor.
var (
	errRateLimited  = errors.New("igdb: rate limited")
	errServerError  = errors.New("igdb: upstream server error")
	errUnauthorized = errors.New("igdb: bearer token rejected")
)
