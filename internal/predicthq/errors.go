package predicthq

import (
	"errors"
	"fmt"
)

// ErrFetchFailed is wrapped by every error the client returns for a page request
var ErrFetchFailed = errors.New("fetch failed")

// AuthError is returned when the API rejects the bearer token
type AuthError struct {
	StatusCode int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication rejected (status %d)", e.StatusCode)
}

func (e *AuthError) Unwrap() error { return ErrFetchFailed }

// RateLimitedError is returned on HTTP 429. It is surfaced, never retried.
type RateLimitedError struct {
	RetryAfter string
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter != "" {
		return fmt.Sprintf("rate limited (retry after %s)", e.RetryAfter)
	}
	return "rate limited"
}

func (e *RateLimitedError) Unwrap() error { return ErrFetchFailed }

// StatusError covers any other non-success response
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response: %s", e.Status)
}

func (e *StatusError) Unwrap() error { return ErrFetchFailed }

// NetworkError wraps a transport failure
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() []error { return []error{ErrFetchFailed, e.Err} }

// DecodeError wraps a malformed response body
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() []error { return []error{ErrFetchFailed, e.Err} }
