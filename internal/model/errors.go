package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMalformedPayload marks a provider response that could not be decoded.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrMissingCredentials is returned by constructors and lookups when a
	// required credential is not configured.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrPublishTimeout is returned by a Publisher when delivery timed out.
	ErrPublishTimeout = errors.New("publish timed out")
)

// HTTPError wraps an HTTP status code so retry logic can inspect it.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// RateLimitError is returned by a Publisher when the channel asked us to back off.
type RateLimitError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rate limited, retry after %v: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited, retry after %v", e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}
