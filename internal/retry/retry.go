package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/amishk599/remotefeed/internal/control"
	"github.com/amishk599/remotefeed/internal/model"
)

// Options controls attempts and pacing of a RetrySource.
type Options struct {
	MaxAttempts       int           // total attempts including the first (default 3)
	BetweenSources    time.Duration // pause after a successful fetch
	Jitter            time.Duration // upper bound of random extra pause after success
	AfterError        time.Duration // first backoff for transient errors, doubled per attempt
	DefaultRetryAfter time.Duration // wait on 429 without a Retry-After header
}

// DefaultOptions returns the production pacing values.
func DefaultOptions() Options {
	return Options{
		MaxAttempts:       3,
		BetweenSources:    5 * time.Second,
		Jitter:            2 * time.Second,
		AfterError:        30 * time.Second,
		DefaultRetryAfter: 60 * time.Second,
	}
}

// RetrySource is a decorator that retries transient failures of the wrapped
// Source and paces consecutive sources. It never fails a cycle: when every
// attempt fails it logs a warning and returns no jobs. Only context
// cancellation is returned as an error.
type RetrySource struct {
	inner  model.Source
	opts   Options
	logger *slog.Logger
}

// Ensure RetrySource implements model.Source.
var _ model.Source = (*RetrySource)(nil)

// NewRetrySource wraps a Source with retry and pacing logic.
func NewRetrySource(inner model.Source, opts Options, logger *slog.Logger) *RetrySource {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	return &RetrySource{
		inner:  inner,
		opts:   opts,
		logger: logger,
	}
}

func (s *RetrySource) Name() string { return s.inner.Name() }

// FetchJobs attempts to fetch jobs, retrying on transient errors.
func (s *RetrySource) FetchJobs(ctx context.Context) ([]model.RawJob, error) {
	logger := control.Logger(ctx, s.logger).With("source", s.inner.Name())
	var lastErr error
	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		jobs, err := s.inner.FetchJobs(ctx)
		if err == nil {
			if err := sleep(ctx, s.pacingDelay()); err != nil {
				return nil, fmt.Errorf("pacing after %s: %w", s.inner.Name(), err)
			}
			return jobs, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("fetching %s: %w", s.inner.Name(), ctx.Err())
		}
		lastErr = err

		if !isRetryable(err) {
			logger.Warn("giving up on non-retryable error", "error", err)
			return nil, nil
		}
		if attempt == s.opts.MaxAttempts {
			break
		}

		delay := s.backoffDelay(attempt, err)
		logger.Warn("retrying after transient error",
			"attempt", attempt,
			"max_attempts", s.opts.MaxAttempts,
			"delay", delay,
			"error", err,
		)
		if err := sleep(ctx, delay); err != nil {
			return nil, fmt.Errorf("retry cancelled: %w", err)
		}
	}

	logger.Warn("source unavailable, skipping this cycle",
		"attempts", s.opts.MaxAttempts,
		"error", lastErr,
	)
	return nil, nil
}

// pacingDelay is BetweenSources plus uniform jitter in [0, Jitter).
func (s *RetrySource) pacingDelay() time.Duration {
	d := s.opts.BetweenSources
	if s.opts.Jitter > 0 {
		d += rand.N(s.opts.Jitter)
	}
	return d
}

// backoffDelay honors Retry-After on 429 and otherwise doubles AfterError per attempt.
func (s *RetrySource) backoffDelay(attempt int, err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests {
		if httpErr.RetryAfter > 0 {
			return httpErr.RetryAfter
		}
		return s.opts.DefaultRetryAfter
	}

	delay := s.opts.AfterError
	for i := 1; i < attempt; i++ {
		delay *= 2
	}
	return delay
}

// isRetryable returns true if the error represents a transient failure worth retrying.
// Cancellation of the caller's context is handled before this is consulted, so
// client timeouts count as transient.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, model.ErrMalformedPayload) {
		return false
	}

	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode == http.StatusTooManyRequests {
			return true
		}
		return httpErr.StatusCode >= 500
	}

	// Non-HTTP errors (network, DNS, timeouts) are retryable.
	return true
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
