package retry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/amishk599/remotefeed/internal/control"
	"github.com/amishk599/remotefeed/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockSource calls a function on each invocation, tracking call count.
type mockSource struct {
	calls int
	fn    func(attempt int) ([]model.RawJob, error)
}

func (m *mockSource) Name() string { return "Mock" }

func (m *mockSource) FetchJobs(_ context.Context) ([]model.RawJob, error) {
	m.calls++
	return m.fn(m.calls)
}

func fastOptions() Options {
	return Options{
		MaxAttempts:       3,
		AfterError:        5 * time.Millisecond,
		DefaultRetryAfter: 5 * time.Millisecond,
	}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	jobs := []model.RawJob{{Title: "Engineer"}}
	mock := &mockSource{fn: func(_ int) ([]model.RawJob, error) {
		return jobs, nil
	}}

	rs := NewRetrySource(mock, fastOptions(), discardLogger())
	got, err := rs.FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Engineer" {
		t.Fatalf("unexpected jobs: %v", got)
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call, got %d", mock.calls)
	}
	if rs.Name() != "Mock" {
		t.Errorf("Name() = %q, want Mock", rs.Name())
	}
}

func TestRetry_PacesAfterSuccess(t *testing.T) {
	mock := &mockSource{fn: func(_ int) ([]model.RawJob, error) { return nil, nil }}
	opts := fastOptions()
	opts.BetweenSources = 60 * time.Millisecond
	opts.Jitter = 20 * time.Millisecond

	rs := NewRetrySource(mock, opts, discardLogger())
	start := time.Now()
	if _, err := rs.FetchJobs(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("expected >= 50ms pacing delay, got %v", elapsed)
	}
}

func TestRetry_RetriesOn5xx_SucceedsOnSecondAttempt(t *testing.T) {
	jobs := []model.RawJob{{Title: "QA"}}
	mock := &mockSource{fn: func(attempt int) ([]model.RawJob, error) {
		if attempt == 1 {
			return nil, &model.HTTPError{StatusCode: 503, Err: errors.New("service unavailable")}
		}
		return jobs, nil
	}}

	rs := NewRetrySource(mock, fastOptions(), discardLogger())
	got, err := rs.FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 job, got %d", len(got))
	}
	if mock.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.calls)
	}
}

func TestRetry_RetriesNetworkErrors(t *testing.T) {
	mock := &mockSource{fn: func(attempt int) ([]model.RawJob, error) {
		if attempt < 3 {
			return nil, errors.New("connection reset by peer")
		}
		return []model.RawJob{{Title: "Dev"}}, nil
	}}

	rs := NewRetrySource(mock, fastOptions(), discardLogger())
	got, err := rs.FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || mock.calls != 3 {
		t.Fatalf("got %d jobs after %d calls, want 1 after 3", len(got), mock.calls)
	}
}

func TestRetry_429UsesRetryAfter(t *testing.T) {
	mock := &mockSource{fn: func(attempt int) ([]model.RawJob, error) {
		if attempt == 1 {
			return nil, &model.HTTPError{StatusCode: 429, RetryAfter: 80 * time.Millisecond}
		}
		return []model.RawJob{{Title: "Dev"}}, nil
	}}

	rs := NewRetrySource(mock, fastOptions(), discardLogger())
	start := time.Now()
	if _, err := rs.FetchJobs(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 70*time.Millisecond {
		t.Errorf("expected to honor Retry-After (~80ms), waited %v", elapsed)
	}
	if mock.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.calls)
	}
}

func TestRetry_NonRetryableGivesUpWithoutError(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"404", &model.HTTPError{StatusCode: 404, Err: errors.New("not found")}},
		{"403", &model.HTTPError{StatusCode: 403}},
		{"malformed payload", fmt.Errorf("decoding response: %w", model.ErrMalformedPayload)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockSource{fn: func(_ int) ([]model.RawJob, error) { return nil, tt.err }}

			rs := NewRetrySource(mock, fastOptions(), discardLogger())
			got, err := rs.FetchJobs(context.Background())
			if err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if len(got) != 0 {
				t.Fatalf("expected no jobs, got %d", len(got))
			}
			if mock.calls != 1 {
				t.Fatalf("expected 1 call (no retry), got %d", mock.calls)
			}
		})
	}
}

func TestRetry_ExhaustionReturnsEmpty(t *testing.T) {
	mock := &mockSource{fn: func(_ int) ([]model.RawJob, error) {
		return nil, &model.HTTPError{StatusCode: 500, Err: errors.New("internal error")}
	}}

	rs := NewRetrySource(mock, fastOptions(), discardLogger())
	got, err := rs.FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("expected nil error after exhaustion, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no jobs, got %d", len(got))
	}
	if mock.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", mock.calls)
	}
}

func TestRetry_RespectsContextCancellation(t *testing.T) {
	mock := &mockSource{fn: func(_ int) ([]model.RawJob, error) {
		return nil, &model.HTTPError{StatusCode: 500, Err: errors.New("internal error")}
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := fastOptions()
	opts.AfterError = time.Second
	rs := NewRetrySource(mock, opts, discardLogger())
	_, err := rs.FetchJobs(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call before cancellation, got %d", mock.calls)
	}
}

func TestBackoffDelay(t *testing.T) {
	rs := NewRetrySource(&mockSource{}, Options{
		MaxAttempts:       3,
		AfterError:        30 * time.Second,
		DefaultRetryAfter: 60 * time.Second,
	}, discardLogger())

	tests := []struct {
		name    string
		attempt int
		err     error
		want    time.Duration
	}{
		{"first transient", 1, errors.New("dial tcp: timeout"), 30 * time.Second},
		{"second transient doubles", 2, &model.HTTPError{StatusCode: 502}, 60 * time.Second},
		{"429 with header", 1, &model.HTTPError{StatusCode: 429, RetryAfter: 7 * time.Second}, 7 * time.Second},
		{"429 without header", 2, &model.HTTPError{StatusCode: 429}, 60 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rs.backoffDelay(tt.attempt, tt.err); got != tt.want {
				t.Errorf("backoffDelay = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRetry_LogsWithContextLogger(t *testing.T) {
	mock := &mockSource{fn: func(_ int) ([]model.RawJob, error) {
		return nil, &model.HTTPError{StatusCode: 503}
	}}
	rs := NewRetrySource(mock, fastOptions(), discardLogger())

	var buf bytes.Buffer
	ctx := control.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)).With("cycle", "c-7"))
	if _, err := rs.FetchJobs(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "source unavailable") {
		t.Fatalf("expected give-up warning, got:\n%s", out)
	}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if !strings.Contains(line, "cycle=c-7") || !strings.Contains(line, "source=Mock") {
			t.Errorf("line missing cycle or source: %s", line)
		}
	}
}
