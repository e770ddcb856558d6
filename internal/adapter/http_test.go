package adapter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amishk599/remotefeed/internal/model"
)

// roundTripFunc adapts a function into an http.RoundTripper.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// newTestClient returns a client that sends every request to srv, keeping
// path and query so adapters can use their production URLs.
func newTestClient(srv *httptest.Server) *http.Client {
	return &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			req.URL.Scheme = "http"
			req.URL.Host = srv.Listener.Addr().String()
			return http.DefaultTransport.RoundTrip(req)
		}),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func jsonServer(t *testing.T, payload string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 0},
		{"120", 120 * time.Second},
		{"0", 0},
		{"-5", 0},
		{"Wed, 21 Oct 2015 07:28:00 GMT", 0},
	}
	for _, tt := range tests {
		if got := parseRetryAfter(tt.value); got != tt.want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestGetJSON_SetsHeaders(t *testing.T) {
	var gotUA, gotAccept, gotCustom string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotCustom = r.Header.Get("X-Api-App-Id")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	header := http.Header{}
	header.Set("X-Api-App-Id", "secret")
	var out map[string]any
	if err := getJSON(context.Background(), newTestClient(srv), "https://example.com/x", header, &out); err != nil {
		t.Fatalf("getJSON: %v", err)
	}

	known := false
	for _, ua := range userAgents {
		if gotUA == ua {
			known = true
		}
	}
	if !known {
		t.Errorf("User-Agent %q not from the rotation list", gotUA)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}
	if gotCustom != "secret" {
		t.Errorf("X-Api-App-Id = %q, want secret", gotCustom)
	}
}

func TestGetJSON_StatusBecomesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	var out any
	err := getJSON(context.Background(), newTestClient(srv), "https://example.com/x", nil, &out)
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *model.HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", httpErr.StatusCode)
	}
	if httpErr.RetryAfter != 30*time.Second {
		t.Errorf("RetryAfter = %v, want 30s", httpErr.RetryAfter)
	}
}

func TestGetJSON_MalformedPayload(t *testing.T) {
	srv := jsonServer(t, `{not valid json`)

	var out any
	err := getJSON(context.Background(), newTestClient(srv), "https://example.com/x", nil, &out)
	if !errors.Is(err, model.ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
}

func TestSalaryRange(t *testing.T) {
	tests := []struct {
		from, to int64
		want     string
	}{
		{100000, 150000, "100,000-150,000 RUB"},
		{100000, 0, "от 100,000 RUB"},
		{0, 150000, "до 150,000 RUB"},
		{0, 0, ""},
	}
	for _, tt := range tests {
		if got := salaryRange(tt.from, tt.to, "RUB"); got != tt.want {
			t.Errorf("salaryRange(%d, %d) = %q, want %q", tt.from, tt.to, got, tt.want)
		}
	}
}
