package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestSnippet(t *testing.T) {
	cases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short body untouched", "short text", 100, "short text"},
		{"empty body", "", 100, ""},
		{"surrounding whitespace trimmed", "  trimmed  ", 100, "trimmed"},
		{"long body truncated", "long text that should be truncated", 10, "long text ..."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Snippet([]byte(tc.in), tc.max); got != tc.want {
				t.Errorf("Snippet(%q, %d): expected %q, got %q", tc.in, tc.max, tc.want, got)
			}
		})
	}
}

func TestHTTPErrorMessage(t *testing.T) {
	err := &HTTPError{
		Method:     http.MethodPost,
		URL:        "https://api.pipefy.com/graphql",
		StatusCode: 502,
		Body:       []byte("bad gateway"),
	}

	msg := err.Error()
	for _, part := range []string{"POST", "https://api.pipefy.com/graphql", "status=502", "bad gateway"} {
		if !strings.Contains(msg, part) {
			t.Errorf("Expected %q in error message, got %q", part, msg)
		}
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	if cfg.MaxAttempts != 5 {
		t.Errorf("Expected 5 attempts, got %d", cfg.MaxAttempts)
	}
	if cfg.BaseDelay != 700*time.Millisecond {
		t.Errorf("Expected 700ms base delay, got %v", cfg.BaseDelay)
	}
	if cfg.MaxDelay != 30*time.Second {
		t.Errorf("Expected 30s max delay, got %v", cfg.MaxDelay)
	}
}

func TestRetryableStatus(t *testing.T) {
	cases := []struct {
		code int
		want bool
	}{
		{http.StatusOK, false},
		{http.StatusMovedPermanently, false},
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
		{http.StatusForbidden, false},
		{http.StatusNotFound, false},
		{http.StatusRequestTimeout, true},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
		{http.StatusServiceUnavailable, true},
		{599, true},
	}
	for _, tc := range cases {
		if got := retryableStatus(tc.code); got != tc.want {
			t.Errorf("retryableStatus(%d): expected %v, got %v", tc.code, tc.want, got)
		}
	}
}

// slowNetErr satisfies net.Error with Timeout() true.
type slowNetErr struct{}

func (slowNetErr) Error() string   { return "i/o timeout" }
func (slowNetErr) Timeout() bool   { return true }
func (slowNetErr) Temporary() bool { return true }

func TestRetryableNetErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"net timeout", slowNetErr{}, true},
		{"connection reset", errors.New("read tcp: connection reset by peer"), true},
		{"broken pipe", errors.New("write: broken pipe"), true},
		{"unexpected eof", errors.New("unexpected EOF"), true},
		{"application error", errors.New("record rejected"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := retryableNetErr(tc.err); got != tc.want {
				t.Errorf("retryableNetErr(%v): expected %v, got %v", tc.err, tc.want, got)
			}
		})
	}
}

func TestParseRetryAfter(t *testing.T) {
	withHeader := func(v string) *http.Response {
		resp := &http.Response{Header: make(http.Header)}
		if v != "" {
			resp.Header.Set("Retry-After", v)
		}
		return resp
	}

	if got := ParseRetryAfter(withHeader("30")); got != 30*time.Second {
		t.Errorf("Expected 30s for a seconds value, got %v", got)
	}
	if got := ParseRetryAfter(withHeader("")); got != 0 {
		t.Errorf("Expected 0 for a missing header, got %v", got)
	}
	if got := ParseRetryAfter(withHeader("soon")); got != 0 {
		t.Errorf("Expected 0 for an unparseable header, got %v", got)
	}

	past := time.Now().Add(-time.Minute).Format(time.RFC1123)
	if got := ParseRetryAfter(withHeader(past)); got != 0 {
		t.Errorf("Expected 0 for a date already passed, got %v", got)
	}

	future := time.Now().Add(time.Minute).Format(time.RFC1123)
	got := ParseRetryAfter(withHeader(future))
	if got <= 0 || got > time.Minute {
		t.Errorf("Expected a positive duration up to 1m for a future date, got %v", got)
	}
}
