package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// HTTPError carries status/body for non-2xx responses.
// It lets callers decide if/when to retry, and it is the per-call
// transport failure recorded against individual records upstream.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: %s %s status=%d body=%s", e.Method, e.URL, e.StatusCode, Snippet(e.Body, 800))
}

// Snippet truncates a body for log/error output.
func Snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// RetryConfig controls retry behavior.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 5,
		BaseDelay:   700 * time.Millisecond,
		MaxDelay:    30 * time.Second,
	}
}

// retryable statuses seen in practice from both upstreams: throttling on the
// GraphQL side, gateway flaps in front of the SOAP side.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusRequestTimeout:
		return true
	}
	return code >= 500 && code <= 599
}

// DoWithRetry executes a request (built fresh per attempt by buildReq) with
// exponential backoff. The full body is always read, even on error, so the
// underlying connection can be reused, and returned to the caller: both
// upstreams put their diagnostics in the body, not the status line.
func DoWithRetry(
	ctx context.Context,
	client *http.Client,
	buildReq func(context.Context) (*http.Request, error),
	cfg RetryConfig,
) (*http.Response, []byte, error) {
	if cfg.MaxAttempts <= 0 {
		cfg = DefaultRetryConfig()
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 700 * time.Millisecond
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 30 * time.Second
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		req, err := buildReq(ctx)
		if err != nil {
			return nil, nil, err
		}

		resp, err := client.Do(req)
		if err != nil {
			if !retryableNetErr(err) {
				return nil, nil, err
			}
			lastErr = err
			if attempt < cfg.MaxAttempts {
				if err := sleepBackoff(ctx, attempt, cfg, 0); err != nil {
					return nil, nil, err
				}
			}
			continue
		}

		body, readErr := readAndClose(resp.Body)
		if readErr != nil {
			if !retryableNetErr(readErr) {
				return resp, body, readErr
			}
			lastErr = readErr
			if attempt < cfg.MaxAttempts {
				if err := sleepBackoff(ctx, attempt, cfg, 0); err != nil {
					return nil, nil, err
				}
			}
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, body, nil
		}

		herr := &HTTPError{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       body,
		}
		if !retryableStatus(resp.StatusCode) {
			return resp, body, herr
		}
		lastErr = herr
		// No sleep once the attempt budget is spent; the failure is already
		// decided and a server-supplied Retry-After must not stall it.
		if attempt < cfg.MaxAttempts {
			if err := sleepBackoff(ctx, attempt, cfg, ParseRetryAfter(resp)); err != nil {
				return nil, nil, err
			}
		}
	}

	if lastErr != nil {
		return nil, nil, lastErr
	}
	return nil, nil, errors.New("httpx: request failed")
}

// DoJSON is a convenience wrapper over DoWithRetry that unmarshals JSON.
func DoJSON(
	ctx context.Context,
	client *http.Client,
	buildReq func(context.Context) (*http.Request, error),
	out any,
	cfg RetryConfig,
) error {
	_, body, err := DoWithRetry(ctx, client, buildReq, cfg)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("json parse error: %w body=%s", err, Snippet(body, 800))
	}
	return nil
}

func readAndClose(rc io.ReadCloser) ([]byte, error) {
	defer rc.Close()
	return io.ReadAll(rc)
}

func sleepBackoff(ctx context.Context, attempt int, cfg RetryConfig, retryAfter time.Duration) error {
	sleep := retryAfter
	if sleep <= 0 {
		sleep = cfg.BaseDelay * time.Duration(1<<(attempt-1))
		if sleep > cfg.MaxDelay {
			sleep = cfg.MaxDelay
		}
		// jitter 0..400ms
		sleep += time.Duration(rand.IntN(400)) * time.Millisecond
	}

	t := time.NewTimer(sleep)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func retryableNetErr(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}

	// common transient I/O errors
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "eof")
}

// ParseRetryAfter parses a Retry-After header (seconds or HTTP date).
// Returns 0 when the header is missing or invalid.
func ParseRetryAfter(resp *http.Response) time.Duration {
	v := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
