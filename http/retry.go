package http

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"
)

// MaxRetryAfter caps how long a Retry-After header can delay a retry.
const MaxRetryAfter = 30 * time.Second

// DefaultRetryDelays returns the transport backoff delays: 1s, 2s (3 attempts).
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second}
}

// retryable reports whether a status is worth re-sending the request for.
func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// retryTransport re-sends requests that come back with a retryable status.
// Transport errors are returned unchanged. The final response is returned
// as-is, whatever its status.
//
// timeout bounds each attempt, from sending the request to closing the
// body, so backoff waits never eat into it. A retryable response is
// returned early when the wait would outlast the request's deadline.
type retryTransport struct {
	next    http.RoundTripper
	delays  []time.Duration
	timeout time.Duration
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	for attempt := 0; ; attempt++ {
		resp, err := t.attempt(req)
		if err != nil || !retryable(resp.StatusCode) || attempt >= len(t.delays) {
			return resp, err
		}

		delay := t.delays[attempt]
		if d, ok := retryAfter(resp); ok && d > delay {
			delay = d
		}
		if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < delay {
			return resp, nil
		}

		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		resp.Body.Close()

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// attempt sends req once under the per-attempt timeout.
func (t *retryTransport) attempt(req *http.Request) (*http.Response, error) {
	if t.timeout <= 0 {
		return t.next.RoundTrip(req)
	}
	ctx, cancel := context.WithTimeout(req.Context(), t.timeout)
	resp, err := t.next.RoundTrip(req.WithContext(ctx))
	if err != nil {
		cancel()
		return nil, err
	}
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

// cancelOnClose releases an attempt's context once its body is closed.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnClose) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(resp *http.Response) (time.Duration, bool) {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0, false
	}
	return min(time.Duration(secs)*time.Second, MaxRetryAfter), true
}
