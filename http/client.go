// Package http provides an HTTP implementation of biblia.RemoteClient
// for the scripture text provider.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/biblia"
)

// DefaultFetchTimeout is the default timeout for a single attempt.
// Waits between transport-level retries are not counted against it.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the client to the provider.
const DefaultUserAgent = "biblia/1.0 (+https://github.com/fwojciec/biblia)"

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 8 << 20

// Ensure Client implements biblia.RemoteClient at compile time.
var _ biblia.RemoteClient = (*Client)(nil)

// Client issues GET requests against the provider. Responses with status
// 429, 500, 502, 503 or 504 are retried beneath the caller with exponential
// backoff before being returned.
type Client struct {
	client    *http.Client
	timeout   time.Duration
	delays    []time.Duration
	transport http.RoundTripper
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout for each HTTP attempt.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRetryDelays sets the backoff schedule of the transport-level retry.
// The number of attempts is len(delays)+1.
func WithRetryDelays(delays []time.Duration) Option {
	return func(c *Client) {
		c.delays = delays
	}
}

// WithTransport sets the underlying round tripper. Defaults to http.DefaultTransport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = rt
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a new provider Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		timeout:   DefaultFetchTimeout,
		delays:    DefaultRetryDelays(),
		transport: http.DefaultTransport,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Transport: &retryTransport{
			next:    c.transport,
			delays:  c.delays,
			timeout: c.timeout,
		},
	}

	return c
}

// Fetch performs a GET on url and returns the status and body.
// Non-2xx statuses are not errors; only transport failures are.
func (c *Client) Fetch(ctx context.Context, url string) (*biblia.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", url, err)
	}

	return &biblia.Response{StatusCode: resp.StatusCode, Body: body}, nil
}
