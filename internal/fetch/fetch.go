// Package fetch is the bounded HTTP primitive under the failover poller:
// one GET with a wall-clock timeout and a hard cap on bytes read. It never
// retries; failover is the caller's concern.
package fetch

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Default bounds, overridable from config.
const (
	DefaultTimeout  = 10 * time.Second
	DefaultMaxBytes = 512 * 1024
)

// Outcome is the result of a single bounded fetch. Produced once, never
// mutated.
type Outcome struct {
	OK        bool
	Body      []byte
	Status    int
	BytesRead int
	Truncated bool
	Err       error
}

// Client performs bounded fetches. Safe for concurrent use.
type Client struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

// Option configures Client.
type Option func(*Client)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMaxBytes sets the hard ceiling on bytes read from one response.
func WithMaxBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBytes = n
		}
	}
}

// WithHTTPClient sets a custom http.Client (tests inject a stub transport).
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// New creates a bounded fetch client.
func New(opts ...Option) *Client {
	c := &Client{
		client:   &http.Client{},
		timeout:  DefaultTimeout,
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch performs one GET against url. If no complete response arrives
// within the timeout the call is cancelled and reported as a network
// failure. While the body streams, the moment the running total reaches the
// byte cap the transfer is aborted and the prefix received so far becomes
// the payload, with Truncated set. Whether that prefix still parses is the
// caller's problem.
func (c *Client) Fetch(ctx context.Context, url string, headers map[string]string) Outcome {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Outcome{Err: &NetworkError{Err: err}}
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Outcome{Err: &NetworkError{Err: err}}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain nothing: the status alone is the outcome.
		return Outcome{Status: resp.StatusCode, Err: &StatusError{Code: resp.StatusCode}}
	}

	// Read one byte past the cap so truncation is detectable without ever
	// buffering beyond the bound.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return Outcome{Status: resp.StatusCode, BytesRead: len(body), Err: &NetworkError{Err: err}}
	}

	truncated := false
	if int64(len(body)) > c.maxBytes {
		body = body[:c.maxBytes]
		truncated = true
	}

	return Outcome{
		OK:        true,
		Body:      body,
		Status:    resp.StatusCode,
		BytesRead: len(body),
		Truncated: truncated,
	}
}
