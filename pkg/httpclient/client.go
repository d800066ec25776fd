// Package httpclient provides the retrying HTTP client used for every
// outbound call: source adapter searches, comment enrichment, agent card
// discovery, and agent-to-agent invocation. Calls carry a bounded timeout
// and at most a small number of retries on transient failures, so a dead
// upstream degrades instead of hanging a run.
package httpclient

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds each attempt. The upstream APIs answer in
	// well under a second when healthy.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxRetries allows one retry on a retryable status.
	DefaultMaxRetries = 1
)

// Client wraps http.Client with retry-on-transient-status behavior.
type Client struct {
	client     *http.Client
	maxRetries int
	baseDelay  time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

// WithMaxRetries sets how many retries follow the first attempt.
func WithMaxRetries(max int) Option {
	return func(c *Client) {
		c.maxRetries = max
	}
}

// WithBaseDelay sets the delay before the first retry.
func WithBaseDelay(delay time.Duration) Option {
	return func(c *Client) {
		c.baseDelay = delay
	}
}

// New builds a client with bounded timeout and a single retry by default.
func New(opts ...Option) *Client {
	client := &Client{
		client:     &http.Client{Timeout: DefaultTimeout},
		maxRetries: DefaultMaxRetries,
		baseDelay:  500 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// retryableStatus reports whether a status code is worth one more attempt.
func retryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusRequestTimeout,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// Do executes the request, retrying on transport errors and retryable
// statuses. The response body of a failed attempt is closed before the
// next attempt.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	var lastErr error
	var lastStatus int

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, fmt.Errorf("failed to recreate request body for retry: %w", err)
				}
				req.Body = body
			}
			delay := time.Duration(attempt) * c.baseDelay
			slog.Debug("Retrying HTTP request", "url", req.URL.String(), "attempt", attempt, "delay", delay)
			time.Sleep(delay)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if !retryableStatus(resp.StatusCode) {
			return resp, nil
		}

		lastStatus = resp.StatusCode
		lastErr = fmt.Errorf("HTTP %d", resp.StatusCode)
		resp.Body.Close()
	}

	return nil, &RetryableError{
		StatusCode: lastStatus,
		Message:    fmt.Sprintf("max retries (%d) exceeded", c.maxRetries),
		Err:        lastErr,
	}
}
