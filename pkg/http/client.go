//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -source=client.go -destination=mock_client_test.go -package=http

package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	errUtils "github.com/cloudposse/cluster-testkit/errors"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 30 * time.Second

// Client defines the interface for making HTTP requests.
// This interface allows for easy mocking in tests.
type Client interface {
	// Do performs an HTTP request and returns the response.
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption is a functional option for configuring the DefaultClient.
type ClientOption func(*DefaultClient)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *DefaultClient) {
		if timeout > 0 {
			c.client.Timeout = timeout
		}
	}
}

// WithBearerToken sends token as a bearer credential on every request.
// It wraps the transport configured so far.
func WithBearerToken(token string) ClientOption {
	return func(c *DefaultClient) {
		if token != "" {
			c.client.Transport = &BearerTokenTransport{
				Base:  c.client.Transport,
				Token: token,
			}
		}
	}
}

// WithTransport sets a custom HTTP transport.
func WithTransport(transport http.RoundTripper) ClientOption {
	return func(c *DefaultClient) {
		c.client.Transport = transport
	}
}

// WithMaxConnsPerHost sizes the connection pool for n concurrent requests.
func WithMaxConnsPerHost(n int) ClientOption {
	return func(c *DefaultClient) {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.MaxIdleConnsPerHost = n
		transport.MaxConnsPerHost = n
		c.client.Transport = transport
	}
}

// DefaultClient is the default HTTP client implementation.
type DefaultClient struct {
	client *http.Client
}

// NewDefaultClient creates a new DefaultClient with optional configuration.
func NewDefaultClient(opts ...ClientOption) *DefaultClient {
	client := &DefaultClient{
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// BearerTokenTransport wraps a RoundTripper to add an Authorization header.
type BearerTokenTransport struct {
	Base  http.RoundTripper
	Token string
}

// RoundTrip implements http.RoundTripper interface.
func (t *BearerTokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+t.Token)

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("bearer transport roundtrip: %w", err)
	}

	return resp, nil
}

// Do implements Client.Do.
func (c *DefaultClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}

// GetStatus performs a JSON GET request and returns the status code.
// The response body is drained so the connection can be reused.
func GetStatus(ctx context.Context, url string, client Client) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", errors.Join(errUtils.ErrHTTPRequestFailed, err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", errors.Join(errUtils.ErrHTTPRequestFailed, err))
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response: %w", errors.Join(errUtils.ErrHTTPRequestFailed, err))
	}

	return resp.StatusCode, nil
}
