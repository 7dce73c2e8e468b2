// Package groww is an HTTP client for the Groww trading API.
package groww

import (
	"net"
	"net/http"
	"time"
)

// DefaultBaseURL is the production Groww API host.
const DefaultBaseURL = "https://api.groww.in"

// SegmentCash is the equity cash segment.
const SegmentCash = "CASH"

// HTTPClient describes the subset of *http.Client the Groww client uses.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API host (tests, sandboxes).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc HTTPClient) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithClock overrides the time source used for the login checksum.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewHTTPClient builds an http.Client with explicit transport timeouts.
// http.DefaultClient has no timeout, so it is never used for upstream calls.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
