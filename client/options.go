package client

import (
	"fmt"
	"time"
)

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithHTTPTimeout bounds each request. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.r.SetTimeout(d)
		return nil
	}
}

// WithRetries retries idempotent failures on connection errors and 5xx.
func WithRetries(count int, wait time.Duration) Option {
	return func(c *Client) error {
		if count < 0 {
			return fmt.Errorf("retry count must be >= 0")
		}
		c.r.SetRetryCount(count).SetRetryWaitTime(wait)
		return nil
	}
}

// WithDebugLogging logs each request and response. Do not enable it in
// production: headers including the bearer token are printed.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.r.SetDebug(enabled)
		return nil
	}
}
