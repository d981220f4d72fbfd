package courier

import (
	"net/http"
	"time"
)

// ClientConfig holds configuration for the built-in HTTPClient.
type ClientConfig struct {
	Timeout   time.Duration     // Maximum duration for one exchange (0 = no limit beyond context)
	UserAgent string            // Sent only when middleware set no User-Agent header
	Transport http.RoundTripper // Underlying transport (nil = http.DefaultTransport)
}

// DefaultClientConfig returns a ClientConfig with sensible defaults.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Timeout: 30 * time.Second,
	}
}

// WithTimeout sets the per-exchange timeout.
func (c *ClientConfig) WithTimeout(timeout time.Duration) *ClientConfig {
	c.Timeout = timeout
	return c
}

// WithUserAgent sets the fallback User-Agent header.
func (c *ClientConfig) WithUserAgent(agent string) *ClientConfig {
	c.UserAgent = agent
	return c
}

// WithTransport sets the underlying HTTP transport.
func (c *ClientConfig) WithTransport(transport http.RoundTripper) *ClientConfig {
	c.Transport = transport
	return c
}
