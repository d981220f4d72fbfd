package courier

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

// Client executes compiled requests against a remote API. Implementations
// must preserve method, URL, headers, and body verbatim, and must return
// the actual status, headers, and body received. A Client must be safe
// for concurrent use; each endpoint execution invokes it exactly once.
type Client interface {
	// Base returns the base URL endpoint paths are joined onto.
	Base() string

	// Send performs one network exchange.
	Send(ctx context.Context, req *Request) (*Response, error)
}

// HTTPClient is the built-in Client backed by net/http.
type HTTPClient struct {
	base   string
	config *ClientConfig
	http   *http.Client
}

// NewHTTPClient creates an HTTPClient with the given base URL.
// If config is nil, uses DefaultClientConfig.
func NewHTTPClient(base string, config *ClientConfig) *HTTPClient {
	if config == nil {
		config = DefaultClientConfig()
	}

	return &HTTPClient{
		base:   base,
		config: config,
		http: &http.Client{
			Timeout:   config.Timeout,
			Transport: config.Transport,
		},
	}
}

// Base implements Client.
func (c *HTTPClient) Base() string {
	return c.base
}

// Send implements Client.
func (c *HTTPClient) Send(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, err
	}

	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	if c.config.UserAgent != "" && httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       respBody,
	}, nil
}
