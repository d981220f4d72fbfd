package courier

import (
	"net/http"
	"testing"
	"time"
)

func TestDefaultClientConfig(t *testing.T) {
	config := DefaultClientConfig()

	if config.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", config.Timeout)
	}
	if config.UserAgent != "" {
		t.Errorf("expected empty user agent, got %q", config.UserAgent)
	}
	if config.Transport != nil {
		t.Error("expected nil transport by default")
	}
}

func TestClientConfig_Chaining(t *testing.T) {
	transport := &http.Transport{}
	config := DefaultClientConfig().
		WithTimeout(5 * time.Second).
		WithUserAgent("courier/1.0").
		WithTransport(transport)

	if config.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", config.Timeout)
	}
	if config.UserAgent != "courier/1.0" {
		t.Errorf("expected user agent, got %q", config.UserAgent)
	}
	if config.Transport != http.RoundTripper(transport) {
		t.Error("expected configured transport")
	}
}
