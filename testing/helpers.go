// Package testing provides test utilities for courier.
package testing

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"

	"github.com/zoobzio/courier"
)

// Capture is an immutable snapshot of one request the APIServer received.
type Capture struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// DecodeJSON decodes the captured body into the provided value.
func (c *Capture) DecodeJSON(v any) error {
	return json.Unmarshal(c.Body, v)
}

// DecodeQuery binds the captured query string onto a struct using its
// schema tags.
func (c *Capture) DecodeQuery(v any) error {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return decoder.Decode(v, c.Query)
}

// APIServer is an in-process HTTP server for endpoint tests. Routes are
// registered with canned responses; every request that reaches the
// server is captured for later assertions.
type APIServer struct {
	router chi.Router
	server *httptest.Server

	mu       sync.Mutex
	captures []Capture
}

// NewAPIServer starts an APIServer. Callers must Close it.
func NewAPIServer() *APIServer {
	s := &APIServer{
		router: chi.NewRouter(),
	}
	s.router.Use(s.capture)
	s.server = httptest.NewServer(s.router)
	return s
}

// capture records each request before routing.
func (s *APIServer) capture(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body.Close()

		s.mu.Lock()
		s.captures = append(s.captures, Capture{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

// Handle registers a route with an arbitrary handler. The pattern uses
// chi syntax, so {param} segments are available via chi.URLParam.
func (s *APIServer) Handle(method, pattern string, handler http.HandlerFunc) {
	s.router.Method(method, pattern, handler)
}

// HandleJSON registers a route answering with a fixed status and a
// JSON-encoded body. A nil body sends an empty response.
func (s *APIServer) HandleJSON(method, pattern string, status int, body any) {
	s.router.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if body == nil {
			w.WriteHeader(status)
			return
		}
		data, err := json.Marshal(body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write(data)
	}))
}

// HandleRaw registers a route answering with a fixed status and verbatim
// body bytes.
func (s *APIServer) HandleRaw(method, pattern string, status int, body []byte) {
	s.router.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		w.Write(body)
	}))
}

// URL returns the server's base URL.
func (s *APIServer) URL() string {
	return s.server.URL
}

// Client returns an HTTPClient pointed at this server.
func (s *APIServer) Client(config *courier.ClientConfig) *courier.HTTPClient {
	return courier.NewHTTPClient(s.server.URL, config)
}

// Captures returns a copy of every captured request, oldest first.
func (s *APIServer) Captures() []Capture {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Capture, len(s.captures))
	copy(out, s.captures)
	return out
}

// LastCapture returns the most recent captured request, or nil when no
// request arrived.
func (s *APIServer) LastCapture() *Capture {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.captures) == 0 {
		return nil
	}
	c := s.captures[len(s.captures)-1]
	return &c
}

// Close shuts the server down.
func (s *APIServer) Close() {
	s.server.Close()
}
