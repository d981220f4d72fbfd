package courier

import "github.com/zoobzio/openapi"

// EndpointSpec contains declarative configuration for an endpoint.
// This spec is serializable and represents all metadata about a declared
// endpoint that can be used for documentation, cataloging, and middleware
// decisions. It never changes after the endpoint is constructed.
type EndpointSpec struct {
	// Addressing
	Name   string `json:"name" yaml:"name"`
	Method string `json:"method" yaml:"method"`
	Path   string `json:"path" yaml:"path"` // Template with {placeholder} segments.

	// Documentation
	Summary     string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Request/Response
	PathParams     []string `json:"pathParams,omitempty" yaml:"pathParams,omitempty"`
	QueryParams    []string `json:"queryParams,omitempty" yaml:"queryParams,omitempty"`
	BodyParams     []string `json:"bodyParams,omitempty" yaml:"bodyParams,omitempty"`
	RawBody        bool     `json:"rawBody,omitempty" yaml:"rawBody,omitempty"`
	InputTypeName  string   `json:"inputTypeName" yaml:"inputTypeName"`
	OutputTypeName string   `json:"outputTypeName" yaml:"outputTypeName"`

	// Encoding
	ContentType string `json:"contentType" yaml:"contentType"`
}

// CatalogSpec contains declarative configuration for an endpoint catalog.
// This spec is serializable and represents metadata about the remote API
// a set of declared endpoints binds to, used for documentation export.
type CatalogSpec struct {
	// OpenAPI Info
	Info openapi.Info `json:"info" yaml:"info"`

	// Global Tags with descriptions
	Tags []openapi.Tag `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Servers the endpoints are executed against
	Servers []openapi.Server `json:"servers,omitempty" yaml:"servers,omitempty"`
}

// DefaultCatalogSpec returns a CatalogSpec with sensible defaults.
func DefaultCatalogSpec() *CatalogSpec {
	return &CatalogSpec{
		Info: openapi.Info{
			Title:   "API",
			Version: "1.0.0",
		},
		Tags:    []openapi.Tag{},
		Servers: []openapi.Server{},
	}
}
