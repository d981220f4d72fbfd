package courier

// Declaration represents a declared endpoint without its generic input
// and output types. Every Endpoint implements it; the Catalog collects
// Declarations for lookup and documentation export.
type Declaration interface {
	// Spec returns the declarative specification for this endpoint.
	Spec() EndpointSpec

	// Name returns the endpoint name.
	Name() string

	// Method returns the HTTP method.
	Method() string

	// Path returns the path template.
	Path() string
}
