package courier

// OpenAPI 3.0 document structs.
// Minimal implementation for describing the remote API surface a set of
// declared endpoints binds to.

// OpenAPI represents the root document object.
type OpenAPI struct {
	OpenAPI string              `json:"openapi" yaml:"openapi"`
	Info    Info                `json:"info" yaml:"info"`
	Servers []Server            `json:"servers,omitempty" yaml:"servers,omitempty"`
	Paths   map[string]PathItem `json:"paths" yaml:"paths"`
	Tags    []Tag               `json:"tags,omitempty" yaml:"tags,omitempty"`

	Components *Components `json:"components,omitempty" yaml:"components,omitempty"`
}

// Info provides metadata about the API.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version" yaml:"version"`
}

// Server represents a server the endpoints execute against.
type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Tag adds metadata to a documentation tag.
type Tag struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem describes operations available on a single path.
type PathItem struct {
	Get     *PathOperation `json:"get,omitempty" yaml:"get,omitempty"`
	Post    *PathOperation `json:"post,omitempty" yaml:"post,omitempty"`
	Put     *PathOperation `json:"put,omitempty" yaml:"put,omitempty"`
	Delete  *PathOperation `json:"delete,omitempty" yaml:"delete,omitempty"`
	Patch   *PathOperation `json:"patch,omitempty" yaml:"patch,omitempty"`
	Options *PathOperation `json:"options,omitempty" yaml:"options,omitempty"`
	Head    *PathOperation `json:"head,omitempty" yaml:"head,omitempty"`
}

// PathOperation describes a single operation on a path.
type PathOperation struct {
	Tags        []string                      `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary     string                        `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string                        `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string                        `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Parameters  []Parameter                   `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody                  `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]DocumentedResponse `json:"responses" yaml:"responses"`
}

// Parameter describes a path or query parameter.
type Parameter struct {
	Name     string  `json:"name" yaml:"name"`
	In       string  `json:"in" yaml:"in"` // "path" or "query"
	Required bool    `json:"required" yaml:"required"`
	Schema   *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// RequestBody describes the body an operation sends.
type RequestBody struct {
	Required bool                 `json:"required" yaml:"required"`
	Content  map[string]MediaType `json:"content" yaml:"content"`
}

// DocumentedResponse describes a response an operation expects.
type DocumentedResponse struct {
	Description string               `json:"description" yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// MediaType binds a media type to a schema.
type MediaType struct {
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Components holds reusable schemas.
type Components struct {
	Schemas map[string]*Schema `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

// Schema describes a data shape.
type Schema struct {
	Type                 string             `json:"type,omitempty" yaml:"type,omitempty"`
	Format               string             `json:"format,omitempty" yaml:"format,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Items                *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	Required             []string           `json:"required,omitempty" yaml:"required,omitempty"`
	Ref                  string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	AdditionalProperties bool               `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
}
