package courier

import (
	"strings"
	"sync"

	"github.com/armon/go-radix"
	"github.com/zoobzio/sentinel"
)

// Catalog collects endpoint declarations for one remote API. It indexes
// specs by path in a radix tree, rejects duplicate registrations, and
// exports an OpenAPI document describing the API surface the declared
// endpoints bind to.
type Catalog struct {
	spec *CatalogSpec
	mu   sync.RWMutex
	tree *radix.Tree
}

// NewCatalog creates a Catalog with the given spec.
// If spec is nil, uses DefaultCatalogSpec.
func NewCatalog(spec *CatalogSpec) *Catalog {
	if spec == nil {
		spec = DefaultCatalogSpec()
	}
	return &Catalog{
		spec: spec,
		tree: radix.New(),
	}
}

// catalogKey builds the tree key. The path leads so prefix walks group
// endpoints by path.
func catalogKey(method, path string) string {
	return path + " " + method
}

// Register adds one or more declarations to the catalog. Registering the
// same method and path twice is a DeclarationError. A rejected batch
// leaves the catalog untouched; nothing from it is registered.
func (c *Catalog) Register(decls ...Declaration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, len(decls))
	batch := make(map[string]bool, len(decls))
	for i, d := range decls {
		spec := d.Spec()
		key := catalogKey(spec.Method, spec.Path)
		if _, exists := c.tree.Get(key); exists || batch[key] {
			return &DeclarationError{Endpoint: spec.Name, Reason: "duplicate registration for " + spec.Method + " " + spec.Path}
		}
		batch[key] = true
		keys[i] = key
	}

	for i, d := range decls {
		c.tree.Insert(keys[i], d.Spec())
	}
	return nil
}

// Lookup returns the spec registered for a method and path template.
func (c *Catalog) Lookup(method, path string) (EndpointSpec, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.tree.Get(catalogKey(method, path))
	if !ok {
		return EndpointSpec{}, false
	}
	return v.(EndpointSpec), true
}

// WalkPrefix visits every spec whose path starts with the given prefix,
// in lexical path order. Returning true from fn stops the walk.
func (c *Catalog) WalkPrefix(prefix string, fn func(EndpointSpec) bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	c.tree.WalkPrefix(prefix, func(_ string, v any) bool {
		return fn(v.(EndpointSpec))
	})
}

// Specs returns every registered spec in lexical path order.
func (c *Catalog) Specs() []EndpointSpec {
	c.mu.RLock()
	defer c.mu.RUnlock()

	specs := make([]EndpointSpec, 0, c.tree.Len())
	c.tree.Walk(func(_ string, v any) bool {
		specs = append(specs, v.(EndpointSpec))
		return false
	})
	return specs
}

// Len returns the number of registered specs.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tree.Len()
}

// GenerateOpenAPI creates an OpenAPI document from the registered specs.
func (c *Catalog) GenerateOpenAPI() *OpenAPI {
	doc := &OpenAPI{
		OpenAPI: "3.0.3",
		Info: Info{
			Title:   c.spec.Info.Title,
			Version: c.spec.Info.Version,
		},
		Paths: make(map[string]PathItem),
		Components: &Components{
			Schemas: make(map[string]*Schema),
		},
	}
	for _, s := range c.spec.Servers {
		doc.Servers = append(doc.Servers, Server{URL: s.URL, Description: s.Description})
	}
	for _, t := range c.spec.Tags {
		doc.Tags = append(doc.Tags, Tag{Name: t.Name, Description: t.Description})
	}

	// Track unique schemas to add to components.
	schemas := make(map[string]*Schema)
	processedTypes := make(map[string]bool)

	var collectSchemas func(meta sentinel.ModelMetadata)
	collectSchemas = func(meta sentinel.ModelMetadata) {
		typeName := meta.TypeName
		if processedTypes[typeName] {
			return
		}
		processedTypes[typeName] = true

		schemas[typeName] = metadataToSchema(meta, bodyFieldsOnly)

		for _, rel := range meta.Relationships {
			if relMeta, found := sentinel.Lookup(rel.To); found {
				collectSchemas(relMeta)
			}
		}
	}

	for _, spec := range c.Specs() {
		pathItem, exists := doc.Paths[spec.Path]
		if !exists {
			pathItem = PathItem{}
		}

		operation := &PathOperation{
			OperationID: spec.Name,
			Summary:     spec.Summary,
			Description: spec.Description,
			Tags:        spec.Tags,
			Responses:   make(map[string]DocumentedResponse),
		}

		for _, name := range spec.PathParams {
			operation.Parameters = append(operation.Parameters, Parameter{
				Name:     name,
				In:       "path",
				Required: true,
				Schema:   &Schema{Type: "string"},
			})
		}
		for _, name := range spec.QueryParams {
			operation.Parameters = append(operation.Parameters, Parameter{
				Name:     name,
				In:       "query",
				Required: false,
				Schema:   &Schema{Type: "string"},
			})
		}

		switch {
		case spec.RawBody:
			operation.RequestBody = &RequestBody{
				Required: true,
				Content: map[string]MediaType{
					"application/octet-stream": {
						Schema: &Schema{Type: "string", Format: "binary"},
					},
				},
			}
		case len(spec.BodyParams) > 0:
			if inputMeta, found := sentinel.Lookup(spec.InputTypeName); found {
				collectSchemas(inputMeta)
			}
			operation.RequestBody = &RequestBody{
				Required: true,
				Content: map[string]MediaType{
					spec.ContentType: {
						Schema: &Schema{Ref: "#/components/schemas/" + spec.InputTypeName},
					},
				},
			}
		}

		success := DocumentedResponse{Description: "Success"}
		if spec.OutputTypeName != "NoResult" {
			if outputMeta, found := sentinel.Lookup(spec.OutputTypeName); found {
				collectSchemas(outputMeta)
			}
			success.Content = map[string]MediaType{
				spec.ContentType: {
					Schema: &Schema{Ref: "#/components/schemas/" + spec.OutputTypeName},
				},
			}
		}
		operation.Responses["200"] = success

		setOperationForMethod(&pathItem, spec.Method, operation)
		doc.Paths[spec.Path] = pathItem
	}

	for name, schema := range schemas {
		doc.Components.Schemas[name] = schema
	}

	return doc
}

// bodyFieldsOnly keeps the fields that serialize into a structured body.
func bodyFieldsOnly(fm sentinel.FieldMetadata) bool {
	tag, ok := fm.Tags[roleTag]
	if !ok {
		return fm.Tags["json"] != "-"
	}
	role, errReason := parseRole(tag)
	if errReason != "" {
		return false
	}
	return role == RoleBody
}

// metadataToSchema converts sentinel metadata to an OpenAPI schema,
// keeping only the fields the filter accepts.
func metadataToSchema(meta sentinel.ModelMetadata, keep func(sentinel.FieldMetadata) bool) *Schema {
	schema := &Schema{
		Type:       "object",
		Properties: make(map[string]*Schema),
	}

	var required []string
	for _, fm := range meta.Fields {
		if keep != nil && !keep(fm) {
			continue
		}

		name := paramName(fm)
		schema.Properties[name] = goTypeToSchema(fm.Type)

		if !hasOmitEmpty(fm) {
			required = append(required, name)
		}
	}

	if len(required) > 0 {
		schema.Required = required
	}
	return schema
}

// hasOmitEmpty reports whether a field's json tag carries omitempty.
func hasOmitEmpty(fm sentinel.FieldMetadata) bool {
	jsonTag, exists := fm.Tags["json"]
	if !exists {
		return false
	}
	parts := strings.Split(jsonTag, ",")
	for _, part := range parts[1:] {
		if strings.TrimSpace(part) == "omitempty" {
			return true
		}
	}
	return false
}

// goTypeToSchema converts a Go type string to an OpenAPI schema.
func goTypeToSchema(goType string) *Schema {
	goType = strings.TrimPrefix(goType, "*")

	if strings.HasPrefix(goType, "[]") {
		elementType := strings.TrimPrefix(goType, "[]")
		if elementType == "byte" || elementType == "uint8" {
			return &Schema{Type: "string", Format: "binary"}
		}
		return &Schema{
			Type:  "array",
			Items: goTypeToSchema(elementType),
		}
	}

	if strings.HasPrefix(goType, "map[") {
		return &Schema{
			Type:                 "object",
			AdditionalProperties: true,
		}
	}

	switch goType {
	case "string":
		return &Schema{Type: "string"}
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint16", "uint32", "uint64":
		return &Schema{Type: "integer"}
	case "float32", "float64":
		return &Schema{Type: "number"}
	case "bool":
		return &Schema{Type: "boolean"}
	case "time.Time":
		return &Schema{Type: "string", Format: "date-time"}
	default:
		// Complex type, reference a component schema by bare name.
		typeName := goType
		if idx := strings.LastIndex(goType, "."); idx != -1 {
			typeName = goType[idx+1:]
		}
		return &Schema{Ref: "#/components/schemas/" + typeName}
	}
}

// setOperationForMethod sets the operation on the matching method field.
func setOperationForMethod(pathItem *PathItem, method string, operation *PathOperation) {
	switch method {
	case "GET":
		pathItem.Get = operation
	case "POST":
		pathItem.Post = operation
	case "PUT":
		pathItem.Put = operation
	case "DELETE":
		pathItem.Delete = operation
	case "PATCH":
		pathItem.Patch = operation
	case "OPTIONS":
		pathItem.Options = operation
	case "HEAD":
		pathItem.Head = operation
	}
}
