package courier

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/sentinel"
)

// MethodList is the non-standard LIST verb used by some APIs (notably
// Vault-style secret stores), accepted alongside the standard methods.
const MethodList = "LIST"

// statusMin and statusMax bound the inclusive range of status codes
// treated as success.
const (
	statusMin = 200
	statusMax = 208
)

// IsSuccess reports whether a status code counts as a successful
// response. Codes 200 through 208 inclusive are success; everything else
// rejects the response before conversion.
func IsSuccess(code int) bool {
	return code >= statusMin && code <= statusMax
}

// NoBody is the input type for endpoints that send no data.
type NoBody struct{}

// NoResult is the output type for endpoints whose response body carries
// nothing worth decoding. A successful response converts to NoResult
// without touching the codec, whatever the body contains.
type NoResult struct{}

// Transform reshapes the response body text before typed deserialization.
// It is attached per declaration and exists to strip generic envelopes
// remote APIs wrap their payloads in. It never runs for raw executions.
type Transform func(body string) (string, error)

// Endpoint is an immutable declaration of a remote HTTP operation bound
// to an input shape In and a result shape Out. Construction classifies
// the fields of In by their endpoint tags and validates the declaration;
// execution compiles an instance of In into a wire request, sends it
// through a Client, and converts the response into Out.
//
// Field roles are assigned with the endpoint struct tag:
//
//	type CreateWidget struct {
//		Category string  `json:"-" endpoint:"skip"`  // path only
//		Tag      *string `json:"tag" endpoint:"query"`
//		Name     string  `json:"name"`               // body (default)
//	}
//
// Fields holding a nil optional value are omitted from the query and the
// body entirely. A single field may be tagged raw; its bytes become the
// whole request body verbatim. A field tagged json:"-" with no endpoint
// tag behaves as skip, matching what encoding/json would do with it.
type Endpoint[In, Out any] struct {
	// Declarative specification
	spec EndpointSpec

	// Field classification scanned from In.
	roles *roleSet

	// Runtime configuration
	codec         Codec
	transform     Transform
	middleware    []MiddleWare
	validateInput bool
	validator     *validator.Validate

	// Type metadata from sentinel.
	InputMeta  sentinel.ModelMetadata
	OutputMeta sentinel.ModelMetadata
}

// NewEndpoint creates an endpoint declaration. The method must be one of
// GET, POST, PUT, PATCH, DELETE, HEAD, OPTIONS, or LIST, and every
// {placeholder} in the path template must name a field of In. Violations
// return a DeclarationError; nothing is deferred to execution time.
func NewEndpoint[In, Out any](name, method, path string) (*Endpoint[In, Out], error) {
	inputMeta := sentinel.Scan[In]()
	outputMeta := sentinel.Scan[Out]()

	if !validMethod(method) {
		return nil, &DeclarationError{Endpoint: name, Reason: fmt.Sprintf("unsupported method %q", method)}
	}

	roles, reason := scanRoles(inputMeta)
	if reason != "" {
		return nil, &DeclarationError{Endpoint: name, Reason: reason}
	}

	params := pathPlaceholders(path)
	for _, p := range params {
		if _, ok := roles.lookup(p); !ok {
			return nil, &DeclarationError{Endpoint: name, Reason: fmt.Sprintf("path placeholder {%s} names no field of %s", p, inputMeta.TypeName)}
		}
	}

	codec := JSONCodec{}
	e := &Endpoint[In, Out]{
		spec: EndpointSpec{
			Name:           name,
			Method:         method,
			Path:           path,
			PathParams:     params,
			QueryParams:    roles.queryParams(),
			BodyParams:     roles.bodyParams(),
			RawBody:        roles.raw != nil,
			InputTypeName:  inputMeta.TypeName,
			OutputTypeName: outputMeta.TypeName,
			ContentType:    codec.ContentType(),
		},
		roles:      roles,
		codec:      codec,
		validator:  validator.New(),
		InputMeta:  inputMeta,
		OutputMeta: outputMeta,
	}

	capitan.Emit(context.Background(), EndpointDeclared,
		EndpointNameKey.Field(name),
		MethodKey.Field(method),
		PathKey.Field(path),
	)

	return e, nil
}

// MustEndpoint is like NewEndpoint but panics on an invalid declaration.
// Intended for package-level endpoint variables.
func MustEndpoint[In, Out any](name, method, path string) *Endpoint[In, Out] {
	e, err := NewEndpoint[In, Out](name, method, path)
	if err != nil {
		panic(err)
	}
	return e
}

func validMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodHead, http.MethodOptions, MethodList:
		return true
	}
	return false
}

// WithCodec sets the codec used for the body and typed result.
func (e *Endpoint[In, Out]) WithCodec(codec Codec) *Endpoint[In, Out] {
	e.codec = codec
	e.spec.ContentType = codec.ContentType()
	return e
}

// WithTransform attaches the unwrap transform applied before typed
// deserialization.
func (e *Endpoint[In, Out]) WithTransform(transform Transform) *Endpoint[In, Out] {
	e.transform = transform
	return e
}

// WithMiddleware appends middleware to this endpoint's chain and returns
// the endpoint for chaining. The chain runs in registration order on both
// the request and the response path.
func (e *Endpoint[In, Out]) WithMiddleware(middleware ...MiddleWare) *Endpoint[In, Out] {
	e.middleware = append(e.middleware, middleware...)
	return e
}

// WithHeader attaches middleware setting a fixed header on every request
// this endpoint compiles.
func (e *Endpoint[In, Out]) WithHeader(key, value string) *Endpoint[In, Out] {
	return e.WithMiddleware(SetHeaders(map[string]string{key: value}))
}

// WithValidation enables validate-tag checking of the instance before
// each request build.
func (e *Endpoint[In, Out]) WithValidation() *Endpoint[In, Out] {
	e.validateInput = true
	return e
}

// WithSummary sets the documentation summary.
func (e *Endpoint[In, Out]) WithSummary(summary string) *Endpoint[In, Out] {
	e.spec.Summary = summary
	return e
}

// WithDescription sets the documentation description.
func (e *Endpoint[In, Out]) WithDescription(desc string) *Endpoint[In, Out] {
	e.spec.Description = desc
	return e
}

// WithTags sets the documentation tags.
func (e *Endpoint[In, Out]) WithTags(tags ...string) *Endpoint[In, Out] {
	e.spec.Tags = tags
	return e
}

// Spec implements Declaration.
func (e *Endpoint[In, Out]) Spec() EndpointSpec {
	return e.spec
}

// Name implements Declaration.
func (e *Endpoint[In, Out]) Name() string {
	return e.spec.Name
}

// Method implements Declaration.
func (e *Endpoint[In, Out]) Method() string {
	return e.spec.Method
}

// Path implements Declaration.
func (e *Endpoint[In, Out]) Path() string {
	return e.spec.Path
}

// URL compiles the full request URL for an instance: base joined with the
// resolved path, plus the encoded query string.
func (e *Endpoint[In, Out]) URL(base string, in In) (string, error) {
	instance := instanceValue(in)

	path, err := compilePath(e.spec.Path, e.roles, instance)
	if err != nil {
		return "", err
	}

	url := joinURL(base, path)
	if query := buildQuery(e.roles, instance); query != "" {
		url += "?" + query
	}
	return url, nil
}

// BuildRequest compiles an instance into a wire-ready request without
// executing it. Headers start empty; middleware populates them during
// execution. Useful for handing requests to a transport this package
// does not know about.
func (e *Endpoint[In, Out]) BuildRequest(base string, in In) (*Request, error) {
	if e.validateInput {
		if err := e.validator.Struct(in); err != nil {
			return nil, &InputValidationError{Endpoint: e.spec.Name, Err: err}
		}
	}

	url, err := e.URL(base, in)
	if err != nil {
		return nil, err
	}

	body, err := buildBody(e.roles, instanceValue(in), e.codec)
	if err != nil {
		return nil, &SerializationError{Endpoint: e.spec.Name, Err: err}
	}

	return &Request{
		Method: e.spec.Method,
		URL:    url,
		Header: http.Header{},
		Body:   body,
	}, nil
}

// Exec executes the endpoint against a client and converts the response
// body into Out. Extra middleware is appended after the declaration's own
// chain, preserving registration order on both directions. Conversion
// applies the unwrap transform first when one is attached; a NoResult
// endpoint and an empty body both convert without touching the codec.
// An empty success body therefore yields the zero Out, which callers
// cannot distinguish from a decoded zero value; use ExecRaw when the
// difference matters.
func (e *Endpoint[In, Out]) Exec(ctx context.Context, client Client, in In, middleware ...MiddleWare) (Out, error) {
	var out Out

	resp, err := e.exec(ctx, client, in, middleware)
	if err != nil {
		return out, err
	}

	if e.OutputMeta.TypeName == "NoResult" {
		return out, nil
	}

	body := resp.Body
	if e.transform != nil {
		text, terr := e.transform(string(body))
		if terr != nil {
			capitan.Error(ctx, ResponseParseFailed,
				EndpointNameKey.Field(e.spec.Name),
				ErrorKey.Field(terr.Error()),
			)
			return out, &ResponseParseError{Err: terr, Content: decodeContent(body)}
		}
		body = []byte(text)
	}

	if len(body) == 0 {
		return out, nil
	}

	if err := e.codec.Unmarshal(body, &out); err != nil {
		capitan.Error(ctx, ResponseParseFailed,
			EndpointNameKey.Field(e.spec.Name),
			ErrorKey.Field(err.Error()),
		)
		return out, &ResponseParseError{Err: err, Content: decodeContent(body)}
	}
	return out, nil
}

// ExecRaw executes the endpoint and returns the response body bytes
// unconverted, skipping both the unwrap transform and deserialization.
func (e *Endpoint[In, Out]) ExecRaw(ctx context.Context, client Client, in In, middleware ...MiddleWare) ([]byte, error) {
	resp, err := e.exec(ctx, client, in, middleware)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// exec runs the pipeline: build, request middleware, single send,
// response middleware, status validation. Every stage fails fast; a
// failed build or request-side middleware never reaches the client, and
// a failed response-side middleware never reaches conversion.
func (e *Endpoint[In, Out]) exec(ctx context.Context, client Client, in In, extra []MiddleWare) (*Response, error) {
	start := time.Now()

	capitan.Debug(ctx, EndpointExecuting,
		EndpointNameKey.Field(e.spec.Name),
		MethodKey.Field(e.spec.Method),
		PathKey.Field(e.spec.Path),
	)

	req, err := e.BuildRequest(client.Base(), in)
	if err != nil {
		capitan.Error(ctx, RequestBuildFailed,
			EndpointNameKey.Field(e.spec.Name),
			ErrorKey.Field(err.Error()),
		)
		return nil, err
	}

	capitan.Debug(ctx, RequestBuilt,
		EndpointNameKey.Field(e.spec.Name),
		MethodKey.Field(req.Method),
		URLKey.Field(req.URL),
		BodyBytesKey.Field(len(req.Body)),
	)

	chain := make([]MiddleWare, 0, len(e.middleware)+len(extra))
	chain = append(chain, e.middleware...)
	chain = append(chain, extra...)

	for _, mw := range chain {
		if mwErr := mw.OnRequest(e.spec, req); mwErr != nil {
			capitan.Warn(ctx, MiddlewareAborted,
				EndpointNameKey.Field(e.spec.Name),
				StageKey.Field("request"),
				ErrorKey.Field(mwErr.Error()),
			)
			return nil, &MiddlewareError{Endpoint: e.spec.Name, Stage: "request", Err: mwErr}
		}
	}

	capitan.Debug(ctx, TransportSending,
		EndpointNameKey.Field(e.spec.Name),
		MethodKey.Field(req.Method),
		URLKey.Field(req.URL),
		BodyBytesKey.Field(len(req.Body)),
	)

	resp, err := client.Send(ctx, req)
	if err != nil {
		capitan.Error(ctx, TransportFailed,
			EndpointNameKey.Field(e.spec.Name),
			MethodKey.Field(req.Method),
			URLKey.Field(req.URL),
			ErrorKey.Field(err.Error()),
		)
		return nil, &TransportError{Method: req.Method, URL: req.URL, Err: err}
	}

	durationMs := time.Since(start).Milliseconds()
	capitan.Debug(ctx, ResponseReceived,
		EndpointNameKey.Field(e.spec.Name),
		StatusCodeKey.Field(resp.StatusCode),
		BodyBytesKey.Field(len(resp.Body)),
		DurationMsKey.Field(durationMs),
	)

	for _, mw := range chain {
		if mwErr := mw.OnResponse(e.spec, resp); mwErr != nil {
			capitan.Warn(ctx, MiddlewareAborted,
				EndpointNameKey.Field(e.spec.Name),
				StageKey.Field("response"),
				ErrorKey.Field(mwErr.Error()),
			)
			return nil, &MiddlewareError{Endpoint: e.spec.Name, Stage: "response", Err: mwErr}
		}
	}

	if !IsSuccess(resp.StatusCode) {
		capitan.Warn(ctx, ResponseRejected,
			EndpointNameKey.Field(e.spec.Name),
			StatusCodeKey.Field(resp.StatusCode),
		)
		return nil, &ResponseError{
			StatusCode: resp.StatusCode,
			Content:    decodeContent(resp.Body),
			Raw:        resp.Body,
		}
	}

	capitan.Info(ctx, EndpointCompleted,
		EndpointNameKey.Field(e.spec.Name),
		StatusCodeKey.Field(resp.StatusCode),
		DurationMsKey.Field(durationMs),
	)

	return resp, nil
}

// instanceValue unwraps an endpoint instance down to its struct value so
// fields can be read reflectively.
func instanceValue(in any) reflect.Value {
	v := reflect.ValueOf(in)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return v
}
