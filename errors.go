package courier

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Category errors for the failure stages of endpoint execution.
// Every error returned by this package wraps exactly one of these,
// so callers can classify failures with errors.Is while the concrete
// error types below carry the diagnostics.
var (
	// ErrDeclaration indicates an invalid endpoint declaration (bad field
	// roles or a malformed path template). Detected at construction.
	ErrDeclaration = errors.New("invalid endpoint declaration")

	// ErrPathResolution indicates a path placeholder could not be resolved
	// against the endpoint instance.
	ErrPathResolution = errors.New("path resolution failed")

	// ErrSerialization indicates a body or query field failed to serialize.
	ErrSerialization = errors.New("serialization failed")

	// ErrInputValidation indicates the endpoint instance failed validation
	// before the request was built.
	ErrInputValidation = errors.New("input validation failed")

	// ErrTransport indicates the client failed to complete the exchange.
	ErrTransport = errors.New("transport failed")

	// ErrResponse indicates the server answered with a non-success status.
	ErrResponse = errors.New("server returned error")

	// ErrResponseParse indicates the transform or typed deserialization
	// failed on an otherwise successful response.
	ErrResponseParse = errors.New("response parse failed")

	// ErrMiddleware indicates a middleware step aborted the execution.
	ErrMiddleware = errors.New("middleware failed")
)

// DeclarationError reports an invalid endpoint declaration.
type DeclarationError struct {
	Endpoint string // Endpoint name.
	Reason   string // What is wrong with the declaration.
}

func (e *DeclarationError) Error() string {
	return fmt.Sprintf("endpoint %s: %s", e.Endpoint, e.Reason)
}

func (e *DeclarationError) Unwrap() error {
	return ErrDeclaration
}

// PathResolutionError reports a placeholder that could not be substituted.
type PathResolutionError struct {
	Template    string // The path template being compiled.
	Placeholder string // The placeholder that failed to resolve.
	Reason      string
}

func (e *PathResolutionError) Error() string {
	return fmt.Sprintf("path %q: placeholder {%s}: %s", e.Template, e.Placeholder, e.Reason)
}

func (e *PathResolutionError) Unwrap() error {
	return ErrPathResolution
}

// SerializationError reports a failure encoding the query or body.
type SerializationError struct {
	Endpoint string
	Err      error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("endpoint %s: serializing request data: %v", e.Endpoint, e.Err)
}

func (e *SerializationError) Unwrap() []error {
	return []error{ErrSerialization, e.Err}
}

// InputValidationError reports an endpoint instance that failed its
// validate tags before the request was built.
type InputValidationError struct {
	Endpoint string
	Err      error
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("endpoint %s: %v", e.Endpoint, e.Err)
}

func (e *InputValidationError) Unwrap() []error {
	return []error{ErrInputValidation, e.Err}
}

// TransportError reports a failed network exchange. The client is invoked
// exactly once per execution, so this is always fatal and never retried.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sending %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// ResponseError reports a status code outside the success range. Content
// holds the response body decoded as UTF-8 when possible; Raw always holds
// the original bytes.
type ResponseError struct {
	StatusCode int
	Content    string
	Raw        []byte
}

func (e *ResponseError) Error() string {
	if e.Content != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Content)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

func (e *ResponseError) Unwrap() error {
	return ErrResponse
}

// ResponseParseError reports a transform or deserialization failure on a
// successful response. Content holds the body when decodable as text.
type ResponseParseError struct {
	Err     error
	Content string
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("parsing response: %v", e.Err)
}

func (e *ResponseParseError) Unwrap() []error {
	return []error{ErrResponseParse, e.Err}
}

// MiddlewareError reports a middleware step that aborted the pipeline.
// Stage is either "request" or "response".
type MiddlewareError struct {
	Endpoint string
	Stage    string
	Err      error
}

func (e *MiddlewareError) Error() string {
	return fmt.Sprintf("endpoint %s: %s middleware: %v", e.Endpoint, e.Stage, e.Err)
}

func (e *MiddlewareError) Unwrap() []error {
	return []error{ErrMiddleware, e.Err}
}

// decodeContent returns the body as a string when it is valid UTF-8,
// otherwise an empty string. Callers keep the raw bytes alongside.
func decodeContent(body []byte) string {
	if utf8.Valid(body) {
		return string(body)
	}
	return ""
}
