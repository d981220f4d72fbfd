package courier

import "github.com/zoobzio/capitan"

// Declaration signals.
var (
	// EndpointDeclared is emitted when an endpoint declaration is constructed.
	// Fields: EndpointNameKey, MethodKey, PathKey.
	EndpointDeclared = capitan.NewSignal("http.endpoint.declared", "Endpoint declaration constructed with method and path template")
)

// Execution lifecycle signals.
var (
	// EndpointExecuting is emitted when an execution begins.
	// Fields: EndpointNameKey, MethodKey, PathKey.
	EndpointExecuting = capitan.NewSignal("http.endpoint.executing", "Endpoint execution started against a client")

	// RequestBuilt is emitted when the compiled request is ready.
	// Fields: EndpointNameKey, MethodKey, URLKey, BodyBytesKey.
	RequestBuilt = capitan.NewSignal("http.request.built", "Endpoint compiled into a wire-ready request")

	// RequestBuildFailed is emitted when path compilation or serialization fails.
	// Fields: EndpointNameKey, ErrorKey.
	RequestBuildFailed = capitan.NewSignal("http.request.build.failed", "Request build failed before any network call")

	// TransportSending is emitted immediately before the client send.
	// Fields: EndpointNameKey, MethodKey, URLKey, BodyBytesKey.
	TransportSending = capitan.NewSignal("http.transport.sending", "Client sending compiled request over the wire")

	// TransportFailed is emitted when the client fails to complete the exchange.
	// Fields: EndpointNameKey, MethodKey, URLKey, ErrorKey.
	TransportFailed = capitan.NewSignal("http.transport.failed", "Client failed to complete the network exchange")

	// ResponseReceived is emitted after a completed exchange.
	// Fields: EndpointNameKey, StatusCodeKey, BodyBytesKey, DurationMsKey.
	ResponseReceived = capitan.NewSignal("http.response.received", "Client returned a response for the compiled request")

	// ResponseRejected is emitted when the status falls outside the success range.
	// Fields: EndpointNameKey, StatusCodeKey.
	ResponseRejected = capitan.NewSignal("http.response.rejected", "Response status outside success range, conversion skipped")

	// ResponseParseFailed is emitted when the transform or typed decode fails.
	// Fields: EndpointNameKey, ErrorKey.
	ResponseParseFailed = capitan.NewSignal("http.response.parse.failed", "Transform or typed deserialization failed on successful response")

	// MiddlewareAborted is emitted when a middleware step fails.
	// Fields: EndpointNameKey, StageKey, ErrorKey.
	MiddlewareAborted = capitan.NewSignal("http.middleware.aborted", "Middleware step failed and aborted the execution")

	// EndpointCompleted is emitted when an execution produces a result.
	// Fields: EndpointNameKey, StatusCodeKey, DurationMsKey.
	EndpointCompleted = capitan.NewSignal("http.endpoint.completed", "Endpoint execution completed with a converted result")
)

// Event field keys (primitive types only).
var (
	EndpointNameKey = capitan.NewStringKey("endpoint_name")
	MethodKey       = capitan.NewStringKey("method")
	PathKey         = capitan.NewStringKey("path")
	URLKey          = capitan.NewStringKey("url")
	StatusCodeKey   = capitan.NewIntKey("status_code")
	BodyBytesKey    = capitan.NewIntKey("body_bytes")
	DurationMsKey   = capitan.NewInt64Key("duration_ms")
	StageKey        = capitan.NewStringKey("stage")
	ErrorKey        = capitan.NewStringKey("error")
)
