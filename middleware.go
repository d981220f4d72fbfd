package courier

import "encoding/base64"

// MiddleWare mutates the request before it is sent and the response
// before it is converted. Chains run in registration order on both the
// request and the response path; ordering for both directions is the
// caller's responsibility. A returned error aborts the execution
// immediately: a request-side failure prevents the network call, a
// response-side failure prevents conversion.
type MiddleWare interface {
	// OnRequest modifies the compiled request before the client sends it.
	OnRequest(spec EndpointSpec, req *Request) error

	// OnResponse modifies the raw response before status validation and
	// conversion.
	OnResponse(spec EndpointSpec, resp *Response) error
}

// RequestFunc adapts a function to a request-only MiddleWare.
type RequestFunc func(spec EndpointSpec, req *Request) error

// OnRequest implements MiddleWare.
func (f RequestFunc) OnRequest(spec EndpointSpec, req *Request) error {
	return f(spec, req)
}

// OnResponse implements MiddleWare.
func (RequestFunc) OnResponse(EndpointSpec, *Response) error {
	return nil
}

// ResponseFunc adapts a function to a response-only MiddleWare.
type ResponseFunc func(spec EndpointSpec, resp *Response) error

// OnRequest implements MiddleWare.
func (ResponseFunc) OnRequest(EndpointSpec, *Request) error {
	return nil
}

// OnResponse implements MiddleWare.
func (f ResponseFunc) OnResponse(spec EndpointSpec, resp *Response) error {
	return f(spec, resp)
}

// SetHeaders returns middleware that sets fixed headers on every request.
// Compiled requests start with empty headers, so this is the standard way
// to attach static headers to an endpoint.
func SetHeaders(headers map[string]string) MiddleWare {
	return RequestFunc(func(_ EndpointSpec, req *Request) error {
		for key, value := range headers {
			req.Header.Set(key, value)
		}
		return nil
	})
}

// DeclaredContentType returns middleware that sets the Content-Type
// header from the endpoint's declared codec. Requests with an empty body
// are left untouched.
func DeclaredContentType() MiddleWare {
	return RequestFunc(func(spec EndpointSpec, req *Request) error {
		if len(req.Body) == 0 {
			return nil
		}
		req.Header.Set("Content-Type", spec.ContentType)
		return nil
	})
}

// BearerAuth returns middleware that attaches a bearer token to every
// request.
func BearerAuth(token string) MiddleWare {
	return RequestFunc(func(_ EndpointSpec, req *Request) error {
		req.Header.Set("Authorization", "Bearer "+token)
		return nil
	})
}

// BasicAuth returns middleware that attaches HTTP basic credentials to
// every request.
func BasicAuth(username, password string) MiddleWare {
	credentials := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return RequestFunc(func(_ EndpointSpec, req *Request) error {
		req.Header.Set("Authorization", "Basic "+credentials)
		return nil
	})
}
