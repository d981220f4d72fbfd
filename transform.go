package courier

import (
	"context"
	"encoding/json"
	"fmt"
)

// StripEnvelope returns a Transform that unwraps a single-key JSON
// envelope, replacing the body with the raw value stored under key.
// APIs that answer every call with `{"result": ...}` are the typical
// target:
//
//	ep.WithTransform(courier.StripEnvelope("result"))
func StripEnvelope(key string) Transform {
	return func(body string) (string, error) {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal([]byte(body), &envelope); err != nil {
			return "", fmt.Errorf("decoding envelope: %w", err)
		}
		inner, ok := envelope[key]
		if !ok {
			return "", fmt.Errorf("envelope has no %q key", key)
		}
		return string(inner), nil
	}
}

// Wrapped is the generic result envelope some APIs apply to every
// response, holding the payload under a "result" key. Decode into it
// with ExecWrapped when the caller wants the envelope itself; attach
// StripEnvelope("result") to the declaration instead when only the
// payload matters.
type Wrapped[T any] struct {
	Result T `json:"result"`
}

// ExecWrapped executes the endpoint and decodes the entire response body
// into a Wrapped envelope enclosing Out. The declaration's unwrap
// transform never runs here; the envelope is decoded from the raw body.
func ExecWrapped[In, Out any](ctx context.Context, e *Endpoint[In, Out], client Client, in In, middleware ...MiddleWare) (Wrapped[Out], error) {
	var out Wrapped[Out]

	body, err := e.ExecRaw(ctx, client, in, middleware...)
	if err != nil {
		return out, err
	}

	if err := e.codec.Unmarshal(body, &out); err != nil {
		return out, &ResponseParseError{Err: err, Content: decodeContent(body)}
	}
	return out, nil
}
