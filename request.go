package courier

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"
)

// Request is the wire-ready form of one endpoint execution. It is built
// once per execution, handed through the request middleware chain, then
// consumed by the client.
type Request struct {
	Method string
	URL    string // Base + compiled path + query string.
	Header http.Header
	Body   []byte
}

// Response is the raw result of a client exchange. Response middleware
// mutates it in place before status validation and conversion.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// buildQuery encodes the query-role fields of an instance into a URL
// query string without the leading "?". Fields holding an absent optional
// value are omitted entirely rather than encoded as an empty marker.
func buildQuery(roles *roleSet, instance reflect.Value) string {
	if len(roles.query) == 0 {
		return ""
	}

	values := url.Values{}
	for _, f := range roles.query {
		v := instance.FieldByName(f.Name)
		if absent(v) {
			continue
		}
		v, _ = deref(v)

		// Slices contribute one pair per element.
		if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
			for i := 0; i < v.Len(); i++ {
				e, ok := deref(v.Index(i))
				if !ok {
					continue
				}
				values.Add(f.Param, fmt.Sprintf("%v", e.Interface()))
			}
			continue
		}

		values.Add(f.Param, fmt.Sprintf("%v", v.Interface()))
	}
	return values.Encode()
}

// buildBody produces the request body bytes. A raw field's content is the
// entire body verbatim, bypassing the codec. Otherwise the body-role
// fields are serialized as a single structured payload, with absent
// optionals omitted. No body fields, or none set, yields an empty body.
func buildBody(roles *roleSet, instance reflect.Value, codec Codec) ([]byte, error) {
	if roles.raw != nil {
		raw := instance.FieldByName(roles.raw.Name)
		if raw.IsNil() {
			return nil, nil
		}
		return raw.Bytes(), nil
	}

	payload := make(map[string]any, len(roles.body))
	for _, f := range roles.body {
		v := instance.FieldByName(f.Name)
		if absent(v) {
			continue
		}
		payload[f.Param] = v.Interface()
	}
	if len(payload) == 0 {
		return nil, nil
	}

	return codec.Marshal(payload)
}

// absent reports whether a field value is an unset optional: a nil
// pointer, interface, map, or slice. Zero scalars and empty non-nil
// collections are present and serialize normally.
func absent(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}
