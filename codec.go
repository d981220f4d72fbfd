package courier

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes request bodies and decodes response bodies. JSON is the
// default; endpoints accept any Codec via WithCodec, and the pipeline
// never assumes a particular format beyond the omission of absent
// optional fields.
type Codec interface {
	// ContentType returns the MIME type for bodies this codec produces.
	// Exposed on EndpointSpec so middleware can set the header.
	ContentType() string

	// Marshal encodes a value into body bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes body bytes into the target value.
	Unmarshal(data []byte, v any) error
}

// JSONCodec encodes with encoding/json. The zero value is ready to use.
type JSONCodec struct{}

// ContentType implements Codec.
func (JSONCodec) ContentType() string {
	return "application/json"
}

// Marshal implements Codec.
func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal implements Codec.
func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// MsgpackCodec encodes with MessagePack for APIs that speak a binary
// format. The zero value is ready to use.
type MsgpackCodec struct{}

// ContentType implements Codec.
func (MsgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Marshal implements Codec.
func (MsgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal implements Codec.
func (MsgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
