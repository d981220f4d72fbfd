package courier

import (
	"context"
	"net/http"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestJSONCodec_IsDefault(t *testing.T) {
	type input struct {
		Name string `json:"name"`
	}

	ep := MustEndpoint[input, NoResult]("create", http.MethodPost, "widgets")
	if ep.Spec().ContentType != "application/json" {
		t.Errorf("expected JSON default, got %q", ep.Spec().ContentType)
	}

	req, err := ep.BuildRequest("http://api.test", input{Name: "wrench"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(req.Body) != `{"name":"wrench"}` {
		t.Errorf("expected JSON body, got %q", req.Body)
	}
}

func TestMsgpackCodec_ExchangeableFormat(t *testing.T) {
	type input struct {
		Name string `json:"name"`
	}
	type output struct {
		Age int `json:"age" msgpack:"age"`
	}

	ep := MustEndpoint[input, output]("create", http.MethodPost, "widgets").
		WithCodec(MsgpackCodec{})

	if ep.Spec().ContentType != "application/msgpack" {
		t.Errorf("expected msgpack content type, got %q", ep.Spec().ContentType)
	}

	// The request body is a msgpack map of the body fields.
	req, err := ep.BuildRequest("http://api.test", input{Name: "wrench"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var payload map[string]any
	if err := msgpack.Unmarshal(req.Body, &payload); err != nil {
		t.Fatalf("body is not msgpack: %v", err)
	}
	if payload["name"] != "wrench" {
		t.Errorf("expected name in payload, got %v", payload)
	}

	// The typed result decodes through the same codec.
	respBody, err := msgpack.Marshal(map[string]any{"age": 9})
	if err != nil {
		t.Fatalf("marshaling fixture: %v", err)
	}
	client := &stubClient{resp: &Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: respBody}}

	out, err := ep.Exec(context.Background(), client, input{Name: "wrench"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Age != 9 {
		t.Errorf("expected age 9 from msgpack response, got %d", out.Age)
	}
}
