package courier

import (
	"errors"
	"testing"
)

func TestErrorCategories(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name     string
		err      error
		category error
	}{
		{"DeclarationError", &DeclarationError{Endpoint: "e", Reason: "bad"}, ErrDeclaration},
		{"PathResolutionError", &PathResolutionError{Template: "a/{b}", Placeholder: "b", Reason: "nil"}, ErrPathResolution},
		{"SerializationError", &SerializationError{Endpoint: "e", Err: cause}, ErrSerialization},
		{"InputValidationError", &InputValidationError{Endpoint: "e", Err: cause}, ErrInputValidation},
		{"TransportError", &TransportError{Method: "GET", URL: "http://x", Err: cause}, ErrTransport},
		{"ResponseError", &ResponseError{StatusCode: 500}, ErrResponse},
		{"ResponseParseError", &ResponseParseError{Err: cause}, ErrResponseParse},
		{"MiddlewareError", &MiddlewareError{Endpoint: "e", Stage: "request", Err: cause}, ErrMiddleware},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.category) {
				t.Errorf("%s does not match its category", tt.name)
			}
			// Categories stay disjoint.
			for _, other := range tests {
				if other.category != tt.category && errors.Is(tt.err, other.category) {
					t.Errorf("%s unexpectedly matches %s category", tt.name, other.name)
				}
			}
		})
	}
}

func TestErrorCausePreserved(t *testing.T) {
	cause := errors.New("underlying")

	tests := []struct {
		name string
		err  error
	}{
		{"SerializationError", &SerializationError{Endpoint: "e", Err: cause}},
		{"TransportError", &TransportError{Method: "GET", URL: "http://x", Err: cause}},
		{"ResponseParseError", &ResponseParseError{Err: cause}},
		{"MiddlewareError", &MiddlewareError{Endpoint: "e", Stage: "response", Err: cause}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, cause) {
				t.Errorf("%s lost its cause", tt.name)
			}
		})
	}
}

func TestResponseError_Message(t *testing.T) {
	withContent := &ResponseError{StatusCode: 404, Content: "not found", Raw: []byte("not found")}
	if withContent.Error() != "server returned 404: not found" {
		t.Errorf("unexpected message %q", withContent.Error())
	}

	withoutContent := &ResponseError{StatusCode: 502}
	if withoutContent.Error() != "server returned 502" {
		t.Errorf("unexpected message %q", withoutContent.Error())
	}
}

func TestDecodeContent(t *testing.T) {
	if got := decodeContent([]byte("plain text")); got != "plain text" {
		t.Errorf("expected decoded text, got %q", got)
	}

	binary := []byte{0xff, 0xfe, 0x00}
	if got := decodeContent(binary); got != "" {
		t.Errorf("expected empty string for invalid UTF-8, got %q", got)
	}
}

func TestResponseError_KeepsRawBytes(t *testing.T) {
	binary := []byte{0xff, 0xfe, 0x00}
	err := &ResponseError{StatusCode: 500, Content: decodeContent(binary), Raw: binary}

	if err.Content != "" {
		t.Errorf("expected no decoded content for binary body, got %q", err.Content)
	}
	if len(err.Raw) != 3 {
		t.Errorf("expected raw bytes preserved, got %v", err.Raw)
	}
}
