// Package models provides the core data structures exchanged between the codec, the pipeline and the router.
package models

// DefaultVersion is the protocol version used for every response produced by the server.
const DefaultVersion = "HTTP/1.1"

// Request represents a decoded client request.
// It is built once per connection from a single decode pass and is not mutated afterwards.
type Request struct {
	Method  string
	URI     string
	Version string
	// Headers keeps keys exactly as received. A repeated key keeps its last value.
	Headers *Headers
	// Body is always nil: request bodies are not parsed.
	Body []byte
}

// Response represents a response travelling back up the pipeline.
// Stages after the router may mutate Headers in place until the response is encoded.
type Response struct {
	Version string
	Code    int
	Reason  string
	Headers *Headers
	// Text is the complete body. Any byte sequence is carried verbatim.
	Text string
}

// NewResponse returns an HTTP/1.1 response with the given status, body and headers.
// headers is a flat list of key/value pairs.
func NewResponse(code int, reason, text string, headers ...string) *Response {
	return &Response{
		Version: DefaultVersion,
		Code:    code,
		Reason:  reason,
		Headers: NewHeaders(headers...),
		Text:    text,
	}
}

// Header returns the value stored under key, or an empty string.
func (r *Request) Header(key string) string {
	if r == nil {
		return ""
	}
	return r.Headers.Value(key)
}
