// Package codec translates between raw HTTP/1.1 bytes and the models used by the pipeline.
package codec

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/isometry/folio/internal/models"
)

const (
	crlf            = "\r\n"
	headerSeparator = ": "
)

// Decode parses a complete request held in a single buffer.
//
// The buffer is split on CRLF. The first line must hold exactly three tokens separated by
// single spaces. Every following line up to the first empty one is a header that must split
// on ": " into exactly two parts. Anything after the first empty line is ignored, including
// a body announced through Content-Length.
func Decode(raw []byte) (*models.Request, error) {
	lines := strings.Split(string(raw), crlf)

	tokens := strings.Split(lines[0], " ")
	if len(tokens) != 3 {
		return nil, &MalformedRequestLineError{Line: lines[0]}
	}

	headers := models.NewHeaders()
	for i, line := range lines[1:] {
		if line == "" {
			break
		}
		kv := strings.Split(line, headerSeparator)
		if len(kv) != 2 {
			return nil, &MalformedHeaderError{Index: i + 1, Line: line}
		}
		headers.Set(kv[0], kv[1])
	}

	return &models.Request{
		Method:  tokens[0],
		URI:     tokens[1],
		Version: tokens[2],
		Headers: headers,
	}, nil
}

// Encode serialises resp byte-exactly: status line, headers in insertion order, an empty
// line, then Text verbatim. Content-Length is not checked against Text.
func Encode(resp *models.Response) []byte {
	var b bytes.Buffer
	b.Grow(64 + len(resp.Text) + 32*resp.Headers.Len())

	b.WriteString(resp.Version)
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(resp.Code))
	b.WriteByte(' ')
	b.WriteString(resp.Reason)
	b.WriteString(crlf)
	writeHeaders(&b, resp.Headers)
	b.WriteString(resp.Text)

	return b.Bytes()
}

// EncodeRequest serialises the request line and headers of req in the form Decode accepts.
func EncodeRequest(req *models.Request) []byte {
	var b bytes.Buffer
	b.WriteString(req.Method)
	b.WriteByte(' ')
	b.WriteString(req.URI)
	b.WriteByte(' ')
	b.WriteString(req.Version)
	b.WriteString(crlf)
	writeHeaders(&b, req.Headers)
	return b.Bytes()
}

func writeHeaders(b *bytes.Buffer, h *models.Headers) {
	for k, v := range h.All() {
		b.WriteString(k)
		b.WriteString(headerSeparator)
		b.WriteString(v)
		b.WriteString(crlf)
	}
	b.WriteString(crlf)
}
