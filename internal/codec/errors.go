package codec

import "fmt"

// MalformedRequestLineError is returned when the request line does not hold exactly
// three space-separated tokens.
type MalformedRequestLineError struct {
	Line string
}

func (m *MalformedRequestLineError) Error() string {
	return fmt.Sprintf("malformed request line: %q", m.Line)
}

// MalformedHeaderError is returned when a header line does not split on ": " into
// exactly one key and one value.
type MalformedHeaderError struct {
	Index int
	Line  string
}

func (m *MalformedHeaderError) Error() string {
	return fmt.Sprintf("malformed header at line %d: %q", m.Index, m.Line)
}
