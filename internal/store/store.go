// Package store provides the template and static asset collaborators consumed by the router
// and the static-files middleware.
package store

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by an AssetReader when the requested asset does not exist.
var ErrNotFound = errors.New("asset not found")

// Renderer returns the textual content of a named template.
type Renderer interface {
	Render(name string) (string, error)
}

// AssetReader returns the bytes of a static asset addressed by its request path.
// A missing asset is reported with an error matching ErrNotFound.
type AssetReader interface {
	Read(path string) ([]byte, error)
}

// TemplateMissingError is returned by a Renderer when the named template does not exist.
type TemplateMissingError struct {
	Name  string
	Cause error
}

func (m *TemplateMissingError) Error() string {
	return fmt.Sprintf("template %q is missing: %v", m.Name, m.Cause)
}

func (m *TemplateMissingError) Unwrap() error {
	return m.Cause
}
