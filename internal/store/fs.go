package store

import (
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// FSTemplates renders templates as the raw content of files in a filesystem.
type FSTemplates struct {
	fsys fs.FS
}

// NewFSTemplates returns a Renderer reading templates from fsys.
func NewFSTemplates(fsys fs.FS) *FSTemplates {
	return &FSTemplates{fsys: fsys}
}

// NewDirTemplates returns a Renderer reading templates from dir on the local disk.
func NewDirTemplates(dir string) *FSTemplates {
	return NewFSTemplates(os.DirFS(dir))
}

// Render returns the content of the template file called name.
func (t *FSTemplates) Render(name string) (string, error) {
	content, err := fs.ReadFile(t.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return "", &TemplateMissingError{Name: name, Cause: err}
		}
		return "", errors.Wrapf(err, "failed to read template %s", name)
	}
	return string(content), nil
}

// FSAssets serves static assets from a filesystem rooted at the static directory.
type FSAssets struct {
	fsys fs.FS
}

// NewFSAssets returns an AssetReader over fsys.
func NewFSAssets(fsys fs.FS) *FSAssets {
	return &FSAssets{fsys: fsys}
}

// NewDirAssets returns an AssetReader over dir on the local disk.
func NewDirAssets(dir string) *FSAssets {
	return NewFSAssets(os.DirFS(dir))
}

// Read returns the asset at root+p. Paths escaping the root and directories are reported as ErrNotFound.
func (a *FSAssets) Read(p string) ([]byte, error) {
	name, ok := AssetName(p)
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "invalid asset path %s", p)
	}
	info, err := fs.Stat(a.fsys, name)
	if err == nil && info.IsDir() {
		return nil, errors.Wrapf(ErrNotFound, "%s is a directory", p)
	}
	content, err := fs.ReadFile(a.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrNotFound, "%s", p)
		}
		return nil, errors.Wrapf(err, "failed to read asset %s", p)
	}
	return content, nil
}

// AssetName maps a request path onto a slash-separated name relative to the asset root.
// ".." segments cannot climb above the root.
func AssetName(p string) (string, bool) {
	name := strings.TrimPrefix(path.Clean("/"+p), "/")
	if name == "" || !fs.ValidPath(name) {
		return "", false
	}
	return name, true
}
