package store

import (
	"github.com/isometry/folio/internal/controllers/aws"
	"github.com/pkg/errors"
)

// ObjectGetter fetches objects from a bucket. It is implemented by *aws.Controller.
type ObjectGetter interface {
	GetS3Object(bucket, key string) ([]byte, error)
}

// S3Templates renders templates stored as objects under a key prefix.
type S3Templates struct {
	getter ObjectGetter
	bucket string
	prefix string
}

// NewS3Templates returns a Renderer reading bucket/prefix+name.
func NewS3Templates(getter ObjectGetter, bucket, prefix string) *S3Templates {
	return &S3Templates{getter: getter, bucket: bucket, prefix: prefix}
}

// Render returns the content of the template object called name.
func (t *S3Templates) Render(name string) (string, error) {
	content, err := t.getter.GetS3Object(t.bucket, t.prefix+name)
	if err != nil {
		if errors.Is(err, aws.ErrNoSuchKey) {
			return "", &TemplateMissingError{Name: name, Cause: err}
		}
		return "", errors.Wrapf(err, "failed to fetch template %s", name)
	}
	return string(content), nil
}

// S3Assets serves static assets stored as objects under a key prefix.
type S3Assets struct {
	getter ObjectGetter
	bucket string
	prefix string
}

// NewS3Assets returns an AssetReader reading bucket/prefix+path.
func NewS3Assets(getter ObjectGetter, bucket, prefix string) *S3Assets {
	return &S3Assets{getter: getter, bucket: bucket, prefix: prefix}
}

// Read returns the asset object for the request path p.
func (a *S3Assets) Read(p string) ([]byte, error) {
	name, ok := AssetName(p)
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "invalid asset path %s", p)
	}
	content, err := a.getter.GetS3Object(a.bucket, a.prefix+name)
	if err != nil {
		if errors.Is(err, aws.ErrNoSuchKey) {
			return nil, errors.Wrapf(ErrNotFound, "%s", p)
		}
		return nil, errors.Wrapf(err, "failed to fetch asset %s", p)
	}
	return content, nil
}
