package pipeline

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/isometry/folio/internal/helpers"
	"github.com/isometry/folio/internal/models"
	"github.com/isometry/folio/internal/store"
	"github.com/pkg/errors"
)

// FileNotFoundBody is the body returned when a static asset does not exist.
const FileNotFoundBody = "<h1>File Not Found</h1>"

type staticFilesMiddleware struct {
	logger *slog.Logger
	assets store.AssetReader
}

// NewStaticFilesMiddleware serves any URI containing a "." from assets and answers without
// calling the inner pipeline, so these responses never see the stages behind it.
// Other URIs are delegated.
func NewStaticFilesMiddleware(assets store.AssetReader, opts ...Option) Middleware {
	_inst := &staticFilesMiddleware{logger: helpers.NewNoopLogger(), assets: assets}
	applyOpts(_inst, opts...)
	return _inst
}

func (m *staticFilesMiddleware) SetLogger(logger *slog.Logger) {
	m.logger = logger.With("middleware", "static-files")
}

func (m *staticFilesMiddleware) Wrap(next Handler) Handler {
	return func(req *models.Request) (*models.Response, error) {
		if !strings.Contains(req.URI, ".") {
			return next(req)
		}

		content, err := m.assets.Read(req.URI)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				m.logger.Debug("static asset not found", slog.String("uri", req.URI))
				return models.NewResponse(http.StatusNotFound, http.StatusText(http.StatusNotFound), FileNotFoundBody,
					"Content-Type", "text/html"), nil
			}
			return nil, errors.Wrapf(err, "failed to serve static asset %s", req.URI)
		}

		return models.NewResponse(http.StatusOK, http.StatusText(http.StatusOK), string(content),
			"Content-Type", StaticContentType(req.URI)), nil
	}
}

// StaticContentType returns text/css for paths ending in ".css" and text/javascript for anything else.
func StaticContentType(path string) string {
	if strings.HasSuffix(path, ".css") {
		return "text/css"
	}
	return "text/javascript"
}
