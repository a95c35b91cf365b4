package pipeline

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/isometry/folio/internal/helpers"
	"github.com/isometry/folio/internal/models"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

type compressionMiddleware struct {
	logger  *slog.Logger
	minSize int
	level   int
}

// NewCompressionMiddleware gzips response bodies of at least minSize bytes for clients
// announcing gzip in Accept-Encoding. Redirects and already encoded responses are left alone.
// An existing Content-Length is recomputed for the compressed body.
func NewCompressionMiddleware(minSize, level int, opts ...Option) Middleware {
	if level == 0 {
		level = gzip.DefaultCompression
	}
	_inst := &compressionMiddleware{logger: helpers.NewNoopLogger(), minSize: minSize, level: level}
	applyOpts(_inst, opts...)
	return _inst
}

func (m *compressionMiddleware) SetLogger(logger *slog.Logger) {
	m.logger = logger.With("middleware", "compression")
}

func (m *compressionMiddleware) Wrap(next Handler) Handler {
	return func(req *models.Request) (*models.Response, error) {
		resp, err := next(req)
		if err != nil || !m.eligible(req, resp) {
			return resp, err
		}

		var buf bytes.Buffer
		zw, err := gzip.NewWriterLevel(&buf, m.level)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create gzip writer")
		}
		if _, err = zw.Write([]byte(resp.Text)); err != nil {
			return nil, errors.Wrap(err, "failed to compress response")
		}
		if err = zw.Close(); err != nil {
			return nil, errors.Wrap(err, "failed to flush compressed response")
		}

		m.logger.Debug("compressed response", slog.String("uri", req.URI), slog.Int("from", len(resp.Text)), slog.Int("to", buf.Len()))
		resp.Text = buf.String()
		resp.Headers.Set("Content-Encoding", "gzip")
		resp.Headers.Set("Vary", "Accept-Encoding")
		if resp.Headers.Has("Content-Length") {
			resp.Headers.Set("Content-Length", strconv.Itoa(len(resp.Text)))
		}
		return resp, nil
	}
}

func (m *compressionMiddleware) eligible(req *models.Request, resp *models.Response) bool {
	if resp == nil || resp.Headers == nil || resp.Code == http.StatusMovedPermanently {
		return false
	}
	if len(resp.Text) == 0 || len(resp.Text) < m.minSize || resp.Headers.Has("Content-Encoding") {
		return false
	}
	return acceptsGzip(req.Header("Accept-Encoding"))
}

func acceptsGzip(header string) bool {
	for _, part := range strings.Split(header, ",") {
		coding, params, _ := strings.Cut(part, ";")
		if !strings.EqualFold(strings.TrimSpace(coding), "gzip") {
			continue
		}
		q := 1.0
		if v, found := strings.CutPrefix(strings.TrimSpace(params), "q="); found {
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				q = parsed
			}
		}
		return q > 0
	}
	return false
}
