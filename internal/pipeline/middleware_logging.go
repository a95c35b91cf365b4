package pipeline

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/isometry/folio/internal/helpers"
	"github.com/isometry/folio/internal/models"
)

const maxLoggedURI = 256

type loggingMiddleware struct {
	logger *slog.Logger
	newID  func() string
}

// NewLoggingMiddleware logs every request before delegating and its response once the inner
// pipeline returns. Each request is tagged with a fresh request ID.
func NewLoggingMiddleware(opts ...Option) Middleware {
	_inst := &loggingMiddleware{logger: helpers.NewNoopLogger(), newID: uuid.NewString}
	applyOpts(_inst, opts...)
	return _inst
}

func (m *loggingMiddleware) SetLogger(logger *slog.Logger) {
	m.logger = logger.With("middleware", "logging")
}

func (m *loggingMiddleware) Wrap(next Handler) Handler {
	return func(req *models.Request) (*models.Response, error) {
		uri := helpers.Truncate(req.URI, maxLoggedURI)
		logger := m.logger.With(slog.String("requestID", m.newID()))
		logger.Info("request", slog.String("method", req.Method), slog.String("uri", uri))

		start := time.Now()
		resp, err := next(req)
		if err != nil {
			logger.Error("request failed", slog.String("uri", uri), slog.Any("error", err))
			return resp, err
		}

		logger.Info("response",
			slog.String("uri", uri),
			slog.Int("code", resp.Code),
			slog.String("reason", resp.Reason),
			slog.Duration("duration", time.Since(start)))
		return resp, nil
	}
}
