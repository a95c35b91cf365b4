package pipeline

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/isometry/folio/internal/helpers"
	"github.com/isometry/folio/internal/models"
)

// DefaultServerName is the value of the Server header unless configured otherwise.
const DefaultServerName = "My cool HTTP server"

type commonHeadersMiddleware struct {
	logger     *slog.Logger
	serverName string
	now        func() time.Time
}

// NewCommonHeadersMiddleware delegates, then stamps the response with Server, Date,
// Connection and Cache-Control. Unless the response is a 301 it also sets Content-Type
// (text/html when absent) and Content-Length.
// An empty serverName selects DefaultServerName and a nil now selects time.Now.
func NewCommonHeadersMiddleware(serverName string, now func() time.Time, opts ...Option) Middleware {
	if serverName == "" {
		serverName = DefaultServerName
	}
	if now == nil {
		now = time.Now
	}
	_inst := &commonHeadersMiddleware{logger: helpers.NewNoopLogger(), serverName: serverName, now: now}
	applyOpts(_inst, opts...)
	return _inst
}

func (m *commonHeadersMiddleware) SetLogger(logger *slog.Logger) {
	m.logger = logger.With("middleware", "common-headers")
}

func (m *commonHeadersMiddleware) Wrap(next Handler) Handler {
	return func(req *models.Request) (*models.Response, error) {
		resp, err := next(req)
		if err != nil {
			return resp, err
		}
		if resp.Headers == nil {
			resp.Headers = models.NewHeaders()
		}

		resp.Headers.Set("Server", m.serverName)
		resp.Headers.Set("Date", m.now().UTC().Format(http.TimeFormat))
		resp.Headers.Set("Connection", "close")
		resp.Headers.Set("Cache-Control", "no-cache")

		if resp.Code != http.StatusMovedPermanently {
			if !resp.Headers.Has("Content-Type") {
				resp.Headers.Set("Content-Type", "text/html")
			}
			resp.Headers.Set("Content-Length", strconv.Itoa(len(resp.Text)))
		}
		return resp, nil
	}
}
