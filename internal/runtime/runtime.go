// Package runtime turns raw client input into encoded responses by running it through the pipeline.
// A Runtime serves either a single TCP connection or a single Lambda invocation.
package runtime

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/isometry/folio/internal/codec"
	"github.com/isometry/folio/internal/helpers"
	"github.com/isometry/folio/internal/models"
	"github.com/isometry/folio/internal/pipeline"
	"github.com/pkg/errors"
)

// DefaultReadBufferSize is the maximum number of bytes read from a connection.
const DefaultReadBufferSize = 8192

type Runtime struct {
	handler        pipeline.Handler
	logger         *slog.Logger
	readBufferSize int
	timeout        time.Duration
	payloadType    string
}

// NewRuntime creates a new runtime instance around handler.
func NewRuntime(handler pipeline.Handler, opts ...Option) *Runtime {
	_inst := &Runtime{
		handler:        handler,
		logger:         helpers.NewNoopLogger(),
		readBufferSize: DefaultReadBufferSize,
		payloadType:    PayloadTypeAPIGatewayV2,
	}
	for _, opt := range opts {
		opt(_inst)
	}
	return _inst
}

// ServeConn reads a single request from conn, writes the response and closes conn.
// A peer closing without sending anything is skipped silently.
func (r *Runtime) ServeConn(conn net.Conn) {
	defer func() { _ = conn.Close() }()
	logger := r.logger.With(slog.String("remote", conn.RemoteAddr().String()))

	if r.timeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(r.timeout)); err != nil {
			logger.Warn("failed to set connection deadline", slog.Any("error", err))
		}
	}

	buf := make([]byte, r.readBufferSize)
	n, err := conn.Read(buf)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			logger.Warn("failed to read request", slog.Any("error", err))
		}
		return
	}

	resp := r.Dispatch(buf[:n])
	if _, err = conn.Write(codec.Encode(resp)); err != nil {
		logger.Warn("failed to write response", slog.Int("code", resp.Code), slog.Any("error", err))
	}
}

// Dispatch decodes raw and runs it through the pipeline. It always returns a response:
// undecodable input yields a 400 and a failed pipeline a 500.
func (r *Runtime) Dispatch(raw []byte) *models.Response {
	req, err := codec.Decode(raw)
	if err != nil {
		r.logger.Warn("rejecting malformed request", slog.Any("error", err))
		return ErrorResponse(http.StatusBadRequest)
	}
	return r.respond(req)
}

func (r *Runtime) respond(req *models.Request) *models.Response {
	resp, err := r.handle(req)
	if err != nil {
		r.logger.Error("failed to handle request", slog.String("uri", helpers.Truncate(req.URI, 256)), slog.Any("error", err))
		return ErrorResponse(http.StatusInternalServerError)
	}
	if resp == nil {
		r.logger.Error("pipeline returned no response", slog.String("uri", helpers.Truncate(req.URI, 256)))
		return ErrorResponse(http.StatusInternalServerError)
	}
	return resp
}

func (r *Runtime) handle(req *models.Request) (resp *models.Response, err error) {
	defer func() {
		if p := recover(); p != nil {
			resp, err = nil, errors.Errorf("panic while handling request: %v", p)
		}
	}()
	return r.handler(req)
}

// ErrorResponse returns a minimal HTML response for code, closing the connection.
func ErrorResponse(code int) *models.Response {
	text := http.StatusText(code)
	body := fmt.Sprintf("<h1>%d %s</h1>", code, text)
	return models.NewResponse(code, text, body,
		"Content-Type", "text/html",
		"Content-Length", strconv.Itoa(len(body)),
		"Connection", "close",
	)
}
