// Package pipeline composes request interceptors around a terminal handler.
//
// A Middleware wraps "the rest of the pipeline" and returns a new Handler. Each middleware
// decides per request whether to short-circuit (answer without calling next), or to delegate
// and post-process the response returned by next.
package pipeline

import (
	"log/slog"

	"github.com/isometry/folio/internal/models"
)

// Handler turns a request into a response.
type Handler func(*models.Request) (*models.Response, error)

// Middleware wraps the remaining pipeline.
type Middleware interface {
	Wrap(next Handler) Handler
}

// MiddlewareFunc adapts a plain function to the Middleware interface.
type MiddlewareFunc func(next Handler) Handler

// Wrap calls f(next).
func (f MiddlewareFunc) Wrap(next Handler) Handler {
	return f(next)
}

// Option is a function that applies an option to a Middleware.
type Option = func(Middleware)

// WithLogger sets the logger of middlewares that log.
func WithLogger(logger *slog.Logger) Option {
	return func(m Middleware) {
		if s, ok := m.(interface{ SetLogger(*slog.Logger) }); ok {
			s.SetLogger(logger)
		}
	}
}

func applyOpts(m Middleware, opts ...Option) {
	for _, opt := range opts {
		opt(m)
	}
}

// Pipeline is the composition of an ordered list of middlewares around a terminal handler.
type Pipeline struct {
	handler Handler
	stages  int
}

// New folds middlewares right to left around terminal, once: [M1, M2, M3] yields
// M1(M2(M3(terminal))), so M1 sees the request first and the response last.
// Nil entries are skipped.
func New(terminal Handler, middlewares ...Middleware) *Pipeline {
	h := terminal
	stages := 0
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] == nil {
			continue
		}
		h = middlewares[i].Wrap(h)
		stages++
	}
	return &Pipeline{handler: h, stages: stages}
}

// Handle runs req through the composed pipeline.
func (p *Pipeline) Handle(req *models.Request) (*models.Response, error) {
	return p.handler(req)
}

// Handler returns the composed handler.
func (p *Pipeline) Handler() Handler {
	return p.handler
}

// Len returns the number of middlewares in the pipeline.
func (p *Pipeline) Len() int {
	return p.stages
}
