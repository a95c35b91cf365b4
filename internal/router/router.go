// Package router maps request paths onto canned responses. It is the terminal stage of the pipeline.
package router

import (
	"log/slog"
	"net/http"

	"github.com/isometry/folio/internal/helpers"
	"github.com/isometry/folio/internal/models"
	"github.com/isometry/folio/internal/store"
	"github.com/pkg/errors"
)

const (
	// NotFoundBody is the body returned for paths outside the route table.
	NotFoundBody = "<h1>404 Not Found</h1>"
	// RedirectTarget is where /info points to.
	RedirectTarget = "/about"
)

// Pages maps each page path onto the template rendering it.
var Pages = map[string]string{
	"/":           "index.html",
	"/about":      "about.html",
	"/experience": "experience.html",
	"/projects":   "projects.html",
}

// Option is a function that applies an option to a Router.
type Option func(*Router)

// WithLogger sets the logger used by the Router.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// Router dispatches on an exact match of the request URI.
type Router struct {
	logger    *slog.Logger
	templates store.Renderer
}

// New creates a Router rendering pages through templates.
func New(templates store.Renderer, opts ...Option) *Router {
	_inst := &Router{templates: templates}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	return _inst
}

// Route returns the response for req. A missing template is returned as an error and is not recovered.
func (r *Router) Route(req *models.Request) (*models.Response, error) {
	if name, found := Pages[req.URI]; found {
		text, err := r.templates.Render(name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to render %s", req.URI)
		}
		return models.NewResponse(http.StatusOK, http.StatusText(http.StatusOK), text,
			"Content-Type", "text/html"), nil
	}

	switch req.URI {
	case "/info":
		return models.NewResponse(http.StatusMovedPermanently, http.StatusText(http.StatusMovedPermanently), "",
			"Location", RedirectTarget), nil
	default:
		r.logger.Debug("no route", slog.String("uri", req.URI))
		return models.NewResponse(http.StatusNotFound, http.StatusText(http.StatusNotFound), NotFoundBody,
			"Content-Type", "text/html"), nil
	}
}
