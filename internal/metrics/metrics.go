// Package metrics exports request counters and latencies in the Prometheus format.
package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/isometry/folio/internal/helpers"
	"github.com/isometry/folio/internal/models"
	"github.com/isometry/folio/internal/pipeline"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultNamespace prefixes every metric name unless configured otherwise.
const DefaultNamespace = "folio"

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Collector is a pipeline middleware recording one observation per request.
type Collector struct {
	logger          *slog.Logger
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	responseSize    *prometheus.HistogramVec
}

// NewCollector registers the request metrics on reg (the default registerer when nil).
func NewCollector(reg prometheus.Registerer, namespace string, opts ...pipeline.Option) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	factory := promauto.With(reg)

	_inst := &Collector{
		logger: helpers.NewNoopLogger(),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of requests answered by the pipeline.",
			},
			[]string{"method", "code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Time spent in the pipeline per request.",
				Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method"},
		),
		responseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "response_size_bytes",
				Help:      "Response body size in bytes.",
				Buckets:   prometheus.ExponentialBuckets(100, 4, 8),
			},
			[]string{"method"},
		),
	}
	for _, opt := range opts {
		opt(_inst)
	}
	return _inst
}

func (c *Collector) SetLogger(logger *slog.Logger) {
	c.logger = logger.With("middleware", "metrics")
}

// Wrap records the outcome of next. A failed request is counted as a 500.
func (c *Collector) Wrap(next pipeline.Handler) pipeline.Handler {
	return func(req *models.Request) (*models.Response, error) {
		start := time.Now()
		resp, err := next(req)
		c.requestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

		code, size := http.StatusInternalServerError, 0
		if err == nil && resp != nil {
			code, size = resp.Code, len(resp.Text)
		}
		c.requestsTotal.WithLabelValues(req.Method, strconv.Itoa(code)).Inc()
		c.responseSize.WithLabelValues(req.Method).Observe(float64(size))
		return resp, err
	}
}

// Handler returns the exposition handler for gatherer (the default gatherer when nil).
func Handler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}

// Serve exposes gatherer on addr under /metrics until ctx is cancelled.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer) error {
	s := &http.Server{
		Addr:              addr,
		Handler:           Handler(gatherer),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		_ = s.Shutdown(shutdownCtx)
	}()

	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrapf(err, "metrics listener on %s failed", addr)
	}
	return nil
}
