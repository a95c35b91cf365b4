package cmd

import (
	"context"
	"log/slog"

	"github.com/isometry/folio/internal/config"
	"github.com/isometry/folio/internal/controllers/aws"
	"github.com/isometry/folio/internal/metrics"
	"github.com/isometry/folio/internal/pipeline"
	"github.com/isometry/folio/internal/router"
	"github.com/isometry/folio/internal/store"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// newContent returns the template and asset stores selected by the configured backend.
func newContent(ctx context.Context, logger *slog.Logger) (store.Renderer, store.AssetReader, error) {
	var (
		templates store.Renderer
		assets    store.AssetReader
	)
	switch config.Content.Backend {
	case config.BackendFS:
		templates = store.NewDirTemplates(config.Content.TemplatesDir)
		assets = store.NewDirAssets(config.Content.StaticDir)
	case config.BackendS3:
		ctrl, err := aws.NewController(
			aws.WithContext(ctx),
			aws.WithLogger(logger))
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to create aws controller")
		}
		templates = store.NewS3Templates(ctrl, config.Content.S3.Bucket, config.Content.S3.TemplatesPrefix)
		assets = store.NewS3Assets(ctrl, config.Content.S3.Bucket, config.Content.S3.StaticPrefix)
	default:
		return nil, nil, errors.Errorf("invalid content backend: %s", config.Content.Backend)
	}
	return store.NewCachedRenderer(templates, config.Content.TemplateCacheTTL), assets, nil
}

// newPipeline assembles [Metrics, Logging, Compression, StaticFiles, CommonHeaders] around the router.
// Disabled stages are left out. Metrics are registered on reg.
func newPipeline(ctx context.Context, reg prometheus.Registerer) (*pipeline.Pipeline, error) {
	logger.Debug("creating content stores...", slog.String("backend", config.Content.Backend))
	templates, assets, err := newContent(ctx, logger.With("component", "content"))
	if err != nil {
		return nil, err
	}

	withLogger := pipeline.WithLogger(logger.With("component", "pipeline"))
	var stages []pipeline.Middleware
	if config.Metrics.Enabled {
		stages = append(stages, metrics.NewCollector(reg, config.Metrics.Namespace, withLogger))
	}
	stages = append(stages, pipeline.NewLoggingMiddleware(withLogger))
	if config.Compression.Enabled {
		stages = append(stages, pipeline.NewCompressionMiddleware(config.Compression.MinSize, config.Compression.Level, withLogger))
	}
	stages = append(stages,
		pipeline.NewStaticFilesMiddleware(assets, withLogger),
		pipeline.NewCommonHeadersMiddleware(config.Content.ServerName, nil, withLogger),
	)

	r := router.New(templates, router.WithLogger(logger.With("component", "router")))
	p := pipeline.New(r.Route, stages...)
	logger.Debug("pipeline ready", slog.Int("stages", p.Len()))
	return p, nil
}
