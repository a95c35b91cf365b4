package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/isometry/folio/internal/config"
	"github.com/isometry/folio/internal/metrics"
	"github.com/isometry/folio/internal/runtime"
	"github.com/isometry/folio/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func cmdService() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "service",
		Aliases: []string{"s", "serve", "server"},
		Short:   "Serve the site on a TCP listener",
		RunE:    runService,
	}

	return cmd
}

func runService(cmd *cobra.Command, _ []string) error {
	logger.Info("Spawning...")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := newPipeline(ctx, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	if config.Metrics.Enabled {
		go func() {
			logger.Info("Exporting metrics...", slog.String("address", config.Metrics.Addr))
			if err := metrics.Serve(ctx, config.Metrics.Addr, prometheus.DefaultGatherer); err != nil {
				logger.Error("metrics exporter stopped", slog.Any("error", err))
			}
		}()
	}

	logger.Debug("Creating runtime...")
	rt := runtime.NewRuntime(p.Handler(),
		runtime.WithLogger(logger.With("component", "runtime")),
		runtime.WithReadBufferSize(config.Service.ReadBufferSize),
		runtime.WithTimeout(config.Service.Timeout))

	srv := server.New(rt,
		server.WithAddr(config.ListenAddr()),
		server.WithConcurrency(config.Service.Concurrent),
		server.WithLogger(logger.With("component", "server")))

	logger.Info("Serving...", slog.String("address", config.ListenAddr()), slog.String("timeout", config.Service.Timeout.String()))
	return srv.ListenAndServe(ctx)
}
