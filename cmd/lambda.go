package cmd

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/isometry/folio/internal/config"
	"github.com/isometry/folio/internal/runtime"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func cmdLambda() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lambda",
		Short: "Serve the site behind API Gateway or a Lambda function URL",
		RunE:  runLambda,
	}

	return cmd
}

func runLambda(cmd *cobra.Command, _ []string) error {
	p, err := newPipeline(cmd.Context(), prometheus.DefaultRegisterer)
	if err != nil {
		return errors.Wrap(err, "failed to setup lambda")
	}

	logger.Debug("creating runtime...")
	rt := runtime.NewRuntime(p.Handler(),
		runtime.WithLogger(logger.With("component", "runtime")),
		runtime.WithPayloadType(config.Lambda.PayloadType))

	logger.Info("lambda starting...", "payloadType", config.Lambda.PayloadType)
	lambda.StartWithOptions(rt.HandleEvent,
		lambda.WithContext(cmd.Context()))

	return nil
}
