package cmd

import (
	"time"

	"github.com/isometry/folio/internal/config"
)

var envMapString = map[*string]boundEnvVar[string]{
	&config.Global.Mode: {
		Name:        "mode",
		Description: "The application runtime mode. Possible values are 'service' and 'lambda'",
		Short:       "m",
	},
	&config.Content.Backend: {
		Name:        "content-backend",
		Description: "Where templates and static assets are read from. Supported values are 'fs' and 's3'",
		Short:       "b",
	},
	&config.Content.TemplatesDir: {
		Name:        "templates-dir",
		Description: "The directory holding the page templates (fs backend)",
	},
	&config.Content.StaticDir: {
		Name:        "static-dir",
		Description: "The directory holding the static assets (fs backend)",
	},
	&config.Content.ServerName: {
		Name:        "server-name",
		Description: "The value of the Server response header",
	},
	&config.Content.S3.Bucket: {
		Name:        "content-s3-bucket",
		Description: "The S3 bucket holding templates and static assets (s3 backend)",
		Env:         "S3_BUCKET_NAME",
	},
	&config.Content.S3.TemplatesPrefix: {
		Name:        "content-s3-templates-prefix",
		Description: "The key prefix of the page templates (s3 backend)",
	},
	&config.Content.S3.StaticPrefix: {
		Name:        "content-s3-static-prefix",
		Description: "The key prefix of the static assets (s3 backend)",
	},
	&config.Metrics.Addr: {
		Name:        "metrics-addr",
		Description: "The address the Prometheus exporter listens on",
	},
	&config.Metrics.Namespace: {
		Name:        "metrics-namespace",
		Description: "The namespace prefixing every exported metric",
	},
}

var envMapBool = map[*bool]boundEnvVar[bool]{
	&config.Global.Logging.CallerTrace: {
		Name:        "verbosity-caller-trace",
		Description: "Enable caller trace in logs",
		Short:       "V",
	},
	&config.Compression.Enabled: {
		Name:        "compression",
		Description: "Enable gzip compression of responses for clients accepting it",
	},
	&config.Metrics.Enabled: {
		Name:        "metrics",
		Description: "Enable request metrics and the Prometheus exporter",
	},
}

var envMapInt = map[*int]boundEnvVar[int]{
	&config.Global.Logging.Verbosity: {
		Name:        "verbosity",
		Description: "Increase logger verbosity (default InfoLevel)",
		Short:       "v",
		Count:       true,
	},
	&config.Compression.MinSize: {
		Name:        "compression-min-size",
		Description: "The smallest body, in bytes, worth compressing",
	},
	&config.Compression.Level: {
		Name:        "compression-level",
		Description: "The gzip compression level (0 selects the default level)",
	},
}

var envMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.Content.TemplateCacheTTL: {
		Name:        "template-cache-ttl",
		Description: "How long rendered templates are kept in memory (0 disables caching)",
	},
}
