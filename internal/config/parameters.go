// Package config provides a centralized entrypoint for the application parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"go.yaml.in/yaml/v3"
)

var (
	// Global is a struct that contains the global configuration.
	Global global
	// Service is a struct that contains the configuration for the service mode.
	Service service
	// Lambda is a struct that contains the configuration for the lambda mode.
	Lambda lambda
	// Content is a struct that contains the configuration for templates and static assets.
	Content content
	// Compression is a struct that contains the configuration for response compression.
	Compression compression
	// Metrics is a struct that contains the configuration for the metrics exporter.
	Metrics metrics
)

type global struct {
	// Mode is the runtime mode of the application.
	Mode string `yaml:"mode,omitempty" default:"service"`
	// Logging is a struct that contains the logging configuration.
	Logging struct {
		// Verbosity is the verbosity level of the application. It represents slog levels.
		Verbosity int `yaml:"verbosity,omitempty" default:"1"`
		// CallerTrace is a flag that enables the caller trace in the logger.
		CallerTrace bool `yaml:"callerTrace,omitempty"`
	} `yaml:"logging,omitempty"`
}

type service struct {
	Addr string `yaml:"addr,omitempty" default:"127.0.0.1"`
	Port string `yaml:"port,omitempty" default:"8000"`
	// ReadBufferSize is the maximum number of bytes read from each connection.
	ReadBufferSize int `yaml:"readBufferSize,omitempty" default:"8192"`
	// Concurrent serves each connection on its own goroutine.
	Concurrent bool `yaml:"concurrent,omitempty"`
	// Timeout is the I/O deadline of a connection. Zero disables it.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

type lambda struct {
	PayloadType string `yaml:"payloadType,omitempty" default:"api-gateway-v2"`
}

type content struct {
	// Backend selects where templates and static assets are read from.
	Backend      string `yaml:"backend,omitempty" default:"fs"`
	TemplatesDir string `yaml:"templatesDir,omitempty" default:"templates"`
	StaticDir    string `yaml:"staticDir,omitempty" default:"static"`
	// ServerName is the value of the Server response header.
	ServerName string `yaml:"serverName,omitempty" default:"My cool HTTP server"`
	// TemplateCacheTTL keeps rendered templates in memory. Zero disables caching.
	TemplateCacheTTL time.Duration `yaml:"templateCacheTTL,omitempty"`
	S3               struct {
		Bucket          string `yaml:"bucket,omitempty"`
		TemplatesPrefix string `yaml:"templatesPrefix,omitempty" default:"templates/"`
		StaticPrefix    string `yaml:"staticPrefix,omitempty" default:"static/"`
	} `yaml:"s3,omitempty"`
}

type compression struct {
	Enabled bool `yaml:"enabled,omitempty"`
	// MinSize is the smallest body, in bytes, worth compressing.
	MinSize int `yaml:"minSize,omitempty" default:"1024"`
	// Level is the gzip level. Zero selects the default level.
	Level int `yaml:"level,omitempty"`
}

type metrics struct {
	Enabled   bool   `yaml:"enabled,omitempty"`
	Addr      string `yaml:"addr,omitempty" default:"127.0.0.1:9100"`
	Namespace string `yaml:"namespace,omitempty" default:"folio"`
}

// SetDefaults sets the default values for the configuration.
func SetDefaults() error {
	return errors.Join(
		defaults.Set(&Global),
		defaults.Set(&Service),
		defaults.Set(&Lambda),
		defaults.Set(&Content),
		defaults.Set(&Compression),
		defaults.Set(&Metrics),
	)
}

// LoadFromFile loads the configuration from a file.
func LoadFromFile(path string) error {
	if len(path) == 0 {
		return nil
	}
	fstat, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // If the file does not exist, we ignore it.
	}
	if fstat.IsDir() {
		return fmt.Errorf("configuration file %s is a directory", path)
	}
	if !fstat.Mode().IsRegular() {
		return fmt.Errorf("configuration file %s is not a regular file", path)
	}

	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	type all struct {
		Global      global      `yaml:"global,omitempty"`
		Service     service     `yaml:"service,omitempty"`
		Lambda      lambda      `yaml:"lambda,omitempty"`
		Content     content     `yaml:"content,omitempty"`
		Compression compression `yaml:"compression,omitempty"`
		Metrics     metrics     `yaml:"metrics,omitempty"`
	}
	var a all
	if err = yaml.Unmarshal(raw, &a); err != nil {
		return fmt.Errorf("failed to unmarshal configuration file %s: %w", path, err)
	}
	Global = a.Global
	Service = a.Service
	Lambda = a.Lambda
	Content = a.Content
	Compression = a.Compression
	Metrics = a.Metrics

	return nil
}
