package config

import (
	"net"
	"slices"

	"github.com/pkg/errors"
)

// Runtime modes.
const (
	ModeService = "service"
	ModeLambda  = "lambda"
)

// Content backends.
const (
	BackendFS = "fs"
	BackendS3 = "s3"
)

var payloadTypes = []string{"api-gateway-v1", "api-gateway-v2", "lambda-url"}

// ListenAddr returns the service listen address.
func ListenAddr() string {
	return net.JoinHostPort(Service.Addr, Service.Port)
}

// Validate reports the first inconsistent setting.
func Validate() error {
	switch Global.Mode {
	case ModeService, ModeLambda:
	default:
		return errors.Errorf("invalid mode: %s", Global.Mode)
	}

	switch Content.Backend {
	case BackendFS:
	case BackendS3:
		if Content.S3.Bucket == "" {
			return errors.New("content.s3.bucket is required by the s3 backend")
		}
	default:
		return errors.Errorf("invalid content backend: %s", Content.Backend)
	}

	if Global.Mode == ModeLambda && !slices.Contains(payloadTypes, Lambda.PayloadType) {
		return errors.Errorf("unsupported lambda payload type: %s", Lambda.PayloadType)
	}
	if Service.ReadBufferSize <= 0 {
		return errors.Errorf("invalid read buffer size: %d", Service.ReadBufferSize)
	}
	if Service.Timeout < 0 {
		return errors.Errorf("invalid timeout: %s", Service.Timeout)
	}
	if Compression.Enabled && (Compression.Level < -2 || Compression.Level > 9) {
		return errors.Errorf("invalid compression level: %d", Compression.Level)
	}
	return nil
}
