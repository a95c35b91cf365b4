package runtime

import (
	"log/slog"
	"time"
)

type Option func(*Runtime)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithReadBufferSize bounds the single read performed per connection. Non-positive values are ignored.
func WithReadBufferSize(size int) Option {
	return func(r *Runtime) {
		if size > 0 {
			r.readBufferSize = size
		}
	}
}

// WithTimeout sets a deadline covering the whole exchange on each connection. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Runtime) {
		r.timeout = timeout
	}
}

func WithPayloadType(payloadType string) Option {
	return func(r *Runtime) {
		r.payloadType = payloadType
	}
}
