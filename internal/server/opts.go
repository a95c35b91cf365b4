package server

import (
	"log/slog"

	"github.com/cenkalti/backoff/v4"
)

type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithConcurrency serves each connection on its own goroutine when enabled.
func WithConcurrency(enabled bool) Option {
	return func(s *Server) {
		s.concurrent = enabled
	}
}

// WithBackOff replaces the back-off policy applied between failed accepts.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(s *Server) {
		s.newBackOff = newBackOff
	}
}
