// Package server provides the TCP accept loop handing every connection to a connection handler.
package server

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/isometry/folio/internal/helpers"
	"github.com/pkg/errors"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8000"

// ConnHandler serves a single connection and closes it.
type ConnHandler interface {
	ServeConn(conn net.Conn)
}

type Server struct {
	conns      ConnHandler
	logger     *slog.Logger
	addr       string
	concurrent bool
	newBackOff func() backoff.BackOff
}

// New returns a server handing accepted connections to conns.
func New(conns ConnHandler, opts ...Option) *Server {
	_inst := &Server{
		conns:      conns,
		logger:     helpers.NewNoopLogger(),
		addr:       DefaultAddr,
		newBackOff: defaultBackOff,
	}
	for _, opt := range opts {
		opt(_inst)
	}
	return _inst
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Millisecond
	b.MaxInterval = time.Second
	b.MaxElapsedTime = 0
	return b
}

// ListenAndServe listens on the configured address and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", s.addr)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then closes ln.
// Connections are served one after the other unless the server is concurrent, in which case
// Serve waits for in-flight connections before returning.
// Accept errors are retried with an exponential back-off.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	bo := s.newBackOff()
	throttle := helpers.OnceAMinute()

	s.logger.Info("Server is listening", slog.String("address", ln.Addr().String()), slog.Bool("concurrent", s.concurrent))
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.logger.Info("Server stopped", slog.String("address", ln.Addr().String()))
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return errors.Wrap(err, "listener closed")
			}

			delay := bo.NextBackOff()
			if delay == backoff.Stop {
				return errors.Wrap(err, "giving up accepting connections")
			}
			throttle.Do(func() {
				s.logger.Warn("failed to accept connection", slog.Any("error", err), slog.Duration("retryIn", delay))
			})
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(delay):
			}
			continue
		}
		bo.Reset()

		if !s.concurrent {
			s.conns.ServeConn(conn)
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.conns.ServeConn(conn)
		}()
	}
}
