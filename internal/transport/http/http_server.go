package httpt

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"goldenorders/pkg/logger"

	"golang.org/x/sync/errgroup"
)

const _defaultShutdownTimeout = 10 * time.Second

// Server runs an http.Server until its context ends. The API and the
// metrics endpoint each get one.
type Server struct {
	name            string
	server          *http.Server
	shutdownTimeout time.Duration
	log             logger.Logger
}

type ServerOption func(*Server)

func ReadTimeouts(read, header time.Duration) ServerOption {
	return func(s *Server) {
		s.server.ReadTimeout = read
		s.server.ReadHeaderTimeout = header
	}
}

func WriteTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		s.server.WriteTimeout = d
	}
}

func IdleTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		s.server.IdleTimeout = d
	}
}

func ShutdownTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

func NewServer(name, addr string, handler http.Handler, log logger.Logger, opts ...ServerOption) *Server {
	s := &Server{
		name:            name,
		server:          &http.Server{Addr: addr, Handler: handler},
		shutdownTimeout: _defaultShutdownTimeout,
		log:             log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start binds the configured address and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("transport.http.Start: listen %s on %s: %w", s.name, s.server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln and shuts down gracefully once ctx ends.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	const op = "transport.http.Serve"

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		s.log.Infow("server listening", "server", s.name, "addr", ln.Addr().String())
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: %s: %w", op, s.name, err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		return s.stop(context.WithoutCancel(ctx))
	})

	if err := eg.Wait(); err != nil {
		s.log.Errorw("server failed", "server", s.name, "error", err)
		return err
	}
	return nil
}

func (s *Server) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("transport.http.stop: %s forced shutdown: %w", s.name, err)
	}
	s.log.Infow("server stopped", "server", s.name)
	return nil
}
