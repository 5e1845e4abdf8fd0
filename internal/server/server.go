// Package server runs the fiber app until a stop signal and then closes the
// components that serve it.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ShutdownFunc releases one component. It must respect ctx's deadline.
type ShutdownFunc func(ctx context.Context) error

type hook struct {
	name string
	fn   ShutdownFunc
}

// Server owns the listener and the shutdown hooks of the process.
type Server struct {
	app     *fiber.App
	addr    string
	timeout time.Duration
	logger  *slog.Logger

	mu    sync.Mutex
	hooks []hook

	stopOnce sync.Once
	stopErr  error
}

func New(app *fiber.App, port int, shutdownTimeout time.Duration, logger *slog.Logger) *Server {
	return &Server{
		app:     app,
		addr:    fmt.Sprintf(":%d", port),
		timeout: shutdownTimeout,
		logger:  logger,
	}
}

// OnShutdown registers fn under name. Hooks run after the listener has
// drained, last registered first, so a component is closed before the
// ones it was built from.
func (s *Server) OnShutdown(name string, fn ShutdownFunc) {
	s.mu.Lock()
	s.hooks = append(s.hooks, hook{name: name, fn: fn})
	s.mu.Unlock()
}

// Run serves until SIGINT/SIGTERM or a listener failure.
func (s *Server) Run() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	listenErr := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		listenErr <- s.app.Listen(s.addr)
	}()

	select {
	case err := <-listenErr:
		if err == nil {
			return s.Shutdown()
		}
		return fmt.Errorf("listen %s: %w", s.addr, err)
	case sig := <-stop:
		s.logger.Info("stopping", "signal", sig.String())
		return s.Shutdown()
	}
}

// Shutdown drains in-flight requests (exports included) and then runs the
// hooks under the same deadline. Only the first call does any work.
func (s *Server) Shutdown() error {
	s.stopOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.stopErr = s.shutdown(ctx)
	})
	return s.stopErr
}

func (s *Server) shutdown(ctx context.Context) error {
	start := time.Now()
	var errs []error
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http: %w", err))
	}

	s.mu.Lock()
	hooks := append([]hook(nil), s.hooks...)
	s.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		if err := h.fn(ctx); err != nil {
			s.logger.Error("close failed", "component", h.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", h.name, err))
			continue
		}
		s.logger.Debug("closed", "component", h.name)
	}

	err := errors.Join(errs...)
	s.logger.Info("stopped", "elapsed", time.Since(start), "failures", len(errs))
	return err
}
