package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

// BackgroundFunc runs alongside the server until ctx is done.
// Returning a non-nil error shuts the whole app down.
type BackgroundFunc func(ctx context.Context) error

type runConfig struct {
	address         string
	shutdownTimeout time.Duration
	background      []BackgroundFunc
	shutdownHooks   []func(context.Context) error
}

// RunOption configures Run.
type RunOption func(*runConfig)

// WithAddress sets the listen address. Defaults to ":8080".
func WithAddress(addr string) RunOption {
	return func(c *runConfig) {
		if addr != "" {
			c.address = addr
		}
	}
}

// WithShutdownTimeout bounds server draining and shutdown hooks together.
func WithShutdownTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// WithBackground adds jobs that run for the lifetime of the server.
func WithBackground(fns ...BackgroundFunc) RunOption {
	return func(c *runConfig) {
		for _, fn := range fns {
			if fn != nil {
				c.background = append(c.background, fn)
			}
		}
	}
}

// WithShutdownHook registers cleanup run after the server stops, in order.
func WithShutdownHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.shutdownHooks = append(c.shutdownHooks, fn)
		}
	}
}

// Run serves until ctx is cancelled, a signal arrives, or a background job
// fails. It returns nil on a clean shutdown.
func (a *App) Run(ctx context.Context, opts ...RunOption) error {
	cfg := &runConfig{
		address:         defaultAddress,
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", cfg.address)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.addr = ln.Addr().String()
	a.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)

	// No WriteTimeout: status pushes keep websocket and long-poll
	// responses open for as long as a delivery is pending.
	server := &http.Server{
		Handler:           a.router,
		ReadTimeout:       defaultReadTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
		ErrorLog:          slog.NewLogLogger(a.logger.Handler(), slog.LevelWarn),
		BaseContext:       func(net.Listener) context.Context { return gctx },
	}

	g.Go(func() error {
		a.logger.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	for _, fn := range cfg.background {
		g.Go(func() error { return fn(gctx) })
	}

	g.Go(func() error {
		<-gctx.Done()
		return a.shutdown(server, cfg)
	})

	return g.Wait()
}

func (a *App) shutdown(server *http.Server, cfg *runConfig) error {
	a.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer cancel()

	var errs []error
	if err := server.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}

	for _, hook := range cfg.shutdownHooks {
		if err := hook(ctx); err != nil {
			a.logger.Error("shutdown hook failed", slog.Any("error", err))
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		a.logger.Error("shutdown completed with errors")
		return errors.Join(errs...)
	}

	a.logger.Info("shutdown completed")
	return nil
}
