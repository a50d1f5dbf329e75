// Package tuiterd runs the tuiter dev backend: config, logger, store, router and HTTP server.
package tuiterd

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/kachalmers/tuiter/server/internal/api"
	"github.com/kachalmers/tuiter/server/internal/config"
	"github.com/kachalmers/tuiter/server/internal/factory"
	"github.com/kachalmers/tuiter/server/internal/health"
	"github.com/kachalmers/tuiter/server/internal/logger"
	"github.com/kachalmers/tuiter/server/internal/store"
)

// Run starts the backend HTTP server and blocks until SIGINT/SIGTERM or error.
func Run() error {
	log := logger.New("tuiterd")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	log = configureLogger(log, cfg, os.Stderr)

	// Create cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	ln, err := net.Listen("tcp", cfg.GetHTTPAddr())
	if err != nil {
		log.Error().Stack().Err(err).Str("addr", cfg.GetHTTPAddr()).Msg("listen failed")
		return err
	}
	return Serve(ctx, cfg, log, ln)
}

// configureLogger applies the configured level; testing silences output and
// development switches to the console writer.
func configureLogger(log zerolog.Logger, cfg *config.Config, console io.Writer) zerolog.Logger {
	if cfg.IsTesting() {
		return log.Level(zerolog.Disabled)
	}
	log = logger.WithLevel(log, cfg.LogLevel)
	if cfg.IsDevelopment() {
		log = logger.Console(log, console)
	}
	return log
}

// Serve builds the store and router from cfg and serves on ln until ctx is
// cancelled, then shuts down gracefully within cfg.ShutdownTimeout.
func Serve(ctx context.Context, cfg *config.Config, log zerolog.Logger, ln net.Listener) error {
	log.Info().
		Str("db_driver", cfg.DBDriver).
		Str("addr", ln.Addr().String()).
		Msg("tuiter backend starting")

	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		_ = ln.Close()
		log.Error().Stack().Err(err).Msg("Store adapter unavailable")
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn().Err(err).Msg("store close failed")
		}
	}()

	// Start health checkers and block until the store reports healthy
	svcHealth := startHealthCheckers(ctx, cfg, log, st)
	if err := waitUntilHealthy(ctx, startupTimeout(cfg), svcHealth); err != nil {
		_ = ln.Close()
		log.Error().Stack().Err(err).Msg("startup health check failed")
		return err
	}

	router := api.NewRouter(st, api.Options{
		BcryptCost: cfg.BcryptCost,
		Logger:     log,
		Health:     svcHealth,
	})
	server := newHTTPServer(ctx, router)
	errCh := serveHTTP(server, ln, log)

	// Graceful shutdown on context cancel or server error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

func shutdownTimeout(cfg *config.Config) time.Duration {
	if cfg.ShutdownTimeout <= 0 {
		return 10 * time.Second
	}
	return cfg.ShutdownTimeout
}

// startHealthCheckers starts the store checker and the service-level aggregator.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store) *health.ServiceHealthChecker {
	interval := cfg.HealthInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	storeChecker := store.NewStoreHealthChecker(st, log, 2*time.Second)
	go storeChecker.Start(ctx, interval)

	// The aggregator only reads cached flags, so it can poll more often.
	aggregate := interval
	if aggregate > 250*time.Millisecond {
		aggregate = 250 * time.Millisecond
	}
	svcHealth := health.NewServiceHealthChecker(log, storeChecker)
	go svcHealth.Start(ctx, aggregate)
	return svcHealth
}

func startupTimeout(cfg *config.Config) time.Duration {
	if cfg.ConnectTimeout < time.Second {
		return time.Second
	}
	return cfg.ConnectTimeout
}

// waitUntilHealthy blocks until service health is healthy or the startup window expires.
func waitUntilHealthy(ctx context.Context, timeout time.Duration, svcHealth *health.ServiceHealthChecker) error {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(25 * time.Millisecond)
	defer ticker.Stop()
	for {
		if svcHealth.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: store not healthy within %s", timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func newHTTPServer(ctx context.Context, handler http.Handler) *http.Server {
	return &http.Server{
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, ln net.Listener, log zerolog.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("HTTP server starting")
		if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("serve: %w", err)
		}
	}()
	return errCh
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
