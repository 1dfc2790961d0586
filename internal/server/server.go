// Package server runs the HTTP server until its context ends and then
// releases what it was given in order.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// Run listens on srv.Addr and calls Serve.
func Run(ctx context.Context, srv *http.Server, logger *slog.Logger, shutdownTimeout time.Duration, closers ...io.Closer) error {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		closeAll(logger, closers)
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}
	return Serve(ctx, ln, srv, logger, shutdownTimeout, closers...)
}

// Serve serves on ln until ctx is done or the server fails. On the way out it
// shuts srv down, waiting at most shutdownTimeout for in-flight requests, and
// then closes closers in the order given.
func Serve(ctx context.Context, ln net.Listener, srv *http.Server, logger *slog.Logger, shutdownTimeout time.Duration, closers ...io.Closer) error {
	if logger == nil {
		logger = slog.Default()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		closeErr := closeAll(logger, closers)
		if errors.Is(err, http.ErrServerClosed) {
			return closeErr
		}
		return errors.Join(fmt.Errorf("serve: %w", err), closeErr)
	case <-ctx.Done():
	}

	logger.Info("shutting down server", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var shutdownErr error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		shutdownErr = fmt.Errorf("shutdown: %w", err)
		srv.Close()
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		shutdownErr = errors.Join(shutdownErr, fmt.Errorf("serve: %w", err))
	}

	closeErr := closeAll(logger, closers)
	logger.Info("server exited")
	return errors.Join(shutdownErr, closeErr)
}

func closeAll(logger *slog.Logger, closers []io.Closer) error {
	var errs []error
	for _, c := range closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			logger.Error("close failed", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
