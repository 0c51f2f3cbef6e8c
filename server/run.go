package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wudi/noticepdf/observability"
)

// RunWithGracefulShutdown serves until ctx is done or SIGINT/SIGTERM arrives,
// then gives in-flight requests up to timeout to finish. cleanup, if set,
// runs after the listener stops accepting.
func RunWithGracefulShutdown(ctx context.Context, server *http.Server, log observability.Logger, cleanup func(), timeout time.Duration) error {
	serverErr := make(chan error, 1)
	go func() {
		log.Info("listening", observability.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		return err
	case <-sigCtx.Done():
	}
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", observability.Error("error", err))
	}
	if cleanup != nil {
		cleanup()
	}
	if err := <-serverErr; err != nil {
		return err
	}
	log.Info("shutdown complete")
	return nil
}
