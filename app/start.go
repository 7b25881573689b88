package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/chainchaser/app/shared/attr"
)

const shutdownTimeout = 15 * time.Second

// Run starts the event bus and the HTTP server and blocks until ctx is
// canceled, then drains in-flight requests.
func (app *App) Run(ctx context.Context) error {
	logger := app.Obs.Logger

	busErr := make(chan error, 1)
	go func() {
		busErr <- app.EventBus.Run(ctx)
	}()
	select {
	case <-app.EventBus.Running():
	case err := <-busErr:
		return fmt.Errorf("event bus stopped before serving: %w", err)
	case <-ctx.Done():
		return nil
	}

	srv := &http.Server{
		Addr:              app.Config.HTTP.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "Starting HTTP server", attr.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.InfoContext(ctx, "Shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case err := <-busErr:
		if err != nil {
			logger.ErrorContext(ctx, "Event bus stopped", attr.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	logger.InfoContext(shutdownCtx, "HTTP server stopped")
	return nil
}
