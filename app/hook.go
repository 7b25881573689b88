package app

import (
	"context"
	"errors"
	"fmt"
)

// Close releases the event bus and the database pool.
func (app *App) Close(ctx context.Context) error {
	var errs []error

	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event bus: %w", err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	app.Obs.Logger.InfoContext(ctx, "Application shut down")
	return errors.Join(errs...)
}
