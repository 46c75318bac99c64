package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule defines the Fx module for the logger package.
//
// The module:
//  1. Provides the NewLoggerClient factory function to the dependency injection container,
//     making the logger available to other components
//  2. Invokes RegisterLoggerLifecycle to set up proper cleanup during application shutdown
//
// Dependencies required by this module:
// - A logger.Config instance must be available in the dependency injection container
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient,
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle handles cleanup (sync) of the Zap logger.
// The OnStop hook calls Sync() on the underlying Zap logger to flush any
// buffered entries to their output destinations before the application
// terminates.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// Sync returns EINVAL when stderr is a terminal or pipe; that is
			// not a shutdown failure.
			_ = client.Zap.Sync()
			return nil
		},
	})
}
