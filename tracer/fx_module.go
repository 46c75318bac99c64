package tracer

import (
	"context"

	"go.uber.org/fx"
)

// FXModule defines the Fx module for the tracer package.
//
// Dependencies required by this module:
// - A tracer.Config instance must be available in the dependency injection container.
// - A *logger.Logger instance must be available in the dependency injection container.
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClient,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle flushes pending spans on application shutdown.
func RegisterTracerLifecycle(lc fx.Lifecycle, t *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return t.Shutdown(ctx)
		},
	})
}
