package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/schemaforge/schemaforge/logger"
)

// FXModule defines the Fx module for the metrics package.
//
// The module:
//  1. Provides the NewMetrics factory function to the dependency injection container.
//  2. Invokes RegisterMetricsLifecycle to start and stop the /metrics HTTP server.
//
// Dependencies required by this module:
// - A metrics.Config instance must be available in the dependency injection container.
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle starts the metrics HTTP server on application start
// and shuts it down gracefully on stop.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("metrics server stopped unexpectedly", err, map[string]interface{}{
						"address": m.Server.Addr,
					})
				}
			}()
			log.Info("metrics server listening", nil, map[string]interface{}{
				"address": m.Server.Addr,
			})
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return m.Server.Shutdown(ctx)
		},
	})
}
