package negotiate

import (
	"go.uber.org/fx"

	"github.com/schemaforge/schemaforge/logger"
	"github.com/schemaforge/schemaforge/metrics"
	"github.com/schemaforge/schemaforge/remote"
	"github.com/schemaforge/schemaforge/tracer"
)

// FXModule defines the Fx module for the negotiation engine.
//
// Dependencies required by this module:
// - A negotiate.Config instance must be available in the dependency injection container.
// - A remote.Service instance must be available in the dependency injection container.
// - A *logger.Logger instance must be available in the dependency injection container.
var FXModule = fx.Module("negotiate",
	fx.Provide(
		NewEngineFromParams,
	),
)

// EngineParams defines dependencies needed to construct the Engine.
type EngineParams struct {
	fx.In
	Service remote.Service
	Config  Config
	Logger  *logger.Logger
	Metrics *metrics.Metrics `optional:"true"`
	Tracer  *tracer.Tracer   `optional:"true"`
}

// NewEngineFromParams is an fx-friendly constructor wrapper around NewEngine.
func NewEngineFromParams(p EngineParams) *Engine {
	e := NewEngine(p.Service, p.Config, p.Logger)
	if p.Metrics != nil {
		e = e.WithMetrics(p.Metrics)
	}
	if p.Tracer != nil {
		e = e.WithTracer(p.Tracer)
	}
	return e
}
