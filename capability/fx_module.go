package capability

import (
	"go.uber.org/fx"

	"github.com/schemaforge/schemaforge/logger"
	"github.com/schemaforge/schemaforge/metrics"
	"github.com/schemaforge/schemaforge/remote"
	"github.com/schemaforge/schemaforge/tracer"
)

// FXModule defines the Fx module for capability detection and caching.
//
// The module provides the Cache and Detector factories. Persistent stores are
// deliberately not provided here; applications that want one supply it
// themselves, since the choice (file vs Postgres) is a deployment decision.
//
// Dependencies required by this module:
// - A capability.Config instance must be available in the dependency injection container.
// - A remote.Service instance must be available in the dependency injection container.
// - A *logger.Logger instance must be available in the dependency injection container.
var FXModule = fx.Module("capability",
	fx.Provide(
		NewCache,
		NewDetectorFromParams,
	),
)

// DetectorParams defines dependencies needed to construct the Detector.
type DetectorParams struct {
	fx.In
	Service remote.Service
	Config  Config
	Logger  *logger.Logger
	Metrics *metrics.Metrics `optional:"true"`
	Tracer  *tracer.Tracer   `optional:"true"`
}

// NewDetectorFromParams is an fx-friendly constructor wrapper around NewDetector.
func NewDetectorFromParams(p DetectorParams) *Detector {
	d := NewDetector(p.Service, p.Config, p.Logger)
	if p.Metrics != nil {
		d = d.WithMetrics(p.Metrics)
	}
	if p.Tracer != nil {
		d = d.WithTracer(p.Tracer)
	}
	return d
}
