package negotiate

import (
	"context"
	"fmt"
	"time"

	traceapi "go.opentelemetry.io/otel/trace"

	"github.com/schemaforge/schemaforge/logger"
	"github.com/schemaforge/schemaforge/metrics"
	"github.com/schemaforge/schemaforge/remote"
	"github.com/schemaforge/schemaforge/schema"
	"github.com/schemaforge/schemaforge/tracer"
)

const teardownTimeout = 10 * time.Second

// Engine drives the probe/adjust loop against one remote service. It is safe
// for concurrent use; negotiations targeting the same index name are
// serialized internally.
type Engine struct {
	svc    remote.Service
	cfg    Config
	log    *logger.Logger
	meter  *metrics.Metrics
	tracer *tracer.Tracer
	locks  *keyedLocks
}

// NewEngine creates a negotiation engine on top of a remote service client.
func NewEngine(svc remote.Service, cfg Config, log *logger.Logger) *Engine {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultConfig().MaxIterations
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Engine{
		svc:   svc,
		cfg:   cfg,
		log:   log,
		locks: newKeyedLocks(),
	}
}

// WithMetrics attaches a metrics recorder to the engine.
func (e *Engine) WithMetrics(m *metrics.Metrics) *Engine {
	e.meter = m
	return e
}

// WithTracer attaches a tracer to the engine.
func (e *Engine) WithTracer(t *tracer.Tracer) *Engine {
	e.tracer = t
	return e
}

// Negotiate runs the full probe/adjust loop for draft under indexName. The
// draft is never mutated; every iteration works on a fresh clone carrying
// the adjustments so far. On convergence the Result holds the accepted
// schema and the complete adjustment trail. On failure the returned error is
// an *ExhaustedError and the Result still carries the partial trail and the
// last diagnostics, so callers can report exactly where negotiation stalled.
func (e *Engine) Negotiate(ctx context.Context, draft *schema.SchemaDescriptor, indexName string, opts Options) (*Result, error) {
	if err := schema.Validate(draft); err != nil {
		return nil, fmt.Errorf("draft schema invalid: %w", err)
	}
	if indexName == "" {
		indexName = draft.IndexName
	}
	if indexName == "" {
		return nil, fmt.Errorf("negotiation requires an index name")
	}

	if err := e.locks.acquire(ctx, indexName); err != nil {
		return nil, err
	}
	defer e.locks.release(indexName)

	ctx, span := e.tracer.StartSpan(ctx, "negotiate")
	defer span.End()

	candidate := draft.Clone()
	candidate.IndexName = indexName

	result := &Result{FinalSchema: candidate}
	prevRejections := -1

	for result.Iterations < e.cfg.MaxIterations {
		result.Iterations++

		createResult, err := e.probe(ctx, candidate, result.Iterations)
		if err != nil {
			// The PUT may have landed before the fault surfaced, so the
			// trial index has to be deleted on this path too.
			e.teardown(ctx, indexName)
			e.observe("error", result.Iterations)
			e.tracer.RecordErrorOnSpan(span, err)
			return result, err
		}

		if createResult.Accepted {
			if !opts.CreateIndex {
				e.teardown(ctx, indexName)
			}
			result.Converged = true
			result.LastDiagnostic = nil
			e.observe("converged", result.Iterations)
			e.log.Info("negotiation converged", nil, map[string]interface{}{
				"index":       indexName,
				"iterations":  result.Iterations,
				"adjustments": len(result.Adjustments),
				"kept":        opts.CreateIndex,
			})
			return result, nil
		}

		result.LastDiagnostic = createResult.Rejections

		// The rejection count must strictly shrink every iteration.
		// A flat or growing count means the adjustments are fighting the
		// service and more iterations cannot help.
		if prevRejections >= 0 && len(createResult.Rejections) >= prevRejections {
			return e.fail(span, result, fmt.Sprintf(
				"rejection count did not shrink (%d -> %d)", prevRejections, len(createResult.Rejections)))
		}
		prevRejections = len(createResult.Rejections)

		for _, rej := range createResult.Rejections {
			adj, ok := e.applyRejection(candidate, rej, opts)
			if !ok {
				return e.fail(span, result, fmt.Sprintf(
					"no adjustment rule for %s at %q: %s", rej.ReasonCode, rej.ElementPath, rej.Message))
			}
			result.Adjustments = append(result.Adjustments, adj)
			e.log.Debug("applied adjustment", nil, map[string]interface{}{
				"index":  indexName,
				"kind":   adj.Kind,
				"field":  adj.TargetField,
				"before": adj.Before,
				"after":  adj.After,
			})
		}

		if err := schema.Validate(candidate); err != nil {
			return e.fail(span, result, fmt.Sprintf("adjusted schema no longer valid: %v", err))
		}
	}

	return e.fail(span, result, fmt.Sprintf("iteration ceiling of %d reached", e.cfg.MaxIterations))
}

// probe submits one trial creation and returns the service verdict. Any
// transport or fatal error aborts the negotiation; only structured
// rejections feed the adjustment loop.
func (e *Engine) probe(ctx context.Context, candidate *schema.SchemaDescriptor, iteration int) (*remote.CreateResult, error) {
	ctx, span := e.tracer.StartSpan(ctx, fmt.Sprintf("negotiate.probe.%d", iteration))
	defer span.End()

	createResult, err := e.svc.TryCreateIndex(ctx, candidate)
	if err != nil {
		e.tracer.RecordErrorOnSpan(span, err)
		return nil, fmt.Errorf("trial creation failed: %w", err)
	}
	return createResult, nil
}

// teardown removes the index an accepted trial creation left behind. It runs
// detached from the caller's cancellation so a converged-then-canceled
// negotiation never leaks a remote index.
func (e *Engine) teardown(ctx context.Context, indexName string) {
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), teardownTimeout)
	defer cancel()

	if err := e.svc.DeleteIndex(dctx, indexName); err != nil && !remote.IsNotFoundError(err) {
		e.log.Warn("trial index teardown failed", err, map[string]interface{}{
			"index": indexName,
		})
	}
}

func (e *Engine) fail(span traceapi.Span, result *Result, reason string) (*Result, error) {
	err := &ExhaustedError{
		Reason:         reason,
		Iterations:     result.Iterations,
		LastDiagnostic: result.LastDiagnostic,
	}
	e.observe("failed", result.Iterations)
	e.tracer.RecordErrorOnSpan(span, err)
	e.log.Warn("negotiation failed", err, map[string]interface{}{
		"index":       result.FinalSchema.IndexName,
		"iterations":  result.Iterations,
		"adjustments": len(result.Adjustments),
	})
	return result, err
}

func (e *Engine) observe(outcome string, iterations int) {
	e.meter.ObserveNegotiation(outcome, iterations)
}
