package update

import (
	"context"
	"fmt"

	"github.com/schemaforge/schemaforge/logger"
	"github.com/schemaforge/schemaforge/remote"
	"github.com/schemaforge/schemaforge/schema"
)

// Applier drives classified updates against the remote service.
type Applier struct {
	svc remote.Service
	log *logger.Logger
}

// NewApplier constructs an applier over the given remote service.
func NewApplier(svc remote.Service, log *logger.Logger) *Applier {
	if log == nil {
		log = logger.NewNop()
	}
	return &Applier{svc: svc, log: log}
}

// ApplyOptions control how a classified plan is executed.
type ApplyOptions struct {
	// AllowUnsafe forces a plan through even when it contains unsafe changes.
	// The override is recorded in the returned plan.
	AllowUnsafe bool
}

// Apply fetches the deployed schema, classifies the candidate against it, and
// submits the update if the plan permits.
//
// An unsafe plan without AllowUnsafe returns *UnsafeUpdateError carrying the
// full plan; nothing is sent to the service in that case. The returned plan is
// also populated on success so callers can report what changed.
func (a *Applier) Apply(ctx context.Context, indexName string, candidate *schema.SchemaDescriptor, opts ApplyOptions) (*SafeUpdatePlan, error) {
	if err := schema.Validate(candidate); err != nil {
		return nil, err
	}

	existing, err := a.svc.GetIndexSchema(ctx, indexName)
	if err != nil {
		if remote.IsNotFoundError(err) {
			return nil, fmt.Errorf("index %q does not exist; negotiate and create it first: %w", indexName, err)
		}
		return nil, err
	}

	plan := Classify(existing, candidate)
	if !plan.Safe() {
		if !opts.AllowUnsafe {
			return nil, &UnsafeUpdateError{Plan: plan}
		}
		plan.OverrideApplied = true
		a.log.Warn("applying unsafe update under explicit override", nil, map[string]interface{}{
			"index":         indexName,
			"unsafeChanges": len(plan.UnsafeChanges()),
		})
	}

	submitted := candidate.Clone()
	submitted.IndexName = indexName
	result, err := a.svc.TryCreateIndex(ctx, submitted)
	if err != nil {
		return nil, err
	}
	if !result.Accepted {
		return plan, fmt.Errorf("service rejected the update: %s", rejectionSummary(result.Rejections))
	}

	a.log.Info("schema update applied", nil, map[string]interface{}{
		"index":   indexName,
		"changes": len(plan.Changes),
	})
	return plan, nil
}

func rejectionSummary(rejections []remote.Rejection) string {
	if len(rejections) == 0 {
		return "no diagnostic provided"
	}
	first := rejections[0]
	if len(rejections) == 1 {
		return fmt.Sprintf("%s: %s", first.ElementPath, first.Message)
	}
	return fmt.Sprintf("%s: %s (and %d more)", first.ElementPath, first.Message, len(rejections)-1)
}
