package negotiate

import (
	"github.com/schemaforge/schemaforge/remote"
	"github.com/schemaforge/schemaforge/schema"
)

// AdjustmentKind enumerates the bounded set of mutations the engine may
// apply. Nothing outside this set ever touches a schema during negotiation.
type AdjustmentKind string

const (
	AdjustDropAttribute      AdjustmentKind = "drop-attribute"
	AdjustDropField          AdjustmentKind = "drop-field"
	AdjustCapDimensions      AdjustmentKind = "cap-dimensions"
	AdjustSubstituteAnalyzer AdjustmentKind = "substitute-analyzer"
	AdjustDropSemanticConfig AdjustmentKind = "drop-semantic-config"
)

// Adjustment is one logged, reasoned mutation applied during negotiation.
// The trail of adjustments is append-only and is the only record of how the
// final schema came to differ from the draft.
type Adjustment struct {
	// TargetField names the field the adjustment touched; empty for
	// schema-level adjustments such as dropping the semantic block.
	TargetField string `json:"targetField,omitempty"`

	Kind   AdjustmentKind `json:"kind"`
	Reason string         `json:"reason"`
	Before string         `json:"before"`
	After  string         `json:"after"`
}

// Result is the immutable outcome of one negotiation. It is the single
// source of truth for what happened: the accepted (or last attempted)
// schema, the full adjustment trail, and the final diagnostics when the
// negotiation failed.
type Result struct {
	FinalSchema    *schema.SchemaDescriptor `json:"finalSchema"`
	Adjustments    []Adjustment             `json:"adjustments"`
	Converged      bool                     `json:"converged"`
	Iterations     int                      `json:"iterations"`
	LastDiagnostic []remote.Rejection       `json:"lastDiagnostic,omitempty"`
}

// Options control one negotiation call.
type Options struct {
	// CreateIndex keeps the index once the service accepts it. Without it
	// the accepted trial creation is torn down and only the Result is
	// returned; this is the dry-run mode the CLI defaults to.
	CreateIndex bool

	// MaxVectorDimensions is the deployment maximum from the capability
	// profile, consulted by the cap-dimensions rule. Zero means unknown, in
	// which case a dimensions rejection cannot be repaired and fails the
	// negotiation instead of guessing.
	MaxVectorDimensions int
}
