package update

import (
	"fmt"

	"github.com/schemaforge/schemaforge/diff"
	"github.com/schemaforge/schemaforge/schema"
)

// ChangeKind says what happened to an element between the deployed schema and
// the candidate.
type ChangeKind string

const (
	ChangeAdd    ChangeKind = "add"
	ChangeModify ChangeKind = "modify"
	ChangeRemove ChangeKind = "remove"
)

// Change is the classification of one element-level difference.
type Change struct {
	// Element addresses the changed element, e.g. "fields/title" or
	// "scoringProfiles/freshness-boost".
	Element string `json:"element"`

	Kind            ChangeKind `json:"kind"`
	Safe            bool       `json:"safe"`
	RequiresReindex bool       `json:"requiresReindex"`
	Rationale       string     `json:"rationale"`
}

// SafeUpdatePlan is the full classification of a candidate update against the
// deployed schema. The plan never applies anything on its own.
type SafeUpdatePlan struct {
	IndexName string   `json:"indexName"`
	Changes   []Change `json:"changes"`

	// OverrideApplied records that the caller explicitly forced an unsafe
	// plan through. Set by Applier.Apply, never by Classify.
	OverrideApplied bool `json:"overrideApplied,omitempty"`
}

// Safe reports whether every change in the plan is additive-safe.
func (p *SafeUpdatePlan) Safe() bool {
	for _, c := range p.Changes {
		if !c.Safe {
			return false
		}
	}
	return true
}

// UnsafeChanges returns only the changes that block an in-place update.
func (p *SafeUpdatePlan) UnsafeChanges() []Change {
	var out []Change
	for _, c := range p.Changes {
		if !c.Safe {
			out = append(out, c)
		}
	}
	return out
}

// reindexAttributes are the field attributes whose modification invalidates
// already-indexed documents.
var reindexAttributes = map[string]struct{}{
	"type":             {},
	"key":              {},
	"vectorDimensions": {},
}

// Classify compares the deployed schema to a candidate and labels each change
// per the classification table. It is a pure function over the structural
// diff.
func Classify(existing, candidate *schema.SchemaDescriptor) *SafeUpdatePlan {
	d := diff.Diff(existing, candidate)
	plan := &SafeUpdatePlan{IndexName: candidate.IndexName}

	for _, name := range d.FieldsOnlyInB {
		plan.Changes = append(plan.Changes, Change{
			Element:   "fields/" + name,
			Kind:      ChangeAdd,
			Safe:      true,
			Rationale: "new fields are additive; existing documents get a null value",
		})
	}
	for _, name := range d.FieldsOnlyInA {
		plan.Changes = append(plan.Changes, Change{
			Element:         "fields/" + name,
			Kind:            ChangeRemove,
			Safe:            false,
			RequiresReindex: true,
			Rationale:       "removing a field discards indexed data and requires a rebuild",
		})
	}
	for _, fd := range d.FieldDeltas {
		change := Change{
			Element: "fields/" + fd.FieldName,
			Kind:    ChangeModify,
			Safe:    false,
			Rationale: fmt.Sprintf("attribute %s changed from %s to %s; the service does not mutate it in place",
				fd.Attribute, fd.A, fd.B),
		}
		if _, ok := reindexAttributes[fd.Attribute]; ok {
			change.RequiresReindex = true
			change.Rationale = fmt.Sprintf("attribute %s changed from %s to %s; indexed documents become invalid",
				fd.Attribute, fd.A, fd.B)
		}
		plan.Changes = append(plan.Changes, change)
	}

	for _, name := range d.ScoringOnlyInB {
		plan.Changes = append(plan.Changes, Change{
			Element:   "scoringProfiles/" + name,
			Kind:      ChangeAdd,
			Safe:      true,
			Rationale: "scoring profiles only affect query-time ranking",
		})
	}
	for _, name := range d.ScoringOnlyInA {
		plan.Changes = append(plan.Changes, Change{
			Element:   "scoringProfiles/" + name,
			Kind:      ChangeRemove,
			Safe:      true,
			Rationale: "scoring profiles only affect query-time ranking",
		})
	}

	for _, name := range d.AnalyzersOnlyInB {
		plan.Changes = append(plan.Changes, Change{
			Element:   "analyzers/" + name,
			Kind:      ChangeAdd,
			Safe:      true,
			Rationale: "adding an analyzer does not touch existing fields",
		})
	}
	for _, name := range d.AnalyzersOnlyInA {
		plan.Changes = append(plan.Changes, Change{
			Element:         "analyzers/" + name,
			Kind:            ChangeRemove,
			Safe:            false,
			RequiresReindex: true,
			Rationale:       "removing an analyzer invalidates fields indexed with it",
		})
	}

	for _, name := range d.ProfilesOnlyInB {
		plan.Changes = append(plan.Changes, Change{
			Element:   "vectorProfiles/" + name,
			Kind:      ChangeAdd,
			Safe:      true,
			Rationale: "new vector profiles only apply to fields that reference them",
		})
	}
	for _, name := range d.ProfilesOnlyInA {
		plan.Changes = append(plan.Changes, Change{
			Element:         "vectorProfiles/" + name,
			Kind:            ChangeRemove,
			Safe:            false,
			RequiresReindex: true,
			Rationale:       "vector fields referencing the removed profile must be rebuilt",
		})
	}

	if d.SemanticConfigA != "" || d.SemanticConfigB != "" {
		kind := ChangeModify
		switch {
		case d.SemanticConfigA == "absent":
			kind = ChangeAdd
		case d.SemanticConfigB == "absent":
			kind = ChangeRemove
		}
		plan.Changes = append(plan.Changes, Change{
			Element:   "semanticConfig",
			Kind:      kind,
			Safe:      true,
			Rationale: "semantic configuration only affects query-time ranking",
		})
	}

	return plan
}
