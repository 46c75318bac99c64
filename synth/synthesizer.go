package synth

import (
	"github.com/schemaforge/schemaforge/capability"
	"github.com/schemaforge/schemaforge/schema"
)

// Synthesize builds a draft schema for the requested features, merged with
// the caller's custom fields.
//
// Field ordering is deterministic: the base key and content fields first,
// then fields in fixed feature order (regardless of the order tags were
// requested in), then custom fields in caller-supplied order. Duplicate
// feature tags are collapsed.
//
// A custom field whose name collides with a synthesized field must have the
// same type; otherwise synthesis fails with a *schema.ConflictError naming
// both definitions. A compatible collision keeps the custom definition, so
// callers can tighten attributes on synthesized fields.
func Synthesize(req schema.FeatureRequest, profile capability.Profile, indexName string) (*schema.SchemaDescriptor, error) {
	if err := schema.ValidateRequest(req); err != nil {
		return nil, err
	}

	requested := make(map[schema.FeatureTag]bool, len(req.Features))
	for _, tag := range req.Features {
		requested[tag] = true
	}

	draft := &schema.SchemaDescriptor{IndexName: indexName}
	fragments := []schema.FeatureFragment{schema.BaseFragment()}
	for _, tag := range orderedFeatures(requested) {
		fragments = append(fragments, schema.Fragment(tag))
	}

	for _, frag := range fragments {
		draft.Fields = append(draft.Fields, frag.Fields...)
		draft.VectorProfiles = append(draft.VectorProfiles, frag.VectorProfiles...)
		draft.ScoringProfiles = append(draft.ScoringProfiles, frag.ScoringProfiles...)
		draft.Analyzers = append(draft.Analyzers, frag.Analyzers...)
		if frag.SemanticConfig != nil {
			draft.SemanticConfig = frag.SemanticConfig
		}
	}

	capVectorDimensions(draft, profile)

	if err := mergeCustomFields(draft, req.CustomFields); err != nil {
		return nil, err
	}

	if err := schema.Validate(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// orderedFeatures returns the requested tags in the fixed synthesis order.
func orderedFeatures(requested map[schema.FeatureTag]bool) []schema.FeatureTag {
	ordered := make([]schema.FeatureTag, 0, len(requested))
	for _, tag := range []schema.FeatureTag{
		schema.FeatureVectorSearch,
		schema.FeatureSemanticSearch,
		schema.FeatureFacetedSearch,
		schema.FeatureScoringProfiles,
		schema.FeatureCustomAnalyzers,
	} {
		if requested[tag] {
			ordered = append(ordered, tag)
		}
	}
	return ordered
}

// capVectorDimensions lowers synthesized vector fields to the profile's
// maximum. The profile is the only remote knowledge synthesis uses.
func capVectorDimensions(draft *schema.SchemaDescriptor, profile capability.Profile) {
	if profile.MaxVectorDimensions <= 0 {
		return
	}
	for i := range draft.Fields {
		f := &draft.Fields[i]
		if f.IsVector() && f.VectorDimensions > profile.MaxVectorDimensions {
			f.VectorDimensions = profile.MaxVectorDimensions
		}
	}
}

// mergeCustomFields folds caller fields into the draft: colliding names must
// agree on type (the custom definition then wins), new names append in caller
// order.
func mergeCustomFields(draft *schema.SchemaDescriptor, custom []schema.FieldDescriptor) error {
	for _, cf := range custom {
		existing := draft.Field(cf.Name)
		if existing == nil {
			draft.Fields = append(draft.Fields, cf)
			continue
		}
		if existing.Type != cf.Type {
			return &schema.ConflictError{
				FieldName:   cf.Name,
				Synthesized: *existing,
				Custom:      cf,
			}
		}
		// Same type: the custom definition replaces the synthesized one,
		// except key designation which stays with the synthesized field.
		key := existing.Key
		*existing = cf
		existing.Key = key
	}
	return nil
}
