package negotiate

import (
	"fmt"
	"strings"

	"github.com/schemaforge/schemaforge/remote"
	"github.com/schemaforge/schemaforge/schema"
)

// applyRejection maps one rejection through the fixed rule table and mutates
// the candidate accordingly. It returns the logged adjustment and whether any
// rule applied. A rejection no rule can repair (unclassified code, unknown
// element, or a repair that would be a no-op) returns ok=false and the engine
// fails the negotiation rather than guessing.
func (e *Engine) applyRejection(candidate *schema.SchemaDescriptor, rej remote.Rejection, opts Options) (Adjustment, bool) {
	segments := splitPath(rej.ElementPath)

	switch rej.ReasonCode {
	case remote.ReasonAttributeNotValid:
		return e.dropAttribute(candidate, segments, rej)

	case remote.ReasonDimensionsExceeded:
		return e.capDimensions(candidate, segments, rej, opts)

	case remote.ReasonAnalyzerUnknown:
		return e.substituteAnalyzer(candidate, segments, rej)

	case remote.ReasonSemanticNotSupported, remote.ReasonPropertyUnknown:
		if len(segments) > 0 && segments[0] == "semanticConfig" {
			return e.dropSemanticConfig(candidate, rej)
		}
		if rej.ReasonCode == remote.ReasonSemanticNotSupported {
			return e.dropSemanticConfig(candidate, rej)
		}
		// An unknown property on a field is unrepairable in place; dropping
		// the whole field is the only bounded adjustment left.
		if field := pathField(candidate, segments); field != "" {
			return e.dropField(candidate, field, rej)
		}
		return Adjustment{}, false

	case remote.ReasonFieldInvalid:
		if field := pathField(candidate, segments); field != "" {
			return e.dropField(candidate, field, rej)
		}
		return Adjustment{}, false

	default:
		return Adjustment{}, false
	}
}

// dropAttribute clears one boolean attribute on one field,
// e.g. fields/updated_at/sortable.
func (e *Engine) dropAttribute(candidate *schema.SchemaDescriptor, segments []string, rej remote.Rejection) (Adjustment, bool) {
	if len(segments) != 3 || segments[0] != "fields" {
		return Adjustment{}, false
	}
	field := candidate.Field(segments[1])
	if field == nil {
		return Adjustment{}, false
	}
	attr := segments[2]
	flag := attributeFlag(field, attr)
	if flag == nil || !*flag {
		return Adjustment{}, false
	}
	*flag = false
	return Adjustment{
		TargetField: field.Name,
		Kind:        AdjustDropAttribute,
		Reason:      rej.Message,
		Before:      fmt.Sprintf("%s=true", attr),
		After:       fmt.Sprintf("%s=false", attr),
	}, true
}

// capDimensions lowers a vector field to the capability profile's maximum.
func (e *Engine) capDimensions(candidate *schema.SchemaDescriptor, segments []string, rej remote.Rejection, opts Options) (Adjustment, bool) {
	name := pathField(candidate, segments)
	if name == "" {
		return Adjustment{}, false
	}
	field := candidate.Field(name)
	if field == nil || !field.IsVector() {
		return Adjustment{}, false
	}
	max := opts.MaxVectorDimensions
	if max <= 0 || field.VectorDimensions <= max {
		// Without a known maximum there is nothing principled to cap to.
		return Adjustment{}, false
	}
	before := field.VectorDimensions
	field.VectorDimensions = max
	return Adjustment{
		TargetField: field.Name,
		Kind:        AdjustCapDimensions,
		Reason:      rej.Message,
		Before:      fmt.Sprintf("vectorDimensions=%d", before),
		After:       fmt.Sprintf("vectorDimensions=%d", max),
	}, true
}

// substituteAnalyzer swaps an unrecognized analyzer for the built-in
// fallback. A field already on the fallback is dropped instead; a rejected
// analyzer definition is removed along with every reference to it.
func (e *Engine) substituteAnalyzer(candidate *schema.SchemaDescriptor, segments []string, rej remote.Rejection) (Adjustment, bool) {
	fallback := e.cfg.FallbackAnalyzer

	// analyzers/<name>: the definition itself was rejected.
	if len(segments) == 2 && segments[0] == "analyzers" {
		rejected := segments[1]
		if !removeAnalyzer(candidate, rejected) {
			return Adjustment{}, false
		}
		for i := range candidate.Fields {
			if candidate.Fields[i].Analyzer == rejected {
				candidate.Fields[i].Analyzer = fallback
			}
		}
		return Adjustment{
			Kind:   AdjustSubstituteAnalyzer,
			Reason: rej.Message,
			Before: fmt.Sprintf("analyzer=%s", rejected),
			After:  fmt.Sprintf("analyzer=%s", fallback),
		}, true
	}

	name := pathField(candidate, segments)
	if name == "" {
		return Adjustment{}, false
	}
	field := candidate.Field(name)
	if field == nil || field.Analyzer == "" {
		return Adjustment{}, false
	}
	if fallback == "" || field.Analyzer == fallback {
		return e.dropField(candidate, name, rej)
	}
	before := field.Analyzer
	field.Analyzer = fallback
	return Adjustment{
		TargetField: field.Name,
		Kind:        AdjustSubstituteAnalyzer,
		Reason:      rej.Message,
		Before:      fmt.Sprintf("analyzer=%s", before),
		After:       fmt.Sprintf("analyzer=%s", fallback),
	}, true
}

// dropField removes the field entirely. The key field is never dropped; a
// deployment rejecting the key field cannot be negotiated with.
func (e *Engine) dropField(candidate *schema.SchemaDescriptor, name string, rej remote.Rejection) (Adjustment, bool) {
	field := candidate.Field(name)
	if field == nil || field.Key {
		return Adjustment{}, false
	}
	before := fmt.Sprintf("field %s (%s)", field.Name, field.Type)
	kept := candidate.Fields[:0]
	for _, f := range candidate.Fields {
		if f.Name != name {
			kept = append(kept, f)
		}
	}
	candidate.Fields = kept
	return Adjustment{
		TargetField: name,
		Kind:        AdjustDropField,
		Reason:      rej.Message,
		Before:      before,
		After:       "field removed",
	}, true
}

// dropSemanticConfig removes the semantic block wholesale.
func (e *Engine) dropSemanticConfig(candidate *schema.SchemaDescriptor, rej remote.Rejection) (Adjustment, bool) {
	if candidate.SemanticConfig == nil {
		return Adjustment{}, false
	}
	name := candidate.SemanticConfig.Name
	candidate.SemanticConfig = nil
	return Adjustment{
		Kind:   AdjustDropSemanticConfig,
		Reason: rej.Message,
		Before: fmt.Sprintf("semanticConfig %s", name),
		After:  "semanticConfig removed",
	}, true
}

// splitPath splits a slash-separated element path into its segments.
func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(strings.Trim(path, "/"), "/")
}

// pathField extracts the field name from a fields/<name>[/...] path.
func pathField(candidate *schema.SchemaDescriptor, segments []string) string {
	if len(segments) < 2 || segments[0] != "fields" {
		return ""
	}
	if candidate.Field(segments[1]) == nil {
		return ""
	}
	return segments[1]
}

// attributeFlag maps an attribute name to the matching flag on the field.
func attributeFlag(f *schema.FieldDescriptor, attr string) *bool {
	switch attr {
	case "searchable":
		return &f.Searchable
	case "filterable":
		return &f.Filterable
	case "sortable":
		return &f.Sortable
	case "facetable":
		return &f.Facetable
	case "retrievable":
		return &f.Retrievable
	case "stored":
		return &f.Stored
	default:
		return nil
	}
}

// removeAnalyzer deletes an analyzer definition by name.
func removeAnalyzer(candidate *schema.SchemaDescriptor, name string) bool {
	for i, a := range candidate.Analyzers {
		if a.Name == name {
			candidate.Analyzers = append(candidate.Analyzers[:i], candidate.Analyzers[i+1:]...)
			return true
		}
	}
	return false
}
