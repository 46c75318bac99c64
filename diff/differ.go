package diff

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/schemaforge/schemaforge/schema"
)

// AttributeDelta records one attribute that differs on a field present in
// both schemas. A and B hold the rendered values on each side.
type AttributeDelta struct {
	FieldName string `json:"fieldName"`
	Attribute string `json:"attribute"`
	A         string `json:"a"`
	B         string `json:"b"`
}

// Difference is the structural diff of two schemas.
type Difference struct {
	FieldsOnlyInA []string         `json:"fieldsOnlyInA,omitempty"`
	FieldsOnlyInB []string         `json:"fieldsOnlyInB,omitempty"`
	FieldDeltas   []AttributeDelta `json:"fieldDeltas,omitempty"`

	ProfilesOnlyInA []string `json:"vectorProfilesOnlyInA,omitempty"`
	ProfilesOnlyInB []string `json:"vectorProfilesOnlyInB,omitempty"`

	ScoringOnlyInA []string `json:"scoringProfilesOnlyInA,omitempty"`
	ScoringOnlyInB []string `json:"scoringProfilesOnlyInB,omitempty"`

	AnalyzersOnlyInA []string `json:"analyzersOnlyInA,omitempty"`
	AnalyzersOnlyInB []string `json:"analyzersOnlyInB,omitempty"`

	// SemanticConfigDelta is set when exactly one side carries a semantic
	// configuration, or both do and they differ. Values are "present",
	// "absent", or the config name.
	SemanticConfigA string `json:"semanticConfigA,omitempty"`
	SemanticConfigB string `json:"semanticConfigB,omitempty"`

	// FeatureSummary names the features whose fields differ between the two
	// sides, derived by reverse-mapping field names onto the feature table.
	FeatureSummary []schema.FeatureTag `json:"featureSummary,omitempty"`
}

// Empty reports whether the two schemas were structurally identical.
func (d Difference) Empty() bool {
	return len(d.FieldsOnlyInA) == 0 && len(d.FieldsOnlyInB) == 0 &&
		len(d.FieldDeltas) == 0 &&
		len(d.ProfilesOnlyInA) == 0 && len(d.ProfilesOnlyInB) == 0 &&
		len(d.ScoringOnlyInA) == 0 && len(d.ScoringOnlyInB) == 0 &&
		len(d.AnalyzersOnlyInA) == 0 && len(d.AnalyzersOnlyInB) == 0 &&
		d.SemanticConfigA == "" && d.SemanticConfigB == ""
}

// Invert swaps the roles of A and B. For all pairs,
// Diff(a, b) == Diff(b, a).Invert().
func (d Difference) Invert() Difference {
	out := Difference{
		FieldsOnlyInA:    d.FieldsOnlyInB,
		FieldsOnlyInB:    d.FieldsOnlyInA,
		ProfilesOnlyInA:  d.ProfilesOnlyInB,
		ProfilesOnlyInB:  d.ProfilesOnlyInA,
		ScoringOnlyInA:   d.ScoringOnlyInB,
		ScoringOnlyInB:   d.ScoringOnlyInA,
		AnalyzersOnlyInA: d.AnalyzersOnlyInB,
		AnalyzersOnlyInB: d.AnalyzersOnlyInA,
		SemanticConfigA:  d.SemanticConfigB,
		SemanticConfigB:  d.SemanticConfigA,
		FeatureSummary:   d.FeatureSummary,
	}
	for _, fd := range d.FieldDeltas {
		out.FieldDeltas = append(out.FieldDeltas, AttributeDelta{
			FieldName: fd.FieldName,
			Attribute: fd.Attribute,
			A:         fd.B,
			B:         fd.A,
		})
	}
	return out
}

// Diff computes the structural difference between two schemas. Field names
// and element names in the result are sorted so output is deterministic.
func Diff(a, b *schema.SchemaDescriptor) Difference {
	var d Difference

	aFields := fieldMap(a)
	bFields := fieldMap(b)

	for name := range aFields {
		if _, ok := bFields[name]; !ok {
			d.FieldsOnlyInA = append(d.FieldsOnlyInA, name)
		}
	}
	for name := range bFields {
		if _, ok := aFields[name]; !ok {
			d.FieldsOnlyInB = append(d.FieldsOnlyInB, name)
		}
	}
	sort.Strings(d.FieldsOnlyInA)
	sort.Strings(d.FieldsOnlyInB)

	common := make([]string, 0, len(aFields))
	for name := range aFields {
		if _, ok := bFields[name]; ok {
			common = append(common, name)
		}
	}
	sort.Strings(common)
	for _, name := range common {
		d.FieldDeltas = append(d.FieldDeltas, fieldDeltas(aFields[name], bFields[name])...)
	}

	d.ProfilesOnlyInA, d.ProfilesOnlyInB = nameSetDiff(profileNames(a), profileNames(b))
	d.ScoringOnlyInA, d.ScoringOnlyInB = nameSetDiff(scoringNames(a), scoringNames(b))
	d.AnalyzersOnlyInA, d.AnalyzersOnlyInB = nameSetDiff(analyzerNames(a), analyzerNames(b))

	if !semanticEqual(a.SemanticConfig, b.SemanticConfig) {
		d.SemanticConfigA = semanticLabel(a.SemanticConfig)
		d.SemanticConfigB = semanticLabel(b.SemanticConfig)
	}

	d.FeatureSummary = featureSummary(d)
	return d
}

// fieldAttributes enumerates the comparable attributes of a field in a fixed
// order so delta output is stable.
var fieldAttributes = []struct {
	name  string
	value func(schema.FieldDescriptor) string
}{
	{"type", func(f schema.FieldDescriptor) string { return string(f.Type) }},
	{"key", func(f schema.FieldDescriptor) string { return boolLabel(f.Key) }},
	{"searchable", func(f schema.FieldDescriptor) string { return boolLabel(f.Searchable) }},
	{"filterable", func(f schema.FieldDescriptor) string { return boolLabel(f.Filterable) }},
	{"sortable", func(f schema.FieldDescriptor) string { return boolLabel(f.Sortable) }},
	{"facetable", func(f schema.FieldDescriptor) string { return boolLabel(f.Facetable) }},
	{"retrievable", func(f schema.FieldDescriptor) string { return boolLabel(f.Retrievable) }},
	{"stored", func(f schema.FieldDescriptor) string { return boolLabel(f.Stored) }},
	{"analyzer", func(f schema.FieldDescriptor) string { return f.Analyzer }},
	{"vectorDimensions", func(f schema.FieldDescriptor) string { return fmt.Sprintf("%d", f.VectorDimensions) }},
	{"vectorProfile", func(f schema.FieldDescriptor) string { return f.VectorProfile }},
}

func fieldDeltas(a, b schema.FieldDescriptor) []AttributeDelta {
	var deltas []AttributeDelta
	for _, attr := range fieldAttributes {
		av, bv := attr.value(a), attr.value(b)
		if av != bv {
			deltas = append(deltas, AttributeDelta{
				FieldName: a.Name,
				Attribute: attr.name,
				A:         av,
				B:         bv,
			})
		}
	}
	return deltas
}

func fieldMap(s *schema.SchemaDescriptor) map[string]schema.FieldDescriptor {
	m := make(map[string]schema.FieldDescriptor, len(s.Fields))
	for _, f := range s.Fields {
		m[f.Name] = f
	}
	return m
}

func profileNames(s *schema.SchemaDescriptor) []string {
	names := make([]string, 0, len(s.VectorProfiles))
	for _, p := range s.VectorProfiles {
		names = append(names, p.Name)
	}
	return names
}

func scoringNames(s *schema.SchemaDescriptor) []string {
	names := make([]string, 0, len(s.ScoringProfiles))
	for _, p := range s.ScoringProfiles {
		names = append(names, p.Name)
	}
	return names
}

func analyzerNames(s *schema.SchemaDescriptor) []string {
	names := make([]string, 0, len(s.Analyzers))
	for _, a := range s.Analyzers {
		names = append(names, a.Name)
	}
	return names
}

// nameSetDiff returns the names present only on each side, sorted.
func nameSetDiff(a, b []string) (onlyA, onlyB []string) {
	aSet := make(map[string]struct{}, len(a))
	for _, n := range a {
		aSet[n] = struct{}{}
	}
	bSet := make(map[string]struct{}, len(b))
	for _, n := range b {
		bSet[n] = struct{}{}
	}
	for n := range aSet {
		if _, ok := bSet[n]; !ok {
			onlyA = append(onlyA, n)
		}
	}
	for n := range bSet {
		if _, ok := aSet[n]; !ok {
			onlyB = append(onlyB, n)
		}
	}
	sort.Strings(onlyA)
	sort.Strings(onlyB)
	return onlyA, onlyB
}

func semanticEqual(a, b *schema.SemanticConfig) bool {
	if a == nil || b == nil {
		return a == b
	}
	return reflect.DeepEqual(*a, *b)
}

func semanticLabel(sc *schema.SemanticConfig) string {
	if sc == nil {
		return "absent"
	}
	if sc.Name != "" {
		return sc.Name
	}
	return "present"
}

func boolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// featureSummary reverse-maps every differing field onto the feature table.
// Fields no feature contributed (custom fields, base fields) do not appear.
func featureSummary(d Difference) []schema.FeatureTag {
	seen := make(map[schema.FeatureTag]struct{})
	collect := func(names []string) {
		for _, n := range names {
			if tag, ok := schema.FeatureForField(n); ok {
				seen[tag] = struct{}{}
			}
		}
	}
	collect(d.FieldsOnlyInA)
	collect(d.FieldsOnlyInB)
	for _, fd := range d.FieldDeltas {
		if tag, ok := schema.FeatureForField(fd.FieldName); ok {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]schema.FeatureTag, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}
