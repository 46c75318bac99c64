package schema

import (
	"fmt"
	"strings"
)

// FeatureTag names a user-requested capability. The enumeration is closed;
// ParseFeatures rejects anything outside it.
type FeatureTag string

const (
	FeatureVectorSearch    FeatureTag = "vector_search"
	FeatureSemanticSearch  FeatureTag = "semantic_search"
	FeatureFacetedSearch   FeatureTag = "faceted_search"
	FeatureScoringProfiles FeatureTag = "scoring_profiles"
	FeatureCustomAnalyzers FeatureTag = "custom_analyzers"
)

// featureOrder fixes the synthesis order of features. Fields contributed by an
// earlier feature always precede fields of a later one, which keeps synthesis
// output deterministic regardless of the order tags arrive in.
var featureOrder = []FeatureTag{
	FeatureVectorSearch,
	FeatureSemanticSearch,
	FeatureFacetedSearch,
	FeatureScoringProfiles,
	FeatureCustomAnalyzers,
}

// Known reports whether the tag is part of the closed enumeration.
func (t FeatureTag) Known() bool {
	for _, k := range featureOrder {
		if t == k {
			return true
		}
	}
	return false
}

// ParseFeatures parses a comma-separated feature list as supplied on the
// command line, e.g. "vector_search,faceted_search".
func ParseFeatures(list string) ([]FeatureTag, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	var tags []FeatureTag
	for _, raw := range strings.Split(list, ",") {
		tag := FeatureTag(strings.TrimSpace(raw))
		if !tag.Known() {
			return nil, &ValidationError{Element: string(tag), Reason: "unknown feature tag"}
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// DefaultVectorDimensions is the dimensionality requested for synthesized
// vector fields before capability capping is applied.
const DefaultVectorDimensions = 3072

// Well-known names produced by the fragment table.
const (
	KeyFieldName         = "id"
	ContentFieldName     = "content"
	VectorFieldName      = "content_vector"
	VectorProfileDefault = "vector-profile-default"
	SemanticConfigName   = "semantic-default"
	ScoringProfileName   = "freshness-boost"
	CustomAnalyzerName   = "keyword_lowercase"
)

// FeatureFragment is one row of the feature table: the schema elements a
// single feature contributes to a draft.
type FeatureFragment struct {
	Fields          []FieldDescriptor
	VectorProfiles  []VectorProfile
	SemanticConfig  *SemanticConfig
	ScoringProfiles []ScoringProfile
	Analyzers       []Analyzer
}

// BaseFragment contributes the fields every schema carries: the key field and
// the primary searchable content field.
func BaseFragment() FeatureFragment {
	return FeatureFragment{
		Fields: []FieldDescriptor{
			{Name: KeyFieldName, Type: TypeString, Key: true, Filterable: true, Retrievable: true},
			{Name: ContentFieldName, Type: TypeString, Searchable: true, Retrievable: true},
		},
	}
}

// featureFragments is the fixed feature-to-fragment table. Synthesis is
// table-driven: each requested tag contributes exactly this row, nothing else.
var featureFragments = map[FeatureTag]func() FeatureFragment{
	FeatureVectorSearch: func() FeatureFragment {
		return FeatureFragment{
			Fields: []FieldDescriptor{{
				Name:             VectorFieldName,
				Type:             TypeVector,
				Searchable:       true,
				Retrievable:      true,
				Stored:           true,
				VectorDimensions: DefaultVectorDimensions,
				VectorProfile:    VectorProfileDefault,
			}},
			VectorProfiles: []VectorProfile{{
				Name:      VectorProfileDefault,
				Algorithm: "hnsw",
				Parameters: map[string]any{
					"m":              4,
					"efConstruction": 400,
					"metric":         "cosine",
				},
			}},
		}
	},
	FeatureSemanticSearch: func() FeatureFragment {
		return FeatureFragment{
			Fields: []FieldDescriptor{{
				Name: "title", Type: TypeString, Searchable: true, Retrievable: true,
			}},
			SemanticConfig: &SemanticConfig{
				Name:          SemanticConfigName,
				TitleField:    "title",
				ContentFields: []string{ContentFieldName},
			},
		}
	},
	FeatureFacetedSearch: func() FeatureFragment {
		return FeatureFragment{
			Fields: []FieldDescriptor{
				{Name: "category", Type: TypeString, Filterable: true, Facetable: true, Retrievable: true},
				{Name: "tags", Type: TypeStringCollection, Filterable: true, Facetable: true, Retrievable: true},
			},
		}
	},
	FeatureScoringProfiles: func() FeatureFragment {
		return FeatureFragment{
			Fields: []FieldDescriptor{
				{Name: "updated_at", Type: TypeDateTime, Filterable: true, Sortable: true, Retrievable: true},
			},
			ScoringProfiles: []ScoringProfile{{
				Name:             ScoringProfileName,
				FunctionType:     "freshness",
				BoostedField:     "updated_at",
				Boost:            2,
				FreshnessMaxAge:  "P30D",
				InterpolationLaw: "quadratic",
			}},
		}
	},
	FeatureCustomAnalyzers: func() FeatureFragment {
		return FeatureFragment{
			Fields: []FieldDescriptor{{
				Name: "content_exact", Type: TypeString, Searchable: true, Retrievable: true,
				Analyzer: CustomAnalyzerName,
			}},
			Analyzers: []Analyzer{{
				Name:        CustomAnalyzerName,
				Tokenizer:   "keyword",
				TokenFilter: []string{"lowercase"},
			}},
		}
	},
}

// Fragment returns the fragment for a tag. Unknown tags panic; callers are
// expected to run ValidateRequest first.
func Fragment(tag FeatureTag) FeatureFragment {
	fn, ok := featureFragments[tag]
	if !ok {
		panic(fmt.Sprintf("schema: no fragment for feature %q", tag))
	}
	return fn()
}

// FeatureForField reverse-maps a synthesized field name to the feature that
// contributed it. Custom or unknown fields return ("", false). The base key
// and content fields map to ("", false) as well since every schema has them.
func FeatureForField(name string) (FeatureTag, bool) {
	for _, tag := range featureOrder {
		for _, f := range Fragment(tag).Fields {
			if f.Name == name {
				return tag, true
			}
		}
	}
	return "", false
}
