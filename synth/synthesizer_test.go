package synth

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaforge/schemaforge/capability"
	"github.com/schemaforge/schemaforge/schema"
)

var fullProfile = capability.Profile{
	MaxVectorDimensions:     3072,
	SemanticSearchSupported: true,
	CustomAnalyzers:         []string{schema.CustomAnalyzerName},
	APIVersion:              "2024-07-01",
}

func TestSynthesizeBaseFieldsAlwaysPresent(t *testing.T) {
	draft, err := Synthesize(schema.FeatureRequest{}, fullProfile, "docs")
	require.NoError(t, err)

	require.Len(t, draft.Fields, 2)
	assert.Equal(t, schema.KeyFieldName, draft.Fields[0].Name)
	assert.True(t, draft.Fields[0].Key)
	assert.Equal(t, schema.ContentFieldName, draft.Fields[1].Name)
	assert.True(t, draft.Fields[1].Searchable)
}

func TestSynthesizeDeterministicAcrossTagOrder(t *testing.T) {
	reqA := schema.FeatureRequest{Features: []schema.FeatureTag{
		schema.FeatureScoringProfiles, schema.FeatureVectorSearch, schema.FeatureFacetedSearch,
	}}
	reqB := schema.FeatureRequest{Features: []schema.FeatureTag{
		schema.FeatureFacetedSearch, schema.FeatureScoringProfiles, schema.FeatureVectorSearch,
		schema.FeatureVectorSearch, // duplicates collapse
	}}

	a, err := Synthesize(reqA, fullProfile, "docs")
	require.NoError(t, err)
	b, err := Synthesize(reqB, fullProfile, "docs")
	require.NoError(t, err)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, string(ja), string(jb))
}

func TestSynthesizeVectorSearch(t *testing.T) {
	draft, err := Synthesize(schema.FeatureRequest{
		Features: []schema.FeatureTag{schema.FeatureVectorSearch},
	}, fullProfile, "docs")
	require.NoError(t, err)

	vf := draft.Field(schema.VectorFieldName)
	require.NotNil(t, vf)
	assert.Equal(t, schema.TypeVector, vf.Type)
	assert.Equal(t, schema.DefaultVectorDimensions, vf.VectorDimensions)
	require.Len(t, draft.VectorProfiles, 1)
	assert.Equal(t, schema.VectorProfileDefault, draft.VectorProfiles[0].Name)
}

func TestSynthesizeCapsVectorDimensionsToProfile(t *testing.T) {
	limited := fullProfile
	limited.MaxVectorDimensions = 1024

	draft, err := Synthesize(schema.FeatureRequest{
		Features: []schema.FeatureTag{schema.FeatureVectorSearch},
	}, limited, "docs")
	require.NoError(t, err)

	assert.Equal(t, 1024, draft.Field(schema.VectorFieldName).VectorDimensions)
}

func TestSynthesizeDoesNotCapCustomFields(t *testing.T) {
	limited := fullProfile
	limited.MaxVectorDimensions = 1024

	draft, err := Synthesize(schema.FeatureRequest{
		CustomFields: []schema.FieldDescriptor{{
			Name: "embedding", Type: schema.TypeVector,
			Searchable: true, VectorDimensions: 2048,
		}},
	}, limited, "docs")
	require.NoError(t, err)

	// Custom fields state an explicit caller intent; capping is applied to
	// synthesized fields only and the remote service gets the final say.
	assert.Equal(t, 2048, draft.Field("embedding").VectorDimensions)
}

func TestSynthesizeCustomFieldCollisionSameType(t *testing.T) {
	draft, err := Synthesize(schema.FeatureRequest{
		CustomFields: []schema.FieldDescriptor{{
			Name: schema.ContentFieldName, Type: schema.TypeString,
			Searchable: true, Filterable: true, Retrievable: true,
		}},
	}, fullProfile, "docs")
	require.NoError(t, err)

	cf := draft.Field(schema.ContentFieldName)
	require.NotNil(t, cf)
	assert.True(t, cf.Filterable, "custom definition should win")
	require.Len(t, draft.Fields, 2, "collision must not duplicate the field")
}

func TestSynthesizeCustomKeyCollisionKeepsKeyDesignation(t *testing.T) {
	draft, err := Synthesize(schema.FeatureRequest{
		CustomFields: []schema.FieldDescriptor{{
			Name: schema.KeyFieldName, Type: schema.TypeString, Sortable: true,
		}},
	}, fullProfile, "docs")
	require.NoError(t, err)

	kf := draft.Field(schema.KeyFieldName)
	require.NotNil(t, kf)
	assert.True(t, kf.Key)
	assert.True(t, kf.Sortable)
}

func TestSynthesizeCustomFieldTypeConflict(t *testing.T) {
	_, err := Synthesize(schema.FeatureRequest{
		CustomFields: []schema.FieldDescriptor{{
			Name: schema.ContentFieldName, Type: schema.TypeInt64,
		}},
	}, fullProfile, "docs")
	require.Error(t, err)
	assert.True(t, schema.IsConflictError(err))
}

func TestSynthesizeAllFeatures(t *testing.T) {
	draft, err := Synthesize(schema.FeatureRequest{
		Features: []schema.FeatureTag{
			schema.FeatureVectorSearch,
			schema.FeatureSemanticSearch,
			schema.FeatureFacetedSearch,
			schema.FeatureScoringProfiles,
			schema.FeatureCustomAnalyzers,
		},
	}, fullProfile, "docs")
	require.NoError(t, err)

	require.NotNil(t, draft.SemanticConfig)
	assert.Equal(t, schema.SemanticConfigName, draft.SemanticConfig.Name)
	require.Len(t, draft.ScoringProfiles, 1)
	require.Len(t, draft.Analyzers, 1)
	assert.NoError(t, schema.Validate(draft))
}
