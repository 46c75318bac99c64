package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaforge/schemaforge/schema"
)

func baseSchema() *schema.SchemaDescriptor {
	return &schema.SchemaDescriptor{
		IndexName: "docs",
		Fields: []schema.FieldDescriptor{
			{Name: "id", Type: schema.TypeString, Key: true, Filterable: true, Retrievable: true},
			{Name: "content", Type: schema.TypeString, Searchable: true, Retrievable: true},
		},
	}
}

func TestDiffIdenticalSchemasIsEmpty(t *testing.T) {
	a := baseSchema()
	b := baseSchema()
	assert.True(t, Diff(a, b).Empty())
}

func TestDiffFieldOnlyOnOneSide(t *testing.T) {
	a := baseSchema()
	b := baseSchema()
	b.Fields = append(b.Fields, schema.FieldDescriptor{
		Name: "category", Type: schema.TypeString, Filterable: true,
	})

	d := Diff(a, b)
	assert.Empty(t, d.FieldsOnlyInA)
	assert.Equal(t, []string{"category"}, d.FieldsOnlyInB)
	assert.False(t, d.Empty())
}

func TestDiffSingleAttributeDelta(t *testing.T) {
	a := baseSchema()
	b := baseSchema()
	b.Fields[1].Filterable = true

	d := Diff(a, b)
	require.Len(t, d.FieldDeltas, 1)
	delta := d.FieldDeltas[0]
	assert.Equal(t, "content", delta.FieldName)
	assert.Equal(t, "filterable", delta.Attribute)
	assert.Equal(t, "false", delta.A)
	assert.Equal(t, "true", delta.B)
}

func TestDiffSemanticConfigPresence(t *testing.T) {
	a := baseSchema()
	b := baseSchema()
	b.SemanticConfig = &schema.SemanticConfig{
		Name:          "semantic-default",
		ContentFields: []string{"content"},
	}

	d := Diff(a, b)
	assert.Equal(t, "absent", d.SemanticConfigA)
	assert.Equal(t, "semantic-default", d.SemanticConfigB)
	assert.False(t, d.Empty())
}

func TestDiffSameNameDifferentSemanticConfigNotEmpty(t *testing.T) {
	a := baseSchema()
	a.SemanticConfig = &schema.SemanticConfig{Name: "s", TitleField: "title"}
	b := baseSchema()
	b.SemanticConfig = &schema.SemanticConfig{Name: "s", TitleField: "headline"}

	d := Diff(a, b)
	assert.False(t, d.Empty())
}

func TestDiffSymmetry(t *testing.T) {
	a := baseSchema()
	a.Fields = append(a.Fields, schema.FieldDescriptor{
		Name: "content_vector", Type: schema.TypeVector,
		Searchable: true, VectorDimensions: 1536, VectorProfile: "vector-profile-default",
	})
	a.VectorProfiles = []schema.VectorProfile{{Name: "vector-profile-default", Algorithm: "hnsw"}}

	b := baseSchema()
	b.Fields[1].Facetable = true
	b.Analyzers = []schema.Analyzer{{Name: "keyword_lowercase", Tokenizer: "keyword"}}
	b.SemanticConfig = &schema.SemanticConfig{Name: "semantic-default"}

	// Diff(a, b) must equal Diff(b, a) with the roles swapped.
	assert.Equal(t, Diff(a, b), Diff(b, a).Invert())
}

func TestDiffFeatureSummary(t *testing.T) {
	a := baseSchema()
	b := baseSchema()
	b.Fields = append(b.Fields,
		schema.FieldDescriptor{
			Name: "content_vector", Type: schema.TypeVector,
			Searchable: true, VectorDimensions: 1536,
		},
		schema.FieldDescriptor{Name: "custom_notes", Type: schema.TypeString},
	)

	d := Diff(a, b)
	assert.Equal(t, []schema.FeatureTag{schema.FeatureVectorSearch}, d.FeatureSummary)
}

func TestDiffDeterministicOrdering(t *testing.T) {
	a := baseSchema()
	b := baseSchema()
	b.Fields = append(b.Fields,
		schema.FieldDescriptor{Name: "zebra", Type: schema.TypeString},
		schema.FieldDescriptor{Name: "alpha", Type: schema.TypeString},
	)

	d := Diff(a, b)
	assert.Equal(t, []string{"alpha", "zebra"}, d.FieldsOnlyInB)
}
