package update

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaforge/schemaforge/schema"
)

func deployedSchema() *schema.SchemaDescriptor {
	return &schema.SchemaDescriptor{
		IndexName: "docs",
		Fields: []schema.FieldDescriptor{
			{Name: "id", Type: schema.TypeString, Key: true, Filterable: true, Retrievable: true},
			{Name: "content", Type: schema.TypeString, Searchable: true, Retrievable: true},
			{Name: "category", Type: schema.TypeString, Filterable: true, Facetable: true},
		},
	}
}

func findChange(t *testing.T, plan *SafeUpdatePlan, element string) Change {
	t.Helper()
	for _, c := range plan.Changes {
		if c.Element == element {
			return c
		}
	}
	t.Fatalf("no change for element %q in plan", element)
	return Change{}
}

func TestClassifyFieldAddIsSafe(t *testing.T) {
	candidate := deployedSchema()
	candidate.Fields = append(candidate.Fields, schema.FieldDescriptor{
		Name: "author", Type: schema.TypeString, Filterable: true,
	})

	plan := Classify(deployedSchema(), candidate)
	ch := findChange(t, plan, "fields/author")
	assert.Equal(t, ChangeAdd, ch.Kind)
	assert.True(t, ch.Safe)
	assert.True(t, plan.Safe())
}

func TestClassifyFieldRemoveIsUnsafe(t *testing.T) {
	candidate := deployedSchema()
	candidate.Fields = candidate.Fields[:2]

	plan := Classify(deployedSchema(), candidate)
	ch := findChange(t, plan, "fields/category")
	assert.Equal(t, ChangeRemove, ch.Kind)
	assert.False(t, ch.Safe)
	assert.True(t, ch.RequiresReindex)
	assert.False(t, plan.Safe())
}

func TestClassifyTypeChangeRequiresReindex(t *testing.T) {
	candidate := deployedSchema()
	candidate.Fields[2].Type = schema.TypeStringCollection

	plan := Classify(deployedSchema(), candidate)
	ch := findChange(t, plan, "fields/category")
	assert.Equal(t, ChangeModify, ch.Kind)
	assert.False(t, ch.Safe)
	assert.True(t, ch.RequiresReindex)
}

func TestClassifyAttributeFlipIsUnsafeWithoutReindex(t *testing.T) {
	candidate := deployedSchema()
	candidate.Fields[2].Sortable = true

	plan := Classify(deployedSchema(), candidate)
	ch := findChange(t, plan, "fields/category")
	assert.Equal(t, ChangeModify, ch.Kind)
	assert.False(t, ch.Safe)
	assert.False(t, ch.RequiresReindex)
}

func TestClassifyScoringProfilesAlwaysSafe(t *testing.T) {
	withProfile := deployedSchema()
	withProfile.ScoringProfiles = []schema.ScoringProfile{{Name: "freshness-boost"}}

	addPlan := Classify(deployedSchema(), withProfile)
	add := findChange(t, addPlan, "scoringProfiles/freshness-boost")
	assert.Equal(t, ChangeAdd, add.Kind)
	assert.True(t, add.Safe)

	removePlan := Classify(withProfile, deployedSchema())
	remove := findChange(t, removePlan, "scoringProfiles/freshness-boost")
	assert.Equal(t, ChangeRemove, remove.Kind)
	assert.True(t, remove.Safe)
}

func TestClassifyAnalyzerRemoveIsUnsafe(t *testing.T) {
	withAnalyzer := deployedSchema()
	withAnalyzer.Analyzers = []schema.Analyzer{{Name: "keyword_lowercase", Tokenizer: "keyword"}}

	addPlan := Classify(deployedSchema(), withAnalyzer)
	assert.True(t, findChange(t, addPlan, "analyzers/keyword_lowercase").Safe)

	removePlan := Classify(withAnalyzer, deployedSchema())
	remove := findChange(t, removePlan, "analyzers/keyword_lowercase")
	assert.False(t, remove.Safe)
	assert.True(t, remove.RequiresReindex)
}

func TestClassifySemanticConfigAlwaysSafe(t *testing.T) {
	withSemantic := deployedSchema()
	withSemantic.SemanticConfig = &schema.SemanticConfig{Name: "semantic-default"}

	addPlan := Classify(deployedSchema(), withSemantic)
	add := findChange(t, addPlan, "semanticConfig")
	assert.Equal(t, ChangeAdd, add.Kind)
	assert.True(t, add.Safe)

	removePlan := Classify(withSemantic, deployedSchema())
	remove := findChange(t, removePlan, "semanticConfig")
	assert.Equal(t, ChangeRemove, remove.Kind)
	assert.True(t, remove.Safe)
}

func TestClassifyIdenticalSchemasEmptyPlan(t *testing.T) {
	plan := Classify(deployedSchema(), deployedSchema())
	require.Empty(t, plan.Changes)
	assert.True(t, plan.Safe())
	assert.Empty(t, plan.UnsafeChanges())
}
