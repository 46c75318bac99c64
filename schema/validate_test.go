package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSchema() *SchemaDescriptor {
	return &SchemaDescriptor{
		IndexName: "docs",
		Fields: []FieldDescriptor{
			{Name: "id", Type: TypeString, Key: true, Filterable: true, Retrievable: true},
			{Name: "content", Type: TypeString, Searchable: true, Retrievable: true},
		},
	}
}

func TestValidateAcceptsWellFormedSchema(t *testing.T) {
	require.NoError(t, Validate(validSchema()))
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SchemaDescriptor)
		reason string
	}{
		{
			name: "duplicate field name",
			mutate: func(s *SchemaDescriptor) {
				s.Fields = append(s.Fields, FieldDescriptor{Name: "content", Type: TypeString})
			},
			reason: "duplicate field name",
		},
		{
			name: "unknown field type",
			mutate: func(s *SchemaDescriptor) {
				s.Fields[1].Type = "decimal"
			},
			reason: "unknown field type",
		},
		{
			name: "no key field",
			mutate: func(s *SchemaDescriptor) {
				s.Fields[0].Key = false
			},
			reason: "exactly one key field",
		},
		{
			name: "two key fields",
			mutate: func(s *SchemaDescriptor) {
				s.Fields[1].Key = true
			},
			reason: "exactly one key field",
		},
		{
			name: "vector key field",
			mutate: func(s *SchemaDescriptor) {
				s.Fields[0].Type = TypeVector
				s.Fields[0].Filterable = false
				s.Fields[0].VectorDimensions = 128
			},
			reason: "key field cannot be vector-typed",
		},
		{
			name: "filterable vector",
			mutate: func(s *SchemaDescriptor) {
				s.Fields = append(s.Fields, FieldDescriptor{
					Name: "embedding", Type: TypeVector, Filterable: true, VectorDimensions: 128,
				})
			},
			reason: "cannot be filterable or sortable",
		},
		{
			name: "vector without dimensions",
			mutate: func(s *SchemaDescriptor) {
				s.Fields = append(s.Fields, FieldDescriptor{Name: "embedding", Type: TypeVector})
			},
			reason: "requires positive dimensions",
		},
		{
			name: "dimensions on non-vector field",
			mutate: func(s *SchemaDescriptor) {
				s.Fields[1].VectorDimensions = 128
			},
			reason: "cannot carry vector settings",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validSchema()
			tc.mutate(s)
			err := Validate(s)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.Contains(t, err.Error(), tc.reason)
		})
	}
}

func TestValidateRequestRejectsUnknownTag(t *testing.T) {
	err := ValidateRequest(FeatureRequest{Features: []FeatureTag{"geo_search"}})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestValidateRequestRejectsDuplicateCustomFields(t *testing.T) {
	err := ValidateRequest(FeatureRequest{
		CustomFields: []FieldDescriptor{
			{Name: "author", Type: TypeString},
			{Name: "author", Type: TypeString},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate custom field name")
}
