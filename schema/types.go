package schema

// FieldType enumerates the data types a field can carry.
// The set is closed; anything else fails validation.
type FieldType string

const (
	TypeString           FieldType = "string"
	TypeInt32            FieldType = "int32"
	TypeInt64            FieldType = "int64"
	TypeDouble           FieldType = "double"
	TypeBoolean          FieldType = "boolean"
	TypeDateTime         FieldType = "datetime"
	TypeStringCollection FieldType = "string_collection"
	TypeVector           FieldType = "vector"
)

// knownFieldTypes is the closed set accepted by validation.
var knownFieldTypes = map[FieldType]struct{}{
	TypeString:           {},
	TypeInt32:            {},
	TypeInt64:            {},
	TypeDouble:           {},
	TypeBoolean:          {},
	TypeDateTime:         {},
	TypeStringCollection: {},
	TypeVector:           {},
}

// FieldDescriptor describes a single index field and its attributes.
//
// Invariant: vector-typed fields never carry Filterable or Sortable, and the
// key field is never vector-typed. Validate enforces both.
type FieldDescriptor struct {
	Name        string    `json:"name" validate:"required"`
	Type        FieldType `json:"type" validate:"required"`
	Key         bool      `json:"key,omitempty"`
	Searchable  bool      `json:"searchable,omitempty"`
	Filterable  bool      `json:"filterable,omitempty"`
	Sortable    bool      `json:"sortable,omitempty"`
	Facetable   bool      `json:"facetable,omitempty"`
	Retrievable bool      `json:"retrievable,omitempty"`
	Stored      bool      `json:"stored,omitempty"`

	// Analyzer names a custom or built-in analyzer applied to searchable
	// string fields. Empty means the service default.
	Analyzer string `json:"analyzer,omitempty"`

	// VectorDimensions and VectorProfile are only meaningful for vector fields.
	VectorDimensions int    `json:"vectorDimensions,omitempty"`
	VectorProfile    string `json:"vectorProfile,omitempty"`
}

// IsVector reports whether the field stores an embedding.
func (f FieldDescriptor) IsVector() bool {
	return f.Type == TypeVector
}

// VectorProfile names an algorithm configuration shared by vector fields.
// Algorithm parameters are passed through to the remote service untouched.
type VectorProfile struct {
	Name       string         `json:"name" validate:"required"`
	Algorithm  string         `json:"algorithm"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// SemanticConfig describes the semantic ranking block of a schema.
type SemanticConfig struct {
	Name          string   `json:"name"`
	TitleField    string   `json:"titleField,omitempty"`
	ContentFields []string `json:"contentFields,omitempty"`
}

// ScoringProfile describes a named relevance boosting profile.
type ScoringProfile struct {
	Name             string             `json:"name" validate:"required"`
	FunctionType     string             `json:"functionType,omitempty"`
	BoostedField     string             `json:"boostedField,omitempty"`
	Boost            float64            `json:"boost,omitempty"`
	TextWeights      map[string]float64 `json:"textWeights,omitempty"`
	FreshnessMaxAge  string             `json:"freshnessMaxAge,omitempty"`
	InterpolationLaw string             `json:"interpolation,omitempty"`
}

// Analyzer describes a custom text analyzer definition.
type Analyzer struct {
	Name        string   `json:"name" validate:"required"`
	Tokenizer   string   `json:"tokenizer"`
	TokenFilter []string `json:"tokenFilters,omitempty"`
}

// SchemaDescriptor is the full description of one search index.
// Field order is significant and preserved on file round-trip.
type SchemaDescriptor struct {
	IndexName       string            `json:"name" validate:"required"`
	Fields          []FieldDescriptor `json:"fields" validate:"required,min=1"`
	VectorProfiles  []VectorProfile   `json:"vectorProfiles,omitempty"`
	SemanticConfig  *SemanticConfig   `json:"semanticConfig,omitempty"`
	ScoringProfiles []ScoringProfile  `json:"scoringProfiles,omitempty"`
	Analyzers       []Analyzer        `json:"analyzers,omitempty"`
}

// Field returns the field with the given name, or nil if absent.
func (s *SchemaDescriptor) Field(name string) *FieldDescriptor {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// KeyField returns the schema's key field, or nil if none is marked.
func (s *SchemaDescriptor) KeyField() *FieldDescriptor {
	for i := range s.Fields {
		if s.Fields[i].Key {
			return &s.Fields[i]
		}
	}
	return nil
}

// Clone returns a deep copy. Negotiation adjusts copies, never the caller's
// descriptor.
func (s *SchemaDescriptor) Clone() *SchemaDescriptor {
	out := &SchemaDescriptor{
		IndexName: s.IndexName,
		Fields:    append([]FieldDescriptor(nil), s.Fields...),
	}
	for _, vp := range s.VectorProfiles {
		cp := vp
		if vp.Parameters != nil {
			cp.Parameters = make(map[string]any, len(vp.Parameters))
			for k, v := range vp.Parameters {
				cp.Parameters[k] = v
			}
		}
		out.VectorProfiles = append(out.VectorProfiles, cp)
	}
	if s.SemanticConfig != nil {
		sc := *s.SemanticConfig
		sc.ContentFields = append([]string(nil), s.SemanticConfig.ContentFields...)
		out.SemanticConfig = &sc
	}
	for _, sp := range s.ScoringProfiles {
		cp := sp
		if sp.TextWeights != nil {
			cp.TextWeights = make(map[string]float64, len(sp.TextWeights))
			for k, v := range sp.TextWeights {
				cp.TextWeights[k] = v
			}
		}
		out.ScoringProfiles = append(out.ScoringProfiles, cp)
	}
	for _, a := range s.Analyzers {
		cp := a
		cp.TokenFilter = append([]string(nil), a.TokenFilter...)
		out.Analyzers = append(out.Analyzers, cp)
	}
	return out
}

// FeatureRequest is the declarative input to schema synthesis: the set of
// requested features plus caller-supplied custom fields in caller order.
type FeatureRequest struct {
	Features     []FeatureTag      `json:"features"`
	CustomFields []FieldDescriptor `json:"customFields,omitempty"`
}
