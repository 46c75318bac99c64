package schema

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the shared struct validator. It covers the required/min tags on
// the descriptor types; the domain rules that cannot be expressed as tags
// (uniqueness, key-field rules, vector attribute rules) live below.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a SchemaDescriptor against the structural invariants that
// must hold before it is ever submitted to a remote service:
//
//   - field names unique within the schema
//   - every field type drawn from the closed FieldType set
//   - exactly one key field, and the key field is not vector-typed
//   - vector fields carry dimensions and are never filterable or sortable
//   - non-vector fields carry no vector dimensions or profile
//
// Violations are reported as *ValidationError.
func Validate(s *SchemaDescriptor) error {
	if err := validate.Struct(s); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return &ValidationError{
				Element: verrs[0].Namespace(),
				Reason:  fmt.Sprintf("failed %q constraint", verrs[0].Tag()),
			}
		}
		return &ValidationError{Reason: err.Error()}
	}

	seen := make(map[string]struct{}, len(s.Fields))
	keys := 0
	for _, f := range s.Fields {
		if _, dup := seen[f.Name]; dup {
			return &ValidationError{Element: f.Name, Reason: "duplicate field name"}
		}
		seen[f.Name] = struct{}{}

		if err := validateField(f); err != nil {
			return err
		}
		if f.Key {
			keys++
			if f.IsVector() {
				return &ValidationError{Element: f.Name, Reason: "key field cannot be vector-typed"}
			}
		}
	}
	if keys != 1 {
		return &ValidationError{
			Element: s.IndexName,
			Reason:  fmt.Sprintf("schema must have exactly one key field, found %d", keys),
		}
	}
	return nil
}

// ValidateRequest checks a FeatureRequest before synthesis: every feature tag
// must be known and every custom field well-formed, with unique names.
func ValidateRequest(req FeatureRequest) error {
	for _, tag := range req.Features {
		if !tag.Known() {
			return &ValidationError{Element: string(tag), Reason: "unknown feature tag"}
		}
	}
	seen := make(map[string]struct{}, len(req.CustomFields))
	for _, f := range req.CustomFields {
		if _, dup := seen[f.Name]; dup {
			return &ValidationError{Element: f.Name, Reason: "duplicate custom field name"}
		}
		seen[f.Name] = struct{}{}
		if err := validateField(f); err != nil {
			return err
		}
	}
	return nil
}

func validateField(f FieldDescriptor) error {
	if f.Name == "" {
		return &ValidationError{Reason: "field name cannot be empty"}
	}
	if _, ok := knownFieldTypes[f.Type]; !ok {
		return &ValidationError{Element: f.Name, Reason: fmt.Sprintf("unknown field type %q", f.Type)}
	}
	if f.IsVector() {
		if f.Filterable || f.Sortable {
			return &ValidationError{Element: f.Name, Reason: "vector field cannot be filterable or sortable"}
		}
		if f.VectorDimensions <= 0 {
			return &ValidationError{Element: f.Name, Reason: "vector field requires positive dimensions"}
		}
	} else {
		if f.VectorDimensions != 0 || f.VectorProfile != "" {
			return &ValidationError{Element: f.Name, Reason: "non-vector field cannot carry vector settings"}
		}
	}
	return nil
}
