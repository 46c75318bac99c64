package schema

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed FeatureRequest, FieldDescriptor, or
// SchemaDescriptor. It is always raised before any remote call.
type ValidationError struct {
	// Element is the field or request element the error refers to.
	Element string

	// Reason is a human-readable description of the violation.
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Element == "" {
		return fmt.Sprintf("schema validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("schema validation failed on %q: %s", e.Element, e.Reason)
}

// ConflictError reports a custom field that collides incompatibly with a
// synthesized field. Both definitions are named so the caller can resolve
// the conflict without re-deriving state.
type ConflictError struct {
	FieldName   string
	Synthesized FieldDescriptor
	Custom      FieldDescriptor
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf(
		"custom field %q (type %s) conflicts with synthesized field of type %s",
		e.FieldName, e.Custom.Type, e.Synthesized.Type,
	)
}

// IsValidationError checks if the error is a schema validation error.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflictError checks if the error is a field conflict error.
func IsConflictError(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
