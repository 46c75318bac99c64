package remote

import (
	"context"

	"github.com/schemaforge/schemaforge/schema"
)

// ReasonCode classifies one rejected schema element. The set is fixed; the
// negotiation engine's adjustment rules are keyed on it.
type ReasonCode string

const (
	// ReasonAttributeNotValid: an attribute (filterable, sortable, ...) is not
	// valid on the field's type in this deployment.
	ReasonAttributeNotValid ReasonCode = "attribute_not_valid"

	// ReasonDimensionsExceeded: a vector field's dimensionality exceeds the
	// deployment maximum.
	ReasonDimensionsExceeded ReasonCode = "dimensions_exceeded"

	// ReasonAnalyzerUnknown: a named analyzer or tokenizer is not recognized.
	ReasonAnalyzerUnknown ReasonCode = "analyzer_unknown"

	// ReasonSemanticNotSupported: the deployment does not support semantic
	// configuration at all.
	ReasonSemanticNotSupported ReasonCode = "semantic_not_supported"

	// ReasonPropertyUnknown: a schema property is not recognized by this API
	// version.
	ReasonPropertyUnknown ReasonCode = "property_unknown"

	// ReasonFieldInvalid: the field definition is rejected as a whole.
	ReasonFieldInvalid ReasonCode = "field_invalid"

	// ReasonUnclassified: the diagnostic could not be mapped to any known
	// code. The engine treats it as non-convergent rather than guessing.
	ReasonUnclassified ReasonCode = "unclassified"
)

// Rejection is one structured element-level rejection from the service.
// ElementPath addresses the element slash-separated, e.g.
// "fields/content_vector/filterable", "semanticConfig", "analyzers/keyword_lowercase".
type Rejection struct {
	ElementPath string     `json:"elementPath"`
	ReasonCode  ReasonCode `json:"reasonCode"`
	Message     string     `json:"message"`
}

// CreateResult is the outcome of a trial index creation.
// Accepted and Rejections are mutually exclusive: an accepted trial carries no
// rejections, and a rejected trial creates no remote resource.
type CreateResult struct {
	Accepted   bool
	Rejections []Rejection
}

// Service is the contract to the managed search service consumed by the
// capability detector and the negotiation engine.
//
//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks
type Service interface {
	// TryCreateIndex submits the schema as an index creation. A semantic
	// rejection is a normal result, not an error; errors are reserved for
	// transport-level faults (*TransientError after retries, *FatalError).
	TryCreateIndex(ctx context.Context, s *schema.SchemaDescriptor) (*CreateResult, error)

	// DeleteIndex removes an index. A missing index returns ErrIndexNotFound.
	DeleteIndex(ctx context.Context, name string) error

	// GetIndexSchema fetches the deployed schema of an index, or
	// ErrIndexNotFound.
	GetIndexSchema(ctx context.Context, name string) (*schema.SchemaDescriptor, error)

	// APIVersion reports the service API version this client speaks. Recorded
	// in detected capability profiles and used for cache invalidation.
	APIVersion() string
}
