// Package schema defines the data model for search-index schemas: fields,
// vector profiles, semantic configuration, scoring profiles, and analyzers.
//
// A SchemaDescriptor is a value object. It is synthesized from a feature
// request, then only ever changed through the negotiation engine's logged
// adjustment trail; nothing in this package mutates a descriptor in place
// on behalf of a caller.
//
// The package also owns:
//
//   - Validation of field and request definitions before any remote call
//     (duplicate names, key-field rules, vector attribute rules).
//   - The closed FeatureTag enumeration and the table mapping each feature
//     to the schema fragments it contributes.
//   - JSON file round-trip for the schema file format, preserving field order.
package schema
