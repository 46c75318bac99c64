// Package update classifies schema changes as additive-safe or
// reindex-required and gates in-place index mutation on that classification.
//
// The classification table is deliberately conservative:
//
//   - adding a field, scoring profile, vector profile, or analyzer: safe
//   - changing an existing field's type, key designation, or vector
//     dimensionality: unsafe, requires reindex
//   - changing any other attribute of an existing field: unsafe
//   - removing any field: unsafe
//
// A plan never auto-applies unsafe changes. Callers must pass an explicit
// override to proceed, and the override is recorded in the returned plan so
// the decision is auditable.
package update
