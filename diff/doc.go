// Package diff computes structural differences between two schema
// descriptors.
//
// The result is symmetric up to sign: Diff(a, b) equals Diff(b, a).Invert().
// The compare operation of the CLI and the safe-update classifier are both
// built on it, and the feature-level summary reverse-maps differing fields
// onto the feature table so an operator can see which requested capability a
// change belongs to.
package diff
