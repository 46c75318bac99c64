// Package synth maps a feature request and a capability profile to a draft
// schema.
//
// Synthesize is a pure function: identical inputs always produce an identical
// draft, down to field ordering, so negotiation logs and diffs are
// reproducible across runs. It is table-driven over the feature fragment
// table in package schema and never contacts the remote service.
//
// The capability profile only caps what can be capped locally (vector
// dimensions). It does not gate features out of the draft: a deployment that
// turns out not to support, say, semantic ranking rejects the block during
// negotiation, which records the drop in the adjustment trail instead of
// silently omitting it here.
package synth
