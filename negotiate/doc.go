// Package negotiate drives a draft schema through the remote service's
// accept/reject cycle until the service accepts it or the engine proves it
// cannot.
//
// The engine is a small state machine:
//
//	DRAFT -> PROBING -> (CONVERGED | ADJUSTING -> PROBING) | FAILED
//
// Each PROBING step submits the current candidate as a trial creation. A
// rejection comes back as structured element-level diagnostics; ADJUSTING
// maps each one through a fixed rule table into exactly one adjustment
// (drop an attribute, cap vector dimensions, substitute an analyzer, drop a
// field, drop the semantic block) and applies them all to produce the next
// candidate. Every adjustment is appended to an audit trail with its reason;
// the caller never receives a trimmed schema without the trail explaining
// every change.
//
// Two independent guards bound the loop: a hard iteration ceiling, and a
// convergence check that fails the negotiation as soon as an iteration does
// not strictly shrink the rejection count. The second guard is what stops two
// adjustment rules from fighting over the same element forever.
//
// Negotiations for the same target index name are mutually exclusive, since
// each iteration creates and tears down a transient remote resource under
// that name. Trial creations that are not explicitly kept are always torn
// down, including when the surrounding context is canceled mid-negotiation.
package negotiate
