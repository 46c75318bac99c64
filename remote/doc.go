// Package remote defines the contract to the managed search service and an
// HTTP implementation of it.
//
// The capability detector and the negotiation engine depend only on the
// Service interface, never on a particular transport. Service exposes exactly
// three operations:
//
//   - TryCreateIndex: submit a schema; the service answers with acceptance or
//     a structured list of rejected elements
//   - DeleteIndex: remove an index (not-found is a distinct, non-fatal result)
//   - GetIndexSchema: fetch the deployed schema of an index
//
// Real backends report rejections as free-form text. NormalizeDiagnostic maps
// known message shapes to stable reason codes so the engine's adjustment rules
// can key off them; anything it cannot place gets the explicit unclassified
// code rather than a guess.
//
// Transient faults (timeouts, 429, 5xx) are retried with bounded exponential
// backoff inside the client and escalate as *TransientError once retries are
// exhausted. Unreachable endpoints and rejected credentials surface
// immediately as *FatalError.
package remote
