// Package capability detects and caches what a remote search deployment
// actually supports.
//
// A Profile is a snapshot: maximum vector dimensions, semantic search
// support, recognized custom analyzers, and the API version it was detected
// against. Profiles are immutable once built; re-detection replaces them
// wholesale, never patches them in place.
//
// The Detector runs a fixed battery of probes, each a trial index creation
// with guaranteed teardown of any transient resource it creates. One probe
// failing degrades the matching capability to unsupported and detection
// continues; only a service that cannot be reached at all makes Detect fail.
//
// The Cache is shared process-wide, safe for concurrent reads, keyed by
// target-service identity, and treats any entry older than its TTL as absent.
// The clock is injectable so expiry is testable. Persisted stores (JSON file,
// Postgres) back the cache across process restarts.
package capability
