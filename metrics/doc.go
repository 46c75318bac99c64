// Package metrics exposes Prometheus instrumentation for schemaforge
// operations: capability probe latencies, remote call outcomes, and
// negotiation iteration counts.
//
// Each process gets its own isolated registry wrapped with a constant
// service label, served on /metrics by an HTTP server whose lifecycle is
// managed through the fx module.
package metrics
