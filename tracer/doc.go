// Package tracer provides OpenTelemetry tracing for schemaforge operations.
//
// Capability probes and negotiation iterations each produce a span, so an
// operator can see exactly which remote round-trips a negotiation performed
// and how long each took. Export goes through OTLP over HTTP when enabled;
// with export disabled the tracer still produces spans for in-process
// consumers but sends nothing.
package tracer
