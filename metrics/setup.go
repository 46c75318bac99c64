package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and HTTP server responsible
// for exposing schemaforge metrics.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// Each process maintains its own isolated registry to prevent metric
	// name collisions.
	Registry *prometheus.Registry

	// Core built-in metrics
	negotiationsTotal     *prometheus.CounterVec
	negotiationIterations prometheus.Histogram
	probeDuration         *prometheus.HistogramVec
	remoteCallsTotal      *prometheus.CounterVec
}

// NewMetrics initializes and returns a new instance of the Metrics struct.
// It sets up a dedicated Prometheus registry, registers default system
// collectors, wraps all metrics with a constant `service` label, and creates
// an HTTP server exposing the /metrics endpoint.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:     ":9090",
//	    ServiceName: "schemaforge",
//	})
//	go m.Server.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = DefaultConfig().ServiceName
	}

	// All metrics emitted by this process automatically carry the label
	// service="<cfg.ServiceName>".
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": serviceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
	}

	m.negotiationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "negotiations_total",
		Help: "Total number of schema negotiations by outcome",
	}, []string{"outcome"})
	m.negotiationIterations = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "negotiation_iterations",
		Help:    "Number of probe iterations per negotiation",
		Buckets: []float64{1, 2, 3, 4, 5, 8},
	})
	m.probeDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "capability_probe_duration_seconds",
		Help:    "Duration of capability probes in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"probe"})
	m.remoteCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "remote_calls_total",
		Help: "Total number of remote service calls by operation and status",
	}, []string{"operation", "status"})

	wrappedRegistry.MustRegister(
		m.negotiationsTotal,
		m.negotiationIterations,
		m.probeDuration,
		m.remoteCallsTotal,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}
	return m
}

// ObserveNegotiation records one completed negotiation. Outcome is one of
// "converged", "failed", or "error". Nil-safe so components can run without
// metrics wired.
func (m *Metrics) ObserveNegotiation(outcome string, iterations int) {
	if m == nil {
		return
	}
	m.negotiationsTotal.WithLabelValues(outcome).Inc()
	m.negotiationIterations.Observe(float64(iterations))
}

// ObserveProbe records the duration of one capability probe.
func (m *Metrics) ObserveProbe(probe string, start time.Time) {
	if m == nil {
		return
	}
	m.probeDuration.WithLabelValues(probe).Observe(time.Since(start).Seconds())
}

// IncrementRemoteCalls counts one remote service call.
func (m *Metrics) IncrementRemoteCalls(operation, status string) {
	if m == nil {
		return
	}
	m.remoteCallsTotal.WithLabelValues(operation, status).Inc()
}
