package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIncrementRemoteCalls(t *testing.T) {
	m := NewMetrics(Config{Address: ":0", ServiceName: "test"})

	m.IncrementRemoteCalls("tryCreateIndex", "ok")
	m.IncrementRemoteCalls("tryCreateIndex", "ok")
	m.IncrementRemoteCalls("tryCreateIndex", "error")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.remoteCallsTotal.WithLabelValues("tryCreateIndex", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.remoteCallsTotal.WithLabelValues("tryCreateIndex", "error")))
}

func TestObserveNegotiation(t *testing.T) {
	m := NewMetrics(Config{Address: ":0", ServiceName: "test"})

	m.ObserveNegotiation("converged", 3)
	m.ObserveNegotiation("failed", 5)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.negotiationsTotal.WithLabelValues("converged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.negotiationsTotal.WithLabelValues("failed")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveNegotiation("converged", 1)
		m.ObserveProbe("vector", time.Now())
		m.IncrementRemoteCalls("deleteIndex", "ok")
	})
}
