// Package metrics exposes Prometheus instrumentation for the operation
// surface.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the registry and the operation-level collectors.
type Metrics struct {
	registry *prometheus.Registry

	opsTotal    *prometheus.CounterVec
	opsDuration *prometheus.HistogramVec
}

// New creates a Metrics with its own registry and standard Go collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		opsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "socialmem_operations_total",
				Help: "Total operations by name and status",
			},
			[]string{"operation", "status"},
		),
		opsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "socialmem_operation_duration_seconds",
				Help:    "Operation latency by name",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}

	m.registry.MustRegister(
		m.opsTotal,
		m.opsDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordOperation records one completed operation.
func (m *Metrics) RecordOperation(operation, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.opsTotal.WithLabelValues(operation, status).Inc()
	m.opsDuration.WithLabelValues(operation).Observe(dur.Seconds())
}

// Handler returns the /metrics HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
