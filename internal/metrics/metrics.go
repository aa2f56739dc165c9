// Package metrics exports panel gateway timings to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts and times panel operations.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	events     *prometheus.CounterVec
}

// NewRecorder registers the panel collectors on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nirapod",
			Name:      "panel_operations_total",
			Help:      "Gateway operations by panel, operation and outcome.",
		}, []string{"panel", "op", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nirapod",
			Name:      "panel_operation_seconds",
			Help:      "Gateway operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"panel", "op"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nirapod",
			Name:      "safety_events_total",
			Help:      "Safety events such as SOS alerts and rides.",
		}, []string{"kind"}),
	}
	reg.MustRegister(r.operations, r.latency, r.events)
	reg.MustRegister(collectors.NewGoCollector())
	return r
}

// Observe implements viewstate.Recorder.
func (r *Recorder) Observe(panel, op string, success bool, elapsed time.Duration) {
	outcome := "success"
	if !success {
		outcome = "error"
	}
	r.operations.WithLabelValues(panel, op, outcome).Inc()
	r.latency.WithLabelValues(panel, op).Observe(elapsed.Seconds())
}

// Event counts a safety event.
func (r *Recorder) Event(kind string) {
	r.events.WithLabelValues(kind).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
