// Package metrics exports build outcomes as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/specialistvlad/clovergrid/internal/scheduler"
)

// Metrics owns a private registry so that repeated runs in one process,
// such as tests, never collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	// TasksTotal counts finished tasks by name and outcome.
	TasksTotal *prometheus.CounterVec
	// TaskDuration observes how long each task ran.
	TaskDuration *prometheus.HistogramVec
	// InstrumentationActivations counts runs where coverage instrumentation was switched on.
	InstrumentationActivations prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		TasksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clovergrid_tasks_total",
				Help: "Total number of tasks finished, by outcome",
			},
			[]string{"task", "outcome"},
		),
		TaskDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "clovergrid_task_duration_seconds",
				Help:    "Duration of task execution in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"task"},
		),
		InstrumentationActivations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "clovergrid_instrumentation_activations_total",
				Help: "Total number of runs with Clover instrumentation enabled",
			},
		),
	}
	m.registry.MustRegister(m.TasksTotal, m.TaskDuration, m.InstrumentationActivations)
	return m
}

// TaskFinished implements scheduler.Recorder. Skipped tasks never ran, so
// they are counted but not timed.
func (m *Metrics) TaskFinished(name string, outcome scheduler.Outcome, d time.Duration) {
	m.TasksTotal.WithLabelValues(name, string(outcome)).Inc()
	if outcome != scheduler.OutcomeSkipped {
		m.TaskDuration.WithLabelValues(name).Observe(d.Seconds())
	}
}

// InstrumentationActivated implements coverage.ActivationRecorder.
func (m *Metrics) InstrumentationActivated() {
	m.InstrumentationActivations.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
