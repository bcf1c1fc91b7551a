// Package metrics exposes Prometheus instrumentation for the trip repository.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Mutation results.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

// Metrics groups the collectors the repository reports to.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Mutations    *prometheus.CounterVec
	SaveDuration prometheus.Histogram
	SaveFailures prometheus.Counter
	Trips        prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripsplit",
			Subsystem: "repository",
			Name:      "mutations_total",
			Help:      "Repository mutations by operation and result.",
		}, []string{"op", "result"}),
		SaveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tripsplit",
			Subsystem: "store",
			Name:      "save_duration_seconds",
			Help:      "Time spent writing a full snapshot.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		SaveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tripsplit",
			Subsystem: "store",
			Name:      "save_failures_total",
			Help:      "Snapshot writes that returned an error.",
		}),
		Trips: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tripsplit",
			Subsystem: "repository",
			Name:      "trips",
			Help:      "Trips currently held by the repository.",
		}),
	}
	reg.MustRegister(m.Mutations, m.SaveDuration, m.SaveFailures, m.Trips)
	return m
}

// ObserveMutation counts one mutation.
func (m *Metrics) ObserveMutation(op, result string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(op, result).Inc()
}

// ObserveSave records a snapshot write that started at start.
func (m *Metrics) ObserveSave(start time.Time, err error) {
	if m == nil {
		return
	}
	m.SaveDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.SaveFailures.Inc()
	}
}

// SetTrips records the size of the collection.
func (m *Metrics) SetTrips(n int) {
	if m == nil {
		return
	}
	m.Trips.Set(float64(n))
}
