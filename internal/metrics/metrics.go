// Package metrics exposes sequencer activity to Prometheus.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"sonyremote/internal/bravia"
	"sonyremote/internal/status"
)

const metricPrefix = "sonyremote_"

// Metrics bundles remote control metrics. It implements status.Reporter.
type Metrics struct {
	CommandsTotal   *prometheus.CounterVec
	CommandLatency  *prometheus.HistogramVec
	BatchesTotal    *prometheus.CounterVec
	BatchDuration   prometheus.Histogram
	BatchesInFlight prometheus.Gauge

	running sync.Map
}

// New constructs the metrics and registers them with reg. A nil reg uses
// the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		CommandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "commands_total",
				Help: "Total transmitted commands by result",
			},
			[]string{"result"},
		),
		CommandLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "command_latency_seconds",
				Help:    "Command round trip to the TV in seconds",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2, 3, 5},
			},
			[]string{"result"},
		),
		BatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "batches_total",
				Help: "Total batches by outcome",
			},
			[]string{"result"},
		),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricPrefix + "batch_duration_seconds",
			Help:    "Batch duration in seconds, settle delays included",
			Buckets: prometheus.DefBuckets,
		}),
		BatchesInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "batches_in_flight",
			Help: "Batches currently being sent",
		}),
	}
	reg.MustRegister(
		m.CommandsTotal,
		m.CommandLatency,
		m.BatchesTotal,
		m.BatchDuration,
		m.BatchesInFlight,
	)
	return m
}

// Report implements status.Reporter
func (m *Metrics) Report(e status.Event) {
	switch {
	case e.Kind == status.KindStarted:
		m.running.Store(e.BatchID, struct{}{})
		m.BatchesInFlight.Inc()
	case e.Kind == status.KindProgress:
		result := string(bravia.Classify(e.Err))
		m.CommandsTotal.WithLabelValues(result).Inc()
		m.CommandLatency.WithLabelValues(result).Observe(e.Elapsed.Seconds())
	case e.Kind.Terminal():
		// batches turned away by the guard finish without having started
		if _, ok := m.running.LoadAndDelete(e.BatchID); ok {
			m.BatchesInFlight.Dec()
		}
		m.BatchesTotal.WithLabelValues(string(e.Kind)).Inc()
		m.BatchDuration.Observe(e.Elapsed.Seconds())
	}
}
