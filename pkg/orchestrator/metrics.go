package orchestrator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/seamly/garmentd/pkg/domain"
)

type metrics struct {
	generations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "garmentd_generations_total",
				Help: "Total number of generation requests by target kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "garmentd_generation_seconds",
				Help:    "Duration of generation requests by target kind",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
			},
			[]string{"kind"},
		),
	}
	reg.MustRegister(m.generations, m.duration)
	return m
}

func (m *metrics) observe(kind domain.TargetKind, outcome string, d time.Duration) {
	m.generations.WithLabelValues(string(kind), outcome).Inc()
	m.duration.WithLabelValues(string(kind)).Observe(d.Seconds())
}
