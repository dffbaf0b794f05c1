package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK           = "ok"
	OutcomeInvalidInput = "invalid_input"
	OutcomeFailed       = "failed"
)

// Metrics are the calculation counters exported at /metrics.
type Metrics struct {
	calculations *prometheus.CounterVec
	duration     prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "solar_calculations_total",
			Help: "Profit calculations by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "solar_calculation_duration_seconds",
			Help:    "Time spent in the estimator per calculation.",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 8),
		}),
	}
	reg.MustRegister(m.calculations, m.duration)
	return m
}

// Observe records one calculation. A nil *Metrics is a no-op.
func (m *Metrics) Observe(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		m.duration.Observe(elapsed.Seconds())
	}
}
