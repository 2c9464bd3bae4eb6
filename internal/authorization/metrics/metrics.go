package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for authorization decisions.
type Metrics struct {
	// Decision outcomes by outcome and reason code
	Decisions *prometheus.CounterVec

	// Latency of a decision including descendant lookups
	DecideLatency prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		Decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledgerguard_authorization_decisions_total",
			Help: "Total authorization decisions by outcome and reason code",
		}, []string{"outcome", "reason"}),

		DecideLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledgerguard_authorization_decide_duration_seconds",
			Help:    "Duration of authorization decisions",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}),
	}
}

// IncrementDecision records a decision outcome.
func (m *Metrics) IncrementDecision(outcome, reason string) {
	if m != nil {
		m.Decisions.WithLabelValues(outcome, reason).Inc()
	}
}

// ObserveDecideLatency records the total decision duration.
func (m *Metrics) ObserveDecideLatency(d time.Duration) {
	if m != nil {
		m.DecideLatency.Observe(d.Seconds())
	}
}
