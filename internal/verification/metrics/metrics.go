package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for verification transitions.
type Metrics struct {
	// Completed transitions by kind and target status
	Transitions *prometheus.CounterVec

	// Failed transitions by kind and reason code
	TransitionFailures *prometheus.CounterVec

	// Records created by kind
	RecordsCreated *prometheus.CounterVec

	TransitionLatency prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledgerguard_verification_transitions_total",
			Help: "Total completed verification transitions by kind and status",
		}, []string{"kind", "status"}),

		TransitionFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledgerguard_verification_transition_failures_total",
			Help: "Total failed verification transitions by kind and reason code",
		}, []string{"kind", "reason"}),

		RecordsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledgerguard_verification_records_created_total",
			Help: "Total verification records created by kind",
		}, []string{"kind"}),

		TransitionLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledgerguard_verification_transition_duration_seconds",
			Help:    "Duration of verification transitions including authorization",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncTransition(kind, status string) {
	if m != nil {
		m.Transitions.WithLabelValues(kind, status).Inc()
	}
}

func (m *Metrics) IncTransitionFailure(kind, reason string) {
	if m != nil {
		m.TransitionFailures.WithLabelValues(kind, reason).Inc()
	}
}

func (m *Metrics) IncRecordCreated(kind string) {
	if m != nil {
		m.RecordsCreated.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) ObserveTransitionLatency(d time.Duration) {
	if m != nil {
		m.TransitionLatency.Observe(d.Seconds())
	}
}
