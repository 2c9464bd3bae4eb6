package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the PII vault. Labels never carry values.
type Metrics struct {
	FieldsStored     *prometheus.CounterVec
	Reads            *prometheus.CounterVec
	CorruptionEvents *prometheus.CounterVec
	FieldsPurged     prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		FieldsStored: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledgerguard_pii_fields_stored_total",
			Help: "PII fields encrypted and stored, by type",
		}, []string{"pii_type"}),
		Reads: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledgerguard_pii_reads_total",
			Help: "PII reads by display kind (PLAIN, MASKED, EXPIRED, OPAQUE)",
		}, []string{"kind"}),
		CorruptionEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledgerguard_pii_corruption_total",
			Help: "Decrypt failures by path (read, write)",
		}, []string{"path"}),
		FieldsPurged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgerguard_pii_fields_purged_total",
			Help: "Expired PII fields removed by the sweeper",
		}),
	}
}

func (m *Metrics) IncStored(piiType string) {
	if m != nil {
		m.FieldsStored.WithLabelValues(piiType).Inc()
	}
}

func (m *Metrics) IncRead(kind string) {
	if m != nil {
		m.Reads.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) IncCorruption(path string) {
	if m != nil {
		m.CorruptionEvents.WithLabelValues(path).Inc()
	}
}

func (m *Metrics) AddPurged(n int) {
	if m != nil {
		m.FieldsPurged.Add(float64(n))
	}
}
