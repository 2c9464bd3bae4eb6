package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for tree traversal and registration.
type Metrics struct {
	NodesRegistered     *prometheus.CounterVec
	DescendantsDuration prometheus.Histogram
	DescendantsSize     prometheus.Histogram
	CacheLookups        *prometheus.CounterVec
	DepthExceeded       prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		NodesRegistered: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledgerguard_hierarchy_nodes_registered_total",
			Help: "Tenant nodes registered, by role",
		}, []string{"role"}),
		DescendantsDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledgerguard_hierarchy_descendants_duration_seconds",
			Help:    "Duration of descendant set computation (authorization critical path)",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		DescendantsSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledgerguard_hierarchy_descendants_size",
			Help:    "Number of nodes in computed descendant sets",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		CacheLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledgerguard_hierarchy_cache_lookups_total",
			Help: "Descendant cache lookups by result (hit, miss, error)",
		}, []string{"result"}),
		DepthExceeded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgerguard_hierarchy_depth_exceeded_total",
			Help: "Traversals aborted by the depth guard (corrupt or cyclic tree)",
		}),
	}
}

func (m *Metrics) IncNodeRegistered(role string) {
	m.NodesRegistered.WithLabelValues(role).Inc()
}

// ObserveDescendants records duration and result size of one traversal.
func (m *Metrics) ObserveDescendants(start time.Time, size int) {
	m.DescendantsDuration.Observe(time.Since(start).Seconds())
	m.DescendantsSize.Observe(float64(size))
}

func (m *Metrics) IncCacheLookup(result string) {
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) IncDepthExceeded() {
	m.DepthExceeded.Inc()
}
