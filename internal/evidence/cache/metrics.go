package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts cache outcomes per provider.
type Metrics struct {
	Lookups *prometheus.CounterVec
}

// NewMetrics registers the cache metrics with the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		Lookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "idverify_lookup_cache_total",
			Help: "Provider lookup cache outcomes (hit, miss, error)",
		}, []string{"provider", "outcome"}),
	}
}

func (m *Metrics) observe(providerID, outcome string) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(providerID, outcome).Inc()
}
