package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification workflow.
type Metrics struct {
	// Submission outcomes by profile kind and resulting status
	Outcomes *prometheus.CounterVec

	// Provider lookup latency by provider and result
	LookupLatency *prometheus.HistogramVec

	// Distribution of overall confidence for scored agent submissions
	Confidence prometheus.Histogram
}

// New creates a new Metrics instance with all verification metrics registered.
func New() *Metrics {
	return &Metrics{
		Outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "idverify_verification_outcomes_total",
			Help: "Verification submission outcomes by profile kind and status",
		}, []string{"kind", "status"}),

		LookupLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "idverify_provider_lookup_duration_seconds",
			Help:    "Duration of identity provider lookups",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"provider", "result"}), // result: "ok", "error"

		Confidence: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "idverify_match_confidence",
			Help:    "Overall match confidence of scored agent submissions",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 85, 90, 95, 100},
		}),
	}
}

// IncrementOutcome records a submission outcome.
func (m *Metrics) IncrementOutcome(kind, status string) {
	if m != nil {
		m.Outcomes.WithLabelValues(kind, status).Inc()
	}
}

// ObserveLookup records the duration of one provider lookup.
func (m *Metrics) ObserveLookup(provider string, d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.LookupLatency.WithLabelValues(provider, result).Observe(d.Seconds())
}

// ObserveConfidence records one overall confidence score.
func (m *Metrics) ObserveConfidence(confidence float64) {
	if m != nil {
		m.Confidence.Observe(confidence)
	}
}
