package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registry and ballot services.
// A nil *Metrics is valid and records nothing, which keeps tests quiet.
type Metrics struct {
	// Cast outcomes by result: "success", "already_voted", "not_found"
	CastOutcomes *prometheus.CounterVec

	// Total enrollments accepted
	Enrollments prometheus.Counter

	// Currently enrolled voters
	Enrolled prometheus.Gauge
}

func New() *Metrics {
	return &Metrics{
		CastOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "biovote_cast_outcomes_total",
			Help: "Total ballot cast attempts by outcome",
		}, []string{"outcome"}),

		Enrollments: promauto.NewCounter(prometheus.CounterOpts{
			Name: "biovote_enrollments_total",
			Help: "Total accepted voter enrollments",
		}),

		Enrolled: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "biovote_voters_enrolled",
			Help: "Number of currently enrolled voters",
		}),
	}
}

// IncrementCast records a cast attempt outcome.
func (m *Metrics) IncrementCast(outcome string) {
	if m != nil {
		m.CastOutcomes.WithLabelValues(outcome).Inc()
	}
}

// IncrementEnrolled records an accepted enrollment.
func (m *Metrics) IncrementEnrolled() {
	if m != nil {
		m.Enrollments.Inc()
		m.Enrolled.Inc()
	}
}

// DecrementEnrolled records a deletion.
func (m *Metrics) DecrementEnrolled() {
	if m != nil {
		m.Enrolled.Dec()
	}
}
