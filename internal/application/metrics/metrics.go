package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the application module.
// Tracks submissions, status transitions and critical path durations.
type Metrics struct {
	Submitted          prometheus.Counter
	StatusTransitions  *prometheus.CounterVec
	RejectedTransition prometheus.Counter
	SubmitDuration     prometheus.Histogram
}

// New creates a Metrics instance with all application module metrics registered.
func New() *Metrics {
	return &Metrics{
		Submitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "passportal_applications_submitted_total",
			Help: "Total number of passport applications submitted",
		}),
		StatusTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "passportal_application_status_transitions_total",
			Help: "Total number of application status transitions by target status",
		}, []string{"to"}),
		RejectedTransition: promauto.NewCounter(prometheus.CounterOpts{
			Name: "passportal_application_invalid_transitions_total",
			Help: "Total number of status updates refused by the transition graph",
		}),
		SubmitDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "passportal_application_submit_duration_seconds",
			Help:    "Duration of application submission (wizard freeze and persist)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementSubmitted records a successful submission.
func (m *Metrics) IncrementSubmitted() {
	if m == nil {
		return
	}
	m.Submitted.Inc()
}

// IncrementTransition records a successful status transition.
func (m *Metrics) IncrementTransition(to string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(to).Inc()
}

// IncrementInvalidTransition records a refused status update.
func (m *Metrics) IncrementInvalidTransition() {
	if m == nil {
		return
	}
	m.RejectedTransition.Inc()
}

// ObserveSubmit records the duration of a submission.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveSubmit(start time.Time) {
	if m == nil {
		return
	}
	m.SubmitDuration.Observe(time.Since(start).Seconds())
}
