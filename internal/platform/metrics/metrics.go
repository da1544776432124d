package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	SubmissionsAccepted  prometheus.Counter
	SubmissionsDuplicate prometheus.Counter
	SubmissionsSpam      prometheus.Counter
	FlagsRaised          *prometheus.CounterVec
	SubmissionDuration   prometheus.Histogram
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		SubmissionsAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pulseform_submissions_accepted_total",
			Help: "Total number of accepted form submissions",
		}),
		SubmissionsDuplicate: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pulseform_submissions_duplicate_total",
			Help: "Total number of submissions flagged as duplicates",
		}),
		SubmissionsSpam: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pulseform_submissions_spam_total",
			Help: "Total number of submissions dropped by the honeypot",
		}),
		FlagsRaised: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pulseform_flags_raised_total",
			Help: "Total triage flags raised, by flag kind",
		}, []string{"kind"}),
		SubmissionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "pulseform_submission_duration_seconds",
			Help:    "End-to-end submission processing duration",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
