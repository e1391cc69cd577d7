package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the Prometheus collectors the services report into. A single
// instance is created at startup and shared through constructor injection.
type Metrics struct {
	SubmissionsCreated  *prometheus.CounterVec
	SubmissionsGraded   prometheus.Counter
	LateRequestsCreated prometheus.Counter
	LateRequestsDecided *prometheus.CounterVec
	UploadsRejected     *prometheus.CounterVec
	UploadDuration      prometheus.Histogram
	AIDraftDuration     prometheus.Histogram
}

// NewMetrics registers the application collectors with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SubmissionsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tuition",
			Name:      "submissions_created_total",
			Help:      "Submissions accepted, partitioned by lateness.",
		}, []string{"late"}),
		SubmissionsGraded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tuition",
			Name:      "submissions_graded_total",
			Help:      "Grading writes, including re-grades.",
		}),
		LateRequestsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tuition",
			Name:      "late_requests_created_total",
			Help:      "Late-submission requests filed by students.",
		}),
		LateRequestsDecided: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tuition",
			Name:      "late_requests_decided_total",
			Help:      "Teacher decisions on late requests, by outcome.",
		}, []string{"decision"}),
		UploadsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tuition",
			Name:      "uploads_rejected_total",
			Help:      "File uploads rejected before storage, by reason.",
		}, []string{"reason"}),
		UploadDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tuition",
			Name:      "upload_duration_seconds",
			Help:      "Wall time spent storing an upload.",
			Buckets:   prometheus.DefBuckets,
		}),
		AIDraftDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tuition",
			Name:      "ai_draft_duration_seconds",
			Help:      "Wall time spent generating an assignment draft.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30},
		}),
	}
}

// NewTestMetrics returns metrics bound to a throwaway registry for tests.
func NewTestMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
