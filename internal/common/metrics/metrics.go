package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	DirectorySearchResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "directory_search_results",
			Help:    "Number of businesses returned per directory search",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
		[]string{"source"},
	)

	DirectoryCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_cache_lookups_total",
			Help: "Directory cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	SignupTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signup_transitions_total",
			Help: "Sign-up wizard transitions by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	UploadTasks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "document_upload_tasks_total",
			Help: "Simulated document uploads by final state",
		},
		[]string{"state"},
	)

	BusinessActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "business_actions_total",
			Help: "Stubbed business actions requested",
		},
		[]string{"action"},
	)

	ReferralShares = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "referral_shares_total",
			Help: "Referral share attempts by channel and delivery result",
		},
		[]string{"channel", "delivered"},
	)
)

// JobTimer tracks one job from activation to completion or failure.
type JobTimer struct {
	taskType string
	start    time.Time
}

// StartJob marks a job active for taskType.
func StartJob(taskType string) *JobTimer {
	WorkerJobsActive.WithLabelValues(taskType).Inc()
	return &JobTimer{taskType: taskType, start: time.Now()}
}

func (t *JobTimer) finish() {
	WorkerJobsActive.WithLabelValues(t.taskType).Dec()
	WorkerJobDuration.WithLabelValues(t.taskType).Observe(time.Since(t.start).Seconds())
}

func (t *JobTimer) Completed() {
	t.finish()
	WorkerJobsCompleted.WithLabelValues(t.taskType).Inc()
}

func (t *JobTimer) Failed(errorCode string) {
	t.finish()
	WorkerJobsFailed.WithLabelValues(t.taskType, errorCode).Inc()
}
