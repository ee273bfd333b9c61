// internal/common/metrics/metrics.go
package metrics

import (
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

	// ListingAPIRequests counts upstream listing searches by outcome
	// (ok, http_error, network_error, decode_error).
	ListingAPIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_api_requests_total",
			Help: "Total number of listing API search requests",
		},
		[]string{"outcome"},
	)

	ListingAPIDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listing_api_request_duration_seconds",
			Help:    "Duration of listing API search requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	ListingsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "listing_search_results_count",
			Help:    "Number of listings returned per successful search",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100, 250},
		},
	)
)
