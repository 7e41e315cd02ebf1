package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and path
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contest_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "path"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contest_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "path"},
	)

	// RequestInProgress counts HTTP requests currently being processed
	RequestInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "contest_http_requests_in_progress",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"method", "path"},
	)

	// RateLimiterRejections counts rejected requests due to rate limiting
	RateLimiterRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contest_rate_limiter_rejections_total",
			Help: "Total number of requests rejected by rate limiter",
		},
		[]string{"ip"},
	)

	// DatabaseOperationDuration measures database operation duration
	DatabaseOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contest_db_operation_duration_seconds",
			Help:    "Database operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	// SubmissionsCreated counts successfully created submissions by category
	SubmissionsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contest_submissions_created_total",
			Help: "Total number of submissions created",
		},
		[]string{"category"},
	)

	// SubmissionsDeleted counts deleted submissions
	SubmissionsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contest_submissions_deleted_total",
			Help: "Total number of submissions deleted",
		},
	)

	// StatusTransitions counts admin status transitions
	StatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contest_submission_status_transitions_total",
			Help: "Total number of submission status transitions",
		},
		[]string{"from", "to"},
	)

	// BulkItemResults counts per-item outcomes of bulk status operations
	BulkItemResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contest_bulk_item_results_total",
			Help: "Per-item outcomes of bulk status operations",
		},
		[]string{"result"},
	)

	// GuardRejections counts creations rejected by the pre-creation guards
	GuardRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contest_guard_rejections_total",
			Help: "Submissions rejected before creation, by guard",
		},
		[]string{"guard"},
	)

	// CacheHits counts the number of cache hits
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contest_cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	// CacheMisses counts the number of cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contest_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	// MemoryStats tracks memory usage metrics
	MemoryStats = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "contest_memory_stats_bytes",
			Help: "Memory usage statistics",
		},
		[]string{"type"},
	)

	// GoroutineCount tracks the number of running goroutines
	GoroutineCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "contest_goroutines_count",
			Help: "Number of running goroutines",
		},
	)
)

// RecordDBOperation records the duration of a database operation
func RecordDBOperation(operation string, table string, startTime time.Time) {
	duration := time.Since(startTime).Seconds()
	DatabaseOperationDuration.WithLabelValues(operation, table).Observe(duration)
}
