package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	// HTTPRequestsTotal counts requests by method, matched route and status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks handler latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	// RateLimitRejections counts requests refused by the Redis limiter
	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_rejections_total",
			Help: "Requests rejected by the rate limiter by scope",
		},
		[]string{"scope"},
	)
)

// Domain Metrics
var (
	// ToggleTotal counts like/subscription toggles by relation and resulting state (on/off)
	ToggleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relation_toggles_total",
			Help: "Relation toggles by relation and resulting state",
		},
		[]string{"relation", "state"},
	)

	// UploadsTotal counts media uploads by folder and status
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_uploads_total",
			Help: "Media uploads by folder and status",
		},
		[]string{"folder", "status"},
	)

	// UploadDuration tracks object storage upload latency in seconds
	UploadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_upload_duration_seconds",
			Help:    "Media upload duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"folder"},
	)

	// SideEffectFailures counts best-effort work that failed without failing the request
	SideEffectFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "side_effect_failures_total",
			Help: "Best-effort side effects that failed, by kind",
		},
		[]string{"kind"},
	)

	// EmailJobsTotal counts email worker outcomes by template (ack/requeue/drop)
	EmailJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_jobs_total",
			Help: "Email jobs processed by template and outcome",
		},
		[]string{"template", "outcome"},
	)
)

// Storage Metrics
var (
	// DBCommandDuration tracks MongoDB command latency by command name
	DBCommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_command_duration_seconds",
			Help:    "MongoDB command duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"command"},
	)

	// DBErrorsTotal counts failed MongoDB commands
	DBErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_errors_total",
			Help: "Failed MongoDB commands by command name",
		},
		[]string{"command"},
	)

	// RedisOpsTotal tracks total Redis operations by operation type and status
	RedisOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_operations_total",
			Help: "Total Redis operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// RedisOpDuration tracks Redis operation latency in seconds
	RedisOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)
)
