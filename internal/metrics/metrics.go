package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// UploadsTotal uploads per bucket prefix, result is "ok" or "error".
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_uploads_total",
			Help: "Uploaded objects by prefix and result.",
		},
		[]string{"prefix", "result"},
	)

	OrphanedObjectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_orphaned_objects_total",
			Help: "Objects uploaded for a record that was never written.",
		},
	)

	LoginFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "admin_login_failures_total",
			Help: "Rejected admin sign-ins, rate-limited ones included.",
		},
	)
)
