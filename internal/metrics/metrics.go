package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   prometheus.CounterVec
	HTTPRequestDuration prometheus.HistogramVec
	HTTPResponseSize    prometheus.HistogramVec

	// Rate limiting metrics
	RateLimitExceededTotal prometheus.CounterVec

	// Feed cache metrics
	FeedCacheHitsTotal   prometheus.CounterVec
	FeedCacheMissesTotal prometheus.CounterVec
	FeedGenerationTime   prometheus.HistogramVec

	// Business metrics
	UsersRegisteredTotal prometheus.Counter
	FollowsTotal         prometheus.CounterVec
	PostsCreatedTotal    prometheus.CounterVec
	InteractionsTotal    prometheus.CounterVec

	// Error metrics
	ErrorsTotal prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize creates and registers all Prometheus metrics
func Initialize() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),
			HTTPResponseSize: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_response_size_bytes",
					Help:    "HTTP response size in bytes",
					Buckets: prometheus.ExponentialBuckets(100, 10, 7),
				},
				[]string{"method", "path", "status"},
			),

			RateLimitExceededTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "rate_limit_exceeded_total",
					Help: "Total number of rate limit violations",
				},
				[]string{"endpoint", "method"},
			),

			FeedCacheHitsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "feed_cache_hits_total",
					Help: "Total number of feed cache hits",
				},
				[]string{"feed_type"},
			),
			FeedCacheMissesTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "feed_cache_misses_total",
					Help: "Total number of feed cache misses",
				},
				[]string{"feed_type"},
			),
			FeedGenerationTime: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "feed_generation_duration_seconds",
					Help:    "Time to generate feed in seconds",
					Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"feed_type"},
			),

			UsersRegisteredTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "users_registered_total",
					Help: "Total number of registered users",
				},
			),
			FollowsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "follows_total",
					Help: "Total number of follow/unfollow operations",
				},
				[]string{"action"},
			),
			PostsCreatedTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "posts_created_total",
					Help: "Total number of posts created",
				},
				[]string{"post_type"},
			),
			InteractionsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "post_interactions_total",
					Help: "Total number of like/share interactions",
				},
				[]string{"interaction", "action"},
			),

			ErrorsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "errors_total",
					Help: "Total number of errors by type",
				},
				[]string{"error_type", "endpoint"},
			),
		}
	})
	return instance
}

// Get returns the global metrics instance
func Get() *Metrics {
	if instance == nil {
		return Initialize()
	}
	return instance
}
