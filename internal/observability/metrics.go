// Package observability provides logging, metrics, and tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waypost_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// FeedRequests counts recommendation feed requests by outcome
	// ("ok", "empty", "degraded").
	FeedRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waypost_feed_requests_total",
		Help: "Total number of recommendation feed requests by outcome",
	}, []string{"outcome"})

	// FeedLatency records end-to-end recommendation latency in seconds.
	FeedLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "waypost_feed_latency_seconds",
		Help:    "Recommendation pipeline latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// FeedCandidates records how many spatial candidates each request found.
	FeedCandidates = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "waypost_feed_candidates",
		Help:    "Number of spatial candidates found per feed request",
		Buckets: []float64{0, 1, 5, 10, 20, 50},
	})

	// FeedRadiusWidenings counts feed requests that escalated the search radius.
	FeedRadiusWidenings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "waypost_feed_radius_widenings_total",
		Help: "Total number of feed requests that widened the search radius",
	})

	// StoreDegradations counts recommendation store reads that failed and
	// degraded to an empty set, by pipeline stage.
	StoreDegradations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waypost_store_degradations_total",
		Help: "Total number of store reads degraded to empty results by stage",
	}, []string{"stage"})
)
