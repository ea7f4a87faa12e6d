package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FeedMutations counts successful writes to the feed by kind.
	FeedMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "medconnect_feed_mutations_total",
		Help: "Total number of feed mutations by kind",
	}, []string{"kind"})

	// FeedBuildSeconds records how long assembling the full feed takes.
	FeedBuildSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "medconnect_feed_build_seconds",
		Help:    "Time spent assembling the feed",
		Buckets: prometheus.DefBuckets,
	})

	// EventPublishFailures counts feed events the publisher failed to deliver, by event type.
	EventPublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "medconnect_event_publish_failures_total",
		Help: "Total number of feed events that failed to publish",
	}, []string{"event"})

	// WebSocketConnections is the gauge of open feed stream connections.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "medconnect_websocket_connections",
		Help: "Number of open feed websocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped because a client could not keep up.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "medconnect_websocket_backpressure_drops_total",
		Help: "Total number of websocket messages dropped due to backpressure",
	}, []string{"reason"})
)
