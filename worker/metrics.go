package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal counts handled requests by outcome.
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "raceroute_route_requests_total",
		Help: "Total route requests by outcome",
	}, []string{"outcome"}) // "success", "failure" or "error"

	// requestDuration tracks end-to-end handling time.
	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "raceroute_route_duration_seconds",
		Help:    "Route request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
	})

	// fieldLength tracks the open-space length of successful routes.
	fieldLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "raceroute_route_field_length_units",
		Help:    "Field-routed length of successful routes",
		Buckets: []float64{0, 12, 36, 72, 144, 288, 576, 1200},
	})

	baseCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "raceroute_base_graph_cache_hits_total",
		Help: "Total base graph cache hits",
	})

	baseCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "raceroute_base_graph_cache_misses_total",
		Help: "Total base graph cache misses",
	})

	// queueDepth is the number of requests waiting for a pool worker.
	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "raceroute_pool_queue_depth",
		Help: "Requests waiting for a pool worker",
	})
)
