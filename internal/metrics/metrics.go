// Package metrics exposes Prometheus collectors for the HTTP surface
// and the content pipeline.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, route and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by method and route
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// HTTPRequestsInFlight gauges currently executing requests
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// ContentCacheLoads counts post cache rebuilds by result
	ContentCacheLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_cache_loads_total",
			Help: "Total number of post cache rebuilds",
		},
		[]string{"result"},
	)

	// PublishesTotal counts publish attempts by outcome
	PublishesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "publishes_total",
			Help: "Total number of publish attempts",
		},
		[]string{"outcome"},
	)
)

// Middleware records request counts, latency and in-flight gauge for
// every matched route. Unmatched routes are recorded under their raw
// path so 404 noise stays visible.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		HTTPRequestsInFlight.Inc()

		c.Next()

		HTTPRequestsInFlight.Dec()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := strconv.Itoa(c.Writer.Status())
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
