package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Queue Metrics
	QueueRunning = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ukci_queue_running",
		Help: "The number of queued operations currently executing.",
	})
	QueueWaiting = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ukci_queue_waiting",
		Help: "The number of operations waiting for a free slot.",
	})
	QueueSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ukci_queue_settled_total",
		Help: "The total number of queued operations settled, by outcome.",
	}, []string{"outcome"})

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ukci_cache_hits_total",
		Help: "The total number of response cache hits.",
	}, []string{"cache"})
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ukci_cache_misses_total",
		Help: "The total number of response cache misses.",
	}, []string{"cache"})

	// Transport Metrics
	Requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ukci_http_requests_total",
		Help: "The total number of outbound API requests, by status class.",
	}, []string{"class"})
	Unauthorized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ukci_http_unauthorized_total",
		Help: "The total number of 401 responses observed by the interceptor.",
	})
)

// StatusClass buckets an HTTP status into "2xx".."5xx", or "error" for no response.
func StatusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "error"
	}
}
