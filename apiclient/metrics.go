package apiclient

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	backendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casa_backend_requests_total",
			Help: "Total number of requests sent to the backend API.",
		},
		[]string{"namespace", "method", "status"},
	)

	backendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "casa_backend_request_duration_seconds",
			Help:    "Backend API request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"namespace", "method", "status"},
	)

	registerOnce sync.Once
)

func registerMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(backendRequestsTotal, backendRequestDuration)
	})
}

func observe(namespace, method, status string, d time.Duration) {
	backendRequestsTotal.WithLabelValues(namespace, method, status).Inc()
	backendRequestDuration.WithLabelValues(namespace, method, status).Observe(d.Seconds())
}
