package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rideshare", Name: "store_operations_total", Help: "Record store operations by store, operation and outcome"},
		[]string{"store", "operation", "outcome"},
	)
	RideRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rideshare", Name: "ride_requests_total", Help: "Ride requests by outcome"},
		[]string{"outcome"},
	)
	EventPublishFailures = promauto.NewCounter(prometheus.CounterOpts{Namespace: "rideshare", Name: "event_publish_failures_total", Help: "Change events that could not be published"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rideshare", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rideshare",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// ObserveStoreOp counts one store operation. A nil err is recorded as "ok".
func ObserveStoreOp(store, operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	StoreOperationsTotal.WithLabelValues(store, operation, outcome).Inc()
}
