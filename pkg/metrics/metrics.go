package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks the duration of gRPC requests.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grpc_request_duration_seconds",
			Help:    "Time spent processing gRPC requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	// ActiveRequests tracks the number of active gRPC requests.
	ActiveRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "grpc_active_requests",
			Help: "Number of active gRPC requests",
		},
	)
)

// Init registers the package's collectors with the default registry.
func Init() {
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(ActiveRequests)
}
