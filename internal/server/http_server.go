package server

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pipestream/registryhub/internal/readiness"
)

// MetricsHandler builds the mux served on the metrics port: Prometheus
// scrape endpoint plus a readiness probe for orchestrators/load balancers.
func MetricsHandler(checker *readiness.Checker) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		report := checker.Run(r.Context())
		w.Header().Set("Content-Type", "application/json")
		if report.Status == readiness.StatusDown {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(report)
	})
	return mux
}
