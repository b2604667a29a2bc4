// Package metrics exposes the Prometheus scrape endpoint and process-level
// build information. Domain metrics live with their domains.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns the /metrics scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RegisterBuildInfo publishes the running version as a constant gauge.
func RegisterBuildInfo(version string) {
	promauto.NewGauge(prometheus.GaugeOpts{
		Name:        "ledger_build_info",
		Help:        "Build information for the running ledger server",
		ConstLabels: prometheus.Labels{"version": version},
	}).Set(1)
}
