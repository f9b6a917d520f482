package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMetricsHandler exposes the Prometheus scrape endpoint. The OTel
// Prometheus reader registers on the default registry, so this picks up the
// saga and step metrics without extra wiring.
func NewMetricsHandler() http.Handler {
	return promhttp.Handler()
}
