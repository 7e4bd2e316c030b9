// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_lookup_searches_total",
			Help: "Completed place searches by outcome.",
		},
		[]string{"outcome"},
	)

	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weather_lookup_upstream_request_seconds",
			Help:    "Latency of Open-Meteo requests by upstream and status class.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"upstream", "status"},
	)
)

func init() {
	prometheus.MustRegister(SearchesTotal, UpstreamDuration)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
