// Package metrics defines the Prometheus collectors exported by the serve
// command and the handler that exposes them for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the search server.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	SearchesTotal       *prometheus.CounterVec
	SearchLatency       prometheus.Histogram
	SearchResultsCount  prometheus.Histogram

	registry *prometheus.Registry
}

// New creates all collectors and registers them on a fresh registry, so
// multiple instances can coexist in one process.
func New() *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"method", "path"},
		),
		SearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "searches_total",
				Help: "Total search queries by outcome (hit, zero_result, error).",
			},
			[]string{"outcome"},
		),
		SearchLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_latency_seconds",
				Help:    "Search query latency in seconds.",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
			},
		),
		SearchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_results_count",
				Help:    "Number of results returned per search query.",
				Buckets: []float64{0, 1, 2, 5, 10},
			},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SearchesTotal,
		m.SearchLatency,
		m.SearchResultsCount,
	)
	return m
}

// Handler returns the Prometheus scrape HTTP handler for this instance's
// registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
