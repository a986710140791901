// Package metrics exposes Prometheus counters and histograms for the API.
//
// Every Metrics value owns its own registry, so several servers (tests
// included) can live in one process without colliding on registration.
package metrics

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream call outcomes recorded in UpstreamRequests.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeStatus   = "upstream_status"
	OutcomeError    = "error"
)

type Metrics struct {
	registry *prometheus.Registry

	Requests         *prometheus.CounterVec
	LatencyMS        *prometheus.HistogramVec
	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  prometheus.Histogram
}

// New creates and registers all collectors under the given service name.
func New(service string) *Metrics {
	subsystem := strings.ReplaceAll(service, "-", "_")
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "travelcard",
		Subsystem: subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"route", "method", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "travelcard",
		Subsystem: subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"route"})
	upstream := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "travelcard",
		Subsystem: subsystem,
		Name:      "upstream_requests_total",
		Help:      "Travel card lookups sent to the transit API, by outcome.",
	}, []string{"outcome"})
	upstreamLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "travelcard",
		Subsystem: subsystem,
		Name:      "upstream_request_duration_ms",
		Help:      "Transit API call latency in milliseconds.",
		Buckets:   []float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})

	registry.MustRegister(
		requests,
		latency,
		upstream,
		upstreamLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry:         registry,
		Requests:         requests,
		LatencyMS:        latency,
		UpstreamRequests: upstream,
		UpstreamLatency:  upstreamLatency,
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
