// Package metrics exposes Prometheus counters for fetches and the viewer.
package metrics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for apodview.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   prometheus.Counter
	failuresTotal   prometheus.Counter
	staleTotal      prometheus.Counter
	entriesRendered prometheus.Counter
	viewerOpens     *prometheus.CounterVec
	requestSeconds  prometheus.Histogram
}

// New creates and registers the collectors on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "apod_requests_total",
		Help: "Total number of APOD range requests issued",
	})
	failuresTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "apod_request_failures_total",
		Help: "Total number of APOD range requests that failed",
	})
	staleTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "apod_stale_responses_total",
		Help: "Responses dropped because a newer request was submitted",
	})
	entriesRendered := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "apod_gallery_entries_rendered_total",
		Help: "Total number of gallery entries rendered",
	})
	viewerOpens := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "apod_viewer_opens_total",
		Help: "Viewer opens by media kind",
	}, []string{"kind"})
	requestSeconds := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "apod_request_duration_seconds",
		Help:    "Latency of APOD range requests",
		Buckets: prometheus.DefBuckets,
	})

	registry.MustRegister(
		requestsTotal,
		failuresTotal,
		staleTotal,
		entriesRendered,
		viewerOpens,
		requestSeconds,
	)

	return &Metrics{
		registry:        registry,
		requestsTotal:   requestsTotal,
		failuresTotal:   failuresTotal,
		staleTotal:      staleTotal,
		entriesRendered: entriesRendered,
		viewerOpens:     viewerOpens,
		requestSeconds:  requestSeconds,
	}
}

// IncRequests increments the request counter.
func (m *Metrics) IncRequests() {
	if m == nil {
		return
	}
	m.requestsTotal.Inc()
}

// IncFailures increments the failed request counter.
func (m *Metrics) IncFailures() {
	if m == nil {
		return
	}
	m.failuresTotal.Inc()
}

// IncStale increments the dropped stale response counter.
func (m *Metrics) IncStale() {
	if m == nil {
		return
	}
	m.staleTotal.Inc()
}

// AddEntries adds n rendered gallery entries.
func (m *Metrics) AddEntries(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.entriesRendered.Add(float64(n))
}

// IncViewerOpens counts a viewer open for the given media kind.
func (m *Metrics) IncViewerOpens(kind string) {
	if m == nil {
		return
	}
	m.viewerOpens.WithLabelValues(kind).Inc()
}

// ObserveRequest records a request latency in seconds.
func (m *Metrics) ObserveRequest(seconds float64) {
	if m == nil {
		return
	}
	m.requestSeconds.Observe(seconds)
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an http.Handler that serves Prometheus metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Router serves /metrics and a /healthz probe.
func (m *Metrics) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	return r
}
