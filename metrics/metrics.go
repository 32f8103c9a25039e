// Package metrics exposes Prometheus instrumentation for the HTTP
// surface and the upstream fetchers.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors. A single instance is created in main
// and threaded through the middleware and fetchers.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	upstreamFetches *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec

	reactionsToggled prometheus.Counter
	votesCast        prometheus.Counter
	takesCreated     prometheus.Counter
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "commission_http_requests_total",
			Help: "HTTP requests by route, method, and status code.",
		}, []string{"route", "method", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "commission_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		upstreamFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "commission_upstream_fetches_total",
			Help: "Upstream fetch attempts by source and outcome.",
		}, []string{"source", "outcome"}),
		cacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "commission_cache_requests_total",
			Help: "Cache lookups by key class and result.",
		}, []string{"class", "result"}),
		reactionsToggled: factory.NewCounter(prometheus.CounterOpts{
			Name: "commission_reactions_toggled_total",
			Help: "Reaction toggles applied.",
		}),
		votesCast: factory.NewCounter(prometheus.CounterOpts{
			Name: "commission_votes_cast_total",
			Help: "Vote toggles applied.",
		}),
		takesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "commission_takes_created_total",
			Help: "Hot takes posted.",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(route, method, status string, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(route, method, status).Inc()
	m.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveFetch records one upstream fetch with outcome "ok" or "error".
func (m *Metrics) ObserveFetch(source string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.upstreamFetches.WithLabelValues(source, outcome).Inc()
}

// ObserveCache records one cache lookup with result "hit" or "miss".
func (m *Metrics) ObserveCache(class string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheHits.WithLabelValues(class, result).Inc()
}

func (m *Metrics) ReactionToggled() { m.reactionsToggled.Inc() }
func (m *Metrics) VoteCast()        { m.votesCast.Inc() }
func (m *Metrics) TakeCreated()     { m.takesCreated.Inc() }
