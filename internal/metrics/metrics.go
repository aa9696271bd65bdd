// Package metrics exposes Prometheus instruments for the showcase service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "showcase"

// Metrics holds the service's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	SlideChanges   prometheus.Counter
	ViewRecomputes prometheus.Counter
	VisibleItems   prometheus.Gauge
	MatchedItems   prometheus.Gauge
	EnrichmentRuns *prometheus.CounterVec
	StreamClients  prometheus.Gauge
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SlideChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slide_changes_total",
			Help:      "Carousel slide changes, manual or automatic.",
		}),
		ViewRecomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_recomputes_total",
			Help:      "Gallery view recomputations.",
		}),
		VisibleItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "visible_items",
			Help:      "Items on the current gallery page.",
		}),
		MatchedItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "matched_items",
			Help:      "Items matching the current gallery filter and search.",
		}),
		EnrichmentRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichment_runs_total",
			Help:      "GitHub enrichment attempts by result.",
		}, []string{"result"}),
		StreamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stream_clients",
			Help:      "Connected WebSocket stream clients.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.SlideChanges,
		m.ViewRecomputes,
		m.VisibleItems,
		m.MatchedItems,
		m.EnrichmentRuns,
		m.StreamClients,
	)
	return m
}

// ObserveView records a recomputed gallery view.
func (m *Metrics) ObserveView(visible, matched int) {
	m.ViewRecomputes.Inc()
	m.VisibleItems.Set(float64(visible))
	m.MatchedItems.Set(float64(matched))
}

// ObserveEnrichment records an enrichment attempt. result is one of
// "ok", "skipped" or "error".
func (m *Metrics) ObserveEnrichment(result string) {
	m.EnrichmentRuns.WithLabelValues(result).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
