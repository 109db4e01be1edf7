// Package metrics holds the Prometheus instrumentation for the service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "indicator_service"

// Outcome labels
const (
	OutcomeOK          = "ok"
	OutcomeClientError = "client_error"
	OutcomeError       = "error"
)

// Metrics holds every collector the service exports. Each instance owns its
// registry, so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	IndicatorRequests   *prometheus.CounterVec   // labels: indicator, shape, outcome
	IndicatorComputeDur *prometheus.HistogramVec // labels: shape
	StatsRequests       *prometheus.CounterVec   // labels: outcome
	StatsComputeDur     prometheus.Histogram
	UnavailableMetrics  *prometheus.CounterVec // labels: metric
	SeriesLength        prometheus.Histogram

	HostCPUPercent    prometheus.Gauge
	HostMemoryPercent prometheus.Gauge
}

// New creates and registers all collectors on a fresh registry.
func New() *Metrics {
	computeBuckets := []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}

	m := &Metrics{
		registry: prometheus.NewRegistry(),

		IndicatorRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "indicator_requests_total",
			Help:      "Indicator requests by indicator, payload shape and outcome",
		}, []string{"indicator", "shape", "outcome"}),
		IndicatorComputeDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "indicator_compute_duration_seconds",
			Help:      "Indicator computation latency by payload shape",
			Buckets:   computeBuckets,
		}, []string{"shape"}),
		StatsRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quantstats_requests_total",
			Help:      "Portfolio statistics requests by outcome",
		}, []string{"outcome"}),
		StatsComputeDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quantstats_compute_duration_seconds",
			Help:      "Statistic battery latency",
			Buckets:   computeBuckets,
		}),
		UnavailableMetrics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quantstats_unavailable_total",
			Help:      "Statistics reported as null, by metric",
		}, []string{"metric"}),
		SeriesLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "series_length",
			Help:      "Length of input series",
			Buckets:   prometheus.ExponentialBuckets(2, 4, 9),
		}),

		HostCPUPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "host_cpu_percent",
			Help:      "Host CPU utilisation from the latest sample",
		}),
		HostMemoryPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "host_memory_percent",
			Help:      "Host memory utilisation from the latest sample",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.IndicatorRequests,
		m.IndicatorComputeDur,
		m.StatsRequests,
		m.StatsComputeDur,
		m.UnavailableMetrics,
		m.SeriesLength,
		m.HostCPUPercent,
		m.HostMemoryPercent,
	)

	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveIndicator records one indicator request.
func (m *Metrics) ObserveIndicator(indicator, shape, outcome string, length int, d time.Duration) {
	m.IndicatorRequests.WithLabelValues(indicator, shape, outcome).Inc()
	if outcome == OutcomeOK {
		m.IndicatorComputeDur.WithLabelValues(shape).Observe(d.Seconds())
		m.SeriesLength.Observe(float64(length))
	}
}

// ObserveStats records one statistics request and the metrics that came back null.
func (m *Metrics) ObserveStats(outcome string, length int, unavailable []string, d time.Duration) {
	m.StatsRequests.WithLabelValues(outcome).Inc()
	if outcome != OutcomeOK {
		return
	}
	m.StatsComputeDur.Observe(d.Seconds())
	m.SeriesLength.Observe(float64(length))
	for _, name := range unavailable {
		m.UnavailableMetrics.WithLabelValues(name).Inc()
	}
}
