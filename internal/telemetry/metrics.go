// Package telemetry exposes Prometheus metrics for the weight panel and the
// reveal stream.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Zachkp/portfolio/internal/fitness"
)

const (
	// MetricsNamespace is the namespace for all site metrics.
	MetricsNamespace = "portfolio"
)

// Metrics holds all Prometheus metrics for the site.
type Metrics struct {
	registry *prometheus.Registry

	// Weight panel
	FetchesIssued     *prometheus.CounterVec
	FetchesResolved   *prometheus.CounterVec
	FetchDuration     *prometheus.HistogramVec
	IntegrityWarnings *prometheus.CounterVec
	ActiveVisitors    prometheus.Gauge
	VisitorsEvicted   prometheus.Counter

	// Reveal stream
	RevealStreamsActive prometheus.Gauge
	RevealFramesTotal   prometheus.Counter

	// HTTP
	RequestsTotal *prometheus.CounterVec
}

// New creates a Metrics on its own registry, including Go runtime and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)
	m := &Metrics{registry: reg}
	m.initFitnessMetrics(factory)
	m.initRevealMetrics(factory)
	m.initHTTPMetrics(factory)
	return m
}

func (m *Metrics) initFitnessMetrics(factory promauto.Factory) {
	m.FetchesIssued = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: "fitness",
			Name:      "fetches_issued_total",
			Help:      "Weight fetches issued, by window in days",
		},
		[]string{"window"},
	)

	m.FetchesResolved = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: "fitness",
			Name:      "fetches_resolved_total",
			Help:      "Weight fetches resolved, by window and outcome",
		},
		[]string{"window", "outcome"},
	)

	m.FetchDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Subsystem: "fitness",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of weight fetches in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~20s
		},
		[]string{"window"},
	)

	m.IntegrityWarnings = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: "fitness",
			Name:      "integrity_warnings_total",
			Help:      "Responses whose samples were not ascending by date",
		},
		[]string{"window"},
	)

	m.ActiveVisitors = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Subsystem: "fitness",
			Name:      "active_visitors",
			Help:      "Visitors with a live weight panel controller",
		},
	)

	m.VisitorsEvicted = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: "fitness",
			Name:      "visitors_evicted_total",
			Help:      "Idle visitor controllers closed by the sweeper",
		},
	)
}

func (m *Metrics) initRevealMetrics(factory promauto.Factory) {
	m.RevealStreamsActive = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Subsystem: "reveal",
			Name:      "streams_active",
			Help:      "Reveal streams currently open",
		},
	)

	m.RevealFramesTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: "reveal",
			Name:      "frames_total",
			Help:      "Reveal frames sent to clients",
		},
	)
}

func (m *Metrics) initHTTPMetrics(factory promauto.Factory) {
	m.RequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func windowLabel(w fitness.Window) string {
	return strconv.Itoa(w.Days())
}

// FetchIssued implements fitness.Recorder.
func (m *Metrics) FetchIssued(w fitness.Window) {
	m.FetchesIssued.WithLabelValues(windowLabel(w)).Inc()
}

// FetchResolved implements fitness.Recorder. Directly delivered results
// carry no elapsed time and are left out of the histogram.
func (m *Metrics) FetchResolved(w fitness.Window, outcome fitness.Outcome, elapsed time.Duration) {
	m.FetchesResolved.WithLabelValues(windowLabel(w), outcome.String()).Inc()
	if elapsed > 0 {
		m.FetchDuration.WithLabelValues(windowLabel(w)).Observe(elapsed.Seconds())
	}
}

// IntegrityWarning implements fitness.Recorder.
func (m *Metrics) IntegrityWarning(w fitness.Window) {
	m.IntegrityWarnings.WithLabelValues(windowLabel(w)).Inc()
}

var _ fitness.Recorder = (*Metrics)(nil)
