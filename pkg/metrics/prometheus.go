// Package metrics provides Prometheus metrics for the consist resolver.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the resolver.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Resolution metrics - the heart of a run
	entriesProcessed  prometheus.Counter
	entriesResolved   prometheus.Counter
	entriesChanged    prometheus.Counter
	entriesUnresolved prometheus.Counter
	phaseMatches      *prometheus.CounterVec

	// Index metrics - library composition
	indexEngines prometheus.Gauge
	indexWagons  prometheus.Gauge

	// Run metrics - operational timings
	workerCount        prometheus.Gauge
	scanDuration       prometheus.Histogram
	resolutionDuration prometheus.Histogram
	filesModified      prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "consistfix",
		subsystem:        "resolver",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.entriesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "entries_processed_total",
		Help:      "Total number of consist entries processed",
	})

	m.entriesResolved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "entries_resolved_total",
		Help:      "Total number of entries matched to a library asset",
	})

	m.entriesChanged = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "entries_changed_total",
		Help:      "Total number of entries whose asset reference was rewritten",
	})

	m.entriesUnresolved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "entries_unresolved_total",
		Help:      "Total number of entries with no acceptable match",
	})

	m.phaseMatches = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "phase_matches_total",
			Help:      "Resolution outcomes by cascade phase",
		},
		[]string{"phase"},
	)

	m.indexEngines = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "index_engines",
		Help:      "Number of engine assets in the index",
	})

	m.indexWagons = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "index_wagons",
		Help:      "Number of wagon assets in the index",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Number of resolution workers",
	})

	m.scanDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scan_duration_seconds",
		Help:      "Trainset scan duration in seconds",
		Buckets:   m.histogramBuckets,
	})

	m.resolutionDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "resolution_duration_seconds",
		Help:      "Full resolution run duration in seconds",
		Buckets:   m.histogramBuckets,
	})

	m.filesModified = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "files_modified_total",
		Help:      "Total number of consist files rewritten",
	})
}

// RecordEntryProcessed increments the processed entries counter.
func RecordEntryProcessed() {
	globalManager.entriesProcessed.Inc()
}

// RecordEntryResolved increments the resolved entries counter.
func RecordEntryResolved() {
	globalManager.entriesResolved.Inc()
}

// RecordEntryChanged increments the changed entries counter.
func RecordEntryChanged() {
	globalManager.entriesChanged.Inc()
}

// RecordEntryUnresolved increments the unresolved entries counter.
func RecordEntryUnresolved() {
	globalManager.entriesUnresolved.Inc()
}

// RecordPhaseMatch records a resolution outcome for a cascade phase.
func RecordPhaseMatch(phase string) {
	globalManager.phaseMatches.WithLabelValues(phase).Inc()
}

// UpdateIndexSize sets the index composition gauges.
func UpdateIndexSize(engines, wagons int) {
	globalManager.indexEngines.Set(float64(engines))
	globalManager.indexWagons.Set(float64(wagons))
}

// UpdateWorkerCount sets the resolution worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// ObserveScanDuration records a trainset scan duration in seconds.
func ObserveScanDuration(seconds float64) {
	globalManager.scanDuration.Observe(seconds)
}

// ObserveResolutionDuration records a resolution run duration in seconds.
func ObserveResolutionDuration(seconds float64) {
	globalManager.resolutionDuration.Observe(seconds)
}

// RecordFilesModified adds to the rewritten files counter.
func RecordFilesModified(count int) {
	globalManager.filesModified.Add(float64(count))
}

// Handler returns an HTTP handler exposing the custom registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
