// Package metrics provides Prometheus metrics for the roster pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Row accounting - what happened to each input row
	rowsRead        prometheus.Counter
	rowsSkipped     prometheus.Counter
	rowsRepaired    prometheus.Counter
	mergeDuplicates prometheus.Counter

	// Enrichment accounting
	urlsFilled prometheus.Counter

	// Acquisition
	fetchErrors   prometheus.Counter
	fetchDuration prometheus.Histogram

	// Dataset scale
	rankedRecords prometheus.Gauge
	datasetRows   prometheus.Gauge

	// Stage timings
	stageDuration *prometheus.HistogramVec
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
		namespace:        "roster",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.rowsRead = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_read_total",
		Help:      "Total number of raw rows read from the source dataset",
	})

	m.rowsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_skipped_total",
		Help:      "Total number of rows dropped for lacking a resolvable name",
	})

	m.rowsRepaired = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_repaired_total",
		Help:      "Total number of column-split rows reconstructed by the repair pass",
	})

	m.mergeDuplicates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "merge_duplicates_total",
		Help:      "Total number of rows superseded by a better-rated row of the same name",
	})

	m.urlsFilled = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "urls_filled_total",
		Help:      "Total number of URL fields filled by the enrichment pass",
	})

	m.fetchErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_errors_total",
		Help:      "Total number of failed raw dataset downloads",
	})

	m.fetchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_duration_milliseconds",
		Help:      "Raw dataset download duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.rankedRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranked_records",
		Help:      "Number of records in the ranked output",
	})

	m.datasetRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_rows",
		Help:      "Number of rows in the dataset being enriched",
	})

	m.stageDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "stage_duration_milliseconds",
			Help:      "Pipeline stage duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"stage"},
	)
}

// Handler returns an HTTP handler exposing the global registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}

// RecordRowRead increments the rows read counter.
func RecordRowRead() {
	globalManager.rowsRead.Inc()
}

// RecordRowSkipped increments the skipped rows counter.
func RecordRowSkipped() {
	globalManager.rowsSkipped.Inc()
}

// RecordRowRepaired increments the repaired rows counter.
func RecordRowRepaired() {
	globalManager.rowsRepaired.Inc()
}

// RecordMergeDuplicate increments the superseded rows counter.
func RecordMergeDuplicate() {
	globalManager.mergeDuplicates.Inc()
}

// RecordURLFilled increments the filled URL fields counter.
func RecordURLFilled() {
	globalManager.urlsFilled.Inc()
}

// RecordFetchError increments the fetch errors counter.
func RecordFetchError() {
	globalManager.fetchErrors.Inc()
}

// RecordFetchDuration records a download duration in milliseconds.
func RecordFetchDuration(durationMs float64) {
	globalManager.fetchDuration.Observe(durationMs)
}

// UpdateRankedRecords sets the ranked output size.
func UpdateRankedRecords(count int) {
	globalManager.rankedRecords.Set(float64(count))
}

// UpdateDatasetRows sets the enrichment dataset size.
func UpdateDatasetRows(count int) {
	globalManager.datasetRows.Set(float64(count))
}

// RecordStageDuration records a pipeline stage duration in milliseconds.
func RecordStageDuration(stage string, durationMs float64) {
	globalManager.stageDuration.WithLabelValues(stage).Observe(durationMs)
}
