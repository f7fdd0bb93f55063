// Package metrics provides Prometheus metrics for consent report runs.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the report pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Pipeline throughput
	participantsProcessed prometheus.Counter
	rowsEmitted           prometheus.Counter

	// Reconciliation outcomes
	signedRows            prometheus.Counter
	needsVerificationRows prometheus.Counter
	notApplicableRows     prometheus.Counter

	// Data quality
	dateParseFailures   prometheus.Counter
	duplicateSignatures prometheus.Counter
	skippedInputRows    prometheus.Counter

	// Run timing
	runDuration prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "icfcheck",
		subsystem:        "report",
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

	m.participantsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "participants_processed_total",
		Help:      "Total number of participants reconciled",
	})

	m.rowsEmitted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_emitted_total",
		Help:      "Total number of report rows emitted",
	})

	m.signedRows = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_signed_total",
		Help:      "Report rows where a matching signature was found",
	})

	m.needsVerificationRows = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_needs_verification_total",
		Help:      "Report rows flagged for manual verification (CHECK)",
	})

	m.notApplicableRows = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_not_applicable_total",
		Help:      "Report rows where the version did not apply",
	})

	m.dateParseFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "date_parse_failures_total",
		Help:      "Date cells that could not be parsed and were treated as absent",
	})

	m.duplicateSignatures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_signature_rows_total",
		Help:      "Exact duplicate signature rows dropped during normalization",
	})

	m.skippedInputRows = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "skipped_input_rows_total",
		Help:      "Input rows skipped for missing required cells",
	})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_seconds",
		Help:      "Histogram of end-to-end report build duration in seconds",
		Buckets:   m.histogramBuckets,
	})
}

// Summary gathers the manager's registry and returns counter and gauge values
// keyed by fully qualified metric name. Used to log an end-of-run digest.
func (m *Manager) Summary() (map[string]float64, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGatherFailed, err)
	}

	out := make(map[string]float64, len(families))
	for _, fam := range families {
		for _, metric := range fam.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				out[fam.GetName()] += metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				out[fam.GetName()] += metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				out[fam.GetName()+"_count"] += float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}
	return out, nil
}

// Package-level recording helpers against the global manager.

func RecordParticipantProcessed() { globalManager.participantsProcessed.Inc() }

func RecordRowsEmitted(n int) { globalManager.rowsEmitted.Add(float64(n)) }

func RecordSignedRow() { globalManager.signedRows.Inc() }

func RecordNeedsVerificationRow() { globalManager.needsVerificationRows.Inc() }

func RecordNotApplicableRow() { globalManager.notApplicableRows.Inc() }

func RecordDateParseFailures(n int) { globalManager.dateParseFailures.Add(float64(n)) }

func RecordDuplicateSignatures(n int) { globalManager.duplicateSignatures.Add(float64(n)) }

func RecordSkippedInputRows(n int) { globalManager.skippedInputRows.Add(float64(n)) }

func RecordRunDuration(seconds float64) { globalManager.runDuration.Observe(seconds) }

// Summary exposes the global manager's end-of-run digest.
func Summary() (map[string]float64, error) { return globalManager.Summary() }
