package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/felixgeelhaar/treecheck/internal/structure"
)

// Metrics holds all Prometheus metrics for treecheck
type Metrics struct {
	// Validation metrics
	Validations        *prometheus.CounterVec
	ValidationDuration prometheus.Histogram
	Score              prometheus.Histogram
	Issues             *prometheus.CounterVec
	EngineFailures     prometheus.Counter

	// Input size
	Nodes prometheus.Histogram
	Depth prometheus.Histogram

	// Auto-fix metrics
	Fixes *prometheus.CounterVec

	// Error metrics (by error code from structured errors)
	Errors *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		Validations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treecheck_validations_total",
				Help: "Total number of tree validations by gate outcome",
			},
			[]string{"outcome"},
		),
		ValidationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "treecheck_validation_duration_seconds",
				Help:    "Validation duration in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		Score: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "treecheck_score",
				Help:    "Quality score of validated trees",
				Buckets: prometheus.LinearBuckets(10, 10, 10),
			},
		),
		Issues: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treecheck_issues_total",
				Help: "Total number of issues reported by code and kind",
			},
			[]string{"code", "kind"},
		),
		EngineFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "treecheck_engine_failures_total",
				Help: "Total number of validations that returned the degraded result",
			},
		),
		Nodes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "treecheck_tree_nodes",
				Help:    "Number of nodes in validated trees",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		Depth: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "treecheck_tree_depth",
				Help:    "Depth of validated trees",
				Buckets: prometheus.LinearBuckets(1, 1, 10),
			},
		),
		Fixes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treecheck_fixes_total",
				Help: "Total number of automatic fixes applied by issue code",
			},
			[]string{"code"},
		),
		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treecheck_errors_total",
				Help: "Total number of errors by error code",
			},
			[]string{"error_code", "component"},
		),
	}
}

// RecordValidation records one engine run.
func (m *Metrics) RecordValidation(outcome string, result structure.Result, nodes int, elapsed time.Duration) {
	m.Validations.WithLabelValues(outcome).Inc()
	m.ValidationDuration.Observe(elapsed.Seconds())
	m.Nodes.Observe(float64(nodes))

	if result.Has(structure.CodeValidationError) {
		m.EngineFailures.Inc()
		return
	}

	m.Score.Observe(float64(result.Score))
	m.Depth.Observe(float64(result.Metrics.Depth))
	for _, issue := range result.Issues {
		m.Issues.WithLabelValues(string(issue.Code), string(issue.Kind)).Inc()
	}
}

// RecordFix counts one applied fix.
func (m *Metrics) RecordFix(code structure.Code) {
	m.Fixes.WithLabelValues(string(code)).Inc()
}

// RecordError counts a coded error raised by a component.
func (m *Metrics) RecordError(code, component string) {
	m.Errors.WithLabelValues(code, component).Inc()
}
