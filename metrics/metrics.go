// Package metrics provides Prometheus observability metrics for the call analyzer.
// It covers parsing, analysis results and the HTTP upload surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// ANALYSIS METRICS - Call Volume Visibility
// =============================================================================

// CallsByShift tracks raw call counts per shift for the most recent analysis.
// Shifts overlap, so the sum exceeds the number of calls.
var CallsByShift = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "analyzer",
	Name:      "calls_by_shift",
	Help:      "Calls counted per shift in the most recent analysis",
}, []string{"shift"})

// NonRepetitiveCallsByShift tracks the de-duplicated share of calls per shift.
var NonRepetitiveCallsByShift = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "analyzer",
	Name:      "non_repetitive_calls_by_shift",
	Help:      "Fractional call load per shift after removing overlap double counting",
}, []string{"shift"})

// CallsPerResource tracks the load per resource in each staffing bucket.
// High values point at understaffed windows.
var CallsPerResource = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "analyzer",
	Name:      "calls_per_resource",
	Help:      "Calls per resource in each staffing bucket in the most recent analysis",
}, []string{"bucket"})

// AnalyzerRunsTotal counts completed analyses.
var AnalyzerRunsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "analyzer",
	Name:      "runs_total",
	Help:      "Total number of completed analyses",
})

// AnalyzerDurationSeconds tracks time to aggregate a parsed record set.
var AnalyzerDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "analyzer",
	Name:      "duration_seconds",
	Help:      "Time taken to aggregate parsed call records",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
})

// =============================================================================
// PARSER METRICS - Input Health
// =============================================================================

// ParserErrorsTotal tracks parse errors by error type.
var ParserErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "errors_total",
	Help:      "Total parse errors by error type",
}, []string{"error_type"})

// ParserRecordsTotal tracks total records successfully parsed.
var ParserRecordsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "records_total",
	Help:      "Total CSV records successfully parsed",
})

// ParserDurationSeconds tracks time to parse input files.
var ParserDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "parser",
	Name:      "duration_seconds",
	Help:      "Time taken to parse CSV input file",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
})

// =============================================================================
// SERVER METRICS
// =============================================================================

// UploadsTotal counts upload-and-analyze requests by outcome.
var UploadsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "server",
	Name:      "uploads_total",
	Help:      "Upload-and-analyze requests by outcome",
}, []string{"status"})

// StoredResults tracks how many analyses the result cache holds.
var StoredResults = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "store",
	Name:      "results",
	Help:      "Number of analysis results held in memory",
})

// =============================================================================
// Helper Functions
// =============================================================================

// ResetAnalysisGauges clears the per-run gauges before publishing a new analysis.
func ResetAnalysisGauges() {
	CallsByShift.Reset()
	NonRepetitiveCallsByShift.Reset()
	CallsPerResource.Reset()
}
