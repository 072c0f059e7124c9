// Package metrics exposes prometheus instrumentation for parsing and
// building. Collectors are registered with the default registry on import.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MeKo-Tech/scancode/internal/version"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeBlank   = "blank"
)

var (
	// Candidate level metrics
	parseAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scancode_parse_attempts_total",
			Help: "Total number of format parse attempts",
		},
		[]string{"format", "outcome"},
	)

	// Payload level metrics
	parseTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scancode_parse_total",
			Help: "Total number of parsed payloads",
		},
		[]string{"outcome"}, // outcome: success, failure, blank
	)

	parseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scancode_parse_duration_seconds",
			Help:    "Payload parse duration in seconds",
			Buckets: []float64{.00001, .000025, .00005, .0001, .00025, .0005, .001, .0025, .005, .01},
		},
	)

	buildTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scancode_build_total",
			Help: "Total number of built payloads",
		},
		[]string{"format", "outcome"},
	)

	buildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scancode_build_info",
			Help: "Build information of the scancode library",
		},
		[]string{"version", "commit"},
	)
)

func init() {
	buildInfo.WithLabelValues(version.Version, version.GitCommit).Set(1)
}

func outcome(ok bool) string {
	if ok {
		return OutcomeSuccess
	}
	return OutcomeFailure
}

// RecordAttempt counts one candidate format tried for a payload.
func RecordAttempt(format string, ok bool) {
	parseAttemptsTotal.WithLabelValues(format, outcome(ok)).Inc()
}

// RecordParse counts a finished payload parse and observes its duration.
func RecordParse(result string, d time.Duration) {
	parseTotal.WithLabelValues(result).Inc()
	parseDuration.Observe(d.Seconds())
}

// RecordBuild counts one build of format.
func RecordBuild(format string, err error) {
	buildTotal.WithLabelValues(format, outcome(err == nil)).Inc()
}
