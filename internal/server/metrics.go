package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Analysis metrics
	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_optimizer_analyses_total",
			Help: "Total number of optimization requests",
		},
		[]string{"status"},
	)

	analysisErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_optimizer_analysis_errors_total",
			Help: "Total number of analysis errors by kind",
		},
		[]string{"kind"},
	)

	analysisTrials = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "portfolio_optimizer_analysis_trials",
			Help:    "Distribution of simulation trial counts",
			Buckets: prometheus.ExponentialBuckets(100, 4, 8),
		},
	)

	analysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "portfolio_optimizer_analysis_duration_seconds",
			Help:    "Distribution of analysis durations",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	// Register metrics
	prometheus.MustRegister(analysesTotal)
	prometheus.MustRegister(analysisErrors)
	prometheus.MustRegister(analysisTrials)
	prometheus.MustRegister(analysisDuration)
}

// MetricsHandler serves the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// recordAnalysis records a completed optimization request.
func recordAnalysis(status string, trials int, elapsed time.Duration) {
	analysesTotal.WithLabelValues(status).Inc()
	if trials > 0 {
		analysisTrials.Observe(float64(trials))
	}
	analysisDuration.Observe(elapsed.Seconds())
}

// recordErrorKind records an analysis error metric.
func recordErrorKind(kind string) {
	analysisErrors.WithLabelValues(kind).Inc()
}
