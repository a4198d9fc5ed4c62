// Package metrics exposes Prometheus collectors for the portfolio API.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	assessmentsTotal          *prometheus.CounterVec
	assessmentDurationSeconds *prometheus.HistogramVec
	resolverFailuresTotal     *prometheus.CounterVec
	chatRequestsTotal         *prometheus.CounterVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		assessmentsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_assessments_total",
				Help: "Total number of fit-assessment requests, labeled by input type and outcome.",
			},
			[]string{"input_type", "outcome"},
		)

		assessmentDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portfolio_assessment_duration_seconds",
				Help:    "Histogram of end-to-end assessment latencies, labeled by outcome.",
				Buckets: []float64{0.05, 0.25, 1, 2.5, 5, 10, 30},
			},
			[]string{"outcome"},
		)

		resolverFailuresTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_resolver_failures_total",
				Help: "Total job-description resolution failures, labeled by failure class.",
			},
			[]string{"class"},
		)

		chatRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_chat_requests_total",
				Help: "Total chat requests, labeled by status.",
			},
			[]string{"status"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveAssessment increments the assessment counters.
func ObserveAssessment(inputType, outcome string, duration time.Duration) {
	assessmentsTotal.WithLabelValues(inputType, outcome).Inc()
	assessmentDurationSeconds.WithLabelValues(outcome).Observe(duration.Seconds())
}

// ObserveResolverFailure increments the per-class resolver failure counter.
func ObserveResolverFailure(class string) {
	resolverFailuresTotal.WithLabelValues(class).Inc()
}

// ObserveChat increments the chat counter for the given status.
func ObserveChat(status string) {
	chatRequestsTotal.WithLabelValues(status).Inc()
}
