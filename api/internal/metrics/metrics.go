// Package metrics provides Prometheus metrics for the lecture API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts API requests by route and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lectures",
			Name:      "http_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures API request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lectures",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// GenerationsTotal counts lecture generations by engine and outcome.
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lectures",
			Name:      "generations_total",
			Help:      "Total number of lecture generation attempts",
		},
		[]string{"engine", "grade", "status"},
	)

	// GenerationDuration measures time spent waiting on the model.
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lectures",
			Name:      "generation_duration_seconds",
			Help:      "Duration of lecture generation calls in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"engine"},
	)

	// ValidationFailuresTotal counts rejected requests by reason.
	ValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lectures",
			Name:      "validation_failures_total",
			Help:      "Total number of requests rejected by validation",
		},
		[]string{"reason"},
	)
)

// RecordRequest records one served API request.
func RecordRequest(method, route, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration)
}

// RecordGeneration records one lecture generation call.
func RecordGeneration(engine, grade, status string, duration float64) {
	GenerationsTotal.WithLabelValues(engine, grade, status).Inc()
	GenerationDuration.WithLabelValues(engine).Observe(duration)
}

// RecordValidationFailure records a rejected request.
func RecordValidationFailure(reason string) {
	ValidationFailuresTotal.WithLabelValues(reason).Inc()
}
