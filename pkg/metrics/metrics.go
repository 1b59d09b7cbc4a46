// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// WebhookMessagesTotal tracks inbound conversation messages.
	WebhookMessagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_messages_total",
			Help: "Total inbound webhook messages processed",
		},
	)

	// LLMRequestDuration tracks LLM completion duration.
	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "LLM completion duration",
			Buckets: []float64{.5, 1, 2, 5, 10, 20, 30, 45, 60},
		},
		[]string{"model", "status"},
	)

	// LLMTokensTotal tracks total LLM tokens processed.
	LLMTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tokens_total",
			Help: "Total LLM tokens processed",
		},
		[]string{"model", "direction"},
	)

	// DirectivesTotal tracks directives detected in model replies.
	DirectivesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directives_total",
			Help: "Directives detected in model replies",
		},
		[]string{"kind"},
	)

	// LeadsTotal tracks captured leads.
	LeadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_total",
			Help: "Total leads captured",
		},
	)

	// AppointmentsTotal tracks calendar appointment outcomes.
	AppointmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appointments_total",
			Help: "Calendar appointments by outcome",
		},
		[]string{"status"},
	)

	// ExtractionsTotal tracks property-sheet extraction outcomes.
	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extractions_total",
			Help: "Property sheet extractions by outcome",
		},
		[]string{"status"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordLLMCall records metrics for an LLM completion.
func RecordLLMCall(model, status string, duration float64, tokensIn, tokensOut int) {
	LLMRequestDuration.WithLabelValues(model, status).Observe(duration)
	LLMTokensTotal.WithLabelValues(model, "in").Add(float64(tokensIn))
	LLMTokensTotal.WithLabelValues(model, "out").Add(float64(tokensOut))
}
