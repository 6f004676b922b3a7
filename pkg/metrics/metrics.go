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

	// PlansTotal tracks trip plan runs by outcome.
	PlansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trip_plans_total",
			Help: "Total trip planning runs",
		},
		[]string{"mode", "status"},
	)

	// PlanDuration tracks end-to-end trip pipeline duration.
	PlanDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trip_plan_duration_seconds",
			Help:    "End-to-end trip pipeline duration",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"mode", "status"},
	)

	// LLMCallDuration tracks itinerary generation duration.
	LLMCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_call_duration_seconds",
			Help:    "Itinerary generation call duration",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 45, 60, 90, 120},
		},
		[]string{"provider", "model", "status"},
	)

	// LLMTokensTotal tracks total LLM tokens processed.
	LLMTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tokens_total",
			Help: "Total LLM tokens processed",
		},
		[]string{"model", "direction"},
	)

	// ToolExecutionsTotal tracks Arcade tool executions by outcome.
	ToolExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_executions_total",
			Help: "Total external tool executions",
		},
		[]string{"tool", "status"},
	)

	// AuthWaitDuration tracks time spent waiting for tool authorization.
	AuthWaitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tool_auth_wait_seconds",
			Help:    "Time spent waiting for tool authorization",
			Buckets: []float64{.1, .5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"tool", "status"},
	)

	// ItineraryEvents tracks the number of events per generated itinerary.
	ItineraryEvents = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "itinerary_events",
			Help:    "Events per generated itinerary",
			Buckets: []float64{1, 3, 5, 10, 15, 20, 30, 50},
		},
	)

	// SSEConnectionsActive tracks active SSE connections.
	SSEConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sse_connections_active",
			Help: "Number of active SSE connections",
		},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordPlan records metrics for a trip pipeline run.
func RecordPlan(mode, status string, duration float64) {
	PlansTotal.WithLabelValues(mode, status).Inc()
	PlanDuration.WithLabelValues(mode, status).Observe(duration)
}

// RecordLLMCall records metrics for an itinerary generation call.
func RecordLLMCall(provider, model, status string, duration float64, tokensIn, tokensOut int) {
	LLMCallDuration.WithLabelValues(provider, model, status).Observe(duration)
	LLMTokensTotal.WithLabelValues(model, "in").Add(float64(tokensIn))
	LLMTokensTotal.WithLabelValues(model, "out").Add(float64(tokensOut))
}

// RecordToolExecution records a tool execution outcome.
func RecordToolExecution(tool, status string) {
	ToolExecutionsTotal.WithLabelValues(tool, status).Inc()
}

// RecordAuthWait records time spent in the authorization wait phase.
func RecordAuthWait(tool, status string, duration float64) {
	AuthWaitDuration.WithLabelValues(tool, status).Observe(duration)
}

// IncrementSSEConnections increments the active SSE connection count.
func IncrementSSEConnections() {
	SSEConnectionsActive.Inc()
}

// DecrementSSEConnections decrements the active SSE connection count.
func DecrementSSEConnections() {
	SSEConnectionsActive.Dec()
}
