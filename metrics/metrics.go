package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spacetact_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "spacetact_http_request_duration_seconds",
			Help: "HTTP request duration in seconds",
		},
		[]string{"method", "endpoint"},
	)

	TurnCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spacetact_chat_turns_total",
			Help: "Chat turns by outcome (plain, menu, schedule, config_error, transient_error)",
		},
		[]string{"outcome"},
	)

	ModelLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "spacetact_model_latency_seconds",
			Help: "Round trip of one model turn in seconds",
		},
	)

	ActiveModelSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "spacetact_active_model_sessions",
			Help: "Number of live model chat sessions held by the gateway",
		},
	)

	LeadForwards = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spacetact_lead_forwards_total",
			Help: "Lead webhook deliveries by result",
		},
		[]string{"result"},
	)

	SafetyRewrites = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spacetact_safety_rewrites_total",
			Help: "Model replies rewritten by the output safety filter",
		},
	)
)
