package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skycast_upstream_calls_total",
			Help: "Total OpenWeather API calls",
		},
		[]string{"endpoint", "status"},
	)

	UpstreamLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skycast_upstream_latency_seconds",
			Help:    "OpenWeather API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	ChatTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skycast_chat_turns_total",
			Help: "Total chat turns by agent flavor and outcome",
		},
		[]string{"flavor", "outcome"},
	)

	GuardrailRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skycast_guardrail_rejections_total",
			Help: "Chat inputs rejected as not weather-related",
		},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skycast_rate_limited_requests_total",
			Help: "Requests rejected by the inbound rate limiter",
		},
		[]string{"group"},
	)
)
