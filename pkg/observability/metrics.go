package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics served at /metrics on every agent facade.
var (
	RunRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "codingbuddy",
		Name:      "run_requests_total",
		Help:      "Agent run requests, by agent and outcome.",
	}, []string{"agent", "status"})

	ToolExecutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "codingbuddy",
		Name:      "tool_executions_total",
		Help:      "Tool executions, by tool and outcome.",
	}, []string{"tool", "status"})

	ToolExecutionSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "codingbuddy",
		Name:      "tool_execution_seconds",
		Help:      "Tool execution latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"tool"})
)
