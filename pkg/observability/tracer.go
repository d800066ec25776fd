// Package observability holds the tracing and metrics plumbing shared by the
// agent processes and the tool server. Tracing goes through the global otel
// provider, which stays a no-op unless the host process installs an SDK.
package observability

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Span and attribute names used across the processes.
const (
	AttrToolName  = "tool.name"
	AttrAgentName = "agent.name"
	AttrModelName = "llm.model"

	SpanAgentRun      = "agent.run"
	SpanModelRequest  = "agent.model_request"
	SpanToolExecution = "agent.tool_execution"
	SpanSourceSearch  = "source.search"
)

// GetTracer returns a tracer from the global provider.
func GetTracer(name string) trace.Tracer {
	return otel.Tracer(name)
}
