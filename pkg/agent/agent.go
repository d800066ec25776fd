package agent

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/RoboJunior/Coding-Buddy/pkg/llm"
	"github.com/RoboJunior/Coding-Buddy/pkg/observability"
	"github.com/RoboJunior/Coding-Buddy/pkg/protocol"
	"github.com/RoboJunior/Coding-Buddy/pkg/session"
	"github.com/RoboJunior/Coding-Buddy/pkg/tools"
)

// Agent binds an instructioned model, a tool registry, and a session store
// into one runnable service with a discoverable capability card.
type Agent struct {
	name     string
	appName  string
	card     protocol.AgentCard
	runner   *Runner
	sessions session.Service
}

// Config assembles an Agent.
type Config struct {
	// Name identifies the agent in its card, logs, and metrics.
	Name string

	// AppName scopes this agent's session keys.
	AppName string

	// Instruction is the system prompt driving the think loop.
	Instruction string

	// Card is served at the discovery endpoint.
	Card protocol.AgentCard

	Model    llm.Model
	Registry *tools.ToolRegistry
	Sessions session.Service

	// MaxIterations overrides the think loop bound when positive.
	MaxIterations int
}

// New builds an agent. A nil session service gets an in-memory store.
func New(cfg Config) *Agent {
	sessions := cfg.Sessions
	if sessions == nil {
		sessions = session.InMemoryService()
	}

	runner := NewRunner(cfg.Model, cfg.Registry, cfg.Instruction)
	if cfg.MaxIterations > 0 {
		runner = runner.WithMaxIterations(cfg.MaxIterations)
	}

	return &Agent{
		name:     cfg.Name,
		appName:  cfg.AppName,
		card:     cfg.Card,
		runner:   runner,
		sessions: sessions,
	}
}

// Name returns the agent's name.
func (a *Agent) Name() string { return a.name }

// Card returns the agent's capability card.
func (a *Agent) Card() protocol.AgentCard { return a.card }

// Execute runs one message against the agent and reduces the run into its
// outcome. The session named by the message is created on first reference;
// repeated queries under the same ids accumulate one conversation.
func (a *Agent) Execute(ctx context.Context, msg protocol.AgentMessage) (*protocol.Outcome, error) {
	tracer := observability.GetTracer("codingbuddy.agent")
	ctx, span := tracer.Start(ctx, observability.SpanAgentRun,
		trace.WithAttributes(
			attribute.String(observability.AttrAgentName, a.name),
		),
	)
	defer span.End()

	if err := msg.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid message")
		observability.RunRequests.WithLabelValues(a.name, "invalid").Inc()
		return nil, err
	}

	sess, err := a.sessions.GetOrCreate(ctx, session.Key{
		AppName:   a.appName,
		UserID:    msg.UserID,
		SessionID: msg.SessionID,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "session lookup failed")
		observability.RunRequests.WithLabelValues(a.name, "error").Inc()
		return nil, err
	}

	events, err := a.runner.Run(ctx, sess, msg.Query)
	if err != nil {
		// A failed model turn still yields the events up to the
		// failure; the caller gets the error, not a partial outcome.
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		observability.RunRequests.WithLabelValues(a.name, "error").Inc()
		return nil, err
	}

	outcome := Reduce(events)
	span.SetStatus(codes.Ok, "success")
	observability.RunRequests.WithLabelValues(a.name, "success").Inc()

	slog.Info("Run completed",
		"agent", a.name,
		"session", msg.SessionID,
		"tool_calls", len(outcome.FunctionCalls),
		"final_answer", outcome.HasFinalResponse())

	return &outcome, nil
}
