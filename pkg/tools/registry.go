package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/RoboJunior/Coding-Buddy/pkg/observability"
)

// ToolRegistryError carries the failing component and action alongside the
// message, so registry failures read uniformly in logs and tool results.
type ToolRegistryError struct {
	Component string
	Action    string
	Message   string
	Err       error
}

func (e *ToolRegistryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Component, e.Action, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Component, e.Action, e.Message)
}

func (e *ToolRegistryError) Unwrap() error { return e.Err }

func NewToolRegistryError(component, action, message string, err error) *ToolRegistryError {
	return &ToolRegistryError{
		Component: component,
		Action:    action,
		Message:   message,
		Err:       err,
	}
}

// ToolRegistry resolves tool calls by name.
type ToolRegistry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewToolRegistry builds an empty registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool under its own name. Re-registering a name is an
// error; two tools answering the same name would make dispatch ambiguous.
func (r *ToolRegistry) Register(tool Tool) error {
	name := tool.GetName()
	if name == "" {
		return NewToolRegistryError("ToolRegistry", "Register", "tool name cannot be empty", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; exists {
		return NewToolRegistryError("ToolRegistry", "Register",
			fmt.Sprintf("tool %s already registered", name), nil)
	}
	r.tools[name] = tool
	return nil
}

// GetTool resolves a tool by name.
func (r *ToolRegistry) GetTool(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, exists := r.tools[name]
	if !exists {
		return nil, NewToolRegistryError("ToolRegistry", "GetTool",
			fmt.Sprintf("tool %s not found", name), nil)
	}
	return tool, nil
}

// ListTools returns the registered tool descriptions, sorted by name.
func (r *ToolRegistry) ListTools() []ToolInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]ToolInfo, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool.GetInfo())
	}
	sort.Slice(tools, func(i, j int) bool {
		return tools[i].Name < tools[j].Name
	})
	return tools
}

// ExecuteTool dispatches one tool call. A call to a name no tool answers is
// not fatal to the run: it comes back as a failed result so the model can
// see the mistake and correct itself.
func (r *ToolRegistry) ExecuteTool(ctx context.Context, toolName string, args map[string]any) (ToolResult, error) {
	startTime := time.Now()

	tracer := observability.GetTracer("codingbuddy.tools")
	ctx, span := tracer.Start(ctx, observability.SpanToolExecution,
		trace.WithAttributes(
			attribute.String(observability.AttrToolName, toolName),
		),
	)
	defer span.End()

	tool, err := r.GetTool(toolName)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "tool not found")
		observability.ToolExecutions.WithLabelValues(toolName, "unknown").Inc()

		return ToolResult{
			Success:  false,
			Error:    err.Error(),
			ToolName: toolName,
		}, err
	}

	result, execErr := tool.Execute(ctx, args)
	duration := time.Since(startTime)
	result.ToolName = toolName
	result.ExecutionTime = duration

	status := "success"
	switch {
	case execErr != nil:
		status = "error"
		span.RecordError(execErr)
		span.SetStatus(codes.Error, execErr.Error())
	case !result.Success:
		status = "failed"
		span.SetStatus(codes.Error, result.Error)
	default:
		span.SetStatus(codes.Ok, "success")
	}
	observability.ToolExecutions.WithLabelValues(toolName, status).Inc()
	observability.ToolExecutionSeconds.WithLabelValues(toolName).Observe(duration.Seconds())

	span.SetAttributes(
		attribute.Bool("tool.success", result.Success),
		attribute.Int64("tool.duration_ms", duration.Milliseconds()),
	)

	return result, execErr
}
