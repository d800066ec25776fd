// Package tools hosts the callable operations exposed to the agents: the
// knowledge-source research tools, screenshot error extraction, and the
// agent-to-agent meta tools. A registry resolves tool calls by name and
// instruments every execution.
package tools

import (
	"context"
	"time"

	"github.com/RoboJunior/Coding-Buddy/pkg/llm"
)

// ToolInfo describes a tool to the model and to the MCP facade.
type ToolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ToolParameter `json:"parameters,omitempty"`
}

// ToolParameter is one declared argument.
type ToolParameter struct {
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Required    bool           `json:"required"`
	Default     any            `json:"default,omitempty"`
	Enum        []string       `json:"enum,omitempty"`
	Items       map[string]any `json:"items,omitempty"`
}

// ToolResult is the outcome of one tool execution. Content carries the
// serialized payload handed back to the model; Output keeps the structured
// form for transports that can carry it.
type ToolResult struct {
	Success       bool          `json:"success"`
	Content       string        `json:"content,omitempty"`
	Output        any           `json:"output,omitempty"`
	Error         string        `json:"error,omitempty"`
	ToolName      string        `json:"tool_name"`
	ExecutionTime time.Duration `json:"execution_time,omitempty"`
}

// Tool is one callable operation.
type Tool interface {
	GetInfo() ToolInfo

	Execute(ctx context.Context, args map[string]any) (ToolResult, error)

	GetName() string

	GetDescription() string
}

// Definition converts the tool description into a model-facing declaration
// with a JSON schema parameter object.
func (info ToolInfo) Definition() llm.ToolDefinition {
	properties := make(map[string]any, len(info.Parameters))
	var required []string

	for _, p := range info.Parameters {
		prop := map[string]any{
			"type":        p.Type,
			"description": p.Description,
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		if p.Items != nil {
			prop["items"] = p.Items
		}
		properties[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}

	return llm.ToolDefinition{
		Name:        info.Name,
		Description: info.Description,
		Parameters:  schema,
	}
}
