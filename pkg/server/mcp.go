package server

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/RoboJunior/Coding-Buddy/pkg/tools"
)

// MCPServer publishes a tool registry over the Model Context Protocol, so
// editors and other MCP clients can call the research tools directly
// without going through an agent.
type MCPServer struct {
	mcp      *server.MCPServer
	registry *tools.ToolRegistry
}

// NewMCPServer wraps the registry's tools in an MCP server.
func NewMCPServer(name, version string, registry *tools.ToolRegistry) *MCPServer {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	m := &MCPServer{mcp: s, registry: registry}
	for _, info := range registry.ListTools() {
		s.AddTool(toMCPTool(info), m.handlerFor(info.Name))
	}
	return m
}

// ServeSSE serves the MCP server over SSE on addr, blocking until the
// listener fails.
func (m *MCPServer) ServeSSE(addr string) error {
	slog.Info("MCP tool server listening", "addr", addr)
	return server.NewSSEServer(m.mcp).Start(addr)
}

// ServeStdio serves the MCP server over stdin/stdout, for editor
// integrations that spawn the process directly.
func (m *MCPServer) ServeStdio() error {
	return server.ServeStdio(m.mcp)
}

func (m *MCPServer) handlerFor(toolName string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := m.registry.ExecuteTool(ctx, toolName, req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !result.Success {
			return mcp.NewToolResultError(result.Error), nil
		}
		return mcp.NewToolResultText(result.Content), nil
	}
}

// toMCPTool maps a tool description onto the MCP tool schema.
func toMCPTool(info tools.ToolInfo) mcp.Tool {
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
		if p.Default != nil {
			prop["default"] = p.Default
		}
		properties[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}

	return mcp.Tool{
		Name:        info.Name,
		Description: info.Description,
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: properties,
			Required:   required,
		},
	}
}
