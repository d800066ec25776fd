package tools

import (
	"context"
	"errors"
	"testing"
)

type stubTool struct {
	name   string
	result ToolResult
	err    error
}

func (s *stubTool) GetName() string        { return s.name }
func (s *stubTool) GetDescription() string { return "stub" }
func (s *stubTool) GetInfo() ToolInfo {
	return ToolInfo{Name: s.name, Description: "stub"}
}
func (s *stubTool) Execute(ctx context.Context, args map[string]any) (ToolResult, error) {
	return s.result, s.err
}

func TestRegistryRegisterAndResolve(t *testing.T) {
	registry := NewToolRegistry()
	if err := registry.Register(&stubTool{name: "alpha"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tool, err := registry.GetTool("alpha")
	if err != nil {
		t.Fatalf("GetTool() error = %v", err)
	}
	if tool.GetName() != "alpha" {
		t.Errorf("resolved tool name = %q", tool.GetName())
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := NewToolRegistry()
	if err := registry.Register(&stubTool{name: "alpha"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := registry.Register(&stubTool{name: "alpha"}); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestRegistryRejectsEmptyName(t *testing.T) {
	registry := NewToolRegistry()
	if err := registry.Register(&stubTool{}); err == nil {
		t.Fatal("expected empty tool name to fail")
	}
}

func TestExecuteUnknownToolReturnsFailedResult(t *testing.T) {
	registry := NewToolRegistry()

	result, err := registry.ExecuteTool(context.Background(), "nope", nil)
	if err == nil {
		t.Fatal("expected an error for an unknown tool")
	}

	var regErr *ToolRegistryError
	if !errors.As(err, &regErr) {
		t.Fatalf("expected ToolRegistryError, got %T", err)
	}

	// The failed result feeds back into the think loop instead of
	// aborting the run.
	if result.Success {
		t.Error("unknown tool result should not be successful")
	}
	if result.ToolName != "nope" {
		t.Errorf("result tool name = %q, want nope", result.ToolName)
	}
	if result.Error == "" {
		t.Error("result should carry the resolution error")
	}
}

func TestExecuteToolStampsNameAndDuration(t *testing.T) {
	registry := NewToolRegistry()
	if err := registry.Register(&stubTool{name: "alpha", result: ToolResult{Success: true, Content: "ok"}}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	result, err := registry.ExecuteTool(context.Background(), "alpha", nil)
	if err != nil {
		t.Fatalf("ExecuteTool() error = %v", err)
	}
	if !result.Success || result.Content != "ok" {
		t.Errorf("result = %+v", result)
	}
	if result.ToolName != "alpha" {
		t.Errorf("result tool name = %q", result.ToolName)
	}
}

func TestListToolsSorted(t *testing.T) {
	registry := NewToolRegistry()
	for _, name := range []string{"zulu", "alpha", "mike"} {
		if err := registry.Register(&stubTool{name: name}); err != nil {
			t.Fatalf("Register(%s) error = %v", name, err)
		}
	}

	infos := registry.ListTools()
	if len(infos) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(infos))
	}
	expected := []string{"alpha", "mike", "zulu"}
	for i, info := range infos {
		if info.Name != expected[i] {
			t.Errorf("tool %d = %q, want %q", i, info.Name, expected[i])
		}
	}
}

func TestToolInfoDefinition(t *testing.T) {
	info := ToolInfo{
		Name:        "advanced_search",
		Description: "search things",
		Parameters: []ToolParameter{
			{Name: "keywords", Type: "string", Description: "terms", Required: true},
			{Name: "limit", Type: "integer", Description: "cap"},
			{Name: "response_format", Type: "string", Enum: []string{"structured", "text"}},
		},
	}

	def := info.Definition()
	if def.Name != "advanced_search" {
		t.Errorf("definition name = %q", def.Name)
	}

	props, ok := def.Parameters["properties"].(map[string]any)
	if !ok {
		t.Fatalf("properties missing: %+v", def.Parameters)
	}
	if len(props) != 3 {
		t.Errorf("expected 3 properties, got %d", len(props))
	}

	required, ok := def.Parameters["required"].([]string)
	if !ok || len(required) != 1 || required[0] != "keywords" {
		t.Errorf("required = %+v, want [keywords]", def.Parameters["required"])
	}

	format, ok := props["response_format"].(map[string]any)
	if !ok {
		t.Fatalf("response_format property missing")
	}
	if enum, ok := format["enum"].([]string); !ok || len(enum) != 2 {
		t.Errorf("enum = %+v", format["enum"])
	}
}
