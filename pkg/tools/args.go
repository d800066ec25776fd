package tools

import "encoding/json"

// Argument extraction helpers. Model-produced arguments arrive as decoded
// JSON, so numbers are float64 and lists are []any.

func stringArg(args map[string]any, key, fallback string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func intArg(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return fallback
}

func boolArg(args map[string]any, key string, fallback bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return fallback
}

func stringSliceArg(args map[string]any, key string) []string {
	switch v := args[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// successResult serializes the output into Content and keeps the structured
// form alongside it.
func successResult(toolName string, output any) (ToolResult, error) {
	content, err := json.Marshal(output)
	if err != nil {
		return failedResult(toolName, "failed to encode tool output: "+err.Error()), nil
	}
	return ToolResult{
		Success:  true,
		Content:  string(content),
		Output:   output,
		ToolName: toolName,
	}, nil
}

func failedResult(toolName, message string) ToolResult {
	return ToolResult{
		Success:  false,
		Error:    message,
		ToolName: toolName,
	}
}
