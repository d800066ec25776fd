package tools

import (
	"context"

	"github.com/RoboJunior/Coding-Buddy/pkg/sources"
)

// formatParam is shared by every search tool that shapes its output.
var formatParam = ToolParameter{
	Name:        "response_format",
	Type:        "string",
	Description: "Shape of the result: structured records or plain title-link lines",
	Enum:        []string{"structured", "text"},
	Default:     "structured",
}

// Title-matched searches are precise, so they default to fewer results than
// the broader free-text search.
const (
	defaultTitleSearchLimit    = 3
	defaultAdvancedSearchLimit = 5
)

// SearchByErrorTool looks up Stack Overflow questions whose title contains
// an exact error message, highest-voted first.
type SearchByErrorTool struct {
	composer *sources.Composer
	adapter  sources.Adapter
}

func NewSearchByErrorTool(composer *sources.Composer, adapter sources.Adapter) *SearchByErrorTool {
	return &SearchByErrorTool{composer: composer, adapter: adapter}
}

func (t *SearchByErrorTool) GetName() string { return "search_by_error_stackoverflow" }

func (t *SearchByErrorTool) GetDescription() string {
	return "Search Stack Overflow for questions matching an exact error message, ranked by votes"
}

func (t *SearchByErrorTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        t.GetName(),
		Description: t.GetDescription(),
		Parameters: []ToolParameter{
			{Name: "error_message", Type: "string", Description: "The exact error message to search for", Required: true},
			{Name: "language", Type: "string", Description: "Programming language tag, leads the tag filter"},
			{Name: "technologies", Type: "array", Description: "Additional technology tags", Items: map[string]any{"type": "string"}},
			{Name: "min_score", Type: "integer", Description: "Minimum question score"},
			{Name: "include_comments", Type: "boolean", Description: "Fetch the comments of each result", Default: false},
			{Name: "limit", Type: "integer", Description: "Maximum number of results", Default: defaultTitleSearchLimit},
			formatParam,
		},
	}
}

func (t *SearchByErrorTool) Execute(ctx context.Context, args map[string]any) (ToolResult, error) {
	errorMessage := stringArg(args, "error_message", "")
	if errorMessage == "" {
		return failedResult(t.GetName(), "error_message is required"), nil
	}

	q := sources.Query{
		ErrorText:       errorMessage,
		Language:        stringArg(args, "language", ""),
		Technologies:    stringSliceArg(args, "technologies"),
		IncludeComments: boolArg(args, "include_comments", false),
		Sort:            sources.SortVotes,
		Limit:           intArg(args, "limit", defaultTitleSearchLimit),
	}
	if _, ok := args["min_score"]; ok {
		min := intArg(args, "min_score", 0)
		q.MinScore = &min
	}

	items, err := t.composer.Search(ctx, q, t.adapter)
	if err != nil {
		return failedResult(t.GetName(), err.Error()), nil
	}

	format := sources.OutputFormat(stringArg(args, "response_format", string(sources.FormatStructured)))
	return successResult(t.GetName(), sources.Render(items, format))
}

// AnalyzeStackTraceTool searches Stack Overflow with the first line of a
// stack trace, ranked by relevance. The first line names the exception and
// message; the frames below it are too specific to match anything.
type AnalyzeStackTraceTool struct {
	composer *sources.Composer
	adapter  sources.Adapter
}

func NewAnalyzeStackTraceTool(composer *sources.Composer, adapter sources.Adapter) *AnalyzeStackTraceTool {
	return &AnalyzeStackTraceTool{composer: composer, adapter: adapter}
}

func (t *AnalyzeStackTraceTool) GetName() string { return "analyze_stack_trace" }

func (t *AnalyzeStackTraceTool) GetDescription() string {
	return "Search Stack Overflow using the leading line of a stack trace, ranked by relevance"
}

func (t *AnalyzeStackTraceTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        t.GetName(),
		Description: t.GetDescription(),
		Parameters: []ToolParameter{
			{Name: "stack_trace", Type: "string", Description: "The full stack trace; only its first line is matched", Required: true},
			{Name: "language", Type: "string", Description: "Programming language tag, leads the tag filter"},
			{Name: "technologies", Type: "array", Description: "Additional technology tags", Items: map[string]any{"type": "string"}},
			{Name: "min_score", Type: "integer", Description: "Minimum question score"},
			{Name: "include_comments", Type: "boolean", Description: "Fetch the comments of each result", Default: false},
			{Name: "limit", Type: "integer", Description: "Maximum number of results", Default: defaultTitleSearchLimit},
			formatParam,
		},
	}
}

func (t *AnalyzeStackTraceTool) Execute(ctx context.Context, args map[string]any) (ToolResult, error) {
	stackTrace := stringArg(args, "stack_trace", "")
	if stackTrace == "" {
		return failedResult(t.GetName(), "stack_trace is required"), nil
	}

	q := sources.Query{
		StackTrace:      stackTrace,
		Language:        stringArg(args, "language", ""),
		Technologies:    stringSliceArg(args, "technologies"),
		IncludeComments: boolArg(args, "include_comments", false),
		Sort:            sources.SortRelevance,
		Limit:           intArg(args, "limit", defaultTitleSearchLimit),
	}
	if _, ok := args["min_score"]; ok {
		min := intArg(args, "min_score", 0)
		q.MinScore = &min
	}

	items, err := t.composer.Search(ctx, q, t.adapter)
	if err != nil {
		return failedResult(t.GetName(), err.Error()), nil
	}

	format := sources.OutputFormat(stringArg(args, "response_format", string(sources.FormatStructured)))
	return successResult(t.GetName(), sources.Render(items, format))
}

// AdvancedSearchTool runs a free-text Stack Overflow search with explicit
// tag, score, and acceptance filters.
type AdvancedSearchTool struct {
	composer *sources.Composer
	adapter  sources.Adapter
}

func NewAdvancedSearchTool(composer *sources.Composer, adapter sources.Adapter) *AdvancedSearchTool {
	return &AdvancedSearchTool{composer: composer, adapter: adapter}
}

func (t *AdvancedSearchTool) GetName() string { return "advanced_search" }

func (t *AdvancedSearchTool) GetDescription() string {
	return "Full-text Stack Overflow search with tag, score, and accepted-answer filters"
}

func (t *AdvancedSearchTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        t.GetName(),
		Description: t.GetDescription(),
		Parameters: []ToolParameter{
			{Name: "keywords", Type: "string", Description: "Free-text search terms", Required: true},
			{Name: "tags", Type: "array", Description: "Tags every result must carry", Items: map[string]any{"type": "string"}},
			{Name: "min_score", Type: "integer", Description: "Minimum question score"},
			{Name: "has_accepted_answer", Type: "boolean", Description: "Only questions with an accepted answer", Default: false},
			{Name: "include_comments", Type: "boolean", Description: "Fetch the comments of each result", Default: false},
			{Name: "limit", Type: "integer", Description: "Maximum number of results", Default: defaultAdvancedSearchLimit},
			formatParam,
		},
	}
}

func (t *AdvancedSearchTool) Execute(ctx context.Context, args map[string]any) (ToolResult, error) {
	keywords := stringArg(args, "keywords", "")
	if keywords == "" {
		return failedResult(t.GetName(), "keywords is required"), nil
	}

	q := sources.Query{
		Keywords:        keywords,
		Technologies:    stringSliceArg(args, "tags"),
		HasAccepted:     boolArg(args, "has_accepted_answer", false),
		IncludeComments: boolArg(args, "include_comments", false),
		Sort:            sources.SortVotes,
		Limit:           intArg(args, "limit", defaultAdvancedSearchLimit),
	}
	if _, ok := args["min_score"]; ok {
		min := intArg(args, "min_score", 0)
		q.MinScore = &min
	}

	items, err := t.composer.Search(ctx, q, t.adapter)
	if err != nil {
		return failedResult(t.GetName(), err.Error()), nil
	}

	format := sources.OutputFormat(stringArg(args, "response_format", string(sources.FormatStructured)))
	return successResult(t.GetName(), sources.Render(items, format))
}
