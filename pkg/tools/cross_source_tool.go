package tools

import (
	"context"

	"github.com/RoboJunior/Coding-Buddy/pkg/sources"
)

// CrossSourceSearchTool runs one query against every configured source at
// once. A source that is down contributes nothing; the rest still answer.
type CrossSourceSearchTool struct {
	composer *sources.Composer
	adapters []sources.Adapter
}

func NewCrossSourceSearchTool(composer *sources.Composer, adapters ...sources.Adapter) *CrossSourceSearchTool {
	return &CrossSourceSearchTool{composer: composer, adapters: adapters}
}

func (t *CrossSourceSearchTool) GetName() string { return "search_all_sources" }

func (t *CrossSourceSearchTool) GetDescription() string {
	return "Search Stack Overflow, GitHub issues, and Reddit at once, merging whatever each source returns"
}

func (t *CrossSourceSearchTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        t.GetName(),
		Description: t.GetDescription(),
		Parameters: []ToolParameter{
			{Name: "query", Type: "string", Description: "Error message or topic to search for", Required: true},
			{Name: "subreddit", Type: "string", Description: "Subreddit for the Reddit leg", Default: sources.DefaultSubreddit},
			{Name: "limit", Type: "integer", Description: "Maximum number of results per source", Default: defaultAdvancedSearchLimit},
			formatParam,
		},
	}
}

func (t *CrossSourceSearchTool) Execute(ctx context.Context, args map[string]any) (ToolResult, error) {
	query := stringArg(args, "query", "")
	if query == "" {
		return failedResult(t.GetName(), "query is required"), nil
	}

	items := t.composer.SearchAll(ctx, sources.Query{
		Keywords:  query,
		Subreddit: stringArg(args, "subreddit", ""),
		Sort:      sources.SortVotes,
		Limit:     intArg(args, "limit", defaultAdvancedSearchLimit),
	}, t.adapters...)

	format := sources.OutputFormat(stringArg(args, "response_format", string(sources.FormatStructured)))
	return successResult(t.GetName(), sources.Render(items, format))
}
