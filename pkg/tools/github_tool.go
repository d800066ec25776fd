package tools

import (
	"context"

	"github.com/RoboJunior/Coding-Buddy/pkg/sources"
)

// GitHubIssuesTool surfaces recent GitHub issues matching an error or
// library name.
type GitHubIssuesTool struct {
	composer *sources.Composer
	adapter  sources.Adapter
}

func NewGitHubIssuesTool(composer *sources.Composer, adapter sources.Adapter) *GitHubIssuesTool {
	return &GitHubIssuesTool{composer: composer, adapter: adapter}
}

func (t *GitHubIssuesTool) GetName() string { return "github_related_issues" }

func (t *GitHubIssuesTool) GetDescription() string {
	return "Search GitHub issues across public repositories for reports related to an error, newest first"
}

func (t *GitHubIssuesTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        t.GetName(),
		Description: t.GetDescription(),
		Parameters: []ToolParameter{
			{Name: "query", Type: "string", Description: "Error message or topic to search for", Required: true},
			{Name: "limit", Type: "integer", Description: "Maximum number of issues", Default: defaultAdvancedSearchLimit},
		},
	}
}

func (t *GitHubIssuesTool) Execute(ctx context.Context, args map[string]any) (ToolResult, error) {
	query := stringArg(args, "query", "")
	if query == "" {
		return failedResult(t.GetName(), "query is required"), nil
	}

	items, err := t.composer.Search(ctx, sources.Query{
		Keywords: query,
		Limit:    intArg(args, "limit", defaultAdvancedSearchLimit),
	}, t.adapter)
	if err != nil {
		return failedResult(t.GetName(), err.Error()), nil
	}

	return successResult(t.GetName(), items)
}
