package tools

import (
	"context"

	"github.com/RoboJunior/Coding-Buddy/pkg/sources"
)

// RedditIssuesTool surfaces recent subreddit discussions about an error.
type RedditIssuesTool struct {
	composer *sources.Composer
	adapter  sources.Adapter
}

func NewRedditIssuesTool(composer *sources.Composer, adapter sources.Adapter) *RedditIssuesTool {
	return &RedditIssuesTool{composer: composer, adapter: adapter}
}

func (t *RedditIssuesTool) GetName() string { return "reddit_related_issues" }

func (t *RedditIssuesTool) GetDescription() string {
	return "Search a subreddit for discussions related to an error, newest first"
}

func (t *RedditIssuesTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        t.GetName(),
		Description: t.GetDescription(),
		Parameters: []ToolParameter{
			{Name: "query", Type: "string", Description: "Error message or topic to search for", Required: true},
			{Name: "subreddit", Type: "string", Description: "Subreddit to search", Default: sources.DefaultSubreddit},
			{Name: "limit", Type: "integer", Description: "Maximum number of posts", Default: defaultAdvancedSearchLimit},
		},
	}
}

func (t *RedditIssuesTool) Execute(ctx context.Context, args map[string]any) (ToolResult, error) {
	query := stringArg(args, "query", "")
	if query == "" {
		return failedResult(t.GetName(), "query is required"), nil
	}

	items, err := t.composer.Search(ctx, sources.Query{
		Keywords:  query,
		Subreddit: stringArg(args, "subreddit", sources.DefaultSubreddit),
		Limit:     intArg(args, "limit", defaultAdvancedSearchLimit),
	}, t.adapter)
	if err != nil {
		return failedResult(t.GetName(), err.Error()), nil
	}

	return successResult(t.GetName(), items)
}
