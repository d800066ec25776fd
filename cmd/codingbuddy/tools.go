package main

import (
	"fmt"
	"log/slog"

	"github.com/RoboJunior/Coding-Buddy/pkg/config"
	"github.com/RoboJunior/Coding-Buddy/pkg/httpclient"
	"github.com/RoboJunior/Coding-Buddy/pkg/llm"
	"github.com/RoboJunior/Coding-Buddy/pkg/server"
	"github.com/RoboJunior/Coding-Buddy/pkg/sources"
	"github.com/RoboJunior/Coding-Buddy/pkg/tools"
)

// ToolsCmd starts the MCP tool server, publishing the research tools and
// the agent discovery tools to MCP clients without an agent in between.
type ToolsCmd struct {
	Addr  string `help:"Listen address for SSE transport." default:":8005"`
	Stdio bool   `help:"Serve over stdin/stdout instead of SSE."`
}

func (c *ToolsCmd) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	client := httpclient.New()
	composer := sources.NewComposer()
	stackoverflow := sources.NewStackOverflow(cfg.StackExchangeBaseURL, client)
	github := sources.NewGitHub(cfg.GitHubBaseURL, client)
	reddit := sources.NewReddit(cfg.RedditBaseURL, client)

	registry := tools.NewToolRegistry()
	for _, tool := range []tools.Tool{
		tools.NewSearchByErrorTool(composer, stackoverflow),
		tools.NewAnalyzeStackTraceTool(composer, stackoverflow),
		tools.NewAdvancedSearchTool(composer, stackoverflow),
		tools.NewGitHubIssuesTool(composer, github),
		tools.NewRedditIssuesTool(composer, reddit),
		tools.NewCrossSourceSearchTool(composer, stackoverflow, github, reddit),
		tools.NewAgentCardsTool(cfg.AgentURLs, client),
		tools.NewCallAgentTool(client),
	} {
		if err := registry.Register(tool); err != nil {
			return fmt.Errorf("failed to register tool: %w", err)
		}
	}

	// The screenshot extractor needs a model; skip it when no key is set
	// so the search tools still work offline.
	if cfg.APIKey != "" {
		model, err := llm.NewGemini(llm.GeminiConfig{APIKey: cfg.APIKey, Model: cfg.Model})
		if err != nil {
			return fmt.Errorf("failed to create model: %w", err)
		}
		defer model.Close()
		if err := registry.Register(tools.NewErrorTracerTool(model)); err != nil {
			return fmt.Errorf("failed to register tool: %w", err)
		}
	} else {
		slog.Warn("GOOGLE_API_KEY not set, error_tracer tool disabled")
	}

	mcpServer := server.NewMCPServer("coding-buddy-tools", "1.0.0", registry)
	if c.Stdio {
		return mcpServer.ServeStdio()
	}
	return mcpServer.ServeSSE(c.Addr)
}
