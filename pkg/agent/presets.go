package agent

import (
	"fmt"

	"github.com/RoboJunior/Coding-Buddy/pkg/config"
	"github.com/RoboJunior/Coding-Buddy/pkg/httpclient"
	"github.com/RoboJunior/Coding-Buddy/pkg/llm"
	"github.com/RoboJunior/Coding-Buddy/pkg/protocol"
	"github.com/RoboJunior/Coding-Buddy/pkg/session"
	"github.com/RoboJunior/Coding-Buddy/pkg/sources"
	"github.com/RoboJunior/Coding-Buddy/pkg/tools"
)

const errorExtractorInstruction = `You are an error extraction specialist. You receive programming errors as
text, stack traces, or screenshots.

When given a screenshot path, use the error_tracer tool to extract the error
message and stack trace from the image. Then research the extracted error:
use search_by_error_stackoverflow for exact error messages and
analyze_stack_trace for stack traces. Use advanced_search when the user
describes a problem in their own words.

Summarize the most promising fixes you found, citing the question links.
If no source returned anything useful, say so plainly.`

const stackRedHubInstruction = `You are a research agent that finds fixes for coding errors across Stack
Overflow, Reddit, and GitHub.

Pick the right tool for the query: search_by_error_stackoverflow for exact
error messages, analyze_stack_trace for stack traces, advanced_search for
free-form questions, github_related_issues for library or framework bug
reports, and reddit_related_issues for discussion threads. When you are not
sure which source will have the answer, use search_all_sources to hit all of
them at once.

Combine what the sources return into a short, actionable answer with links.
If a source is unavailable, work with the others.`

const orchestratorInstruction = `You are the orchestrator of a team of coding assistants.

First call get_agent_cards to see which agents are available and what they
can do. Match the user's request against the agents' skills and forward it
with call_agent to the best match, passing along the session_id and user_id
you were given. Relay the chosen agent's answer back to the user.

If no agent fits the request, answer directly and say why you did.`

// NewErrorExtractor builds the agent that turns raw errors, stack traces,
// and screenshots into researched fixes.
func NewErrorExtractor(cfg *config.Config, model llm.Model, publicURL string) (*Agent, error) {
	client := httpclient.New()
	composer := sources.NewComposer()
	stackoverflow := sources.NewStackOverflow(cfg.StackExchangeBaseURL, client)

	registry := tools.NewToolRegistry()
	for _, tool := range []tools.Tool{
		tools.NewErrorTracerTool(model),
		tools.NewSearchByErrorTool(composer, stackoverflow),
		tools.NewAnalyzeStackTraceTool(composer, stackoverflow),
		tools.NewAdvancedSearchTool(composer, stackoverflow),
	} {
		if err := registry.Register(tool); err != nil {
			return nil, fmt.Errorf("failed to assemble error_extractor: %w", err)
		}
	}

	return New(Config{
		Name:        "error_extractor",
		AppName:     cfg.AppName,
		Instruction: errorExtractorInstruction,
		Model:       model,
		Registry:    registry,
		Sessions:    session.InMemoryService(),
		Card: protocol.AgentCard{
			Agent: protocol.AgentInfo{
				Name:        "error_extractor",
				Description: "Extracts errors from text, stack traces, and screenshots, then researches fixes",
				Version:     "1.0.0",
				URL:         publicURL,
			},
			Skills: []protocol.AgentSkill{
				{
					Name:        "extract_error_from_image",
					Description: "Read the error message and stack trace out of a screenshot",
					Tags:        []string{"vision", "error-extraction", "screenshot"},
				},
				{
					Name:        "research_error",
					Description: "Find Stack Overflow fixes for an error message or stack trace",
					Tags:        []string{"stackoverflow", "debugging", "search"},
				},
			},
		},
	}), nil
}

// NewStackRedHub builds the multi-source research agent named for the
// sources it spans.
func NewStackRedHub(cfg *config.Config, model llm.Model, publicURL string) (*Agent, error) {
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
	} {
		if err := registry.Register(tool); err != nil {
			return nil, fmt.Errorf("failed to assemble stackredhub: %w", err)
		}
	}

	return New(Config{
		Name:        "stackredhub",
		AppName:     cfg.AppName,
		Instruction: stackRedHubInstruction,
		Model:       model,
		Registry:    registry,
		Sessions:    session.InMemoryService(),
		Card: protocol.AgentCard{
			Agent: protocol.AgentInfo{
				Name:        "stackredhub",
				Description: "Researches coding errors across Stack Overflow, Reddit, and GitHub",
				Version:     "1.0.0",
				URL:         publicURL,
			},
			Skills: []protocol.AgentSkill{
				{
					Name:        "search_stackoverflow",
					Description: "Search Stack Overflow by error message, stack trace, or keywords",
					Tags:        []string{"stackoverflow", "debugging", "search"},
				},
				{
					Name:        "search_github_issues",
					Description: "Find related GitHub issues across public repositories",
					Tags:        []string{"github", "issues", "bugs"},
				},
				{
					Name:        "search_reddit",
					Description: "Find related subreddit discussions",
					Tags:        []string{"reddit", "discussion"},
				},
			},
		},
	}), nil
}

// NewOrchestrator builds the routing agent that discovers the other agents
// and forwards requests to the best match.
func NewOrchestrator(cfg *config.Config, model llm.Model, publicURL string) (*Agent, error) {
	client := httpclient.New()

	registry := tools.NewToolRegistry()
	for _, tool := range []tools.Tool{
		tools.NewAgentCardsTool(cfg.AgentURLs, client),
		tools.NewCallAgentTool(client),
	} {
		if err := registry.Register(tool); err != nil {
			return nil, fmt.Errorf("failed to assemble orchestrator: %w", err)
		}
	}

	return New(Config{
		Name:        "orchestrator",
		AppName:     cfg.AppName,
		Instruction: orchestratorInstruction,
		Model:       model,
		Registry:    registry,
		Sessions:    session.InMemoryService(),
		Card: protocol.AgentCard{
			Agent: protocol.AgentInfo{
				Name:        "orchestrator",
				Description: "Routes coding questions to the specialist agent best equipped to answer",
				Version:     "1.0.0",
				URL:         publicURL,
			},
			Skills: []protocol.AgentSkill{
				{
					Name:        "route_request",
					Description: "Discover available agents and forward the request to the best match",
					Tags:        []string{"routing", "delegation", "agents"},
				},
			},
		},
	}), nil
}
