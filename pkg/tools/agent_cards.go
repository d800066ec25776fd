package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/RoboJunior/Coding-Buddy/pkg/httpclient"
	"github.com/RoboJunior/Coding-Buddy/pkg/protocol"
)

// AgentCardPath is the well-known discovery endpoint every agent serves.
const AgentCardPath = "/.well-known/agent.json"

// AgentCardsTool discovers the capabilities of the configured agents by
// fetching their cards concurrently. Discovery is best-effort: an agent
// that is down is simply absent from the answer.
type AgentCardsTool struct {
	agentURLs []string
	client    *httpclient.Client
}

func NewAgentCardsTool(agentURLs []string, client *httpclient.Client) *AgentCardsTool {
	if client == nil {
		client = httpclient.New()
	}
	return &AgentCardsTool{agentURLs: agentURLs, client: client}
}

func (t *AgentCardsTool) GetName() string { return "get_agent_cards" }

func (t *AgentCardsTool) GetDescription() string {
	return "Fetch the capability cards of all known agents to decide where to route a request"
}

func (t *AgentCardsTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        t.GetName(),
		Description: t.GetDescription(),
	}
}

func (t *AgentCardsTool) Execute(ctx context.Context, args map[string]any) (ToolResult, error) {
	cards := make([]*protocol.AgentCard, len(t.agentURLs))

	var wg sync.WaitGroup
	for i, agentURL := range t.agentURLs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			card, err := t.fetchCard(ctx, agentURL)
			if err != nil {
				slog.Warn("Agent card fetch failed, skipping agent", "url", agentURL, "error", err)
				return
			}
			cards[i] = card
		}()
	}
	wg.Wait()

	available := make([]protocol.AgentCard, 0, len(cards))
	for _, card := range cards {
		if card != nil {
			available = append(available, *card)
		}
	}

	return successResult(t.GetName(), map[string]any{"agent_cards": available})
}

func (t *AgentCardsTool) fetchCard(ctx context.Context, agentURL string) (*protocol.AgentCard, error) {
	endpoint := strings.TrimSuffix(agentURL, "/") + AgentCardPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var card protocol.AgentCard
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return nil, fmt.Errorf("failed to decode agent card: %w", err)
	}
	return &card, nil
}
