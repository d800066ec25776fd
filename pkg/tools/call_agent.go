package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/RoboJunior/Coding-Buddy/pkg/httpclient"
	"github.com/RoboJunior/Coding-Buddy/pkg/protocol"
)

// CallAgentTool forwards a query to another agent's run endpoint and hands
// its outcome back to the caller's think loop. The downstream agent keeps
// its own session under the same session and user ids, so follow-up calls
// land in the same conversation there.
type CallAgentTool struct {
	client *httpclient.Client
}

func NewCallAgentTool(client *httpclient.Client) *CallAgentTool {
	if client == nil {
		client = httpclient.New()
	}
	return &CallAgentTool{client: client}
}

func (t *CallAgentTool) GetName() string { return "call_agent" }

func (t *CallAgentTool) GetDescription() string {
	return "Send a query to another agent by URL and return its response"
}

func (t *CallAgentTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        t.GetName(),
		Description: t.GetDescription(),
		Parameters: []ToolParameter{
			{Name: "agent_url", Type: "string", Description: "Base URL of the agent to call", Required: true},
			{Name: "query", Type: "string", Description: "The query to forward", Required: true},
			{Name: "session_id", Type: "string", Description: "Session id to converse under", Required: true},
			{Name: "user_id", Type: "string", Description: "User id the session belongs to", Required: true},
		},
	}
}

func (t *CallAgentTool) Execute(ctx context.Context, args map[string]any) (ToolResult, error) {
	agentURL := stringArg(args, "agent_url", "")
	if agentURL == "" {
		return failedResult(t.GetName(), "agent_url is required"), nil
	}

	msg := protocol.AgentMessage{
		Query:     stringArg(args, "query", ""),
		SessionID: stringArg(args, "session_id", ""),
		UserID:    stringArg(args, "user_id", ""),
	}
	if err := msg.Validate(); err != nil {
		return failedResult(t.GetName(), err.Error()), nil
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return failedResult(t.GetName(), "failed to encode agent message: "+err.Error()), nil
	}

	endpoint := strings.TrimSuffix(agentURL, "/") + "/run"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return failedResult(t.GetName(), "failed to build agent request: "+err.Error()), nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return failedResult(t.GetName(), fmt.Sprintf("agent %s unreachable: %v", agentURL, err)), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failedResult(t.GetName(), fmt.Sprintf("agent %s returned HTTP %d", agentURL, resp.StatusCode)), nil
	}

	var outcome protocol.Outcome
	if err := json.NewDecoder(resp.Body).Decode(&outcome); err != nil {
		return failedResult(t.GetName(), "failed to decode agent response: "+err.Error()), nil
	}

	return successResult(t.GetName(), outcome)
}
