// Package protocol defines the wire types shared by every Coding-Buddy
// process: the agent run request/response pair exchanged over each agent's
// HTTP surface, the agent card served for discovery, and the tool call and
// tool response records that appear inside run outcomes.
package protocol

import (
	"errors"
	"fmt"
)

// ============================================================================
// AGENT MESSAGE - the run request
// ============================================================================

// AgentMessage is the body of POST /run. All three fields are required.
type AgentMessage struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
}

// ErrInvalidMessage is returned when a run request is missing a field.
var ErrInvalidMessage = errors.New("invalid agent message")

// Validate checks that every required field is populated.
func (m *AgentMessage) Validate() error {
	switch {
	case m.Query == "":
		return fmt.Errorf("%w: query is required", ErrInvalidMessage)
	case m.SessionID == "":
		return fmt.Errorf("%w: session_id is required", ErrInvalidMessage)
	case m.UserID == "":
		return fmt.Errorf("%w: user_id is required", ErrInvalidMessage)
	}
	return nil
}

// ============================================================================
// TOOL CALLS AND RESPONSES
// ============================================================================

// ToolCall is a single tool invocation requested by the model.
type ToolCall struct {
	ID        string         `json:"id,omitempty"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// ToolResponse is the resolved result of one tool call.
type ToolResponse struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Response string `json:"response,omitempty"`
	IsError  bool   `json:"is_error,omitempty"`
}

// ============================================================================
// OUTCOME - the folded result of one agent run
// ============================================================================

// Outcome is the single-shot response of POST /run. Only the most recent
// batch of tool calls and tool responses survives the fold; FinalResponse
// is empty when the think loop terminated without a terminal answer.
type Outcome struct {
	FunctionCalls     []ToolCall     `json:"function_calls,omitempty"`
	FunctionResponses []ToolResponse `json:"function_responses,omitempty"`
	FinalResponse     string         `json:"final_response,omitempty"`
}

// HasFinalResponse reports whether the run produced a terminal answer.
func (o Outcome) HasFinalResponse() bool {
	return o.FinalResponse != ""
}

// ============================================================================
// AGENT CARD - discovery metadata served at /.well-known/agent.json
// ============================================================================

// AgentCard advertises one agent process. Constructed at startup, never
// mutated afterwards.
type AgentCard struct {
	Agent  AgentInfo    `json:"agent"`
	Skills []AgentSkill `json:"skills"`
}

// AgentInfo identifies the agent behind a card.
type AgentInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	URL         string `json:"url,omitempty"`
}

// AgentSkill describes one capability listed on a card.
type AgentSkill struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}
