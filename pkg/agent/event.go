// Package agent implements the execution loop shared by every Coding-Buddy
// agent: a session-scoped run that alternates model turns and tool
// executions, emits the steps as an ordered event sequence, and reduces
// that sequence into the wire outcome.
package agent

import (
	"github.com/RoboJunior/Coding-Buddy/pkg/protocol"
)

// EventKind discriminates the event union.
type EventKind int

const (
	// EventToolCalls records one batch of tool calls the model requested.
	EventToolCalls EventKind = iota

	// EventToolResults records the resolved batch of tool executions.
	EventToolResults

	// EventFinalAnswer records the model's closing text.
	EventFinalAnswer

	// EventOther covers steps that carry no outcome-relevant payload.
	// The reducer skips them.
	EventOther
)

// Event is one step of a run, a tagged union over the step kinds. Exactly
// the payload matching Kind is set.
type Event struct {
	Kind        EventKind
	ToolCalls   []protocol.ToolCall
	ToolResults []protocol.ToolResponse
	FinalAnswer string
}

// NewToolCallsEvent wraps one requested batch of tool calls.
func NewToolCallsEvent(calls []protocol.ToolCall) Event {
	return Event{Kind: EventToolCalls, ToolCalls: calls}
}

// NewToolResultsEvent wraps one resolved batch of tool executions.
func NewToolResultsEvent(results []protocol.ToolResponse) Event {
	return Event{Kind: EventToolResults, ToolResults: results}
}

// NewFinalAnswerEvent wraps the closing text of a run.
func NewFinalAnswerEvent(text string) Event {
	return Event{Kind: EventFinalAnswer, FinalAnswer: text}
}
