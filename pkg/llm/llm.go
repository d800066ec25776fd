// Package llm abstracts the model provider behind a small interface: given a
// conversation and a set of callable tool declarations, produce either a
// final text or a batch of tool calls. The think loop itself is opaque; the
// agent runner only consumes its outputs.
package llm

import "context"

// Role identifies the author of a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one turn of conversation history.
type Message struct {
	Role  Role
	Parts []Part
}

// Part is a union over the content kinds a message can carry. Exactly one
// field is set.
type Part struct {
	Text             string
	InlineData       *Blob
	FunctionCall     *FunctionCall
	FunctionResponse *FunctionResponse
}

// Blob is inline binary content, such as a screenshot to analyze.
type Blob struct {
	MIMEType string
	Data     []byte
}

// FunctionCall is a tool invocation the model wants executed.
type FunctionCall struct {
	ID   string
	Name string
	Args map[string]any
}

// FunctionResponse feeds a resolved tool result back into the loop.
type FunctionResponse struct {
	ID       string
	Name     string
	Response map[string]any
}

// ToolDefinition declares a callable tool to the model. Parameters is a
// JSON schema object.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Response is one step of the think loop: either tool calls to execute, or
// final text when ToolCalls is empty.
type Response struct {
	Text      string
	ToolCalls []FunctionCall
	Tokens    int
}

// Model is an opaque reasoning capability.
type Model interface {
	// Name returns the model identifier.
	Name() string

	// Generate produces the next step for the given conversation.
	Generate(ctx context.Context, instruction string, messages []Message, tools []ToolDefinition) (*Response, error)

	// Close releases provider resources.
	Close() error
}

// NewUserText builds a single-part user message.
func NewUserText(text string) Message {
	return Message{Role: RoleUser, Parts: []Part{{Text: text}}}
}

// NewModelText builds a single-part model message.
func NewModelText(text string) Message {
	return Message{Role: RoleModel, Parts: []Part{{Text: text}}}
}

// NewUserImage builds a user message carrying text alongside inline image
// bytes.
func NewUserImage(text, mimeType string, data []byte) Message {
	return Message{Role: RoleUser, Parts: []Part{
		{Text: text},
		{InlineData: &Blob{MIMEType: mimeType, Data: data}},
	}}
}
