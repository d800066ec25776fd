package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/RoboJunior/Coding-Buddy/pkg/llm"
	"github.com/RoboJunior/Coding-Buddy/pkg/protocol"
	"github.com/RoboJunior/Coding-Buddy/pkg/session"
	"github.com/RoboJunior/Coding-Buddy/pkg/tools"
)

// DefaultMaxIterations bounds the think loop. A run that hasn't converged
// after this many model turns is cut off without a final answer.
const DefaultMaxIterations = 10

// Runner drives one agent's think loop over a session's history.
type Runner struct {
	model         llm.Model
	registry      *tools.ToolRegistry
	instruction   string
	maxIterations int
}

// NewRunner builds a runner for the given model, instruction, and tools.
func NewRunner(model llm.Model, registry *tools.ToolRegistry, instruction string) *Runner {
	return &Runner{
		model:         model,
		registry:      registry,
		instruction:   instruction,
		maxIterations: DefaultMaxIterations,
	}
}

// WithMaxIterations overrides the think loop bound.
func (r *Runner) WithMaxIterations(max int) *Runner {
	if max > 0 {
		r.maxIterations = max
	}
	return r
}

// Run executes one query against a session and returns the ordered event
// sequence of the run. The session admits a single in-flight run; a second
// Run on the same session blocks until the first completes. Tool failures
// feed back into the loop as error results rather than aborting the run.
func (r *Runner) Run(ctx context.Context, sess *session.Session, query string) ([]Event, error) {
	sess.BeginRun()
	defer sess.EndRun()

	sess.Append(llm.NewUserText(query))

	var events []Event
	definitions := r.definitions()

	for iteration := 0; iteration < r.maxIterations; iteration++ {
		resp, err := r.model.Generate(ctx, r.instruction, sess.Messages(), definitions)
		if err != nil {
			return events, fmt.Errorf("model turn failed: %w", err)
		}

		if len(resp.ToolCalls) == 0 {
			if resp.Text == "" {
				// The model produced neither calls nor text; there
				// is nothing further to do.
				return events, nil
			}
			sess.Append(llm.NewModelText(resp.Text))
			events = append(events, NewFinalAnswerEvent(resp.Text))
			return events, nil
		}

		// The whole call batch lands in the history and the event
		// stream as one step, mirroring the turn structure the
		// provider expects and keeping batch overwrite semantics
		// intact for the reducer.
		var callParts []llm.Part
		var responseParts []llm.Part
		calls := make([]protocol.ToolCall, 0, len(resp.ToolCalls))
		results := make([]protocol.ToolResponse, 0, len(resp.ToolCalls))

		for _, call := range resp.ToolCalls {
			if call.ID == "" {
				call.ID = uuid.NewString()
			}
			callParts = append(callParts, llm.Part{FunctionCall: &llm.FunctionCall{
				ID:   call.ID,
				Name: call.Name,
				Args: call.Args,
			}})
			calls = append(calls, protocol.ToolCall{
				ID:        call.ID,
				Name:      call.Name,
				Arguments: call.Args,
			})
		}
		events = append(events, NewToolCallsEvent(calls))

		for _, call := range calls {
			result, execErr := r.registry.ExecuteTool(ctx, call.Name, call.Arguments)
			if execErr != nil {
				slog.Warn("Tool execution failed, feeding error back", "tool", call.Name, "error", execErr)
			}

			responseParts = append(responseParts, llm.Part{FunctionResponse: &llm.FunctionResponse{
				ID:       call.ID,
				Name:     call.Name,
				Response: toolResponsePayload(result, execErr),
			}})
			results = append(results, protocol.ToolResponse{
				ID:       call.ID,
				Name:     call.Name,
				Response: result.Content,
				IsError:  !result.Success,
			})
		}
		events = append(events, NewToolResultsEvent(results))

		sess.Append(
			llm.Message{Role: llm.RoleModel, Parts: callParts},
			llm.Message{Role: llm.RoleUser, Parts: responseParts},
		)
	}

	slog.Warn("Run hit the iteration bound without a final answer",
		"session", sess.Key().String(), "max_iterations", r.maxIterations)
	return events, nil
}

func (r *Runner) definitions() []llm.ToolDefinition {
	infos := r.registry.ListTools()
	definitions := make([]llm.ToolDefinition, 0, len(infos))
	for _, info := range infos {
		definitions = append(definitions, info.Definition())
	}
	return definitions
}

// toolResponsePayload shapes a tool result for the model. Failures carry
// the error text so the model can recover or rephrase.
func toolResponsePayload(result tools.ToolResult, execErr error) map[string]any {
	if execErr != nil {
		return map[string]any{"error": execErr.Error()}
	}
	if !result.Success {
		return map[string]any{"error": result.Error}
	}
	return map[string]any{"result": result.Content}
}
