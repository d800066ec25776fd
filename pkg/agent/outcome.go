package agent

import (
	"github.com/RoboJunior/Coding-Buddy/pkg/protocol"
)

// Reduce folds an ordered event sequence into the wire outcome. This is a
// fold with overwrite semantics, not an accumulation: each event replaces
// the matching outcome field, so only the most recent tool-call batch, the
// most recent tool-result batch, and the last final answer survive. The
// single-shot request/response surface only ever reports the run's latest
// state.
//
// A run that never produced a final answer leaves FinalResponse empty; the
// wire encoding omits the field rather than reporting an error.
func Reduce(events []Event) protocol.Outcome {
	var outcome protocol.Outcome

	for _, ev := range events {
		switch ev.Kind {
		case EventToolCalls:
			outcome.FunctionCalls = ev.ToolCalls
		case EventToolResults:
			outcome.FunctionResponses = ev.ToolResults
		case EventFinalAnswer:
			outcome.FinalResponse = ev.FinalAnswer
		}
	}

	return outcome
}
