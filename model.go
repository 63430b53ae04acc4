package toolagent

import "context"

// Model is the decision-making collaborator. Given the running
// conversation and the declared tool surface, it returns either a
// final answer or one or more tool-invocation requests.
//
// The wire protocol with the underlying provider is out of scope; this
// contract is all the loop depends on. The models subpackage adapts
// LangChainGo providers to it.
type Model interface {
	// Decide consults the model. A transport fault or a response the
	// adapter cannot interpret is returned as an error, which the loop
	// treats as fatal (no retries).
	Decide(ctx context.Context, conversation Conversation, specs []ToolSpec) (*Decision, error)
}

// ToolRequest is one tool invocation the model asked for.
type ToolRequest struct {
	Name string
	Args map[string]any
}

// Decision is the model's verdict for one Thinking step: either a
// final answer, or tool requests to execute before consulting it
// again.
type Decision struct {
	// Answer is the final natural-language answer. Meaningful only
	// when IsFinal reports true.
	Answer string

	// ToolRequests are executed sequentially, in order. Later requests
	// may depend on earlier results in the model's reasoning, so the
	// loop never reorders or parallelizes them.
	ToolRequests []ToolRequest
}

// IsFinal reports whether the decision ends the loop.
func (d *Decision) IsFinal() bool {
	return len(d.ToolRequests) == 0
}
