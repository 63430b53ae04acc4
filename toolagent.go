// Package toolagent implements a small tool-calling agent: a registry
// of schema-typed tools, an invoker that turns tool faults into data,
// and an iterative loop that alternates between consulting a decision
// model and executing the tool calls it requests.
//
// The package root holds the core contracts (Tool, Model, Registry,
// Loop). Concern-specific subpackages build on them: eval (restricted
// arithmetic), tools (the built-in tool set), models (model adapters),
// memory (long-term store), and session (interactive multi-turn use).
//
// A minimal run:
//
//	reg := toolagent.NewRegistry()
//	reg.Register(tools.NewCalculator())
//
//	loop := toolagent.NewLoop(model, reg, toolagent.DefaultLoopConfig())
//	outcome := loop.Run(ctx, toolagent.Conversation{
//	    {Role: toolagent.RoleSystem, Content: systemPrompt},
//	    {Role: toolagent.RoleUser, Content: "What is (234 * 12) + 98?"},
//	})
package toolagent

import (
	"encoding/json"
	"fmt"
)

// Role tags a conversation message.
type Role string

const (
	RoleSystem      Role = "system"
	RoleUser        Role = "user"
	RoleAssistant   Role = "assistant"
	RoleObservation Role = "observation"
)

// Message is a single conversation entry. Observation messages carry
// the name of the tool that produced them and its Result.
type Message struct {
	Role    Role
	Content string

	// ToolName and Result are set only for RoleObservation.
	ToolName string
	Result   *Result
}

// Conversation is an ordered, append-only message sequence. One loop
// run owns its conversation exclusively; callers that want history
// across runs keep their own copy (see the session package).
type Conversation []Message

// Append returns a new conversation with msg added. Entries are never
// mutated in place, which keeps transcripts replayable.
func (c Conversation) Append(msg Message) Conversation {
	out := make(Conversation, len(c), len(c)+1)
	copy(out, c)
	return append(out, msg)
}

// Result is the outcome of one tool invocation, materialized as data.
// Tool faults never cross the invoker boundary as Go errors; they
// arrive here as a non-nil Err the model can reason about.
type Result struct {
	// Value is the tool's output on success: a string or a
	// JSON-serializable structure.
	Value any

	// Err is set when the invocation failed. Classify with errors.Is
	// against the ErrUnknownTool / ErrInvalidArguments / ErrToolTimeout
	// sentinels.
	Err error
}

// Success wraps a tool output value.
func Success(value any) Result {
	return Result{Value: value}
}

// Failure wraps a tool failure.
func Failure(err error) Result {
	return Result{Err: err}
}

// Failed reports whether the invocation failed.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Render formats the result as observation text for model consumption.
// String values pass through untouched; structured values are
// serialized as JSON; failures become an explicit error line.
func (r Result) Render() string {
	if r.Err != nil {
		return fmt.Sprintf("error: %v", r.Err)
	}
	if s, ok := r.Value.(string); ok {
		return s
	}
	data, err := json.Marshal(r.Value)
	if err != nil {
		return fmt.Sprintf("error: unserializable tool output: %v", err)
	}
	return string(data)
}

// ToolSpec is the model-facing description of one tool: what the
// model ecosystem sees when deciding what to call.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]any
}
