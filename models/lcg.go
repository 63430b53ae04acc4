// Package models adapts LangChainGo chat models to the toolagent.Model
// contract. LCGWrapper is the generic adapter; provider constructors
// such as NewOpenAIModel build a ready-to-use wrapper from credentials.
package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"github.com/pushap-crossml/toolagent"
)

// ErrEmptyResponse is returned when the provider answers with no
// choices at all. The loop treats it as a fatal model failure.
var ErrEmptyResponse = errors.New("model returned an empty response")

// LCGWrapper wraps an llms.Model and implements toolagent.Model.
// It declares the registry's tool surface through the provider's
// native tool-calling API and maps returned tool calls back into
// toolagent.ToolRequest values.
//
// Example usage:
//
//	llm, _ := openai.New(openai.WithToken(apiKey))
//	model := models.NewLCGWrapper(llm).WithModelName("gpt-4o-mini")
type LCGWrapper struct {
	model     llms.Model
	modelName string // Optional, attached as llms.WithModel when set.
}

// NewLCGWrapper creates a new LCGWrapper wrapping the given llms.Model.
func NewLCGWrapper(model llms.Model) *LCGWrapper {
	return &LCGWrapper{model: model}
}

// WithModelName sets the provider model name requested on each call.
// Returns the wrapper for chaining.
func (m *LCGWrapper) WithModelName(name string) *LCGWrapper {
	m.modelName = name
	return m
}

// Unwrap returns the underlying llms.Model.
func (m *LCGWrapper) Unwrap() llms.Model {
	return m.model
}

// Decide implements toolagent.Model. The first choice of the provider
// response is authoritative: tool calls on it become ToolRequests, and
// a choice without tool calls is the final answer.
func (m *LCGWrapper) Decide(
	ctx context.Context,
	conversation toolagent.Conversation,
	specs []toolagent.ToolSpec,
) (*toolagent.Decision, error) {
	messages := translateConversation(conversation)

	opts := make([]llms.CallOption, 0, 2)
	if m.modelName != "" {
		opts = append(opts, llms.WithModel(m.modelName))
	}
	if len(specs) > 0 {
		opts = append(opts, llms.WithTools(translateSpecs(specs)))
	}

	response, err := m.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}
	if response == nil || len(response.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	choice := response.Choices[0]
	if len(choice.ToolCalls) == 0 {
		return &toolagent.Decision{Answer: choice.Content}, nil
	}

	requests := make([]toolagent.ToolRequest, 0, len(choice.ToolCalls))
	for _, call := range choice.ToolCalls {
		request, err := translateToolCall(call)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return &toolagent.Decision{ToolRequests: requests}, nil
}

// translateConversation maps conversation roles onto LangChainGo chat
// message types. Observations are rendered as human-role text naming
// the tool that produced them; the conversation carries no provider
// tool-call IDs, so native tool-role messages cannot be reconstructed.
func translateConversation(conversation toolagent.Conversation) []llms.MessageContent {
	messages := make([]llms.MessageContent, 0, len(conversation))
	for _, msg := range conversation {
		switch msg.Role {
		case toolagent.RoleSystem:
			messages = append(messages,
				llms.TextParts(llms.ChatMessageTypeSystem, msg.Content))
		case toolagent.RoleAssistant:
			messages = append(messages,
				llms.TextParts(llms.ChatMessageTypeAI, msg.Content))
		case toolagent.RoleObservation:
			messages = append(messages, llms.TextParts(
				llms.ChatMessageTypeHuman,
				fmt.Sprintf("Tool %s returned:\n%s", msg.ToolName, msg.Content)))
		default:
			messages = append(messages,
				llms.TextParts(llms.ChatMessageTypeHuman, msg.Content))
		}
	}
	return messages
}

// translateSpecs converts the registry's tool surface into the
// function-calling declarations providers expect.
func translateSpecs(specs []toolagent.ToolSpec) []llms.Tool {
	tools := make([]llms.Tool, 0, len(specs))
	for _, spec := range specs {
		tools = append(tools, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters:  spec.Parameters,
			},
		})
	}
	return tools
}

// translateToolCall decodes one provider tool call. Arguments arrive as
// a JSON object string; an empty string means no arguments.
func translateToolCall(call llms.ToolCall) (toolagent.ToolRequest, error) {
	if call.FunctionCall == nil {
		return toolagent.ToolRequest{}, errors.New("tool call without a function call")
	}

	args := map[string]any{}
	if raw := call.FunctionCall.Arguments; raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return toolagent.ToolRequest{}, fmt.Errorf(
				"decoding arguments for tool %q: %w", call.FunctionCall.Name, err)
		}
	}
	return toolagent.ToolRequest{Name: call.FunctionCall.Name, Args: args}, nil
}

// Compile-time check that LCGWrapper implements toolagent.Model.
var _ toolagent.Model = (*LCGWrapper)(nil)
