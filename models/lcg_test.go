package models

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/pushap-crossml/toolagent"
)

// fakeLLM is a canned llms.Model that records what it was called with.
type fakeLLM struct {
	response *llms.ContentResponse
	err      error

	gotMessages []llms.MessageContent
	gotOptions  llms.CallOptions
}

func (f *fakeLLM) GenerateContent(
	_ context.Context,
	messages []llms.MessageContent,
	options ...llms.CallOption,
) (*llms.ContentResponse, error) {
	f.gotMessages = messages
	for _, opt := range options {
		opt(&f.gotOptions)
	}
	return f.response, f.err
}

func (f *fakeLLM) Call(context.Context, string, ...llms.CallOption) (string, error) {
	return "", errors.New("not implemented")
}

func textOf(t *testing.T, msg llms.MessageContent) string {
	t.Helper()
	require.Len(t, msg.Parts, 1)
	part, ok := msg.Parts[0].(llms.TextContent)
	require.True(t, ok, "expected a text part")
	return part.Text
}

func TestLCGWrapper_FinalAnswer(t *testing.T) {
	llm := &fakeLLM{response: &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: "The answer is 42."}},
	}}
	model := NewLCGWrapper(llm).WithModelName("gpt-4o-mini")

	conversation := toolagent.Conversation{
		{Role: toolagent.RoleSystem, Content: "You are a helpful assistant."},
		{Role: toolagent.RoleUser, Content: "What is six times seven?"},
	}
	specs := []toolagent.ToolSpec{{
		Name:        "math_calculator",
		Description: "Evaluates arithmetic expressions.",
		Parameters:  map[string]any{"type": "object"},
	}}

	decision, err := model.Decide(context.Background(), conversation, specs)

	require.NoError(t, err)
	assert.True(t, decision.IsFinal())
	assert.Equal(t, "The answer is 42.", decision.Answer)

	require.Len(t, llm.gotMessages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, llm.gotMessages[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, llm.gotMessages[1].Role)
	assert.Equal(t, "What is six times seven?", textOf(t, llm.gotMessages[1]))

	assert.Equal(t, "gpt-4o-mini", llm.gotOptions.Model)
	require.Len(t, llm.gotOptions.Tools, 1)
	assert.Equal(t, "math_calculator", llm.gotOptions.Tools[0].Function.Name)
}

func TestLCGWrapper_ToolCallsBecomeRequests(t *testing.T) {
	llm := &fakeLLM{response: &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{
			ToolCalls: []llms.ToolCall{
				{FunctionCall: &llms.FunctionCall{
					Name:      "math_calculator",
					Arguments: `{"expression": "6 * 7"}`,
				}},
				{FunctionCall: &llms.FunctionCall{
					Name:      "date_offset",
					Arguments: "",
				}},
			},
		}},
	}}
	model := NewLCGWrapper(llm)

	decision, err := model.Decide(context.Background(), toolagent.Conversation{
		{Role: toolagent.RoleUser, Content: "calc then date"},
	}, nil)

	require.NoError(t, err)
	assert.False(t, decision.IsFinal())
	require.Len(t, decision.ToolRequests, 2)
	assert.Equal(t, "math_calculator", decision.ToolRequests[0].Name)
	assert.Equal(t, map[string]any{"expression": "6 * 7"}, decision.ToolRequests[0].Args)
	assert.Equal(t, "date_offset", decision.ToolRequests[1].Name)
	assert.Empty(t, decision.ToolRequests[1].Args)
}

func TestLCGWrapper_ObservationsRenderedAsText(t *testing.T) {
	llm := &fakeLLM{response: &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: "done"}},
	}}
	model := NewLCGWrapper(llm)

	result := toolagent.Success("Result: 42")
	_, err := model.Decide(context.Background(), toolagent.Conversation{
		{Role: toolagent.RoleUser, Content: "What is six times seven?"},
		{
			Role:     toolagent.RoleObservation,
			ToolName: "math_calculator",
			Result:   &result,
			Content:  "Result: 42",
		},
	}, nil)

	require.NoError(t, err)
	require.Len(t, llm.gotMessages, 2)
	assert.Equal(t, llms.ChatMessageTypeHuman, llm.gotMessages[1].Role)
	assert.Equal(t, "Tool math_calculator returned:\nResult: 42", textOf(t, llm.gotMessages[1]))
}

func TestLCGWrapper_Failures(t *testing.T) {
	testCases := []struct {
		name     string
		llm      *fakeLLM
		expected string
	}{
		{
			name:     "transport error",
			llm:      &fakeLLM{err: errors.New("connection reset")},
			expected: "generating content",
		},
		{
			name:     "no choices",
			llm:      &fakeLLM{response: &llms.ContentResponse{}},
			expected: "empty response",
		},
		{
			name: "tool call without function call",
			llm: &fakeLLM{response: &llms.ContentResponse{
				Choices: []*llms.ContentChoice{{
					ToolCalls: []llms.ToolCall{{ID: "call_1"}},
				}},
			}},
			expected: "without a function call",
		},
		{
			name: "undecodable arguments",
			llm: &fakeLLM{response: &llms.ContentResponse{
				Choices: []*llms.ContentChoice{{
					ToolCalls: []llms.ToolCall{
						{FunctionCall: &llms.FunctionCall{
							Name:      "math_calculator",
							Arguments: "{not json",
						}},
					},
				}},
			}},
			expected: `decoding arguments for tool "math_calculator"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			model := NewLCGWrapper(tc.llm)

			decision, err := model.Decide(context.Background(), toolagent.Conversation{
				{Role: toolagent.RoleUser, Content: "hi"},
			}, nil)

			require.Error(t, err)
			assert.Nil(t, decision)
			assert.Contains(t, err.Error(), tc.expected)
		})
	}

	t.Run("no choices is ErrEmptyResponse", func(t *testing.T) {
		model := NewLCGWrapper(&fakeLLM{response: &llms.ContentResponse{}})
		_, err := model.Decide(context.Background(), nil, nil)
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})
}

func TestNewOpenAIModel_RequiresKey(t *testing.T) {
	model, err := NewOpenAIModel("gpt-4o-mini", "")

	require.Error(t, err)
	assert.Nil(t, model)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}
