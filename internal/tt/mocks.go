// Package tt provides shared test doubles for the toolagent packages.
package tt

import (
	"context"

	"github.com/pushap-crossml/toolagent"
)

// MockModel is a scripted toolagent.Model. Queue decisions and errors
// in the order the test expects Decide to be called; the mock replays
// them and captures every request for later assertions.
type MockModel struct {
	decisions []*toolagent.Decision
	errs      []error
	calls     int

	// CapturedConversations stores the conversation passed to each
	// Decide call.
	CapturedConversations []toolagent.Conversation

	// CapturedSpecs stores the tool specs passed to each Decide call.
	CapturedSpecs [][]toolagent.ToolSpec

	// Repeat, when true, replays the last queued decision forever once
	// the queue is exhausted. Used for iteration-limit tests.
	Repeat bool
}

// NewMockModel creates an empty MockModel.
func NewMockModel() *MockModel {
	return &MockModel{}
}

// AddAnswer queues a final-answer decision.
func (m *MockModel) AddAnswer(text string) *MockModel {
	m.decisions = append(m.decisions, &toolagent.Decision{Answer: text})
	m.errs = append(m.errs, nil)
	return m
}

// AddToolRequests queues a decision requesting the given tool calls.
func (m *MockModel) AddToolRequests(requests ...toolagent.ToolRequest) *MockModel {
	m.decisions = append(m.decisions, &toolagent.Decision{ToolRequests: requests})
	m.errs = append(m.errs, nil)
	return m
}

// AddError queues a Decide failure.
func (m *MockModel) AddError(err error) *MockModel {
	m.decisions = append(m.decisions, nil)
	m.errs = append(m.errs, err)
	return m
}

// Calls returns how many times Decide has been invoked.
func (m *MockModel) Calls() int {
	return m.calls
}

// Decide implements toolagent.Model.
func (m *MockModel) Decide(
	_ context.Context,
	conversation toolagent.Conversation,
	specs []toolagent.ToolSpec,
) (*toolagent.Decision, error) {
	m.calls++
	m.CapturedConversations = append(m.CapturedConversations, conversation)
	m.CapturedSpecs = append(m.CapturedSpecs, specs)

	index := m.calls - 1
	if index >= len(m.decisions) {
		if m.Repeat && len(m.decisions) > 0 {
			index = len(m.decisions) - 1
		} else {
			return &toolagent.Decision{Answer: "mock exhausted"}, nil
		}
	}

	if err := m.errs[index]; err != nil {
		return nil, err
	}
	return m.decisions[index], nil
}

var _ toolagent.Model = (*MockModel)(nil)
