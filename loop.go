package toolagent

import (
	"context"
	"fmt"
	"log/slog"
)

// State is the loop's current phase, exposed on iteration snapshots
// for observability.
type State string

const (
	// StateThinking means the loop is awaiting a model decision.
	StateThinking State = "thinking"

	// StateToolExecuting means the loop is executing requested tools.
	StateToolExecuting State = "tool_executing"

	// StateDone means the model produced a final answer.
	StateDone State = "done"

	// StateAborted means the loop terminated without an answer.
	StateAborted State = "aborted"
)

// AbortReason explains an aborted run.
type AbortReason string

const (
	// AbortIterationLimit: the Thinking/ToolExecuting round trips
	// exceeded the configured cap.
	AbortIterationLimit AbortReason = "iteration-limit"

	// AbortFatalError: the model call failed unrecoverably, or the
	// run's context was cancelled.
	AbortFatalError AbortReason = "fatal-error"
)

// Outcome is the terminal state of one loop run: a final answer, or
// an abort with its reason. The final conversation transcript is
// included for audit; it is owned by the caller from here on.
type Outcome struct {
	Answer       string
	Aborted      bool
	Reason       AbortReason
	Err          error
	Iterations   int
	Conversation Conversation
}

// LoopConfig tunes one Loop.
type LoopConfig struct {
	// MaxIterations caps Thinking/ToolExecuting round trips. Zero
	// falls back to DefaultMaxIterations; there is deliberately no
	// unlimited setting.
	MaxIterations int
}

// DefaultMaxIterations is the iteration cap applied when LoopConfig
// leaves it unset.
const DefaultMaxIterations = 10

// DefaultLoopConfig returns a config with sensible defaults.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{MaxIterations: DefaultMaxIterations}
}

// Loop drives the agent: consult the model, execute whatever tools it
// requested, append the observations, and consult again, until the
// model answers or a bound is hit.
//
// A Loop holds no per-run state. Run may be called concurrently; each
// call owns its conversation exclusively.
type Loop struct {
	model    Model
	registry *Registry
	config   LoopConfig
	logger   *slog.Logger
}

// NewLoop creates a Loop over the given model and registry.
func NewLoop(model Model, registry *Registry, config LoopConfig) *Loop {
	if config.MaxIterations <= 0 {
		config.MaxIterations = DefaultMaxIterations
	}
	return &Loop{
		model:    model,
		registry: registry,
		config:   config,
		logger:   slog.Default(),
	}
}

// WithLogger sets the loop's logger. Returns the loop for chaining.
func (l *Loop) WithLogger(logger *slog.Logger) *Loop {
	l.logger = logger
	return l
}

// Run executes the loop to completion, starting from the seed
// conversation (system instructions plus accumulated messages).
//
// Tool failures are not errors here: they are appended as observations
// for the model to reason about, and retry policy stays with the
// model. Only two things abort a run: the iteration cap, and a model
// call the adapter could not complete. Cancellation is honored between
// iterations, so an in-flight tool call finishes or times out cleanly
// before the abort.
func (l *Loop) Run(ctx context.Context, seed Conversation) *Outcome {
	conversation := seed

	for iteration := 1; iteration <= l.config.MaxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return l.abort(conversation, iteration-1, AbortFatalError, err)
		}

		l.logger.Debug("consulting model", "iteration", iteration, "state", StateThinking)

		decision, err := l.model.Decide(ctx, conversation, l.registry.Specs())
		if err != nil {
			return l.abort(conversation, iteration,
				AbortFatalError, fmt.Errorf("%w: %v", ErrModelFailure, err))
		}
		if decision == nil {
			return l.abort(conversation, iteration,
				AbortFatalError, fmt.Errorf("%w: nil decision", ErrModelFailure))
		}

		if decision.IsFinal() {
			l.logger.Info("loop done", "iterations", iteration, "state", StateDone)
			conversation = conversation.Append(Message{
				Role:    RoleAssistant,
				Content: decision.Answer,
			})
			return &Outcome{
				Answer:       decision.Answer,
				Iterations:   iteration,
				Conversation: conversation,
			}
		}

		// Sequential, order-preserving execution: a later request may
		// depend on an earlier observation in the model's reasoning.
		l.logger.Debug("executing tool requests",
			"iteration", iteration, "state", StateToolExecuting,
			"requests", len(decision.ToolRequests))

		for _, request := range decision.ToolRequests {
			result := l.registry.Invoke(ctx, request.Name, request.Args)
			conversation = conversation.Append(Message{
				Role:     RoleObservation,
				ToolName: request.Name,
				Result:   &result,
				Content:  result.Render(),
			})
		}
	}

	return l.abort(conversation, l.config.MaxIterations, AbortIterationLimit,
		fmt.Errorf("%w: %d iterations", ErrIterationLimit, l.config.MaxIterations))
}

func (l *Loop) abort(conversation Conversation, iterations int, reason AbortReason, err error) *Outcome {
	l.logger.Error("loop aborted", "state", StateAborted, "reason", reason, "error", err)
	return &Outcome{
		Aborted:      true,
		Reason:       reason,
		Err:          err,
		Iterations:   iterations,
		Conversation: conversation,
	}
}
