package toolagent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Tool is a named, schema-typed function callable by the model.
//
// Responsibility split:
//   - Tool: accept validated arguments, execute logic, return output
//   - Registry: look up tools, validate arguments, bound execution,
//     convert faults into Result data
//
// Tools return plain Go errors; the registry owns the conversion to
// Failure results, so a tool implementation never needs to think about
// the invoker boundary.
type Tool interface {
	// Name returns the identifier used in tool-invocation requests.
	// Unique within a Registry.
	Name() string

	// Description returns a human-readable description for the model.
	Description() string

	// Schema returns the JSON Schema for the tool's arguments, or nil
	// if the tool takes none.
	Schema() map[string]any

	// SideEffecting reports whether the tool touches the outside world
	// (network, clock writes). Side-effecting tools run under the
	// registry's execution budget.
	SideEffecting() bool

	// Call executes the tool. Arguments have already been validated
	// against Schema when called through a Registry.
	Call(ctx context.Context, args map[string]any) (any, error)
}

// ToolTimeout is an optional interface for tools that want a tighter or
// looser execution budget than the registry default.
type ToolTimeout interface {
	Timeout() time.Duration
}

// ToolFunc adapts a typed Go function into a Tool. The argument map is
// decoded into I through a JSON round-trip, so I uses ordinary json
// struct tags matching the declared schema's property names.
type ToolFunc[I, O any] struct {
	name          string
	description   string
	schema        map[string]any
	sideEffecting bool
	timeout       time.Duration
	fn            func(ctx context.Context, input I) (O, error)
}

// NewToolFunc creates a ToolFunc with typed input and output.
func NewToolFunc[I, O any](
	name, description string,
	schema map[string]any,
	fn func(ctx context.Context, input I) (O, error),
) *ToolFunc[I, O] {
	return &ToolFunc[I, O]{
		name:        name,
		description: description,
		schema:      schema,
		fn:          fn,
	}
}

// WithSideEffects marks the tool as side-effecting. Returns the tool
// for chaining.
func (t *ToolFunc[I, O]) WithSideEffects() *ToolFunc[I, O] {
	t.sideEffecting = true
	return t
}

// WithTimeout sets a per-tool execution budget, overriding the registry
// default. Returns the tool for chaining.
func (t *ToolFunc[I, O]) WithTimeout(d time.Duration) *ToolFunc[I, O] {
	t.timeout = d
	return t
}

// Name returns the tool's identifier.
func (t *ToolFunc[I, O]) Name() string { return t.name }

// Description returns the tool's description for the model.
func (t *ToolFunc[I, O]) Description() string { return t.description }

// Schema returns the JSON Schema for the tool's arguments.
func (t *ToolFunc[I, O]) Schema() map[string]any { return t.schema }

// SideEffecting reports whether the tool was marked side-effecting.
func (t *ToolFunc[I, O]) SideEffecting() bool { return t.sideEffecting }

// Timeout returns the per-tool execution budget, or zero for the
// registry default.
func (t *ToolFunc[I, O]) Timeout() time.Duration { return t.timeout }

// Call decodes args into I and runs the underlying function.
func (t *ToolFunc[I, O]) Call(ctx context.Context, args map[string]any) (any, error) {
	encoded, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}

	var input I
	if err := json.Unmarshal(encoded, &input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}

	return t.fn(ctx, input)
}

// Compile-time check that ToolFunc implements Tool and ToolTimeout.
var (
	_ Tool        = (*ToolFunc[struct{}, struct{}])(nil)
	_ ToolTimeout = (*ToolFunc[struct{}, struct{}])(nil)
)
