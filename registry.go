package toolagent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pushap-crossml/toolagent/schema"
)

// DefaultToolTimeout bounds side-effecting tool execution when no
// per-tool or per-registry override is configured.
const DefaultToolTimeout = 10 * time.Second

// Registry holds the declared tool set and executes invocations
// against it. It is the isolation boundary between the loop and tool
// code: lookup failures, argument mismatches, timeouts, handler errors
// and panics all come back as Result data, never as faults.
//
// A Registry is populated once at process start and read-only
// afterwards, so it is safe to share across concurrent sessions.
type Registry struct {
	tools   map[string]Tool
	schemas map[string]*schema.Schema
	order   []string
	timeout time.Duration
	logger  *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithToolTimeout sets the default execution budget for side-effecting
// tools.
func WithToolTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) {
		r.timeout = d
	}
}

// WithRegistryLogger sets the logger used for invocation logging.
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		tools:   make(map[string]Tool),
		schemas: make(map[string]*schema.Schema),
		timeout: DefaultToolTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a tool, compiling its argument schema for validation.
// Registration happens at process start; a duplicate name or an
// invalid schema is a configuration error, not a runtime condition.
func (r *Registry) Register(t Tool) error {
	name := t.Name()
	if name == "" {
		return fmt.Errorf("tool has empty name")
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %q already registered", name)
	}

	compiled, err := schema.Compile(t.Schema())
	if err != nil {
		return fmt.Errorf("tool %q schema: %w", name, err)
	}

	r.tools[name] = t
	r.schemas[name] = compiled
	r.order = append(r.order, name)
	return nil
}

// MustRegister is like Register but panics on error. Convenient for
// the fixed tool set wired up in main.
func (r *Registry) MustRegister(t Tool) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Specs returns the model-facing descriptions of all registered tools,
// in registration order.
func (r *Registry) Specs() []ToolSpec {
	specs := make([]ToolSpec, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		specs = append(specs, ToolSpec{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Schema(),
		})
	}
	return specs
}

// Invoke executes a named tool against an argument map and returns the
// outcome as data. The sequence is lookup, schema validation, bounded
// handler execution; the first step that fails short-circuits the
// rest. A panicking handler is recovered into a Failure.
//
// The execution budget is enforced at the deadline even against a
// handler that ignores its context: the call is abandoned and its late
// result discarded.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) Result {
	t, ok := r.tools[name]
	if !ok {
		r.logger.Warn("tool invocation for unknown tool", "tool", name)
		return Failure(fmt.Errorf("%w: %q", ErrUnknownTool, name))
	}

	if compiled := r.schemas[name]; compiled != nil {
		if err := compiled.Validate(args); err != nil {
			r.logger.Warn("tool arguments rejected", "tool", name, "error", err)
			return Failure(fmt.Errorf("%w: %v", ErrInvalidArguments, err))
		}
	}

	if budget := r.budgetFor(t); budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	start := time.Now()

	type handlerOutcome struct {
		value any
		err   error
	}
	// Buffered so an abandoned handler's send never blocks and its
	// goroutine always exits.
	outcomeCh := make(chan handlerOutcome, 1)
	go func() {
		value, err := r.callRecovered(ctx, t, args)
		outcomeCh <- handlerOutcome{value: value, err: err}
	}()

	var value any
	var err error
	select {
	case out := <-outcomeCh:
		value, err = out.value, out.err
	case <-ctx.Done():
		err = ctx.Err()
	}
	duration := time.Since(start)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("%w: %s after %s", ErrToolTimeout, name, duration.Round(time.Millisecond))
		}
		r.logger.Error("tool invocation failed",
			"tool", name, "duration", duration, "error", err)
		return Failure(err)
	}

	r.logger.Info("tool invocation succeeded", "tool", name, "duration", duration)
	return Success(value)
}

// budgetFor returns the execution budget for a tool: its own override
// if it declares one, otherwise the registry default for side-effecting
// tools. Pure tools run unbounded.
func (r *Registry) budgetFor(t Tool) time.Duration {
	if tt, ok := t.(ToolTimeout); ok && tt.Timeout() > 0 {
		return tt.Timeout()
	}
	if t.SideEffecting() {
		return r.timeout
	}
	return 0
}

// callRecovered runs the handler with panic recovery. One tool's bug
// must not take down the conversation.
func (r *Registry) callRecovered(ctx context.Context, t Tool, args map[string]any) (value any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("tool %s panicked: %v", t.Name(), p)
		}
	}()
	return t.Call(ctx, args)
}
