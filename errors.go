package toolagent

import "errors"

// Tool invocation errors. These are always converted to Result data at
// the invoker boundary; check with errors.Is on Result.Err.
var (
	// ErrUnknownTool indicates a request for a tool name that is not
	// registered.
	ErrUnknownTool = errors.New("toolagent: unknown tool")

	// ErrInvalidArguments indicates the argument map failed validation
	// against the tool's declared schema. The handler never ran.
	ErrInvalidArguments = errors.New("toolagent: invalid tool arguments")

	// ErrToolTimeout indicates the tool exceeded its execution budget.
	ErrToolTimeout = errors.New("toolagent: tool execution timeout")

	// ErrUpstreamFailure indicates a tool's external collaborator
	// (network API) failed or returned an unusable response.
	ErrUpstreamFailure = errors.New("toolagent: upstream failure")
)

// Loop termination errors. Unlike tool errors these do surface to the
// caller, as the Err of an aborted Outcome.
var (
	// ErrIterationLimit indicates the loop hit its configured iteration
	// cap before the model produced a final answer.
	ErrIterationLimit = errors.New("toolagent: iteration limit exceeded")

	// ErrModelFailure indicates the model collaborator failed
	// unrecoverably (transport fault, malformed response).
	ErrModelFailure = errors.New("toolagent: model failure")
)
