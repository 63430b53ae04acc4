// Package eval implements a restricted arithmetic expression evaluator.
//
// The grammar admits numeric literals, parentheses, and the binary
// operators +, -, *, / and ^, and nothing else. Identifiers, function
// calls, comparisons, and every other construct are rejected at parse
// time with [ErrUnsupportedConstruct]. Safety comes from the shape of
// the syntax tree itself: the only node kinds that exist are literals
// and allow-listed binary operations, so a parsed expression is
// structurally incapable of representing anything dangerous.
//
//	value, err := eval.Evaluate("(234 * 12) + 98") // 2906
package eval

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrParse indicates the input is not a well-formed expression
	// (unbalanced parentheses, dangling operator, empty input).
	ErrParse = errors.New("eval: parse error")

	// ErrUnsupportedConstruct indicates the input contains a lexical or
	// syntactic element outside the allowed grammar, such as an
	// identifier, function call, or comparison operator.
	ErrUnsupportedConstruct = errors.New("eval: unsupported construct")

	// ErrDivisionByZero indicates a division whose right operand
	// evaluated to zero.
	ErrDivisionByZero = errors.New("eval: division by zero")
)

// SyntaxError wraps ErrParse or ErrUnsupportedConstruct with the byte
// position where parsing failed.
type SyntaxError struct {
	Pos    int
	Detail string
	err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at position %d: %s", e.err, e.Pos, e.Detail)
}

func (e *SyntaxError) Unwrap() error { return e.err }

// expr is a node in the restricted syntax tree. The two implementations
// below are the complete set of node kinds; the evaluator never needs a
// default case because the parser cannot produce anything else.
type expr interface {
	eval() (float64, error)
}

type literal struct {
	value float64
}

func (l literal) eval() (float64, error) {
	return l.value, nil
}

type binary struct {
	op          rune
	left, right expr
}

func (b binary) eval() (float64, error) {
	left, err := b.left.eval()
	if err != nil {
		return 0, err
	}
	right, err := b.right.eval()
	if err != nil {
		return 0, err
	}

	switch b.op {
	case '+':
		return left + right, nil
	case '-':
		return left - right, nil
	case '*':
		return left * right, nil
	case '/':
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		return left / right, nil
	case '^':
		return math.Pow(left, right), nil
	}
	// Unreachable: the parser only builds nodes for the five operators.
	return 0, fmt.Errorf("%w: operator %q", ErrUnsupportedConstruct, b.op)
}

// Evaluate parses and evaluates a restricted arithmetic expression.
//
// Standard precedence applies: ^ binds tightest (right-associative),
// then * and /, then + and -, all overridable with parentheses. The
// syntax tree is discarded after the call.
//
// Errors are classified with errors.Is:
//   - [ErrUnsupportedConstruct] for any disallowed token or construct
//   - [ErrParse] for malformed but otherwise allowed input
//   - [ErrDivisionByZero] for a zero divisor at evaluation time
func Evaluate(expression string) (float64, error) {
	p := &parser{input: expression}
	root, err := p.parse()
	if err != nil {
		return 0, err
	}
	return root.eval()
}
