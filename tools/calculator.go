package tools

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pushap-crossml/toolagent"
	"github.com/pushap-crossml/toolagent/eval"
	"github.com/pushap-crossml/toolagent/schema"
)

// CalculatorInput holds the expression to evaluate.
type CalculatorInput struct {
	Expression string `json:"expression"`
}

// NewCalculator returns the math_calculator tool. It evaluates basic
// arithmetic through the eval package's restricted grammar, so the
// model gets exact arithmetic without any general code execution.
func NewCalculator() *toolagent.ToolFunc[CalculatorInput, string] {
	return toolagent.NewToolFunc(
		"math_calculator",
		"Safely evaluate a basic arithmetic expression using +, -, *, / and ^ "+
			"with parentheses, e.g. \"(234 * 12) + 98\". No variables or functions.",
		schema.Object(map[string]*schema.Property{
			"expression": schema.String("Arithmetic expression to evaluate"),
		}, "expression"),
		calculate,
	)
}

func calculate(_ context.Context, input CalculatorInput) (string, error) {
	value, err := eval.Evaluate(input.Expression)
	if err != nil {
		return "", fmt.Errorf("evaluating expression: %w", err)
	}
	return "Result: " + strconv.FormatFloat(value, 'f', -1, 64), nil
}
