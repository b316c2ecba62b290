// Package tools holds the built-in tool implementations: arithmetic, chart
// and media generation, and web research. Each constructor declares its tools
// on a Genkit instance through the toolkit, so every call is instrumented.
package tools

import (
	"errors"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/parleyhq/parley/internal/toolkit"
)

// ErrDivisionByZero is returned by the Divide tool for a zero divisor.
var ErrDivisionByZero = errors.New("division by zero")

// Operands is the input for the arithmetic tools.
type Operands struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Math declares the four arithmetic tools.
func Math(g *genkit.Genkit) []*toolkit.Tool {
	return []*toolkit.Tool{
		toolkit.New(g, "Add", "Add two numbers, such as 6+3", add),
		toolkit.New(g, "Subtract", "Subtract two numbers, such as 6-3", subtract),
		toolkit.New(g, "Multiply", "Multiply two numbers, such as 6*3", multiply),
		toolkit.New(g, "Divide", "Divide two numbers, such as 6/3", divide),
	}
}

func add(_ *ai.ToolContext, in Operands) (float64, error) {
	return in.X + in.Y, nil
}

func subtract(_ *ai.ToolContext, in Operands) (float64, error) {
	return in.X - in.Y, nil
}

func multiply(_ *ai.ToolContext, in Operands) (float64, error) {
	return in.X * in.Y, nil
}

func divide(_ *ai.ToolContext, in Operands) (float64, error) {
	if in.Y == 0 {
		return 0, ErrDivisionByZero
	}
	return in.X / in.Y, nil
}

// Register adds tools to a set, stopping at the first failure.
func Register(set *toolkit.Set, tools ...*toolkit.Tool) error {
	for _, t := range tools {
		if err := set.Add(t); err != nil {
			return err
		}
	}
	return nil
}
