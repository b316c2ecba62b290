// Package toolkit provides tool declaration and instrumentation for the
// agent.
//
// A Tool pairs an identity (name, description) with a typed Genkit
// registration. Handlers are wrapped by Instrument before registration, so
// every call the model makes is timed, recorded into the active invocation,
// and mined for attachments - while the model still sees the handler's
// original parameter schema.
package toolkit

import (
	"errors"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// ErrDuplicateTool is returned when a tool name collides with one already in
// a Set. The Set is left unchanged.
var ErrDuplicateTool = errors.New("duplicate tool name")

// Tool is an immutable descriptor for one callable capability.
type Tool struct {
	name        string
	description string
	ref         ai.Tool
}

// Name returns the tool's unique identifier.
func (t *Tool) Name() string { return t.name }

// Description returns the tool's functionality description.
// The model uses this to decide when to call the tool.
func (t *Tool) Description() string { return t.description }

// Ref returns the Genkit registration used by the completion call.
func (t *Tool) Ref() ai.ToolRef { return t.ref }

// New registers an instrumented tool with Genkit and returns its descriptor.
//
// The handler keeps its typed signature through instrumentation, so Genkit
// derives the same input schema it would for the bare handler.
//
// Example:
//
//	add := toolkit.New(g, "Add", "Add two numbers, such as 6+3",
//	    func(ctx *ai.ToolContext, in Operands) (float64, error) {
//	        return in.X + in.Y, nil
//	    })
func New[In, Out any](
	g *genkit.Genkit,
	name, description string,
	fn func(*ai.ToolContext, In) (Out, error),
) *Tool {
	ref := genkit.DefineTool(g, name, description, Instrument(name, fn))
	return &Tool{
		name:        name,
		description: description,
		ref:         ref,
	}
}
