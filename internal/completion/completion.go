// Package completion defines the boundary to the language-model completion
// service: given a message history and a set of callable tools, it produces
// a reply, driving zero or more tool calls internally.
package completion

import (
	"context"

	"github.com/firebase/genkit/go/ai"
)

// Request carries one response generation's inputs.
type Request struct {
	// Messages is the translated conversation history, oldest first,
	// ending with the new user message.
	Messages []*ai.Message

	// Tools are the capabilities the model may invoke. The agent supplies
	// them pre-instrumented, so every call is observed.
	Tools []ai.ToolRef

	// MaxToolRounds bounds the automatic tool-calling loop. Exceeding it is
	// reported by the service as an error, never retried here.
	MaxToolRounds int

	// Model optionally overrides the provider-qualified model name.
	Model string
}

// Response is the service's final reply for one generation.
type Response struct {
	Text         string
	ToolRequests []*ai.ToolRequest
}

// Service is the completion black box. Implementations must be safe for
// concurrent use; each call is independent.
type Service interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}
