package conversation

import (
	"github.com/firebase/genkit/go/ai"
)

// DefaultMaxTurns bounds a history when no explicit limit is given.
const DefaultMaxTurns = 10

// History is a bounded, ordered log of turns for one conversation thread.
//
// The bound is strict FIFO: appending past maxTurns evicts the oldest turn
// first, so the history never holds more than maxTurns entries. Mutation is
// single-writer per thread; serialization is the session layer's job.
type History struct {
	turns    []Turn
	maxTurns int
	threadID string
}

// Option configures a History.
type Option func(*History)

// WithThreadID tags the history with the owning conversation thread.
func WithThreadID(id string) Option {
	return func(h *History) { h.threadID = id }
}

// New creates an empty history bounded to maxTurns entries.
// Non-positive bounds fall back to DefaultMaxTurns.
func New(maxTurns int, opts ...Option) *History {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	h := &History{maxTurns: maxTurns}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// AddTurn appends a turn, evicting from the front once the bound is hit.
func (h *History) AddTurn(t Turn) {
	h.turns = append(h.turns, t)
	for len(h.turns) > h.maxTurns {
		h.turns = h.turns[1:]
	}
}

// Turns returns a snapshot of the history in insertion order.
func (h *History) Turns() []Turn {
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Len returns the number of turns currently held.
func (h *History) Len() int { return len(h.turns) }

// MaxTurns returns the history bound.
func (h *History) MaxTurns() int { return h.maxTurns }

// ThreadID returns the owning thread identifier, if any.
func (h *History) ThreadID() string { return h.threadID }

// Messages translates the history into the completion service's message
// sequence: one {role, content} message per turn, in insertion order, with
// no attachments or metadata. Each call builds a fresh slice, so the
// sequence is restartable.
func (h *History) Messages() []*ai.Message {
	msgs := make([]*ai.Message, 0, len(h.turns))
	for _, t := range h.turns {
		msgs = append(msgs, t.Message())
	}
	return msgs
}
