package toolkit

import (
	"fmt"
	"sync"

	"github.com/firebase/genkit/go/ai"
)

// Set is the ordered collection of tools owned by one agent.
//
// Tools may be added at runtime; duplicate names are rejected with
// ErrDuplicateTool and leave the Set unchanged. Safe for concurrent use.
type Set struct {
	mu     sync.RWMutex
	byName map[string]*Tool
	order  []*Tool
}

// NewSet creates a Set holding the given tools.
// Fails with ErrDuplicateTool on a name collision.
func NewSet(tools ...*Tool) (*Set, error) {
	s := &Set{byName: make(map[string]*Tool, len(tools))}
	for _, t := range tools {
		if err := s.Add(t); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add registers a tool. A name collision fails with ErrDuplicateTool and the
// existing tool stays in place.
func (s *Set) Add(t *Tool) error {
	if t == nil {
		return fmt.Errorf("tool is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byName[t.Name()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateTool, t.Name())
	}
	s.byName[t.Name()] = t
	s.order = append(s.order, t)
	return nil
}

// Lookup returns the tool registered under name.
func (s *Set) Lookup(name string) (*Tool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.byName[name]
	return t, ok
}

// Tools returns the tools in registration order.
func (s *Set) Tools() []*Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Tool, len(s.order))
	copy(out, s.order)
	return out
}

// Refs returns the Genkit tool references in registration order,
// ready for ai.WithTools.
func (s *Set) Refs() []ai.ToolRef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	refs := make([]ai.ToolRef, len(s.order))
	for i, t := range s.order {
		refs[i] = t.Ref()
	}
	return refs
}

// Len returns the number of registered tools.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
