// Package invocation provides the per-response-generation accumulator for
// tool-usage records and harvested attachments.
//
// One Recorder is created at the start of each response generation and bound
// to that generation's context.Context. Instrumented tools resolve the
// Recorder from their call context, so concurrent generations never see each
// other's records. The Recorder is discarded with the generation's context;
// there is no shared global to tear down.
package invocation

import (
	"errors"
	"sync"
	"time"

	"github.com/parleyhq/parley/internal/attachment"
)

// ErrNotActive is returned when an instrumented tool executes outside any
// active invocation. This is a wiring defect (a tool invoked without going
// through the agent), not a runtime condition.
var ErrNotActive = errors.New("no active invocation recorder")

// ToolUsage is one record of a tool call made during a response generation.
type ToolUsage struct {
	ToolName  string        `json:"tool_name"`
	Args      any           `json:"args"`
	Result    any           `json:"result"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
}

// Recorder accumulates tool-usage records and attachments for a single
// response generation. Appends are safe under concurrent tool calls from the
// same generation; ordering among concurrent appends is unspecified but each
// record is stored atomically.
type Recorder struct {
	mu          sync.Mutex
	usage       []ToolUsage
	attachments []attachment.Attachment
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// RecordUsage appends one tool-usage record.
func (r *Recorder) RecordUsage(u ToolUsage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.usage = append(r.usage, u)
}

// AddAttachments appends harvested attachments in the given order.
func (r *Recorder) AddAttachments(as ...attachment.Attachment) {
	if len(as) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attachments = append(r.attachments, as...)
}

// Usage returns a snapshot of the accumulated tool-usage records.
func (r *Recorder) Usage() []ToolUsage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ToolUsage, len(r.usage))
	copy(out, r.usage)
	return out
}

// Attachments returns a snapshot of the accumulated attachments.
func (r *Recorder) Attachments() []attachment.Attachment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]attachment.Attachment, len(r.attachments))
	copy(out, r.attachments)
	return out
}
