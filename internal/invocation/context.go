package invocation

import (
	"context"
)

// recorderKey uses an empty struct for zero-allocation type safety.
type recorderKey struct{}

// NewContext binds a Recorder to the context. The agent derives one such
// context per Process call; everything on that call's execution path,
// including tool handlers driven by the completion service, resolves the
// same Recorder.
func NewContext(ctx context.Context, r *Recorder) context.Context {
	return context.WithValue(ctx, recorderKey{}, r)
}

// FromContext retrieves the Recorder bound to the context.
// Returns nil if no invocation is active.
func FromContext(ctx context.Context) *Recorder {
	r, _ := ctx.Value(recorderKey{}).(*Recorder)
	return r
}
