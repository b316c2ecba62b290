package toolkit

import (
	"fmt"
	"time"

	"github.com/firebase/genkit/go/ai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/parleyhq/parley/internal/attachment"
	"github.com/parleyhq/parley/internal/invocation"
)

// tracerName identifies spans emitted around tool execution.
const tracerName = "parley/toolkit"

// Instrument wraps a typed tool handler so that every call is observed by
// the active invocation.
//
// On each call the wrapper:
//  1. resolves the invocation Recorder from the call context; a missing
//     Recorder means the tool ran outside the agent and fails with
//     invocation.ErrNotActive
//  2. opens a trace span and records the start time
//  3. invokes the handler; failures propagate unchanged and are not recorded
//  4. appends a tool-usage record (name, input, result, timing) and any
//     attachments harvested from the result
//  5. returns the unmodified result to the caller
//
// The wrapped function keeps the [In, Out] signature, so it can be passed to
// genkit.DefineTool directly and the model introspects the original
// parameter shape.
func Instrument[In, Out any](
	name string,
	fn func(*ai.ToolContext, In) (Out, error),
) func(*ai.ToolContext, In) (Out, error) {
	return func(ctx *ai.ToolContext, in In) (Out, error) {
		rec := invocation.FromContext(ctx.Context)
		if rec == nil {
			var zero Out
			return zero, fmt.Errorf("tool %q invoked outside an agent turn: %w", name, invocation.ErrNotActive)
		}

		spanCtx, span := otel.Tracer(tracerName).Start(ctx.Context, name+".execute")
		span.SetAttributes(attribute.String("tool.name", name))
		defer span.End()

		// Hand the span context to the handler so nested work nests under
		// the tool span. The copy keeps the rest of the ToolContext intact.
		toolCtx := *ctx
		toolCtx.Context = spanCtx

		start := time.Now()
		out, err := fn(&toolCtx, in)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return out, err
		}
		elapsed := time.Since(start)

		rec.RecordUsage(invocation.ToolUsage{
			ToolName:  name,
			Args:      in,
			Result:    out,
			StartTime: start,
			Duration:  elapsed,
		})
		rec.AddAttachments(attachment.Harvest(out)...)

		return out, nil
	}
}
