package toolkit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyhq/parley/internal/attachment"
	"github.com/parleyhq/parley/internal/invocation"
)

// operands is the shared input shape for the arithmetic test tools.
type operands struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func addHandler(_ *ai.ToolContext, in operands) (float64, error) {
	return in.X + in.Y, nil
}

func newAddTool(t *testing.T) *Tool {
	t.Helper()
	g := genkit.Init(context.Background())
	return New(g, "Add", "Add two numbers, such as 6+3", addHandler)
}

func activeToolContext(rec *invocation.Recorder) *ai.ToolContext {
	return &ai.ToolContext{Context: invocation.NewContext(context.Background(), rec)}
}

func TestNew_DescriptorFields(t *testing.T) {
	t.Parallel()

	tool := newAddTool(t)

	assert.Equal(t, "Add", tool.Name())
	assert.Equal(t, "Add two numbers, such as 6+3", tool.Description())
	assert.NotNil(t, tool.Ref())
}

func TestInstrument_RecordsUsageAndReturnsResult(t *testing.T) {
	t.Parallel()

	wrapped := Instrument("Add", addHandler)
	rec := invocation.NewRecorder()

	out, err := wrapped(activeToolContext(rec), operands{X: 2, Y: 3})
	require.NoError(t, err)
	assert.Equal(t, 5.0, out)

	usage := rec.Usage()
	require.Len(t, usage, 1)
	assert.Equal(t, "Add", usage[0].ToolName)
	assert.Equal(t, operands{X: 2, Y: 3}, usage[0].Args)
	assert.Equal(t, 5.0, usage[0].Result)
	assert.False(t, usage[0].StartTime.IsZero())
	assert.GreaterOrEqual(t, usage[0].Duration, time.Duration(0))
}

func TestInstrument_HarvestsAttachments(t *testing.T) {
	t.Parallel()

	chart := attachment.NewVerticalBarChart("Sales", []attachment.BarValue{{X: "Q1", Y: 10}})
	wrapped := Instrument("CreateVerticalBarChart",
		func(_ *ai.ToolContext, _ operands) (map[string]any, error) {
			return map[string]any{"chart": chart}, nil
		})

	rec := invocation.NewRecorder()
	_, err := wrapped(activeToolContext(rec), operands{})
	require.NoError(t, err)

	atts := rec.Attachments()
	require.Len(t, atts, 1)
	assert.Equal(t, chart, atts[0])
}

func TestInstrument_ErrorPropagatesUnrecorded(t *testing.T) {
	t.Parallel()

	boom := errors.New("division by zero")
	wrapped := Instrument("Divide",
		func(_ *ai.ToolContext, _ operands) (float64, error) {
			return 0, boom
		})

	rec := invocation.NewRecorder()
	_, err := wrapped(activeToolContext(rec), operands{X: 1, Y: 0})

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, rec.Usage())
	assert.Empty(t, rec.Attachments())
}

func TestInstrument_NoActiveInvocation(t *testing.T) {
	t.Parallel()

	wrapped := Instrument("Add", addHandler)
	toolCtx := &ai.ToolContext{Context: context.Background()}

	_, err := wrapped(toolCtx, operands{X: 1, Y: 1})
	assert.ErrorIs(t, err, invocation.ErrNotActive)
}

func TestSet_Add(t *testing.T) {
	t.Parallel()

	set, err := NewSet()
	require.NoError(t, err)

	tool := newAddTool(t)
	require.NoError(t, set.Add(tool))
	assert.Equal(t, 1, set.Len())

	got, ok := set.Lookup("Add")
	require.True(t, ok)
	assert.Same(t, tool, got)
}

func TestSet_DuplicateName(t *testing.T) {
	t.Parallel()

	original := newAddTool(t)
	set, err := NewSet(original)
	require.NoError(t, err)

	// Same name registered on a fresh Genkit instance.
	duplicate := newAddTool(t)
	err = set.Add(duplicate)

	assert.ErrorIs(t, err, ErrDuplicateTool)
	assert.Equal(t, 1, set.Len())

	kept, ok := set.Lookup("Add")
	require.True(t, ok)
	assert.Same(t, original, kept, "original tool must stay intact")
}

func TestSet_RefsPreserveOrder(t *testing.T) {
	t.Parallel()

	g := genkit.Init(context.Background())
	first := New(g, "First", "first tool", addHandler)
	second := New(g, "Second", "second tool", addHandler)

	set, err := NewSet(first, second)
	require.NoError(t, err)

	refs := set.Refs()
	require.Len(t, refs, 2)

	tools := set.Tools()
	assert.Equal(t, "First", tools[0].Name())
	assert.Equal(t, "Second", tools[1].Name())
}
