package invocation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyhq/parley/internal/attachment"
)

func TestRecorder_RecordUsage(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	assert.Empty(t, r.Usage())

	r.RecordUsage(ToolUsage{ToolName: "Add", Result: 5.0, Duration: time.Millisecond})

	usage := r.Usage()
	require.Len(t, usage, 1)
	assert.Equal(t, "Add", usage[0].ToolName)
	assert.Equal(t, 5.0, usage[0].Result)
}

func TestRecorder_AddAttachments(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.AddAttachments(
		attachment.Citation{Title: "a", URL: "https://example.com/a"},
		attachment.Citation{Title: "b", URL: "https://example.com/b"},
	)
	r.AddAttachments() // no-op

	assert.Len(t, r.Attachments(), 2)
}

func TestRecorder_SnapshotsAreCopies(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.RecordUsage(ToolUsage{ToolName: "Add"})

	first := r.Usage()
	first[0].ToolName = "mutated"

	assert.Equal(t, "Add", r.Usage()[0].ToolName)
}

func TestRecorder_ConcurrentAppends(t *testing.T) {
	t.Parallel()

	r := NewRecorder()

	const workers = 32
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(n int) {
			defer wg.Done()
			r.RecordUsage(ToolUsage{ToolName: fmt.Sprintf("tool-%d", n)})
			r.AddAttachments(attachment.Citation{Title: fmt.Sprintf("c-%d", n)})
		}(i)
	}
	wg.Wait()

	assert.Len(t, r.Usage(), workers)
	assert.Len(t, r.Attachments(), workers)
}

func TestContext_RoundTrip(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	ctx := NewContext(context.Background(), r)

	assert.Same(t, r, FromContext(ctx))
}

func TestContext_NotActive(t *testing.T) {
	t.Parallel()

	assert.Nil(t, FromContext(context.Background()))
}

func TestContext_IsolatedPerDerivation(t *testing.T) {
	t.Parallel()

	base := context.Background()
	r1, r2 := NewRecorder(), NewRecorder()

	ctx1 := NewContext(base, r1)
	ctx2 := NewContext(base, r2)

	assert.Same(t, r1, FromContext(ctx1))
	assert.Same(t, r2, FromContext(ctx2))
}
