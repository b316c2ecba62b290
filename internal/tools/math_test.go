package tools

import (
	"context"
	"testing"

	"github.com/firebase/genkit/go/genkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyhq/parley/internal/toolkit"
)

func TestMathHandlers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func(in Operands) (float64, error)
		in   Operands
		want float64
	}{
		{"add", func(in Operands) (float64, error) { return add(nil, in) }, Operands{X: 6, Y: 3}, 9},
		{"subtract", func(in Operands) (float64, error) { return subtract(nil, in) }, Operands{X: 6, Y: 3}, 3},
		{"multiply", func(in Operands) (float64, error) { return multiply(nil, in) }, Operands{X: 6, Y: 3}, 18},
		{"divide", func(in Operands) (float64, error) { return divide(nil, in) }, Operands{X: 6, Y: 3}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.fn(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDivide_ByZero(t *testing.T) {
	t.Parallel()

	_, err := divide(nil, Operands{X: 1, Y: 0})
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestMath_DeclaresAllTools(t *testing.T) {
	t.Parallel()

	g := genkit.Init(context.Background())
	declared := Math(g)

	var names []string
	for _, tool := range declared {
		names = append(names, tool.Name())
	}
	assert.Equal(t, []string{"Add", "Subtract", "Multiply", "Divide"}, names)
}

func TestRegister_PropagatesDuplicate(t *testing.T) {
	t.Parallel()

	g := genkit.Init(context.Background())
	set, err := toolkit.NewSet()
	require.NoError(t, err)

	require.NoError(t, Register(set, Math(g)...))
	assert.Equal(t, 4, set.Len())

	g2 := genkit.Init(context.Background())
	err = Register(set, Math(g2)...)
	assert.ErrorIs(t, err, toolkit.ErrDuplicateTool)
	assert.Equal(t, 4, set.Len())
}
