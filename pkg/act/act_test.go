package act

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/scenekitt/pkg/scene"
	"github.com/kittclouds/scenekitt/pkg/script"
)

func sized(lengths ...int) []scene.Scene {
	out := make([]scene.Scene, len(lengths))
	for i, n := range lengths {
		content := make([]script.Event, n)
		for j := range content {
			content[j] = script.Line("A", fmt.Sprintf("%d-%d", i, j))
		}
		out[i] = scene.Scene{Content: content}
	}
	return out
}

func TestDivideTrailingPartialAct(t *testing.T) {
	scenes := sized(3000, 3000, 1000)

	acts, err := Divide(scenes, 5000)
	require.NoError(t, err)
	require.Len(t, acts, 2)

	assert.Len(t, acts[0], 2)
	assert.Equal(t, 6000, acts[0].Len())
	assert.Len(t, acts[1], 1)
	assert.Equal(t, 1000, acts[1].Len())
	assert.Equal(t, []int{0, 0, 1}, Index(acts))
}

func TestDivideBudgetLaw(t *testing.T) {
	scenes := sized(4, 1, 7, 2, 2, 9, 1, 1, 3, 5, 6, 2)
	const budget = 8

	acts, err := Divide(scenes, budget)
	require.NoError(t, err)

	var flat []scene.Scene
	for i, a := range acts {
		require.NotEmpty(t, a)
		flat = append(flat, a...)
		if i == len(acts)-1 {
			continue
		}
		assert.GreaterOrEqual(t, a.Len(), budget)
		assert.Less(t, a[:len(a)-1].Len(), budget, "act %d over-accumulates", i)
	}
	assert.Equal(t, scenes, flat)
}

func TestDivideExactBudget(t *testing.T) {
	acts, err := Divide(sized(5, 5), 5)
	require.NoError(t, err)
	assert.Len(t, acts, 2)
}

func TestDivideEmpty(t *testing.T) {
	acts, err := Divide(nil, DefaultBudget)
	require.NoError(t, err)
	assert.Empty(t, acts)
}

func TestDivideRejectsBadBudget(t *testing.T) {
	for _, b := range []int{0, -5} {
		_, err := Divide(sized(1), b)
		assert.ErrorIs(t, err, ErrInvalidBudget)
	}
}
