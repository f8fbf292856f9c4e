package ue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanLayout_TwoNeuronsTwentyTrials(t *testing.T) {
	l, err := PlanLayout(2, 20, 15)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 16, 22, 37}, l.TickPositions)
	assert.Equal(t, []int{1, 15, 1, 15}, l.TickLabels)
	assert.Equal(t, []int{21}, l.Separators)

	bottom, top := l.YLimits()
	assert.Equal(t, 0, bottom)
	assert.Equal(t, 43, top)
}

func TestPlanLayout_Offsets(t *testing.T) {
	l, err := PlanLayout(3, 5, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, l.Offset(0, 0))
	assert.Equal(t, 5, l.Offset(0, 4))
	assert.Equal(t, 7, l.Offset(1, 0))
	assert.Equal(t, 13, l.Offset(2, 0))
}

func TestPlanLayout_BlocksNeverOverlap(t *testing.T) {
	for _, c := range []struct{ n, t, i int }{{1, 1, 1}, {2, 20, 15}, {4, 7, 3}, {3, 100, 10}} {
		l, err := PlanLayout(c.n, c.t, c.i)
		require.NoError(t, err)

		for n := 0; n < c.n; n++ {
			for tr := 0; tr+1 < c.t; tr++ {
				assert.Less(t, l.Offset(n, tr), l.Offset(n, tr+1), "strictly increasing in trial")
			}
			if n+1 < c.n {
				assert.Greater(t, l.Offset(n+1, 0), l.Offset(n, c.t-1), "blocks do not overlap")
			}
		}
	}
}

func TestPlanLayout_TickInvariants(t *testing.T) {
	for _, c := range []struct{ n, t, i int }{{1, 1, 1}, {2, 20, 15}, {2, 30, 15}, {4, 7, 3}, {3, 100, 10}, {2, 5, 1}} {
		l, err := PlanLayout(c.n, c.t, c.i)
		require.NoError(t, err)

		require.Equal(t, len(l.TickPositions), len(l.TickLabels))
		assert.IsIncreasing(t, l.TickPositions)
		assert.Len(t, l.Separators, c.n-1)

		perBlock := len(l.TickLabels) / c.n
		for n := 0; n < c.n; n++ {
			block := l.TickLabels[n*perBlock : (n+1)*perBlock]
			assert.Equal(t, 1, block[0], "labels reset to 1 at each block")
			assert.IsNonDecreasing(t, block)
			assert.Equal(t, l.TickLabels[:perBlock], block, "identical labels for every block")

			for _, pos := range l.TickPositions[n*perBlock : (n+1)*perBlock] {
				assert.GreaterOrEqual(t, pos, l.Offset(n, 0))
				assert.LessOrEqual(t, pos, l.Offset(n, c.t-1), "ticks stay inside the block")
			}
		}

		for i, sep := range l.Separators {
			assert.Equal(t, l.Offset(i+1, 0)-1, sep)
		}
	}
}

func TestPlanLayout_Invalid(t *testing.T) {
	for _, c := range []struct {
		name    string
		n, t, i int
		field   string
	}{
		{"no neurons", 0, 10, 5, "neurons"},
		{"no trials", 2, 0, 5, "trials"},
		{"no interval", 2, 10, 0, "tick_interval"},
		{"negative interval", 2, 10, -1, "tick_interval"},
	} {
		t.Run(c.name, func(t *testing.T) {
			_, err := PlanLayout(c.n, c.t, c.i)
			require.Error(t, err)
			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, ErrCodeInvalidParameter, e.Code)
			assert.Equal(t, c.field, e.Field)
		})
	}
}
