package simulation

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roman-kulish/daynight-periodogram/internal/param"
)

func TestGenerateTimeGrid_Regular(t *testing.T) {
	for _, n := range []int{2, 3, 10, 999, 1000, 10_000} {
		grid, err := GenerateTimeGrid(nil, 240, n, false)
		require.NoError(t, err)

		require.Len(t, grid, n)
		assert.Equal(t, 0.0, grid[0])
		assert.Equal(t, 240.0, grid[n-1])
		for i := 1; i < n; i++ {
			if grid[i] <= grid[i-1] {
				t.Fatalf("grid not strictly increasing at %d: %g <= %g", i, grid[i], grid[i-1])
			}
		}
	}
}

func TestGenerateTimeGrid_SingleObservation(t *testing.T) {
	grid, err := GenerateTimeGrid(nil, 50, 1, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, grid)
}

func TestGenerateTimeGrid_Irregular(t *testing.T) {
	src := rand.NewPCG(1, 2)

	grid, err := GenerateTimeGrid(src, 100, 500, true)
	require.NoError(t, err)
	require.Len(t, grid, 500)

	for i, v := range grid {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 100.0)
		if i > 0 {
			assert.GreaterOrEqual(t, v, grid[i-1])
		}
	}

	again, err := GenerateTimeGrid(rand.NewPCG(1, 2), 100, 500, true)
	require.NoError(t, err)
	assert.Equal(t, grid, again)
}

func TestGenerateTimeGrid_InvalidParameters(t *testing.T) {
	testCases := []struct {
		name     string
		duration float64
		n        int
	}{
		{"no observations", 10, 0},
		{"negative observations", 10, -5},
		{"zero duration", 0, 10},
		{"negative duration", -1, 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GenerateTimeGrid(rand.NewPCG(0, 0), tc.duration, tc.n, true)
			assert.ErrorIs(t, err, param.ErrInvalidParameter)
		})
	}
}
