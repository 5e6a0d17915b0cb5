package simulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roman-kulish/daynight-periodogram/internal/param"
)

func TestApplyVisibility_FullCoverage(t *testing.T) {
	// t = 18 h sits exactly on the bottom of the gate sine
	times := []float64{0, 6, 12, 18, 24}
	signal := []float64{1, 2, 3, 4, 5}

	v, err := ApplyVisibility(times, signal, 1)
	require.NoError(t, err)

	assert.Equal(t, []bool{true, true, true, true, true}, v.Mask)
	assert.Equal(t, signal, v.Masked)
	assert.Equal(t, times, v.VisibleTimes)
	assert.Equal(t, signal, v.VisibleSignal)
	assert.Equal(t, 1.0, v.Fraction())
}

func TestApplyVisibility_ZeroFillPreservesAlignment(t *testing.T) {
	times := []float64{3, 9, 15, 21, 27}
	signal := []float64{1, 2, 3, 4, 5}

	v, err := ApplyVisibility(times, signal, 0.5)
	require.NoError(t, err)

	// sin(2πt/24) > 0 on (0, 12) mod 24
	assert.Equal(t, []bool{true, true, false, false, true}, v.Mask)
	assert.Equal(t, []float64{1, 2, 0, 0, 5}, v.Masked)
	assert.Equal(t, []float64{3, 9, 27}, v.VisibleTimes)
	assert.Equal(t, []float64{1, 2, 5}, v.VisibleSignal)
	assert.Equal(t, 3, v.VisibleCount())

	// inputs untouched
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, signal)
}

func TestApplyVisibility_FractionConverges(t *testing.T) {
	grid, err := GenerateTimeGrid(nil, 2400, 10_000, false)
	require.NoError(t, err)
	signal := make([]float64, len(grid))

	for _, dayFraction := range []float64{0.05, 0.2, 0.3, 0.5, 0.75, 0.95} {
		v, err := ApplyVisibility(grid, signal, dayFraction)
		require.NoError(t, err)

		require.Len(t, v.Mask, len(grid))
		assert.InDelta(t, dayFraction, v.Fraction(), 0.01, "dayFraction %g", dayFraction)
	}
}

func TestIsVisible(t *testing.T) {
	assert.True(t, IsVisible(6, 0.05))
	assert.False(t, IsVisible(18, 0.95))
	assert.True(t, IsVisible(18, 1))
	assert.False(t, IsVisible(0, 0.5))
}

func TestApplyVisibility_InvalidInput(t *testing.T) {
	testCases := []struct {
		name        string
		times       []float64
		signal      []float64
		dayFraction float64
		err         error
	}{
		{"zero day fraction", []float64{1}, []float64{1}, 0, param.ErrInvalidParameter},
		{"negative day fraction", []float64{1}, []float64{1}, -0.2, param.ErrInvalidParameter},
		{"day fraction above one", []float64{1}, []float64{1}, 1.01, param.ErrInvalidParameter},
		{"nan day fraction", []float64{1}, []float64{1}, math.NaN(), param.ErrInvalidParameter},
		{"length mismatch", []float64{1, 2}, []float64{1}, 0.5, ErrLengthMismatch},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ApplyVisibility(tc.times, tc.signal, tc.dayFraction)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
