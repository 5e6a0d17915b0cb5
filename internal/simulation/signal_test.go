package simulation

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/roman-kulish/daynight-periodogram/internal/param"
)

func TestSynthesize_Noiseless(t *testing.T) {
	grid, err := GenerateTimeGrid(nil, 100, 250, false)
	require.NoError(t, err)

	p := SignalParams{PeriodHours: 7, PhaseRadians: 1.2}
	signal, jittered, err := Synthesize(rand.NewPCG(0, 0), grid, p)
	require.NoError(t, err)

	require.Len(t, signal, len(grid))
	assert.Equal(t, grid, jittered)
	for i, ti := range grid {
		assert.Equal(t, math.Sin(2*math.Pi*ti/7+1.2), signal[i])
	}
}

func TestSynthesize_JitterDoesNotChangeSampledPhase(t *testing.T) {
	grid, err := GenerateTimeGrid(nil, 100, 2000, false)
	require.NoError(t, err)
	orig := append([]float64(nil), grid...)

	p := SignalParams{PeriodHours: 5, TimeNoiseStd: 0.5}
	signal, jittered, err := Synthesize(rand.NewPCG(3, 3), grid, p)
	require.NoError(t, err)

	// the grid is left untouched
	assert.Equal(t, orig, grid)

	for i, ti := range grid {
		assert.Equal(t, math.Sin(2*math.Pi*ti/5), signal[i])
	}

	jitter := make([]float64, len(grid))
	floats.SubTo(jitter, jittered, grid)
	assert.InDelta(t, 0, stat.Mean(jitter, nil), 0.05)
	assert.InDelta(t, 0.5, stat.StdDev(jitter, nil), 0.05)
}

func TestSynthesize_AmplitudeNoise(t *testing.T) {
	grid, err := GenerateTimeGrid(nil, 100, 5000, false)
	require.NoError(t, err)

	p := SignalParams{PeriodHours: 9, AmplitudeNoiseStd: 2}
	signal, jittered, err := Synthesize(rand.NewPCG(5, 5), grid, p)
	require.NoError(t, err)
	assert.Equal(t, grid, jittered)

	residual := make([]float64, len(grid))
	for i, ti := range grid {
		residual[i] = signal[i] - math.Sin(2*math.Pi*ti/9)
	}
	assert.InDelta(t, 2, stat.StdDev(residual, nil), 0.1)
}

func TestSynthesize_AmplitudeDrawsPrecedeTimingDraws(t *testing.T) {
	grid := []float64{0, 1, 2, 3}

	// With both noise sources active the amplitude noise is the first N normal draws.
	signal, _, err := Synthesize(rand.NewPCG(9, 9), grid, SignalParams{PeriodHours: 4, AmplitudeNoiseStd: 1, TimeNoiseStd: 1})
	require.NoError(t, err)

	only, _, err := Synthesize(rand.NewPCG(9, 9), grid, SignalParams{PeriodHours: 4, AmplitudeNoiseStd: 1})
	require.NoError(t, err)

	assert.Equal(t, only, signal)
}

func TestSynthesize_InvalidParameters(t *testing.T) {
	testCases := []struct {
		name string
		p    SignalParams
	}{
		{"zero period", SignalParams{PeriodHours: 0}},
		{"negative period", SignalParams{PeriodHours: -3}},
		{"negative amplitude noise", SignalParams{PeriodHours: 3, AmplitudeNoiseStd: -0.1}},
		{"negative time noise", SignalParams{PeriodHours: 3, TimeNoiseStd: -0.1}},
		{"nan phase", SignalParams{PeriodHours: 3, PhaseRadians: math.NaN()}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Synthesize(rand.NewPCG(0, 0), []float64{0, 1}, tc.p)
			assert.ErrorIs(t, err, param.ErrInvalidParameter)
		})
	}
}
