package simulation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roman-kulish/daynight-periodogram/internal/spectrum"
)

type countingEstimator struct {
	calls int
	err   error
}

func (e *countingEstimator) Periodogram(t, y []float64, _ float64) (spectrum.Spectrum, error) {
	e.calls++
	if e.err != nil {
		return spectrum.Spectrum{}, e.err
	}
	return spectrum.Spectrum{Frequency: []float64{0.1}, Power: []float64{float64(len(t))}}, nil
}

func visibilityOf(n int) Visibility {
	v := Visibility{}
	for i := 0; i < n; i++ {
		v.Mask = append(v.Mask, true)
		v.VisibleTimes = append(v.VisibleTimes, float64(i))
		v.VisibleSignal = append(v.VisibleSignal, 0)
	}
	return v
}

func TestEstimateSpectrum_MinimumSamples(t *testing.T) {
	testCases := []struct {
		visible int
		calls   int
	}{
		{0, 0},
		{1, 0},
		{10, 0},
		{11, 1},
		{500, 1},
	}

	for _, tc := range testCases {
		est := &countingEstimator{}

		s, err := EstimateSpectrum(est, visibilityOf(tc.visible), 0)
		require.NoError(t, err)

		assert.Equal(t, tc.calls, est.calls, "visible %d", tc.visible)
		if tc.calls == 0 {
			assert.True(t, s.IsEmpty())
		} else {
			assert.Equal(t, float64(tc.visible), s.Power[0])
		}
	}
}

func TestEstimateSpectrum_Error(t *testing.T) {
	boom := errors.New("boom")

	_, err := EstimateSpectrum(&countingEstimator{err: boom}, visibilityOf(20), 0)
	assert.ErrorIs(t, err, boom)
}
