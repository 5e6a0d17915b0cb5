package lombscargle

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roman-kulish/daynight-periodogram/internal/param"
)

func irregularSine(n int, span, period float64) ([]float64, []float64) {
	rng := rand.New(rand.NewPCG(7, 7))

	t := make([]float64, n)
	for i := range t {
		t[i] = rng.Float64() * span
	}
	slices.Sort(t)

	y := make([]float64, n)
	for i, ti := range t {
		y[i] = 3 + math.Sin(2*math.Pi*ti/period+0.4)
	}
	return t, y
}

func TestEstimator_AutoGrid(t *testing.T) {
	e := New()
	times := []float64{0, 25, 50, 75, 100}

	g := e.AutoGrid(times)

	// df = 1/100/5, fmin = df/2, fmax = 5 * 0.5 * 5 / 100
	assert.InDelta(t, 0.002, g.Step, 1e-15)
	assert.InDelta(t, 0.001, g.Min, 1e-15)
	assert.Equal(t, 1+int(math.Round((0.125-0.001)/0.002)), g.Count)

	freqs := g.Frequencies()
	require.Len(t, freqs, g.Count)
	for i := 1; i < len(freqs); i++ {
		assert.Greater(t, freqs[i], freqs[i-1])
	}
}

func TestEstimator_AutoGridDegenerate(t *testing.T) {
	e := New()

	assert.Equal(t, 0, e.AutoGrid(nil).Count)
	assert.Equal(t, 0, e.AutoGrid([]float64{3, 3, 3}).Count)
}

func TestEstimator_FrequencyRange(t *testing.T) {
	e := New(WithFrequencyRange(0.01, 0.5))
	g := e.AutoGrid([]float64{0, 100})

	assert.Equal(t, 0.01, g.Min)
	freqs := g.Frequencies()
	assert.InDelta(t, 0.5, freqs[len(freqs)-1], g.Step)
}

func TestEstimator_PowerAtTrueFrequency(t *testing.T) {
	times, y := irregularSine(200, 240, 10)

	power, err := New().PowerAt(times, y, 0, []float64{0.1, 0.137})
	require.NoError(t, err)

	// A noiseless sinusoid with an offset is fitted exactly by the floating-mean model.
	assert.InDelta(t, 1.0, power[0], 1e-9)
	assert.Less(t, power[1], 0.5)
}

func TestEstimator_PeriodogramRecoversPeriod(t *testing.T) {
	times, y := irregularSine(400, 240, 10)

	s, err := New().Periodogram(times, y, 0)
	require.NoError(t, err)
	require.False(t, s.IsEmpty())
	assert.True(t, s.Valid())

	peak, ok := s.Peak()
	require.True(t, ok)
	assert.InDelta(t, 0.1, peak.Frequency, 1/240.0/5)
	assert.Greater(t, peak.Power, 0.9)

	for _, p := range s.Power {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestEstimator_PhasorMatchesDirect(t *testing.T) {
	times, y := irregularSine(50, 100, 7.3)
	e := New()

	s, err := e.Periodogram(times, y, 0)
	require.NoError(t, err)

	direct, err := e.PowerAt(times, y, 0, s.Frequency)
	require.NoError(t, err)

	for i := range direct {
		assert.InDelta(t, direct[i], s.Power[i], 1e-8, "frequency %g", s.Frequency[i])
	}
}

func TestEstimator_Normalizations(t *testing.T) {
	times, y := irregularSine(100, 120, 12)
	freqs := []float64{0.05, 1 / 12.0 * 1.3}

	standard, err := New().PowerAt(times, y, 0, freqs)
	require.NoError(t, err)

	model, err := New(WithNormalization(NormalizationModel)).PowerAt(times, y, 0, freqs)
	require.NoError(t, err)
	assert.InDelta(t, standard[0]/(1-standard[0]), model[0], 1e-9)

	logPower, err := New(WithNormalization(NormalizationLog)).PowerAt(times, y, 0, freqs)
	require.NoError(t, err)
	assert.InDelta(t, -math.Log(1-standard[1]), logPower[1], 1e-9)

	psd, err := New(WithNormalization(NormalizationPSD)).PowerAt(times, y, 0.5, freqs)
	require.NoError(t, err)
	psdUnit, err := New(WithNormalization(NormalizationPSD)).PowerAt(times, y, 0, freqs)
	require.NoError(t, err)
	assert.InDelta(t, 4*psdUnit[0], psd[0], 1e-9)

	// A shared uncertainty does not change normalized power.
	weighted, err := New().PowerAt(times, y, 0.5, freqs)
	require.NoError(t, err)
	assert.InDeltaSlice(t, standard, weighted, 1e-12)
}

func TestEstimator_InvalidInput(t *testing.T) {
	testCases := []struct {
		name string
		e    *Estimator
		t, y []float64
		dy   float64
		err  error
	}{
		{"length mismatch", New(), []float64{1, 2}, []float64{1}, 0, ErrLengthMismatch},
		{"negative uncertainty", New(), []float64{1, 2}, []float64{1, 2}, -1, param.ErrInvalidParameter},
		{"unknown normalization", New(WithNormalization("bogus")), []float64{1}, []float64{1}, 0, ErrUnknownNormalization},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.e.Periodogram(tc.t, tc.y, tc.dy)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestEstimator_ConstantSignal(t *testing.T) {
	times := []float64{0, 1, 2.5, 4, 7, 9, 11, 12, 15, 18, 20}
	y := make([]float64, len(times))

	s, err := New().Periodogram(times, y, 0)
	require.NoError(t, err)
	for _, p := range s.Power {
		assert.Equal(t, 0.0, p)
	}
}
