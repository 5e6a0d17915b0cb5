package simulation

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/roman-kulish/daynight-periodogram/internal/param"
)

// SignalParams describe the injected sinusoid and its noise.
type SignalParams struct {
	PeriodHours       float64 // Period of the sinusoid
	PhaseRadians      float64 // Phase offset
	AmplitudeNoiseStd float64 // Standard deviation of additive amplitude noise
	TimeNoiseStd      float64 // Standard deviation of timestamp jitter in hours
}

func (p SignalParams) Validate() error {
	if err := param.Positive("period", p.PeriodHours); err != nil {
		return err
	}
	if err := param.Finite("phase", p.PhaseRadians); err != nil {
		return err
	}
	if err := param.NonNegative("amplitudeNoiseStd", p.AmplitudeNoiseStd); err != nil {
		return err
	}
	return param.NonNegative("timeNoiseStd", p.TimeNoiseStd)
}

// Synthesize samples sin(2πt/period + phase) at every grid time, adds amplitude noise and
// then jitters the timestamps. The value is evaluated at the clean time, so jitter models
// an error in the recorded timestamp rather than in when the signal was sampled.
//
// All amplitude noise draws happen before any timing draw. The grid is not modified; the
// jittered copy is returned alongside the signal.
func Synthesize(src rand.Source, grid []float64, p SignalParams) (signal, jittered []float64, err error) {
	if err = p.Validate(); err != nil {
		return nil, nil, err
	}

	signal = make([]float64, len(grid))
	for i, t := range grid {
		signal[i] = math.Sin(2*math.Pi*t/p.PeriodHours + p.PhaseRadians)
	}

	amplitude := distuv.Normal{Mu: 0, Sigma: p.AmplitudeNoiseStd, Src: src}
	for i := range signal {
		signal[i] += amplitude.Rand()
	}

	timing := distuv.Normal{Mu: 0, Sigma: p.TimeNoiseStd, Src: src}
	jittered = make([]float64, len(grid))
	for i, t := range grid {
		jittered[i] = t + timing.Rand()
	}

	return signal, jittered, nil
}
