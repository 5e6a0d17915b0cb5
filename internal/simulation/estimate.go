package simulation

import (
	"fmt"

	"github.com/roman-kulish/daynight-periodogram/internal/spectrum"
)

// MinVisibleSamples is the smallest number of visible samples a periodogram is computed from.
// Below it the spectrum is reported empty and the estimator is not called.
const MinVisibleSamples = 11

// Estimator computes a periodogram from unevenly spaced samples. uncertainty is a single
// measurement error shared by all samples, zero when unknown.
type Estimator interface {
	Periodogram(t, y []float64, uncertainty float64) (spectrum.Spectrum, error)
}

// EstimateSpectrum runs est over the visible samples of v.
func EstimateSpectrum(est Estimator, v Visibility, uncertainty float64) (spectrum.Spectrum, error) {
	if v.VisibleCount() < MinVisibleSamples {
		return spectrum.Empty(), nil
	}

	s, err := est.Periodogram(v.VisibleTimes, v.VisibleSignal, uncertainty)
	if err != nil {
		return spectrum.Spectrum{}, fmt.Errorf("estimating periodogram: %w", err)
	}
	return s, nil
}
