// Package window computes the spectral window of a day/night visibility mask.
//
// The window is the power spectrum of the observing pattern itself. Every line it contains
// reappears as a sideband around the signal frequency in the periodogram.
package window

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/roman-kulish/daynight-periodogram/internal/spectrum"
)

// Spectral returns the normalized power spectrum of mask, assumed to be sampled on a regular
// grid spanning [0, durationHours]. Power is relative to the zero-frequency term and only
// positive frequencies up to the grid Nyquist frequency are reported. Masks shorter than two
// samples, or with no visible sample, yield an empty spectrum.
func Spectral(mask []bool, durationHours float64) spectrum.Spectrum {
	n := len(mask)
	if n < 2 || durationHours <= 0 {
		return spectrum.Empty()
	}

	x := make([]float64, n)
	for i, visible := range mask {
		if visible {
			x[i] = 1
		}
	}

	coeffs := fft.FFTReal(x)

	dc := sqAbs(coeffs[0])
	if dc == 0 {
		return spectrum.Empty()
	}

	dt := durationHours / float64(n-1)
	half := n / 2

	s := spectrum.Spectrum{
		Frequency: make([]float64, half),
		Power:     make([]float64, half),
	}
	for k := 1; k <= half; k++ {
		s.Frequency[k-1] = float64(k) / (float64(n) * dt)
		s.Power[k-1] = sqAbs(coeffs[k]) / dc
	}

	return s
}

func sqAbs(c complex128) float64 {
	a := cmplx.Abs(c)
	return a * a
}
