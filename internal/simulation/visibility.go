package simulation

import (
	"errors"
	"fmt"
	"math"

	"github.com/roman-kulish/daynight-periodogram/internal/param"
)

// ErrLengthMismatch is returned when parallel sequences differ in length
var ErrLengthMismatch = errors.New("sequences must have the same length")

// Visibility is the outcome of gating a signal with the day/night window.
type Visibility struct {
	Mask          []bool    // Per sample, true when observable; aligned with the time grid
	Masked        []float64 // Signal with unobservable samples set to zero, for plotting only
	VisibleTimes  []float64 // Times of observable samples, in grid order
	VisibleSignal []float64 // Values of observable samples, in grid order
}

// VisibleCount returns the number of observable samples.
func (v Visibility) VisibleCount() int {
	return len(v.VisibleTimes)
}

// Fraction returns the share of samples that are observable.
func (v Visibility) Fraction() float64 {
	if len(v.Mask) == 0 {
		return 0
	}
	return float64(v.VisibleCount()) / float64(len(v.Mask))
}

// IsVisible reports whether time t (hours) falls into the observable part of the day.
// The gate sin(2πt/24) > cos(π·dayFraction) opens for a contiguous dayFraction share of
// every 24 hours. A dayFraction of one always passes.
func IsVisible(t, dayFraction float64) bool {
	if dayFraction >= 1 {
		return true
	}
	return math.Sin(2*math.Pi*t/24) > math.Cos(math.Pi*dayFraction)
}

// ApplyVisibility gates signal with the day/night window. Masked samples are kept in Masked
// as zeros so the sequence stays aligned with times; a zero there means "not observed".
// Estimation must use VisibleTimes and VisibleSignal only. Inputs are not modified.
func ApplyVisibility(times, signal []float64, dayFraction float64) (Visibility, error) {
	if len(times) != len(signal) {
		return Visibility{}, fmt.Errorf("%w: %d times, %d values", ErrLengthMismatch, len(times), len(signal))
	}
	if err := param.HalfOpenUnit("dayFraction", dayFraction); err != nil {
		return Visibility{}, err
	}

	v := Visibility{
		Mask:          make([]bool, len(times)),
		Masked:        make([]float64, len(times)),
		VisibleTimes:  make([]float64, 0, len(times)),
		VisibleSignal: make([]float64, 0, len(times)),
	}

	for i, t := range times {
		if !IsVisible(t, dayFraction) {
			continue
		}

		v.Mask[i] = true
		v.Masked[i] = signal[i]
		v.VisibleTimes = append(v.VisibleTimes, t)
		v.VisibleSignal = append(v.VisibleSignal, signal[i])
	}

	return v, nil
}
