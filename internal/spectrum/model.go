package spectrum

import (
	"gonum.org/v1/gonum/floats"
)

// SpectralPoint represents a single periodogram value at a specific frequency.
type SpectralPoint struct {
	Frequency float64 `json:"frequency"` // Frequency in 1/hour
	Power     float64 `json:"power"`     // Normalized periodogram power
}

// Period returns the period in hours matching the point frequency.
func (p SpectralPoint) Period() float64 {
	if p.Frequency == 0 {
		return 0
	}
	return 1 / p.Frequency
}

// Spectrum is a periodogram as two parallel sequences ordered by strictly increasing,
// non-negative frequency. The zero value is the empty spectrum.
type Spectrum struct {
	Frequency []float64 `json:"frequency"` // Frequencies in 1/hour
	Power     []float64 `json:"power"`     // Power at each frequency
}

// Empty returns a spectrum with no points. It is what the estimator reports
// when there are too few samples to compute a meaningful periodogram.
func Empty() Spectrum {
	return Spectrum{Frequency: []float64{}, Power: []float64{}}
}

func (s Spectrum) Len() int {
	return len(s.Frequency)
}

func (s Spectrum) IsEmpty() bool {
	return len(s.Frequency) == 0
}

// At returns the i-th point of the spectrum.
func (s Spectrum) At(i int) SpectralPoint {
	return SpectralPoint{Frequency: s.Frequency[i], Power: s.Power[i]}
}

// Peak returns the point with the highest power. The second value is false for an empty spectrum.
func (s Spectrum) Peak() (SpectralPoint, bool) {
	if s.IsEmpty() {
		return SpectralPoint{}, false
	}
	return s.At(floats.MaxIdx(s.Power)), true
}

// PeakWithin returns the highest point with lo <= frequency <= hi.
func (s Spectrum) PeakWithin(lo, hi float64) (SpectralPoint, bool) {
	best, found := -1, false
	for i, f := range s.Frequency {
		if f < lo || f > hi {
			continue
		}
		if !found || s.Power[i] > s.Power[best] {
			best, found = i, true
		}
	}
	if !found {
		return SpectralPoint{}, false
	}
	return s.At(best), true
}

// Valid reports whether both sequences have equal length and the frequencies
// are non-negative and strictly increasing.
func (s Spectrum) Valid() bool {
	if len(s.Frequency) != len(s.Power) {
		return false
	}
	for i, f := range s.Frequency {
		if f < 0 {
			return false
		}
		if i > 0 && f <= s.Frequency[i-1] {
			return false
		}
	}
	return true
}
