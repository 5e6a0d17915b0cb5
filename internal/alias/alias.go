// Package alias predicts where spectral leakage lands for a sinusoid observed through a
// day/night window and, for regular grids, through discrete sampling.
//
// The markers are a pure function of the simulation parameters and are meant to be overlaid
// on an estimated periodogram; nothing here reads periodogram power.
package alias

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/roman-kulish/daynight-periodogram/internal/param"
)

const (
	// DayHours is the period of the day/night observing window
	DayHours = 24.0

	// LegacyReferencePeriod is the period some historical figures used for the sampling
	// markers regardless of the simulated period
	LegacyReferencePeriod = 35.17
)

const (
	NameTrue      = "true"
	NameDayMinus  = "day-minus"
	NameDayPlus   = "day-plus"
	NameSampling1 = "sampling-1"
	NameSampling2 = "sampling-2"
)

// Kind groups markers by the mechanism that produces them.
type Kind string

const (
	KindTrue     Kind = "true"      // The injected frequency itself
	KindDayNight Kind = "day-night" // Sidebands of the 24-hour window
	KindSampling Kind = "sampling"  // Sidebands of the sampling cadence
)

// Marker is a labelled frequency at which power is expected.
type Marker struct {
	Name      string  // Stable identifier, see the Name* constants
	Label     string  // Legend text
	Kind      Kind    // Producing mechanism
	Frequency float64 // Frequency in 1/hour, never negative
}

// Period returns the marker period in hours.
func (m Marker) Period() float64 {
	return 1 / m.Frequency
}

// Set is an ordered collection of markers: true frequency first, then day/night, then sampling.
type Set []Marker

// Get returns the marker with the given name.
func (s Set) Get(name string) (Marker, bool) {
	for _, m := range s {
		if m.Name == name {
			return m, true
		}
	}
	return Marker{}, false
}

// Frequencies returns the marker frequencies in set order.
func (s Set) Frequencies() []float64 {
	freqs := make([]float64, len(s))
	for i, m := range s {
		freqs[i] = m.Frequency
	}
	return freqs
}

// Params are the known simulation parameters the markers are derived from.
type Params struct {
	PeriodHours          float64 // Injected period
	DayFraction          float64 // Fraction of each day during which observation is possible, (0, 1]
	Irregular            bool    // Whether the time grid was drawn at random
	MeanSamplingInterval float64 // Approximate cadence in hours, see MeanSamplingInterval
}

// WithLegacyReferencePeriod computes the sampling markers from LegacyReferencePeriod instead of
// the configured period. Only useful to reproduce old figures.
func WithLegacyReferencePeriod() func(a *Annotator) {
	return func(a *Annotator) {
		a.samplingPeriod = LegacyReferencePeriod
	}
}

// Annotator holds options for Annotate.
type Annotator struct {
	samplingPeriod float64
}

// Annotate computes the alias markers for p.
func Annotate(p Params, options ...func(a *Annotator)) (Set, error) {
	if err := param.Positive("period", p.PeriodHours); err != nil {
		return nil, err
	}
	if err := param.HalfOpenUnit("dayFraction", p.DayFraction); err != nil {
		return nil, err
	}

	a := Annotator{samplingPeriod: p.PeriodHours}
	for _, option := range options {
		option(&a)
	}

	trueFreq := 1 / p.PeriodHours
	day := 1 / DayHours

	set := Set{{
		Name:      NameTrue,
		Label:     "True period",
		Kind:      KindTrue,
		Frequency: trueFreq,
	}}

	if p.DayFraction < 1 {
		set = append(set,
			Marker{
				Name:      NameDayMinus,
				Label:     "Day/Night alias |1/p - 1/day|",
				Kind:      KindDayNight,
				Frequency: math.Abs(trueFreq - day),
			},
			Marker{
				Name:      NameDayPlus,
				Label:     "Day/Night alias 1/p + 1/day",
				Kind:      KindDayNight,
				Frequency: trueFreq + day,
			})
	}

	dt := p.MeanSamplingInterval
	if !p.Irregular && dt > 0 && !math.IsInf(dt, 0) {
		base := 1 / a.samplingPeriod
		for k, name := range []string{NameSampling1, NameSampling2} {
			set = append(set, Marker{
				Name:      name,
				Label:     fmt.Sprintf("1/p + %d/sampling", k+1),
				Kind:      KindSampling,
				Frequency: base + float64(k+1)/dt,
			})
		}
	}

	return set, nil
}

// MeanSamplingInterval approximates the cadence of a time grid as max(t)/len(t). It is not
// the mean spacing of the grid: a grid starting at zero is assumed.
func MeanSamplingInterval(t []float64) float64 {
	if len(t) == 0 {
		return 0
	}
	return floats.Max(t) / float64(len(t))
}
