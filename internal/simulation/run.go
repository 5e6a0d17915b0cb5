// Package simulation generates a noisy sinusoid observed through a day/night window and
// runs the periodogram and alias analysis over it.
//
// A run is a pure function of its Params and Seeding: nothing is kept between runs.
package simulation

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roman-kulish/daynight-periodogram/internal/alias"
	"github.com/roman-kulish/daynight-periodogram/internal/lombscargle"
	"github.com/roman-kulish/daynight-periodogram/internal/param"
	"github.com/roman-kulish/daynight-periodogram/internal/spectrum"
	"github.com/roman-kulish/daynight-periodogram/internal/window"
)

// Params holds every input of a run.
type Params struct {
	DurationHours     float64 `yaml:"durationHours"`     // Length of the observing campaign
	Observations      int     `yaml:"observations"`      // Number of samples
	PeriodHours       float64 `yaml:"periodHours"`       // Injected period
	PhaseRadians      float64 `yaml:"phaseRadians"`      // Injected phase
	AmplitudeNoiseStd float64 `yaml:"amplitudeNoiseStd"` // Amplitude noise standard deviation
	TimeNoiseStd      float64 `yaml:"timeNoiseStd"`      // Timestamp jitter standard deviation, hours
	DayFraction       float64 `yaml:"dayFraction"`       // Observable share of each day, (0, 1]
	Irregular         bool    `yaml:"irregular"`         // Draw times at random instead of a regular grid
	Uncertainty       float64 `yaml:"uncertainty"`       // Measurement error passed to the estimator, 0 if unknown
}

// Signal returns the signal part of the parameters.
func (p Params) Signal() SignalParams {
	return SignalParams{
		PeriodHours:       p.PeriodHours,
		PhaseRadians:      p.PhaseRadians,
		AmplitudeNoiseStd: p.AmplitudeNoiseStd,
		TimeNoiseStd:      p.TimeNoiseStd,
	}
}

// Validate checks every parameter so that a run fails before any computation.
func (p Params) Validate() error {
	if err := param.AtLeast("observations", p.Observations, 1); err != nil {
		return err
	}
	if err := param.Positive("duration", p.DurationHours); err != nil {
		return err
	}
	if err := p.Signal().Validate(); err != nil {
		return err
	}
	if err := param.HalfOpenUnit("dayFraction", p.DayFraction); err != nil {
		return err
	}
	return param.NonNegative("uncertainty", p.Uncertainty)
}

// Result carries every intermediate product of a run. Sequences are index aligned with
// Times unless documented otherwise.
type Result struct {
	Params  Params
	Seeding Seeding

	Grid       []float64  // Observation times before jitter
	Times      []float64  // Recorded (jittered) times; not necessarily sorted
	Signal     []float64  // Signal before masking
	Visibility Visibility // Mask, zero-filled signal and visible subsequences

	Spectrum             spectrum.Spectrum // Periodogram of visible samples; empty below MinVisibleSamples
	Window               spectrum.Spectrum // Spectral window of the mask; empty for irregular grids
	MeanSamplingInterval float64           // max(Times)/len(Times)
	Aliases              alias.Set         // Expected alias frequencies
}

// Peak returns the strongest periodogram point.
func (r *Result) Peak() (spectrum.SpectralPoint, bool) {
	return r.Spectrum.Peak()
}

// WithEstimator replaces the default Lomb-Scargle estimator
func WithEstimator(est Estimator) func(s *Simulator) {
	return func(s *Simulator) {
		s.estimator = est
	}
}

// WithSeeding sets the seed and the point at which it is applied
func WithSeeding(seeding Seeding) func(s *Simulator) {
	return func(s *Simulator) {
		s.seeding = seeding
	}
}

// WithLegacyAliases computes sampling aliases from alias.LegacyReferencePeriod
func WithLegacyAliases() func(s *Simulator) {
	return func(s *Simulator) {
		s.aliasOptions = append(s.aliasOptions, alias.WithLegacyReferencePeriod())
	}
}

// WithLogger sets the logger for the simulator
func WithLogger(logger *slog.Logger) func(s *Simulator) {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// Simulator runs the pipeline. It holds configuration only and may be reused and shared.
type Simulator struct {
	estimator    Estimator
	seeding      Seeding
	aliasOptions []func(a *alias.Annotator)
	logger       *slog.Logger
}

// New creates a simulator with the Lomb-Scargle estimator, run-scoped seeding with
// DefaultSeed and a discard logger.
func New(options ...func(s *Simulator)) *Simulator {
	s := Simulator{
		seeding: Seeding{Seed: DefaultSeed, Scope: ScopeRun},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&s)
	}

	if s.seeding.Scope == "" {
		s.seeding.Scope = ScopeRun
	}
	if s.estimator == nil {
		s.estimator = lombscargle.New(lombscargle.WithLogger(s.logger))
	}
	s.logger = s.logger.With(slog.String("component", "simulation"))

	return &s
}

// Run executes grid generation, synthesis, masking, estimation and alias annotation.
func (s *Simulator) Run(p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if _, err := ParseSeedScope(string(s.seeding.Scope)); err != nil {
		return nil, err
	}

	gridSrc := s.seeding.gridSource()

	grid, err := GenerateTimeGrid(gridSrc, p.DurationHours, p.Observations, p.Irregular)
	if err != nil {
		return nil, fmt.Errorf("generating time grid: %w", err)
	}

	signal, times, err := Synthesize(s.seeding.noiseSource(gridSrc), grid, p.Signal())
	if err != nil {
		return nil, fmt.Errorf("synthesizing signal: %w", err)
	}

	vis, err := ApplyVisibility(times, signal, p.DayFraction)
	if err != nil {
		return nil, fmt.Errorf("applying visibility: %w", err)
	}

	s.logger.Debug("visibility applied",
		slog.Int("observations", p.Observations),
		slog.Int("visible", vis.VisibleCount()),
		slog.Float64("fraction", vis.Fraction()))

	spec, err := EstimateSpectrum(s.estimator, vis, p.Uncertainty)
	if err != nil {
		return nil, err
	}
	if spec.IsEmpty() {
		s.logger.Debug("periodogram skipped",
			slog.Int("visible", vis.VisibleCount()),
			slog.Int("required", MinVisibleSamples))
	}

	win := spectrum.Empty()
	if !p.Irregular {
		win = window.Spectral(vis.Mask, p.DurationHours)
	}

	dt := alias.MeanSamplingInterval(times)

	aliases, err := alias.Annotate(alias.Params{
		PeriodHours:          p.PeriodHours,
		DayFraction:          p.DayFraction,
		Irregular:            p.Irregular,
		MeanSamplingInterval: dt,
	}, s.aliasOptions...)
	if err != nil {
		return nil, fmt.Errorf("annotating aliases: %w", err)
	}

	return &Result{
		Params:               p,
		Seeding:              s.seeding,
		Grid:                 grid,
		Times:                times,
		Signal:               signal,
		Visibility:           vis,
		Spectrum:             spec,
		Window:               win,
		MeanSamplingInterval: dt,
		Aliases:              aliases,
	}, nil
}
