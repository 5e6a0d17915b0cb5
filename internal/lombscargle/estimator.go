// Package lombscargle implements the generalized (floating-mean) Lomb-Scargle periodogram
// for unevenly sampled time series.
package lombscargle

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/roman-kulish/daynight-periodogram/internal/param"
	"github.com/roman-kulish/daynight-periodogram/internal/spectrum"
)

const (
	// DefaultSamplesPerPeak is the number of grid points across a typical peak width
	DefaultSamplesPerPeak = 5

	// DefaultNyquistFactor multiplies the average Nyquist frequency to get the grid maximum
	DefaultNyquistFactor = 5

	// rephaseEvery bounds the error accumulated by the phasor recurrence
	rephaseEvery = 256
)

var (
	// ErrLengthMismatch is returned when times and values have different lengths
	ErrLengthMismatch = errors.New("times and values must have the same length")

	// ErrUnknownNormalization is returned for a normalization not listed below
	ErrUnknownNormalization = errors.New("unknown normalization")
)

// Normalization selects how raw chi-square reduction is reported as power.
type Normalization string

const (
	NormalizationStandard Normalization = "standard" // 1 - chi2/chi2_ref, in [0, 1]
	NormalizationModel    Normalization = "model"    // chi2_ref/chi2 - 1
	NormalizationLog      Normalization = "log"      // ln(chi2_ref/chi2)
	NormalizationPSD      Normalization = "psd"      // (chi2_ref - chi2) / 2
)

func (n Normalization) String() string {
	return string(n)
}

// WithSamplesPerPeak sets the frequency grid oversampling
func WithSamplesPerPeak(n float64) func(e *Estimator) {
	return func(e *Estimator) {
		e.samplesPerPeak = n
	}
}

// WithNyquistFactor sets the multiple of the average Nyquist frequency used as the grid maximum
func WithNyquistFactor(n float64) func(e *Estimator) {
	return func(e *Estimator) {
		e.nyquistFactor = n
	}
}

// WithFrequencyRange pins the frequency grid bounds. A zero bound is chosen automatically.
func WithFrequencyRange(lo, hi float64) func(e *Estimator) {
	return func(e *Estimator) {
		e.minFrequency = lo
		e.maxFrequency = hi
	}
}

// WithNormalization sets the power normalization
func WithNormalization(n Normalization) func(e *Estimator) {
	return func(e *Estimator) {
		e.normalization = n
	}
}

// WithLogger sets the logger for the estimator
func WithLogger(logger *slog.Logger) func(e *Estimator) {
	return func(e *Estimator) {
		e.logger = logger.With(slog.String("component", "lombscargle"))
	}
}

// Estimator computes periodograms over an automatically chosen frequency grid.
type Estimator struct {
	samplesPerPeak float64
	nyquistFactor  float64
	minFrequency   float64
	maxFrequency   float64
	normalization  Normalization
	logger         *slog.Logger
}

// New creates an estimator with the default grid policy and standard normalization
func New(options ...func(e *Estimator)) *Estimator {
	e := Estimator{
		samplesPerPeak: DefaultSamplesPerPeak,
		nyquistFactor:  DefaultNyquistFactor,
		normalization:  NormalizationStandard,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&e)
	}

	return &e
}

// Grid describes an evenly spaced frequency grid.
type Grid struct {
	Min   float64 // First frequency in 1/hour
	Step  float64 // Spacing in 1/hour
	Count int     // Number of frequencies
}

// Frequencies expands the grid.
func (g Grid) Frequencies() []float64 {
	freqs := make([]float64, g.Count)
	for i := range freqs {
		freqs[i] = g.Min + g.Step*float64(i)
	}
	return freqs
}

// AutoGrid chooses the frequency grid for the given sample times. The spacing resolves
// a peak of width 1/baseline with samplesPerPeak points, the grid starts half a step above
// zero and ends at nyquistFactor times the average Nyquist frequency. A zero baseline
// yields an empty grid.
func (e *Estimator) AutoGrid(t []float64) Grid {
	if len(t) == 0 {
		return Grid{}
	}

	baseline := floats.Max(t) - floats.Min(t)
	if !(baseline > 0) || math.IsInf(baseline, 0) {
		return Grid{}
	}

	df := 1 / baseline / e.samplesPerPeak

	lo := e.minFrequency
	if lo <= 0 {
		lo = 0.5 * df
	}

	hi := e.maxFrequency
	if hi <= 0 {
		avgNyquist := 0.5 * float64(len(t)) / baseline
		hi = e.nyquistFactor * avgNyquist
	}

	count := 1 + int(math.Round((hi-lo)/df))
	if count < 1 {
		return Grid{}
	}

	return Grid{Min: lo, Step: df, Count: count}
}

// Periodogram computes the power spectrum of (t, y) on the automatic grid. dy is a single
// measurement uncertainty shared by all samples, zero meaning unweighted.
func (e *Estimator) Periodogram(t, y []float64, dy float64) (spectrum.Spectrum, error) {
	in, err := e.prepare(t, y, dy)
	if err != nil {
		return spectrum.Spectrum{}, err
	}

	grid := e.AutoGrid(t)
	if grid.Count == 0 {
		e.logger.Debug("degenerate frequency grid", slog.Int("samples", len(t)))
		return spectrum.Empty(), nil
	}

	e.logger.Debug("computing periodogram",
		slog.Int("samples", len(t)),
		slog.Int("frequencies", grid.Count),
		slog.Float64("minFrequency", grid.Min),
		slog.Float64("step", grid.Step))

	s := newSums(grid.Count)
	s.accumulateGrid(t, in.y, grid)

	return spectrum.Spectrum{
		Frequency: grid.Frequencies(),
		Power:     s.power(in, e.normalization),
	}, nil
}

// PowerAt evaluates the periodogram at explicit frequencies.
func (e *Estimator) PowerAt(t, y []float64, dy float64, frequencies []float64) ([]float64, error) {
	in, err := e.prepare(t, y, dy)
	if err != nil {
		return nil, err
	}

	s := newSums(len(frequencies))
	s.accumulateAt(t, in.y, frequencies)

	return s.power(in, e.normalization), nil
}

// input is the centered series with its reference chi-square
type input struct {
	y     []float64 // values minus their mean
	yy    float64   // population variance of y
	scale float64   // chi2_ref / yy, used by the psd normalization
}

func (e *Estimator) prepare(t, y []float64, dy float64) (input, error) {
	if len(t) != len(y) {
		return input{}, fmt.Errorf("%w: %d times, %d values", ErrLengthMismatch, len(t), len(y))
	}
	if err := param.NonNegative("uncertainty", dy); err != nil {
		return input{}, err
	}
	switch e.normalization {
	case NormalizationStandard, NormalizationModel, NormalizationLog, NormalizationPSD:
	default:
		return input{}, fmt.Errorf("%w: %q", ErrUnknownNormalization, e.normalization)
	}

	centered := make([]float64, len(y))
	copy(centered, y)
	if len(y) > 0 {
		floats.AddConst(-stat.Mean(y, nil), centered)
	}

	scale := float64(len(y))
	if dy > 0 {
		scale /= dy * dy
	}

	return input{
		y:     centered,
		yy:    stat.PopVariance(centered, nil),
		scale: scale,
	}, nil
}

// sums holds the weighted trigonometric sums of the floating-mean model per frequency.
// Weights are uniform and normalized, so each sum is a mean over samples.
type sums struct {
	c, s, yc, ys, cc, cs []float64
}

func newSums(n int) *sums {
	return &sums{
		c:  make([]float64, n),
		s:  make([]float64, n),
		yc: make([]float64, n),
		ys: make([]float64, n),
		cc: make([]float64, n),
		cs: make([]float64, n),
	}
}

func (s *sums) add(k int, y, sin, cos float64) {
	s.c[k] += cos
	s.s[k] += sin
	s.yc[k] += y * cos
	s.ys[k] += y * sin
	s.cc[k] += cos * cos
	s.cs[k] += cos * sin
}

// accumulateGrid walks the evenly spaced grid with a rotating phasor per sample
func (s *sums) accumulateGrid(t, y []float64, g Grid) {
	for i, ti := range t {
		stepSin, stepCos := math.Sincos(2 * math.Pi * g.Step * ti)

		var sin, cos float64
		for k := 0; k < g.Count; k++ {
			if k%rephaseEvery == 0 {
				sin, cos = math.Sincos(2 * math.Pi * (g.Min + g.Step*float64(k)) * ti)
			} else {
				sin, cos = sin*stepCos+cos*stepSin, cos*stepCos-sin*stepSin
			}
			s.add(k, y[i], sin, cos)
		}
	}
}

func (s *sums) accumulateAt(t, y []float64, frequencies []float64) {
	for i, ti := range t {
		for k, f := range frequencies {
			sin, cos := math.Sincos(2 * math.Pi * f * ti)
			s.add(k, y[i], sin, cos)
		}
	}
}

func (s *sums) power(in input, norm Normalization) []float64 {
	n := float64(len(in.y))
	power := make([]float64, len(s.c))
	if n == 0 {
		return power
	}

	for k := range power {
		c, sn := s.c[k]/n, s.s[k]/n
		yc, ys := s.yc[k]/n, s.ys[k]/n

		cc := s.cc[k]/n - c*c
		ss := (1 - s.cc[k]/n) - sn*sn
		cs := s.cs[k]/n - c*sn

		d := cc*ss - cs*cs

		var p float64
		if d > 0 && in.yy > 0 {
			p = (ss*yc*yc + cc*ys*ys - 2*cs*yc*ys) / (in.yy * d)
		}
		if math.IsNaN(p) {
			p = 0
		}
		p = math.Max(0, math.Min(1, p))

		switch norm {
		case NormalizationModel:
			power[k] = p / (1 - p)
		case NormalizationLog:
			power[k] = -math.Log(1 - p)
		case NormalizationPSD:
			power[k] = 0.5 * in.scale * in.yy * p
		default:
			power[k] = p
		}
	}

	return power
}
