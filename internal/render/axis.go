package render

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// axis maps data values onto a pixel span.
type axis struct {
	min, max float64
	log      bool
}

// ratio returns the position of v along the axis, 0 at min and 1 at max. Values that cannot
// be shown on a log axis map to NaN.
func (a axis) ratio(v float64) float64 {
	if a.log {
		if v <= 0 {
			return math.NaN()
		}
		return (math.Log10(v) - math.Log10(a.min)) / (math.Log10(a.max) - math.Log10(a.min))
	}
	return (v - a.min) / (a.max - a.min)
}

func (a axis) contains(v float64) bool {
	return v >= a.min && v <= a.max
}

// ticks returns tick positions and labels covering the axis.
func (a axis) ticks() ([]float64, []string) {
	var values []float64
	if a.log {
		values = logTicks(a.min, a.max)
	} else {
		values = linearTicks(a.min, a.max)
	}

	labels := make([]string, len(values))
	for i, v := range values {
		if a.log {
			labels[i] = fmt.Sprintf("%g", v)
		} else {
			labels[i] = humanize.FtoaWithDigits(v, 4)
		}
	}
	return values, labels
}

// newLinearAxis pads [lo, hi] by a fraction of its span, widening degenerate ranges.
func newLinearAxis(lo, hi, pad float64) axis {
	if !(hi > lo) {
		lo, hi = lo-1, hi+1
	}
	span := hi - lo
	return axis{min: lo - span*pad, max: hi + span*pad}
}

// newLogAxis covers [lo, hi] with lo clamped to a positive value.
func newLogAxis(lo, hi float64) axis {
	if !(hi > 0) {
		hi = 1
	}
	if !(lo > 0) || lo >= hi {
		lo = hi / 1000
	}
	return axis{min: lo, max: hi, log: true}
}

// niceStep rounds a raw step up to 1, 2 or 5 times a power of ten
func niceStep(raw float64) float64 {
	if !(raw > 0) {
		return 1
	}

	exp := math.Floor(math.Log10(raw))
	base := math.Pow(10, exp)

	switch f := raw / base; {
	case f < 1.5:
		return base
	case f < 3:
		return 2 * base
	case f < 7:
		return 5 * base
	default:
		return 10 * base
	}
}

func linearTicks(lo, hi float64) []float64 {
	step := niceStep((hi - lo) / targetTicks)

	var ticks []float64
	for v := math.Ceil(lo/step) * step; v <= hi+step*1e-9; v += step {
		// avoid printing -0 and 1e-17 style values
		if math.Abs(v) < step*1e-9 {
			v = 0
		}
		ticks = append(ticks, v)
	}
	return ticks
}

func logTicks(lo, hi float64) []float64 {
	var ticks []float64
	for k := math.Ceil(math.Log10(lo)); k <= math.Floor(math.Log10(hi)); k++ {
		ticks = append(ticks, math.Pow(10, k))
	}
	if len(ticks) >= 2 {
		return ticks
	}

	ticks = ticks[:0]
	for k := math.Floor(math.Log10(lo)); k <= math.Ceil(math.Log10(hi)); k++ {
		for _, m := range []float64{1, 2, 5} {
			if v := m * math.Pow(10, k); v >= lo && v <= hi {
				ticks = append(ticks, v)
			}
		}
	}
	return ticks
}
