package render

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

const (
	// With fewer points the percentiles are meaningless and the full range is used
	minimumSampleCount = 20

	lowerPercentile = 0.05
)

// PowerBounds represents the power range shown on a log power axis
type PowerBounds struct {
	Min float64 // Lower edge, at or below the 5th percentile of positive power
	Max float64 // Upper edge, above the highest power
}

// logPowerBounds chooses a log axis range that keeps the noise floor visible without letting
// a few near-zero values stretch the axis over many decades.
func logPowerBounds(powers []float64) PowerBounds {
	positive := make([]float64, 0, len(powers))
	for _, p := range powers {
		if p > 0 && !math.IsInf(p, 0) {
			positive = append(positive, p)
		}
	}
	if len(positive) == 0 {
		return PowerBounds{Min: logPowerFloor, Max: 1}
	}

	slices.Sort(positive)
	hi := positive[len(positive)-1]

	lo := positive[0]
	if len(positive) >= minimumSampleCount {
		lo = stat.Quantile(lowerPercentile, stat.Empirical, positive, nil)
	}

	// half a decade of margin below, the floor bounds the dynamic range
	lo = math.Max(lo/math.Sqrt(10), hi*logPowerFloor)

	return PowerBounds{Min: lo, Max: hi * 1.5}
}
