package simulation

import (
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/roman-kulish/daynight-periodogram/internal/param"
)

// GenerateTimeGrid returns n observation times in hours.
//
// Irregular grids are n uniform draws on [0, durationHours) sorted ascending. Regular grids
// are evenly spaced over [0, durationHours] with both endpoints included; a single
// observation is placed at zero. Only irregular grids consume src.
func GenerateTimeGrid(src rand.Source, durationHours float64, n int, irregular bool) ([]float64, error) {
	if err := param.AtLeast("observations", n, 1); err != nil {
		return nil, err
	}
	if err := param.Positive("duration", durationHours); err != nil {
		return nil, err
	}

	grid := make([]float64, n)

	if irregular {
		u := distuv.Uniform{Min: 0, Max: durationHours, Src: src}
		for i := range grid {
			grid[i] = u.Rand()
		}
		slices.Sort(grid)
		return grid, nil
	}

	if n == 1 {
		return grid, nil
	}

	floats.Span(grid, 0, durationHours)
	grid[n-1] = durationHours

	return grid, nil
}
