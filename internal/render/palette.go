package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/roman-kulish/daynight-periodogram/internal/alias"
)

var (
	colorMasked   = mustHex("#d3d3d3") // zero-filled series line
	colorVisible  = mustHex("#0000ff") // observed points
	colorSpectrum = mustHex("#1f77b4")
	colorFrame    = color.Black

	markerColors = map[alias.Kind]color.Color{
		alias.KindTrue:     mustHex("#ffa500"),
		alias.KindDayNight: mustHex("#ff0000"),
		alias.KindSampling: mustHex("#a9a9a9"),
	}
)

func markerColor(m alias.Marker) color.Color {
	if c, ok := markerColors[m.Kind]; ok {
		return c
	}
	return colorFrame
}

func mustHex(s string) color.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
