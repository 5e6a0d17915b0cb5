package render

import (
	"image"
	"image/color"
	"math"

	"github.com/roman-kulish/daynight-periodogram/internal/alias"
)

const (
	dashOn  = 6
	dashOff = 4
	dotSize = 1
)

// panel is a plotting area with its axes
type panel struct {
	img  *image.RGBA
	area image.Rectangle
	x, y axis
}

// point converts data coordinates into pixels. It returns false for values
// that fall outside the panel or cannot be placed on a log axis.
func (p panel) point(x, y float64) (int, int, bool) {
	rx, ry := p.x.ratio(x), p.y.ratio(y)
	if math.IsNaN(rx) || math.IsNaN(ry) || rx < 0 || rx > 1 || ry < -1e-9 || ry > 1+1e-9 {
		return 0, 0, false
	}

	px := p.area.Min.X + int(math.Round(rx*float64(p.area.Dx()-1)))
	py := p.area.Max.Y - 1 - int(math.Round(ry*float64(p.area.Dy()-1)))
	return px, py, true
}

func (p panel) set(x, y int, c color.Color) {
	if image.Pt(x, y).In(p.area) {
		p.img.Set(x, y, c)
	}
}

// line draws a Bresenham line, optionally dashed
func (p panel) line(x0, y0, x1, y1 int, c color.Color, dashed bool) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy

	for step := 0; ; step++ {
		if !dashed || step%(dashOn+dashOff) < dashOn {
			p.set(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (p panel) dot(x, y int, c color.Color) {
	for i := -dotSize; i <= dotSize; i++ {
		for j := -dotSize; j <= dotSize; j++ {
			p.set(x+i, y+j, c)
		}
	}
}

// drawFrame draws the border, ticks, tick labels and titles
func (p panel) drawFrame(txt *textDrawer, title, xLabel, yLabel string) error {
	a := p.area
	for x := a.Min.X - 1; x <= a.Max.X; x++ {
		p.img.Set(x, a.Min.Y-1, colorFrame)
		p.img.Set(x, a.Max.Y, colorFrame)
	}
	for y := a.Min.Y - 1; y <= a.Max.Y; y++ {
		p.img.Set(a.Min.X-1, y, colorFrame)
		p.img.Set(a.Max.X, y, colorFrame)
	}

	fontHeight := txt.height()

	values, labels := p.x.ticks()
	for i, v := range values {
		px, _, ok := p.point(v, p.y.min)
		if !ok {
			continue
		}
		for y := a.Max.Y; y < a.Max.Y+tickMarkLength; y++ {
			p.img.Set(px, y, colorFrame)
		}
		width := txt.measure(labels[i])
		if err := txt.draw(labels[i], px-width/2, a.Max.Y+tickMarkLength+fontHeight, colorFrame); err != nil {
			return err
		}
	}

	values, labels = p.y.ticks()
	for i, v := range values {
		_, py, ok := p.point(p.x.min, v)
		if !ok {
			continue
		}
		for x := a.Min.X - tickMarkLength; x < a.Min.X; x++ {
			p.img.Set(x, py, colorFrame)
		}
		width := txt.measure(labels[i])
		if err := txt.draw(labels[i], a.Min.X-tickMarkLength-3-width, py+fontHeight/3, colorFrame); err != nil {
			return err
		}
	}

	width := txt.measure(xLabel)
	if err := txt.draw(xLabel, a.Min.X+(a.Dx()-width)/2, a.Max.Y+tickMarkLength+2*fontHeight+4, colorFrame); err != nil {
		return err
	}

	width = txt.measure(title)
	if err := txt.draw(title, a.Min.X+(a.Dx()-width)/2, a.Min.Y-fontHeight/2, colorFrame); err != nil {
		return err
	}

	return txt.draw(yLabel, 5, a.Min.Y-fontHeight/2, colorFrame)
}

// drawLegend lists the drawn markers in the top right corner
func (p panel) drawLegend(txt *textDrawer, markers []alias.Marker) error {
	if len(markers) == 0 {
		return nil
	}

	const swatch = 24

	widest := 0
	for _, m := range markers {
		widest = max(widest, txt.measure(m.Label))
	}

	lineHeight := txt.height() + 4
	left := p.area.Max.X - widest - swatch - 16
	top := p.area.Min.Y + 6

	for y := top; y < top+lineHeight*len(markers)+4; y++ {
		for x := left; x < p.area.Max.X-4; x++ {
			p.set(x, y, color.White)
		}
	}

	for i, m := range markers {
		baseline := top + lineHeight*(i+1)
		mid := baseline - lineHeight/3
		p.line(left+4, mid, left+4+swatch, mid, markerColor(m), m.Name == alias.NameDayMinus)
		if err := txt.draw(m.Label, left+swatch+10, baseline, colorFrame); err != nil {
			return err
		}
	}

	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
