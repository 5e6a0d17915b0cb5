// Package render draws a simulation result as a two panel figure: the observed time series
// and its periodogram annotated with the expected aliases.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
	"gonum.org/v1/gonum/floats"

	"github.com/roman-kulish/daynight-periodogram/internal/alias"
	"github.com/roman-kulish/daynight-periodogram/internal/simulation"
	"github.com/roman-kulish/daynight-periodogram/internal/spectrum"
)

const (
	dpi             = 72.0
	defaultFontSize = 13.0
	tickMarkLength  = 5
	targetTicks     = 6

	defaultWidth       = 1000
	defaultPanelHeight = 420
	defaultPanelGap    = 80

	// Default border sizes in pixels
	defaultTopBorder    = 40
	defaultLeftBorder   = 80
	defaultBottomBorder = 80
	defaultRightBorder  = 30

	// Lowest power shown on a log power axis, relative to the maximum
	logPowerFloor = 1e-6
)

// BorderConfig defines the sizes of white space around the panels
type BorderConfig struct {
	Top    int // Space for the first title
	Left   int // Space for value labels
	Bottom int // Space for the last axis and the information bar
	Right  int // Right padding
}

// Config holds all configuration options of the figure
type Config struct {
	Width       int     // Figure width in pixels
	PanelHeight int     // Height of each panel in pixels
	PanelGap    int     // Vertical space between the panels
	FontSize    float64 // Font size in points
	LogPower    bool    // Use a logarithmic power axis

	BorderConfig BorderConfig
}

// Renderer draws simulation results
type Renderer struct {
	config Config
	font   *truetype.Font
}

// NewRenderer creates a renderer with the given configuration, zero values replaced by defaults
func NewRenderer(config Config) (*Renderer, error) {
	if config.Width == 0 {
		config.Width = defaultWidth
	}
	if config.PanelHeight == 0 {
		config.PanelHeight = defaultPanelHeight
	}
	if config.PanelGap == 0 {
		config.PanelGap = defaultPanelGap
	}
	if config.FontSize == 0 {
		config.FontSize = defaultFontSize
	}
	if config.BorderConfig.Top == 0 {
		config.BorderConfig.Top = defaultTopBorder
	}
	if config.BorderConfig.Left == 0 {
		config.BorderConfig.Left = defaultLeftBorder
	}
	if config.BorderConfig.Bottom == 0 {
		config.BorderConfig.Bottom = defaultBottomBorder
	}
	if config.BorderConfig.Right == 0 {
		config.BorderConfig.Right = defaultRightBorder
	}

	if config.Width <= config.BorderConfig.Left+config.BorderConfig.Right {
		return nil, fmt.Errorf("figure width %d leaves no room for the panels", config.Width)
	}

	parsedFont, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	return &Renderer{config: config, font: parsedFont}, nil
}

// Bounds returns the size of the rendered figure.
func (r *Renderer) Bounds() image.Rectangle {
	height := r.config.BorderConfig.Top + 2*r.config.PanelHeight + r.config.PanelGap + r.config.BorderConfig.Bottom
	return image.Rect(0, 0, r.config.Width, height)
}

// Render draws the time series and the periodogram of res
func (r *Renderer) Render(res *simulation.Result) (*image.RGBA, error) {
	img := image.NewRGBA(r.Bounds())
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	b := r.config.BorderConfig
	seriesArea := image.Rect(b.Left, b.Top, r.config.Width-b.Right, b.Top+r.config.PanelHeight)
	spectrumTop := seriesArea.Max.Y + r.config.PanelGap
	spectrumArea := image.Rect(b.Left, spectrumTop, r.config.Width-b.Right, spectrumTop+r.config.PanelHeight)

	txt := newTextDrawer(img, r.font, r.config.FontSize)
	defer txt.Close()

	ops := []struct {
		msg string
		fn  func() error
	}{
		{"drawing time series", func() error { return r.drawTimeSeries(img, txt, seriesArea, res) }},
		{"drawing periodogram", func() error { return r.drawPeriodogram(img, txt, spectrumArea, res) }},
		{"drawing info bar", func() error { return r.drawInfoBar(img, txt, res) }},
	}
	for _, op := range ops {
		if err := op.fn(); err != nil {
			return nil, fmt.Errorf("%s: %w", op.msg, err)
		}
	}

	return img, nil
}

func (r *Renderer) drawTimeSeries(img *image.RGBA, txt *textDrawer, area image.Rectangle, res *simulation.Result) error {
	times := res.Times
	values := res.Visibility.Masked

	order := make([]int, len(times))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return times[order[i]] < times[order[j]] })

	xAxis := axis{min: 0, max: 1}
	yAxis := axis{min: -1, max: 1}
	if len(times) > 0 {
		xAxis = newLinearAxis(floats.Min(times), floats.Max(times), 0.02)
		yAxis = newLinearAxis(floats.Min(values), floats.Max(values), 0.05)
	}

	p := panel{img: img, area: area, x: xAxis, y: yAxis}
	if err := p.drawFrame(txt, "Time Series", "Time [hr]", "Amplitude"); err != nil {
		return err
	}

	prevX, prevY, started := 0, 0, false
	for _, i := range order {
		x, y, ok := p.point(times[i], values[i])
		if !ok {
			continue
		}
		if started {
			p.line(prevX, prevY, x, y, colorMasked, false)
		}
		prevX, prevY, started = x, y, true
	}

	for _, i := range order {
		if !res.Visibility.Mask[i] {
			continue
		}
		if x, y, ok := p.point(times[i], values[i]); ok {
			p.dot(x, y, colorVisible)
		}
	}

	return nil
}

func (r *Renderer) drawPeriodogram(img *image.RGBA, txt *textDrawer, area image.Rectangle, res *simulation.Result) error {
	spec := res.Spectrum

	p := panel{
		img:  img,
		area: area,
		x:    frequencyAxis(spec, res.Aliases),
		y:    powerAxis(spec, r.config.LogPower),
	}
	if err := p.drawFrame(txt, "Lomb-Scargle Periodogram", "Frequency [1/hr]", "Power"); err != nil {
		return err
	}

	if !p.y.log {
		if _, y, ok := p.point(p.x.min, 0); ok {
			p.line(area.Min.X, y, area.Max.X-1, y, color.Black, true)
		}
	}

	var drawn []alias.Marker
	for _, m := range res.Aliases {
		if !p.x.contains(m.Frequency) {
			continue
		}
		x, _, ok := p.point(m.Frequency, p.y.min)
		if !ok {
			continue
		}
		p.line(x, area.Min.Y, x, area.Max.Y-1, markerColor(m), m.Name == alias.NameDayMinus)
		drawn = append(drawn, m)
	}

	if spec.IsEmpty() {
		msg := fmt.Sprintf("fewer than %d visible samples, no periodogram", simulation.MinVisibleSamples)
		width := txt.measure(msg)
		if err := txt.draw(msg, area.Min.X+(area.Dx()-width)/2, area.Min.Y+area.Dy()/2, color.Black); err != nil {
			return err
		}
	}

	prevX, prevY, started := 0, 0, false
	for i := 0; i < spec.Len(); i++ {
		power := spec.Power[i]
		if p.y.log {
			power = math.Max(power, p.y.min)
		}
		x, y, ok := p.point(spec.Frequency[i], power)
		if !ok {
			started = false
			continue
		}
		if started {
			p.line(prevX, prevY, x, y, colorSpectrum, false)
		}
		prevX, prevY, started = x, y, true
	}

	return p.drawLegend(txt, drawn)
}

func (r *Renderer) drawInfoBar(img *image.RGBA, txt *textDrawer, res *simulation.Result) error {
	prm := res.Params

	info := fmt.Sprintf("Observations: %s; visible: %s (%.0f%%); period: %s h; day fraction: %s",
		humanize.Comma(int64(prm.Observations)),
		humanize.Comma(int64(res.Visibility.VisibleCount())),
		100*res.Visibility.Fraction(),
		humanize.FtoaWithDigits(prm.PeriodHours, 3),
		humanize.FtoaWithDigits(prm.DayFraction, 2))

	if peak, ok := res.Peak(); ok {
		info += fmt.Sprintf("; peak: %s /hr (%s h)",
			humanize.FtoaWithDigits(peak.Frequency, 5),
			humanize.FtoaWithDigits(peak.Period(), 3))
	}

	y := img.Bounds().Max.Y - txt.height()/2
	return txt.draw(info, r.config.BorderConfig.Left, y, color.Black)
}

// frequencyAxis spans the spectrum, or the alias markers when the spectrum is empty
func frequencyAxis(spec spectrum.Spectrum, aliases alias.Set) axis {
	if !spec.IsEmpty() {
		lo, hi := spec.Frequency[0], spec.Frequency[spec.Len()-1]
		if lo <= 0 && spec.Len() > 1 {
			lo = spec.Frequency[1]
		}
		return newLogAxis(lo, hi)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, f := range aliases.Frequencies() {
		if f > 0 {
			lo, hi = math.Min(lo, f), math.Max(hi, f)
		}
	}
	if math.IsInf(lo, 0) {
		return newLogAxis(1e-3, 1)
	}
	return newLogAxis(lo/2, hi*2)
}

func powerAxis(spec spectrum.Spectrum, logPower bool) axis {
	if spec.IsEmpty() {
		if logPower {
			return newLogAxis(logPowerFloor, 1)
		}
		return axis{min: 0, max: 1}
	}

	if logPower {
		b := logPowerBounds(spec.Power)
		return newLogAxis(b.Min, b.Max)
	}

	hi := floats.Max(spec.Power)

	if !(hi > 0) {
		hi = 1
	}
	return axis{min: math.Min(0, floats.Min(spec.Power)), max: hi * 1.05}
}
