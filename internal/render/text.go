package render

import (
	"image"
	"image/color"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// textDrawer wraps a freetype context and a face for measuring
type textDrawer struct {
	context  *freetype.Context
	fontFace font.Face
}

func newTextDrawer(img *image.RGBA, f *truetype.Font, size float64) *textDrawer {
	ctx := freetype.NewContext()
	ctx.SetDPI(dpi)
	ctx.SetFont(f)
	ctx.SetFontSize(size)
	ctx.SetHinting(font.HintingNone)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.Black)

	return &textDrawer{
		context: ctx,
		fontFace: truetype.NewFace(f, &truetype.Options{
			Size:    size,
			DPI:     dpi,
			Hinting: font.HintingNone,
		}),
	}
}

func (t *textDrawer) Close() error {
	if t.fontFace != nil {
		return t.fontFace.Close()
	}
	return nil
}

// draw writes s with its baseline at y
func (t *textDrawer) draw(s string, x, y int, c color.Color) error {
	t.context.SetSrc(image.NewUniform(c))
	_, err := t.context.DrawString(s, freetype.Pt(x, y))
	return err
}

func (t *textDrawer) measure(s string) int {
	return font.MeasureString(t.fontFace, s).Round()
}

func (t *textDrawer) height() int {
	metrics := t.fontFace.Metrics()
	return (metrics.Ascent + metrics.Descent).Round()
}
