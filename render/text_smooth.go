package render

import (
	"image/color"

	"watchface/face"

	"github.com/fogleman/gg"
)

// textDrawer draws a single line with its baseline at y.
type textDrawer interface {
	drawText(s string, x, y float64, size float32, w face.Weight, c color.RGBA)
}

// smoothText rasterizes with coverage, so glyph edges blend into the background.
type smoothText struct {
	dc    *gg.Context
	fonts *fontSet
}

func (t smoothText) drawText(s string, x, y float64, size float32, w face.Weight, c color.RGBA) {
	t.dc.SetFontFace(t.fonts.face(w, size))
	t.dc.SetColor(c)
	t.dc.DrawString(s, x, y)
}
