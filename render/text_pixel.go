package render

import (
	"image"
	"image/color"

	"watchface/face"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
	"tinygo.org/x/tinyfont/proggy"
)

// pixelText draws 1-bit bitmap glyphs: every pixel is either ink or untouched.
type pixelText struct {
	d canvasDisplay
}

func newPixelText(img *image.RGBA) pixelText {
	return pixelText{d: canvasDisplay{img: img}}
}

func (t pixelText) drawText(s string, x, y float64, size float32, w face.Weight, c color.RGBA) {
	tinyfont.WriteLine(t.d, bitmapFont(size, w), int16(x), int16(y), s, c)
}

// bitmapFont picks the closest bitmap font for a pixel size. Below 9px only
// the ProggyTiny face is legible, and it has no bold cut.
func bitmapFont(size float32, w face.Weight) *tinyfont.Font {
	bold := w == face.WeightBold
	switch {
	case size < 9:
		return &proggy.TinySZ8pt7b
	case size < 14:
		if bold {
			return &freesans.Bold9pt7b
		}
		return &freesans.Regular9pt7b
	case size < 20:
		if bold {
			return &freesans.Bold12pt7b
		}
		return &freesans.Regular12pt7b
	case size < 28:
		if bold {
			return &freesans.Bold18pt7b
		}
		return &freesans.Regular18pt7b
	default:
		if bold {
			return &freesans.Bold24pt7b
		}
		return &freesans.Regular24pt7b
	}
}
