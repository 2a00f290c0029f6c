package render

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
)

// canvasDisplay lets tinyfont draw straight into the RGBA canvas.
type canvasDisplay struct {
	img *image.RGBA
}

var _ drivers.Displayer = canvasDisplay{}

func (d canvasDisplay) Size() (x, y int16) {
	b := d.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (d canvasDisplay) SetPixel(x, y int16, c color.RGBA) {
	p := image.Pt(int(x), int(y))
	if !p.In(d.img.Rect) {
		return
	}
	d.img.SetRGBA(p.X, p.Y, c)
}

func (d canvasDisplay) Display() error { return nil }
