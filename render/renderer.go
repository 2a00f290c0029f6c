// Package render paints face frames into a HAL framebuffer.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strconv"
	"time"

	"watchface/face"
	"watchface/hal"
	"watchface/internal/logging"

	"github.com/fogleman/gg"
)

var (
	colorBlack = color.RGBA{A: 0xFF}
	colorWhite = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colorCyan  = color.RGBA{G: 0xFF, B: 0xFF, A: 0xFF}
	colorGreen = color.RGBA{G: 0xFF, A: 0xFF}
)

// Renderer draws into an RGBA canvas and packs the result into the framebuffer.
type Renderer struct {
	fb     hal.Framebuffer
	radio  hal.Radio
	now    func() time.Time
	log    *slog.Logger
	canvas *image.RGBA
	dc     *gg.Context
	fonts  *fontSet
	smooth smoothText
	pixel  pixelText
}

var _ face.ParamsApplier = (*Renderer)(nil)

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock overrides the wall clock used for the time and date lines.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// WithLogger sets the renderer logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) { r.log = l }
}

// New prepares a renderer for fb. radio may be nil.
func New(fb hal.Framebuffer, radio hal.Radio, opts ...Option) (*Renderer, error) {
	if fb == nil {
		return nil, errors.New("render: nil framebuffer")
	}
	if fb.Format() != hal.PixelFormatRGB565 {
		return nil, fmt.Errorf("render: unsupported pixel format %d", fb.Format())
	}
	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}
	canvas := image.NewRGBA(image.Rect(0, 0, fb.Width(), fb.Height()))
	r := &Renderer{
		fb:     fb,
		radio:  radio,
		now:    time.Now,
		log:    logging.Discard(),
		canvas: canvas,
		dc:     gg.NewContextForRGBA(canvas),
		fonts:  fonts,
	}
	r.smooth = smoothText{dc: r.dc, fonts: fonts}
	r.pixel = newPixelText(canvas)
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Canvas exposes the last painted frame.
func (r *Renderer) Canvas() *image.RGBA { return r.canvas }

// ApplyParams builds the faces the next frame will ask for.
func (r *Renderer) ApplyParams(p face.Params) {
	r.fonts.face(p.Weight, p.TextSize)
	r.fonts.face(p.Weight, p.TextSize/2)
	r.log.Debug("params applied",
		"text_size", p.TextSize,
		"weight", p.Weight.String(),
		"x_offset", p.XOffset,
		"y_offset", p.YOffset,
	)
}

// Render paints f and presents it.
func (r *Renderer) Render(f face.Frame) error {
	p := f.Params
	var td textDrawer = r.smooth
	if !p.AntiAlias {
		td = r.pixel
	}

	r.dc.SetColor(colorBlack)
	r.dc.Clear()

	w := float64(r.canvas.Rect.Dx())
	h := float64(r.canvas.Rect.Dy())
	size := p.TextSize
	lh := float64(p.LineHeight)

	var info hal.RadioInfo
	if r.radio != nil {
		info = r.radio.Info()
	}
	fs := float64(size)
	td.drawText(FormatIPv4(info.IP), w/2-70, fs*2, size, p.Weight, colorCyan)
	td.drawText("S:"+info.SSID, w/2-90, fs*3, size, p.Weight, colorCyan)
	td.drawText("B:"+info.BSSID, w/2-90, fs*4, size, p.Weight, colorCyan)

	now := r.now()
	td.drawText(now.Format("15:04:05 MST"), w/2-68, h-10-lh, size, p.Weight, colorCyan)
	td.drawText(now.Format("01/02/06"), w/2-50, h-10, size, p.Weight, colorCyan)

	c := f.Counters
	td.drawText(strconv.Itoa(c.LastX), 5, h/2-10, size/2, p.Weight, colorWhite)
	td.drawText(strconv.Itoa(c.LastY), 5, h/2-10+lh/2, size/2, p.Weight, colorWhite)

	x, y := float64(p.XOffset), float64(p.YOffset)
	td.drawText(fmt.Sprintf("TAP: %d", c.Tap), x, y, size, p.Weight, colorGreen)
	td.drawText(fmt.Sprintf("CANCEL: %d", c.TouchCancel), x, y+lh, size, p.Weight, colorGreen)
	td.drawText(fmt.Sprintf("TOUCH: %d", c.Touch), x, y+2*lh, size, p.Weight, colorGreen)

	if f.Mode.Ambient && !f.Mode.Overlay.Empty() {
		o := f.Mode.Overlay.Intersect(r.canvas.Rect)
		r.dc.SetColor(colorBlack)
		r.dc.DrawRectangle(float64(o.Min.X), float64(o.Min.Y), float64(o.Dx()), float64(o.Dy()))
		r.dc.Fill()
	}

	hal.PackRGBA(r.fb.Buffer(), r.fb.StrideBytes(), r.canvas.Pix, r.canvas.Stride, r.canvas.Rect.Dx(), r.canvas.Rect.Dy())
	if err := r.fb.Present(); err != nil {
		return fmt.Errorf("render: present: %w", err)
	}
	return nil
}

// FormatIPv4 renders a little-endian packed address, low byte first.
func FormatIPv4(ip uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", byte(ip), byte(ip>>8), byte(ip>>16), byte(ip>>24))
}
