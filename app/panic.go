package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"

	"watchface/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// recoverPanic turns a panic inside Step into an error, logging the stack and
// leaving a crash screen on the display. The session stays alive so Close
// still releases the wake lock.
func (a *App) recoverPanic(errp *error) {
	v := recover()
	if v == nil {
		return
	}
	stack := string(debug.Stack())
	a.log.Error("face panic", "panic", fmt.Sprint(v))
	if l := a.h.Logger(); l != nil {
		for _, line := range strings.Split(stack, "\n") {
			if line != "" {
				l.WriteLineString(line)
			}
		}
	}

	lines := []string{"Face Panic:", fmt.Sprintf("panic: %v", v)}
	for _, line := range strings.Split(stack, "\n") {
		if line != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	if fb := a.h.Display().Framebuffer(); fb != nil {
		drawPanicScreen(fb, lines)
	}
	*errp = fmt.Errorf("app: panic: %v", v)
}

func drawPanicScreen(fb hal.Framebuffer, lines []string) {
	const lineHeight = 10
	fb.ClearRGB(255, 255, 255)

	font := &proggy.TinySZ8pt7b
	fg := color.RGBA{A: 255}
	d := panicDisplay{fb: fb}

	_, outboxWidth := tinyfont.LineWidth(font, "0")
	cols := 1
	if outboxWidth > 0 {
		cols = fb.Width() / int(outboxWidth)
	}
	if cols <= 0 {
		cols = 1
	}

	y := lineHeight
	for _, line := range lines {
		for len(line) > 0 {
			if y > fb.Height() {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, font, 2, int16(y), chunk, fg)
			y += lineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

type panicDisplay struct {
	fb hal.Framebuffer
}

func (d panicDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d panicDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return
	}
	if x < 0 || y < 0 || int(x) >= d.fb.Width() || int(y) >= d.fb.Height() {
		return
	}
	off := int(y)*d.fb.StrideBytes() + int(x)*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := hal.RGB565(c.R, c.G, c.B)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d panicDisplay) Display() error { return nil }

func takeRunes(s string, n int) (chunk, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	i := 0
	for idx := range s {
		if i == n {
			return s[:idx], s[idx:]
		}
		i++
	}
	return s, ""
}
