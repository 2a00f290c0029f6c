//go:build !tinygo && cgo

package hal

import (
	"watchface/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a desktop window that displays the framebuffer and forwards
// mouse and keyboard input. It blocks until the window closes.
func RunWindow(cfg HostConfig, newProgram func(HAL) (Program, error)) error {
	h := newHost(cfg)
	p, err := newProgram(h)
	if err != nil {
		return err
	}
	defer p.Close()

	g := &hostGame{h: h, p: p}
	ebiten.SetWindowTitle("watchface (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*2, h.fb.height*2)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	p     Program
	pix   []byte
	fbImg *ebiten.Image
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.h.touch.poll()
	g.h.t.step()
	return g.p.Step()
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.fbImg == nil {
		g.pix = make([]byte, fb.width*fb.height*4)
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.mu.Lock()
	expandRGB565(g.pix, fb.shown)
	fb.mu.Unlock()

	g.fbImg.WritePixels(g.pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
