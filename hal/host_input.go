//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

func (k *hostKeyboard) poll() {
	for _, r := range ebiten.AppendInputChars(nil) {
		k.emit(KeyEvent{Press: true, Rune: r})
	}

	keys := [...]struct {
		key  ebiten.Key
		code KeyCode
	}{
		{ebiten.KeyEnter, KeyEnter},
		{ebiten.KeyEscape, KeyEscape},
		{ebiten.KeySpace, KeySpace},
	}
	for _, m := range keys {
		if inpututil.IsKeyJustPressed(m.key) {
			k.emit(KeyEvent{Code: m.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(m.key) {
			k.emit(KeyEvent{Code: m.code, Press: false})
		}
	}
}

// hostTouch maps the left mouse button onto a single-finger touch panel.
type hostTouch struct {
	ch    chan TouchEvent
	down  bool
	lastX int
	lastY int
}

func newHostTouch() *hostTouch {
	return &hostTouch{ch: make(chan TouchEvent, 64)}
}

func (t *hostTouch) Events() <-chan TouchEvent { return t.ch }

func (t *hostTouch) emit(ev TouchEvent) {
	select {
	case t.ch <- ev:
	default:
	}
}

func (t *hostTouch) poll() {
	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		t.down = true
		t.emit(TouchEvent{Action: TouchDown, X: x, Y: y})
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		if t.down {
			t.down = false
			t.emit(TouchEvent{Action: TouchUp, X: x, Y: y})
		}
	case t.down && (x != t.lastX || y != t.lastY):
		t.emit(TouchEvent{Action: TouchMove, X: x, Y: y})
	}
	t.lastX, t.lastY = x, y
}
