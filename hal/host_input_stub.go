//go:build !tinygo && !cgo

package hal

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) poll() {
	// No keyboard support without the window backend.
}

type hostTouch struct {
	ch chan TouchEvent
}

func newHostTouch() *hostTouch {
	return &hostTouch{ch: make(chan TouchEvent, 64)}
}

func (t *hostTouch) Events() <-chan TouchEvent { return t.ch }

func (t *hostTouch) poll() {}
