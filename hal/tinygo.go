//go:build tinygo

package hal

import (
	"machine"
	"time"
)

type tinyGoHAL struct {
	logger *uartLogger
	fb     *memFramebuffer
	t      *tinyGoTime
}

// New returns a microcontroller HAL: UART0 logging on GP0/GP1 at 115200 8N1 and an
// in-memory framebuffer that a panel driver can flush from.
func New(cfg HostConfig) HAL {
	cfg = cfg.withDefaults()
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		fb:     newMemFramebuffer(cfg.Width, cfg.Height),
		t:      newTinyGoTime(),
	}
}

// HostConfig mirrors the host build so callers share one constructor signature.
type HostConfig struct {
	Width  int
	Height int
	Round  bool
	Caps   Capabilities
}

func (c HostConfig) withDefaults() HostConfig {
	if c.Width <= 0 {
		c.Width = 240
	}
	if c.Height <= 0 {
		c.Height = 240
	}
	return c
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Input() Input     { return tinyGoInput{} }
func (h *tinyGoHAL) Time() Time       { return h.t }
func (h *tinyGoHAL) Power() Power     { return tinyGoPower{} }
func (h *tinyGoHAL) Radio() Radio     { return tinyGoRadio{} }

type tinyGoDisplay struct {
	fb Framebuffer
}

func (d tinyGoDisplay) Framebuffer() Framebuffer   { return d.fb }
func (d tinyGoDisplay) Round() bool                { return false }
func (d tinyGoDisplay) Capabilities() Capabilities { return Capabilities{LowBitAmbient: true} }

type tinyGoInput struct{}

func (tinyGoInput) Keyboard() Keyboard { return nil }
func (tinyGoInput) Touch() Touch       { return nil }

// The MCU never sleeps under the face, so the lock is bookkeeping only.
type tinyGoPower struct{}

func (tinyGoPower) NewWakeLock(string) WakeLock { return &tinyGoWakeLock{} }

type tinyGoWakeLock struct{ held bool }

func (l *tinyGoWakeLock) Acquire() error { l.held = true; return nil }
func (l *tinyGoWakeLock) Release()       { l.held = false }
func (l *tinyGoWakeLock) Held() bool     { return l.held }

type tinyGoRadio struct{}

func (tinyGoRadio) Info() RadioInfo { return RadioInfo{} }

type memFramebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte
}

func newMemFramebuffer(w, h int) *memFramebuffer {
	return &memFramebuffer{w: w, h: h, stride: w * 2, buf: make([]byte, w*2*h)}
}

func (f *memFramebuffer) Width() int          { return f.w }
func (f *memFramebuffer) Height() int         { return f.h }
func (f *memFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *memFramebuffer) StrideBytes() int    { return f.stride }
func (f *memFramebuffer) Buffer() []byte      { return f.buf }
func (f *memFramebuffer) Present() error      { return nil }

func (f *memFramebuffer) ClearRGB(r, g, b uint8) {
	pixel := rgb565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

type tinyGoTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}
