//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

// HostConfig describes the simulated device.
type HostConfig struct {
	Width  int
	Height int
	Round  bool
	Caps   Capabilities

	// DenyWakeLock makes every wake lock acquisition fail.
	DenyWakeLock bool
}

func (c HostConfig) withDefaults() HostConfig {
	if c.Width <= 0 {
		c.Width = 320
	}
	if c.Height <= 0 {
		c.Height = 320
	}
	return c
}

type hostHAL struct {
	cfg    HostConfig
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	touch  *hostTouch
	t      *hostTime
	power  *hostPower
	radio  hostRadio
}

// New returns a host HAL implementation.
func New(cfg HostConfig) HAL {
	return newHost(cfg)
}

func newHost(cfg HostConfig) *hostHAL {
	cfg = cfg.withDefaults()
	logger := &hostLogger{w: os.Stdout}
	return &hostHAL{
		cfg:    cfg,
		logger: logger,
		fb:     newHostFramebuffer(cfg.Width, cfg.Height),
		kbd:    newHostKeyboard(),
		touch:  newHostTouch(),
		t:      newHostTime(),
		power:  &hostPower{logger: logger, deny: cfg.DenyWakeLock},
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb, round: h.cfg.Round, caps: h.cfg.Caps} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd, touch: h.touch} }
func (h *hostHAL) Time() Time       { return h.t }
func (h *hostHAL) Power() Power     { return h.power }
func (h *hostHAL) Radio() Radio     { return h.radio }

type hostDisplay struct {
	fb    *hostFramebuffer
	round bool
	caps  Capabilities
}

func (d hostDisplay) Framebuffer() Framebuffer   { return d.fb }
func (d hostDisplay) Round() bool                { return d.round }
func (d hostDisplay) Capabilities() Capabilities { return d.caps }

type hostInput struct {
	kbd   *hostKeyboard
	touch *hostTouch
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Touch() Touch       { return in.touch }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
