// Package shell plays the host platform for a face: it owns the visible,
// ambient, shape and overlay state, turns raw pointer samples into tap
// gestures and delivers everything to a face.Engine.
package shell

import (
	"image"
	"log/slog"
	"time"

	"watchface/face"
	"watchface/hal"
	"watchface/internal/logging"
)

const (
	DefaultTimeTickEvery = time.Minute
	DefaultTouchSlop     = 8
	DefaultLongPress     = 500 * time.Millisecond
)

// Config describes the simulated device.
type Config struct {
	Width  int
	Height int
	Round  bool
	Caps   hal.Capabilities

	// AmbientAfter drops into ambient mode after this much inactivity. Zero
	// disables it.
	AmbientAfter time.Duration

	TimeTickEvery time.Duration

	// PeekCard is the overlay shown while a notification card peeks. Empty
	// means the bottom third of the screen.
	PeekCard image.Rectangle

	TouchSlop int
	LongPress time.Duration
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = 320
	}
	if c.Height <= 0 {
		c.Height = 320
	}
	if c.TimeTickEvery <= 0 {
		c.TimeTickEvery = DefaultTimeTickEvery
	}
	if c.PeekCard.Empty() {
		c.PeekCard = image.Rect(0, c.Height*2/3, c.Width, c.Height)
	}
	if c.TouchSlop <= 0 {
		c.TouchSlop = DefaultTouchSlop
	}
	if c.LongPress <= 0 {
		c.LongPress = DefaultLongPress
	}
	return c
}

type gesture struct {
	active    bool
	swallowed bool
	cancelled bool
	at        time.Time
	x, y      int
}

// Shell delivers platform notifications to one engine.
type Shell struct {
	e   face.Engine
	cfg Config
	log *slog.Logger

	started bool
	visible bool
	ambient bool
	round   bool
	lowBit  bool
	burnIn  bool
	peek    bool

	lastInput time.Time
	nextTick  time.Time
	g         gesture
}

// New returns a shell for e. log may be nil.
func New(e face.Engine, cfg Config, log *slog.Logger) *Shell {
	if log == nil {
		log = logging.Discard()
	}
	cfg = cfg.withDefaults()
	return &Shell{
		e:      e,
		cfg:    cfg,
		log:    log,
		round:  cfg.Round,
		lowBit: cfg.Caps.LowBitAmbient,
		burnIn: cfg.Caps.BurnInProtection,
	}
}

// Platform state as last reported to the engine.
func (s *Shell) Visible() bool { return s.visible }
func (s *Shell) Ambient() bool { return s.ambient }
func (s *Shell) Round() bool   { return s.round }
func (s *Shell) Peeking() bool { return s.peek }

// Start sends what a freshly attached face learns about the device: panel
// properties, screen shape, then visibility.
func (s *Shell) Start(now time.Time) {
	if s.started {
		return
	}
	s.started = true
	s.lastInput = now
	s.nextTick = now.Truncate(s.cfg.TimeTickEvery).Add(s.cfg.TimeTickEvery)
	s.e.OnPropertiesChanged(s.lowBit, s.burnIn)
	s.e.OnShapeChanged(s.round)
	s.SetVisible(true)
}

// SetVisible always notifies, even when unchanged.
func (s *Shell) SetVisible(v bool) {
	s.visible = v
	s.log.Debug("visibility", "visible", v)
	s.e.OnVisibilityChanged(v)
}

// SetAmbient notifies only on a change. Leaving ambient counts as input.
func (s *Shell) SetAmbient(a bool, now time.Time) {
	if !a {
		s.lastInput = now
	}
	if a == s.ambient {
		return
	}
	s.ambient = a
	s.log.Debug("ambient", "ambient", a)
	s.e.OnAmbientModeChanged(a)
}

// SetRound reports a new screen shape.
func (s *Shell) SetRound(round bool) {
	s.round = round
	s.e.OnShapeChanged(round)
}

// SetProperties reports new panel capabilities.
func (s *Shell) SetProperties(lowBit, burnIn bool) {
	s.lowBit = lowBit
	s.burnIn = burnIn
	s.e.OnPropertiesChanged(lowBit, burnIn)
}

// SetPeek shows or hides the notification card.
func (s *Shell) SetPeek(peek bool) {
	s.peek = peek
	if peek {
		s.e.OnOverlayBoundsChanged(s.cfg.PeekCard)
		return
	}
	s.e.OnOverlayBoundsChanged(image.Rectangle{})
}

// SetOverlay reports arbitrary overlay bounds.
func (s *Shell) SetOverlay(r image.Rectangle) {
	s.peek = !r.Empty()
	s.e.OnOverlayBoundsChanged(r)
}

func (s *Shell) tap(kind face.TapKind, x, y int, now time.Time) {
	s.e.OnTap(kind, x, y, now.UnixMilli())
}

// HandleTouch classifies a raw pointer sample. A touch in ambient mode wakes
// the face and is not delivered.
func (s *Shell) HandleTouch(ev hal.TouchEvent, now time.Time) {
	s.lastInput = now
	switch ev.Action {
	case hal.TouchDown:
		s.g = gesture{active: true, at: now, x: ev.X, y: ev.Y}
		if s.ambient {
			s.g.swallowed = true
			s.SetAmbient(false, now)
			return
		}
		s.tap(face.TapTouch, ev.X, ev.Y, now)
	case hal.TouchMove:
		if !s.live() {
			return
		}
		if abs(ev.X-s.g.x) > s.cfg.TouchSlop || abs(ev.Y-s.g.y) > s.cfg.TouchSlop {
			s.cancel(ev.X, ev.Y, now)
			return
		}
		s.checkLongPress(now)
	case hal.TouchUp:
		if !s.live() {
			s.g = gesture{}
			return
		}
		s.checkLongPress(now)
		if !s.g.cancelled {
			s.tap(face.TapTap, ev.X, ev.Y, now)
		}
		s.g = gesture{}
	}
}

// CancelTouch aborts the gesture in progress, if any.
func (s *Shell) CancelTouch(now time.Time) {
	if s.live() {
		s.cancel(s.g.x, s.g.y, now)
	}
}

func (s *Shell) live() bool {
	return s.g.active && !s.g.swallowed && !s.g.cancelled
}

func (s *Shell) cancel(x, y int, now time.Time) {
	s.g.cancelled = true
	s.tap(face.TapTouchCancel, x, y, now)
}

func (s *Shell) checkLongPress(now time.Time) {
	if s.live() && now.Sub(s.g.at) >= s.cfg.LongPress {
		s.cancel(s.g.x, s.g.y, now)
	}
}

// HandleKey maps simulator keys to platform changes.
func (s *Shell) HandleKey(ev hal.KeyEvent, now time.Time) {
	if !ev.Press {
		return
	}
	s.lastInput = now
	if ev.Code == hal.KeyEscape {
		s.CancelTouch(now)
		return
	}
	switch ev.Rune {
	case 'a':
		s.SetAmbient(!s.ambient, now)
	case 'v':
		s.SetVisible(!s.visible)
	case 'r':
		s.SetRound(!s.round)
	case 'p':
		s.SetPeek(!s.peek)
	case 'b':
		s.SetProperties(s.lowBit, !s.burnIn)
	case 'l':
		s.SetProperties(!s.lowBit, s.burnIn)
	}
}

// Advance runs the time based parts of the platform: long press detection,
// the inactivity timeout and the minute tick.
func (s *Shell) Advance(now time.Time) {
	if !s.started {
		return
	}
	s.checkLongPress(now)
	if s.cfg.AmbientAfter > 0 && s.visible && !s.ambient && !s.g.active &&
		now.Sub(s.lastInput) >= s.cfg.AmbientAfter {
		s.SetAmbient(true, now)
	}
	if !now.Before(s.nextTick) {
		s.nextTick = now.Truncate(s.cfg.TimeTickEvery).Add(s.cfg.TimeTickEvery)
		s.e.OnTimeTick()
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
