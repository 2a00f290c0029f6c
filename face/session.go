package face

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"watchface/internal/logging"
	"watchface/resources"

	"github.com/google/uuid"
)

// Session is one face instance: display mode, tap counters and the redraw
// timer, all mutated only through the Engine callbacks.
type Session struct {
	id     uuid.UUID
	log    *slog.Logger
	dimens resources.Dimens
	redraw Invalidator
	lock   WakeLock
	paint  ParamsApplier

	mode     Mode
	counters Counters
	sched    *Scheduler

	created   bool
	destroyed bool
	held      bool
}

var _ Engine = (*Session)(nil)

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	log    *slog.Logger
	dimens resources.Dimens
	period time.Duration
	paint  ParamsApplier
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *sessionOptions) { o.log = l }
}

// WithDimens sets the layout table.
func WithDimens(d resources.Dimens) Option {
	return func(o *sessionOptions) { o.dimens = d }
}

// WithTickPeriod sets the interactive redraw cadence.
func WithTickPeriod(d time.Duration) Option {
	return func(o *sessionOptions) { o.period = d }
}

// WithParamsApplier registers the painter to notify on shape changes.
func WithParamsApplier(p ParamsApplier) Option {
	return func(o *sessionOptions) { o.paint = p }
}

// NewSession builds a session. Nothing is acquired or scheduled until OnCreate.
func NewSession(loop Looper, redraw Invalidator, lock WakeLock, opts ...Option) *Session {
	o := sessionOptions{
		log:    logging.Discard(),
		dimens: resources.Default(),
		period: DefaultTickPeriod,
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Session{
		id:     uuid.New(),
		dimens: o.dimens,
		redraw: redraw,
		lock:   lock,
		paint:  o.paint,
	}
	s.log = o.log.With("session", s.id.String())
	s.sched = NewScheduler(loop, o.period, s.ticking, s.redraw.Invalidate, s.log)
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID { return s.id }

// Mode returns the current display mode.
func (s *Session) Mode() Mode { return s.mode }

// Counters returns the tap counters.
func (s *Session) Counters() Counters { return s.counters }

// Params derives the render parameters from the current mode.
func (s *Session) Params() Params { return s.mode.Params(s.dimens) }

// Armed reports whether a redraw tick is pending.
func (s *Session) Armed() bool { return s.sched.Armed() }

// Frame snapshots everything a painter needs.
func (s *Session) Frame() Frame {
	return Frame{
		Params:   s.Params(),
		Counters: s.counters,
		Mode:     s.mode,
	}
}

func (s *Session) ticking() bool {
	return s.created && !s.destroyed && s.mode.Ticking()
}

// OnCreate takes the wake lock and arms the redraw timer. A lock failure is
// returned as is: the face cannot run without it.
func (s *Session) OnCreate() error {
	if s.created {
		return nil
	}
	if err := s.lock.Acquire(); err != nil {
		return fmt.Errorf("face: create: %w", err)
	}
	s.held = true
	s.created = true
	s.log.Debug("onCreate")
	s.sched.StartIfNeeded()
	return nil
}

// OnDestroy disarms the timer and releases the wake lock. Only the first call
// after a successful OnCreate releases anything.
func (s *Session) OnDestroy() {
	s.log.Debug("onDestroy")
	s.destroyed = true
	s.sched.Stop()
	if s.held {
		s.held = false
		s.lock.Release()
	}
}

// OnVisibilityChanged re-arms or drops the redraw tick.
func (s *Session) OnVisibilityChanged(visible bool) {
	s.log.Debug("onVisibilityChanged", "visible", visible)
	s.mode.Interactive = visible
	s.sched.StartIfNeeded()
}

// OnAmbientModeChanged always redraws, even when the mode did not change.
func (s *Session) OnAmbientModeChanged(ambient bool) {
	s.log.Debug("onAmbientModeChanged", "ambient", ambient)
	s.mode.Ambient = ambient
	s.redraw.Invalidate()
	s.sched.StartIfNeeded()
}

// OnPropertiesChanged stores the panel flags. The next frame picks them up;
// no redraw is requested.
func (s *Session) OnPropertiesChanged(lowBitAmbient, burnInProtection bool) {
	s.mode.LowBitAmbient = lowBitAmbient
	s.mode.BurnInProtection = burnInProtection
	s.log.Debug("onPropertiesChanged",
		"burn_in_protection", burnInProtection,
		"low_bit_ambient", lowBitAmbient,
	)
}

// OnShapeChanged hands the new params to the painter before the next frame.
func (s *Session) OnShapeChanged(round bool) {
	shape := "square"
	if round {
		shape = "round"
	}
	s.log.Debug("onShapeChanged", "shape", shape)
	s.mode.Round = round
	s.mode.ShapeKnown = true
	if s.paint != nil {
		s.paint.ApplyParams(s.Params())
	}
}

// OnOverlayBoundsChanged ignores bounds equal to the current ones.
func (s *Session) OnOverlayBoundsChanged(bounds image.Rectangle) {
	s.log.Debug("onOverlayBoundsChanged", "bounds", bounds.String())
	if bounds == s.mode.Overlay {
		return
	}
	s.mode.Overlay = bounds
	s.redraw.Invalidate()
}

// OnTap records the tap and redraws. Unknown kinds only move the last
// coordinates.
func (s *Session) OnTap(kind TapKind, x, y int, eventTime int64) {
	s.log.Debug("onTap", "kind", kind.String(), "x", x, "y", y, "event_time", eventTime)
	if !s.counters.Record(kind, x, y) {
		s.log.Debug("tap kind ignored", "kind", uint8(kind))
	}
	s.redraw.Invalidate()
}

// OnTimeTick is the low-frequency redraw; ambient frames rely on it.
func (s *Session) OnTimeTick() {
	s.log.Debug("onTimeTick", "ambient", s.mode.Ambient)
	s.redraw.Invalidate()
}
