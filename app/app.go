// Package app wires a face session, its renderer and the platform shell onto
// a HAL and drives them from one cooperative loop.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"watchface/face"
	"watchface/hal"
	"watchface/internal/buildinfo"
	"watchface/internal/logging"
	"watchface/kernel"
	"watchface/render"
	"watchface/resources"
	"watchface/shell"
)

// WakeLockTag names the wake lock a face session holds.
const WakeLockTag = "watchface"

type Config struct {
	TickPeriod time.Duration
	Dimens     resources.Dimens
	Shell      shell.Config

	// Script, when set, is replayed against the shell on the loop timebase.
	Script *shell.Script

	LogLevel slog.Leveler

	// Clock is the wall time at loop tick 0. Defaults to time.Now.
	Clock func() time.Time

	// NoWakeLock runs the session without asking the platform for a lock.
	NoWakeLock bool
}

// App is a hal.Program running one face.
type App struct {
	h       hal.HAL
	log     *slog.Logger
	loop    *kernel.Loop
	session *face.Session
	render  *render.Renderer
	shell   *shell.Shell
	script  *shell.Script
	start   time.Time
	ms      uint64
	dirty   bool
	closed  bool
	frames  uint64

	ticks <-chan uint64
	touch <-chan hal.TouchEvent
	keys  <-chan hal.KeyEvent
}

var _ hal.Program = (*App)(nil)

// New builds the face and creates its session. A session that cannot be
// created is returned as an error and nothing is left running.
func New(h hal.HAL, cfg Config) (*App, error) {
	if h == nil {
		return nil, errors.New("app: nil HAL")
	}
	disp := h.Display()
	if disp == nil || disp.Framebuffer() == nil {
		return nil, errors.New("app: no display")
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Dimens == (resources.Dimens{}) {
		cfg.Dimens = resources.Default()
	}
	if cfg.LogLevel == nil {
		cfg.LogLevel = slog.LevelInfo
	}

	a := &App{
		h:      h,
		log:    logging.New(h.Logger(), cfg.LogLevel),
		loop:   kernel.New(),
		script: cfg.Script,
		start:  cfg.Clock(),
		dirty:  true,
	}

	fb := disp.Framebuffer()
	r, err := render.New(fb, h.Radio(), render.WithClock(a.now), render.WithLogger(a.log))
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	a.render = r

	var lock face.WakeLock = nopLock{}
	if !cfg.NoWakeLock {
		if p := h.Power(); p != nil {
			lock = p.NewWakeLock(WakeLockTag)
		}
	}
	a.session = face.NewSession(a.loop, face.InvalidatorFunc(a.invalidate), lock,
		face.WithLogger(a.log),
		face.WithDimens(cfg.Dimens),
		face.WithTickPeriod(cfg.TickPeriod),
		face.WithParamsApplier(r),
	)

	sc := cfg.Shell
	sc.Width = fb.Width()
	sc.Height = fb.Height()
	sc.Round = disp.Round()
	sc.Caps = disp.Capabilities()
	a.shell = shell.New(a.session, sc, a.log)

	if in := h.Input(); in != nil {
		if k := in.Keyboard(); k != nil {
			a.keys = k.Events()
		}
		if t := in.Touch(); t != nil {
			a.touch = t.Events()
		}
	}
	if t := h.Time(); t != nil {
		a.ticks = t.Ticks()
	}

	if err := a.session.OnCreate(); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	a.shell.Start(a.now())
	a.log.Info("face started", append([]any{
		"session", a.session.ID().String(),
		"width", fb.Width(),
		"height", fb.Height(),
		"round", sc.Round,
	}, buildinfo.LogAttrs()...)...)
	return a, nil
}

func (a *App) now() time.Time {
	return a.start.Add(time.Duration(a.ms) * time.Millisecond)
}

func (a *App) invalidate() { a.dirty = true }

// Session exposes the running face.
func (a *App) Session() *face.Session { return a.session }

// Frames returns how many frames have been presented.
func (a *App) Frames() uint64 { return a.frames }

// Step runs one loop pass: input, scheduled callbacks, then at most one frame.
func (a *App) Step() (err error) {
	if a.closed {
		return nil
	}
	defer a.recoverPanic(&err)

	a.drainTicks()
	a.loop.TickTo(a.ms)
	now := a.now()
	a.drainInput(now)

	if a.script != nil {
		for _, st := range a.script.Due(now.Sub(a.start)) {
			if err := a.shell.Apply(st, now); err != nil {
				return fmt.Errorf("app: script: %w", err)
			}
		}
	}
	a.shell.Advance(now)
	a.loop.RunReady()

	if !a.dirty {
		return nil
	}
	a.dirty = false
	if err := a.render.Render(a.session.Frame()); err != nil {
		return err
	}
	a.frames++
	return nil
}

func (a *App) drainTicks() {
	for {
		select {
		case ms, ok := <-a.ticks:
			if !ok {
				a.ticks = nil
				return
			}
			if ms > a.ms {
				a.ms = ms
			}
		default:
			return
		}
	}
}

func (a *App) drainInput(now time.Time) {
	for {
		select {
		case ev, ok := <-a.touch:
			if !ok {
				a.touch = nil
				continue
			}
			a.shell.HandleTouch(ev, now)
		case ev, ok := <-a.keys:
			if !ok {
				a.keys = nil
				continue
			}
			a.shell.HandleKey(ev, now)
		default:
			return
		}
	}
}

// Close destroys the session, releasing its wake lock. Safe to call twice.
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.session.OnDestroy()
	a.log.Info("face stopped", "frames", a.frames)
	return nil
}

type nopLock struct{}

func (nopLock) Acquire() error { return nil }
func (nopLock) Release()       {}

// Run builds the face on h and steps it until a step fails. wait is called
// between steps to pace the loop. The session is destroyed on every return,
// so the wake lock is released before Run hands back the error.
func Run(h hal.HAL, cfg Config, wait func()) (err error) {
	a, err := New(h, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	for {
		if err := a.Step(); err != nil {
			return err
		}
		if wait != nil {
			wait()
		}
	}
}
