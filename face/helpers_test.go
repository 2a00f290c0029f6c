package face

import (
	"errors"
	"testing"

	"watchface/kernel"
)

type redrawCounter struct {
	n int
}

func (r *redrawCounter) Invalidate() { r.n++ }

type fakeLock struct {
	acquires int
	releases int
	err      error
}

func (l *fakeLock) Acquire() error {
	l.acquires++
	return l.err
}

func (l *fakeLock) Release() { l.releases++ }

// flakyLoop refuses posts while fail is set.
type flakyLoop struct {
	*kernel.Loop
	fail bool
}

func (f *flakyLoop) PostDelayed(fn func(), delay uint64) (kernel.TimerID, error) {
	if f.fail {
		return 0, kernel.ErrNoTimerSlot
	}
	return f.Loop.PostDelayed(fn, delay)
}

type paramsRecorder struct {
	got []Params
}

func (p *paramsRecorder) ApplyParams(params Params) { p.got = append(p.got, params) }

var errNoLock = errors.New("no lock for you")

type sessionFixture struct {
	s      *Session
	loop   *kernel.Loop
	redraw *redrawCounter
	lock   *fakeLock
}

func newFixture(t *testing.T, opts ...Option) *sessionFixture {
	t.Helper()
	f := &sessionFixture{
		loop:   kernel.New(),
		redraw: &redrawCounter{},
		lock:   &fakeLock{},
	}
	f.s = NewSession(f.loop, f.redraw, f.lock, opts...)
	return f
}

// advance moves loop time forward by ms and runs whatever became due.
func (f *sessionFixture) advance(ms uint64) {
	f.loop.TickTo(f.loop.Now() + ms)
	f.loop.RunReady()
}
