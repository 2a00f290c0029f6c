package face

import (
	"log/slog"
	"time"

	"watchface/kernel"
)

// DefaultTickPeriod is the redraw cadence while interactive.
const DefaultTickPeriod = 100 * time.Millisecond

// Looper is the part of the event loop the scheduler posts to.
type Looper interface {
	PostDelayed(fn func(), delay uint64) (kernel.TimerID, error)
	Cancel(id kernel.TimerID) bool
}

// Scheduler is the self-rescheduling redraw timer. At most one tick is ever
// pending: every arm cancels the previous one first.
type Scheduler struct {
	loop    Looper
	period  uint64
	ticking func() bool
	redraw  func()
	log     *slog.Logger

	pending kernel.TimerID
	tickFn  func()
}

// NewScheduler returns a disarmed scheduler. ticking is consulted on every arm
// and every tick; redraw is called once per tick.
func NewScheduler(loop Looper, period time.Duration, ticking func() bool, redraw func(), log *slog.Logger) *Scheduler {
	if period <= 0 {
		period = DefaultTickPeriod
	}
	ms := uint64(period / time.Millisecond)
	if ms == 0 {
		ms = 1
	}
	s := &Scheduler{
		loop:    loop,
		period:  ms,
		ticking: ticking,
		redraw:  redraw,
		log:     log,
	}
	s.tickFn = s.tick
	return s
}

// StartIfNeeded drops any pending tick and, if the face should be ticking,
// schedules an immediate one.
func (s *Scheduler) StartIfNeeded() {
	s.cancel()
	if !s.ticking() {
		return
	}
	s.post(0)
}

// Stop drops any pending tick.
func (s *Scheduler) Stop() {
	s.cancel()
}

// Armed reports whether a tick is pending.
func (s *Scheduler) Armed() bool {
	return s.pending != 0
}

func (s *Scheduler) tick() {
	s.pending = 0
	s.redraw()
	if s.ticking() {
		s.post(s.period)
	}
}

func (s *Scheduler) post(delay uint64) {
	id, err := s.loop.PostDelayed(s.tickFn, delay)
	if err != nil {
		// Stays disarmed until the next visibility or ambient change.
		s.log.Warn("redraw tick not scheduled", "err", err)
		return
	}
	s.pending = id
}

func (s *Scheduler) cancel() {
	if s.pending == 0 {
		return
	}
	s.loop.Cancel(s.pending)
	s.pending = 0
}
