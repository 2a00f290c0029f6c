// Package kernel is a single-threaded cooperative event loop.
//
// Callbacks are posted as timers against a millisecond timebase that the owner
// advances with TickTo. RunReady runs every due callback to completion, one at a
// time, in (due, post order). Nothing here blocks; a timer is scheduling, not
// waiting. The loop is not safe for concurrent use: all calls must come from the
// goroutine that owns it.
package kernel

import (
	"errors"
	"fmt"
)

const maxTimers = 32

// ErrNoTimerSlot is returned when every timer slot is in use.
var ErrNoTimerSlot = errors.New("kernel: no free timer slot")

// TimerID names a pending callback. The zero value never names a timer.
type TimerID uint32

type timer struct {
	inUse bool
	id    TimerID
	due   uint64
	seq   uint64
	fn    func()
}

// Loop is the cooperative scheduler.
type Loop struct {
	now    uint64
	nextID TimerID
	seq    uint64
	timers [maxTimers]timer
}

// New creates a loop at tick 0.
func New() *Loop {
	return &Loop{}
}

// Now returns the current tick (milliseconds).
func (l *Loop) Now() uint64 { return l.now }

// TickTo advances the timebase. Ticks never move backwards.
func (l *Loop) TickTo(now uint64) {
	if now > l.now {
		l.now = now
	}
}

// Post schedules fn to run on the next RunReady.
func (l *Loop) Post(fn func()) (TimerID, error) {
	return l.PostDelayed(fn, 0)
}

// PostDelayed schedules fn to run once delay ticks have elapsed.
func (l *Loop) PostDelayed(fn func(), delay uint64) (TimerID, error) {
	if fn == nil {
		return 0, fmt.Errorf("kernel: post nil callback")
	}
	for i := range l.timers {
		t := &l.timers[i]
		if t.inUse {
			continue
		}
		l.nextID++
		if l.nextID == 0 {
			l.nextID++
		}
		l.seq++
		*t = timer{inUse: true, id: l.nextID, due: l.now + delay, seq: l.seq, fn: fn}
		return t.id, nil
	}
	return 0, ErrNoTimerSlot
}

// Cancel removes a pending callback. It reports whether one was removed.
func (l *Loop) Cancel(id TimerID) bool {
	if id == 0 {
		return false
	}
	for i := range l.timers {
		if l.timers[i].inUse && l.timers[i].id == id {
			l.timers[i] = timer{}
			return true
		}
	}
	return false
}

// Scheduled reports whether id is still pending.
func (l *Loop) Scheduled(id TimerID) bool {
	if id == 0 {
		return false
	}
	for i := range l.timers {
		if l.timers[i].inUse && l.timers[i].id == id {
			return true
		}
	}
	return false
}

// Pending returns the number of pending callbacks.
func (l *Loop) Pending() int {
	n := 0
	for i := range l.timers {
		if l.timers[i].inUse {
			n++
		}
	}
	return n
}

// RunReady runs due callbacks and returns how many ran.
//
// Callbacks posted while the pass is running wait for the next pass, even when
// already due, so a callback that reposts itself with no delay cannot starve
// the caller.
func (l *Loop) RunReady() int {
	limit := l.seq
	ran := 0
	for {
		idx := l.nextDue(limit)
		if idx < 0 {
			return ran
		}
		fn := l.timers[idx].fn
		l.timers[idx] = timer{}
		fn()
		ran++
	}
}

func (l *Loop) nextDue(limit uint64) int {
	best := -1
	for i := range l.timers {
		t := &l.timers[i]
		if !t.inUse || t.due > l.now || t.seq > limit {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		b := &l.timers[best]
		if t.due < b.due || (t.due == b.due && t.seq < b.seq) {
			best = i
		}
	}
	return best
}
