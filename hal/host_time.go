//go:build !tinygo

package hal

import "time"

type hostTime struct {
	ch  chan uint64
	seq uint64

	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// step advances by the wall time elapsed since the previous call.
func (t *hostTime) step() {
	now := time.Now()
	if t.last.IsZero() {
		t.last = now
		t.acc = 0
		t.publish(1)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	const tickDur = time.Millisecond
	ticks := uint64(t.acc / tickDur)
	if ticks == 0 {
		return
	}
	t.acc = t.acc % tickDur
	t.publish(ticks)
}

// advance moves virtual time by d, independent of the wall clock.
func (t *hostTime) advance(d time.Duration) {
	n := uint64(d / time.Millisecond)
	if n == 0 {
		n = 1
	}
	t.publish(n)
}

// publish sends only the newest value; consumers track the latest tick, not each one.
func (t *hostTime) publish(n uint64) {
	t.seq += n
	for {
		select {
		case t.ch <- t.seq:
			return
		default:
		}
		select {
		case <-t.ch:
		default:
		}
	}
}
