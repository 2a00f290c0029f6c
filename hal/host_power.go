//go:build !tinygo

package hal

import (
	"fmt"
	"sync"
)

type hostPower struct {
	logger Logger
	deny   bool
}

func (p *hostPower) NewWakeLock(tag string) WakeLock {
	return &hostWakeLock{tag: tag, logger: p.logger, deny: p.deny}
}

// hostWakeLock only tracks state; a desktop never sleeps under the face.
type hostWakeLock struct {
	mu     sync.Mutex
	tag    string
	held   bool
	deny   bool
	logger Logger
}

func (l *hostWakeLock) Acquire() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.deny {
		return fmt.Errorf("wake lock %q: %w", l.tag, ErrWakeLockUnavailable)
	}
	if l.held {
		return nil
	}
	l.held = true
	l.logger.WriteLineString("power: wake lock acquired: " + l.tag)
	return nil
}

func (l *hostWakeLock) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.held {
		return
	}
	l.held = false
	l.logger.WriteLineString("power: wake lock released: " + l.tag)
}

func (l *hostWakeLock) Held() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held
}
