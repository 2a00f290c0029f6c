//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64

	// Fast advances virtual time without waiting on the wall clock.
	Fast bool

	// Snapshot, when set, receives a PNG of the last presented frame.
	Snapshot string
}

// RunHeadless runs the face without opening a window.
func RunHeadless(ctx context.Context, cfg HostConfig, hcfg HeadlessConfig, newProgram func(HAL) (Program, error)) (err error) {
	if hcfg.Hz <= 0 {
		hcfg.Hz = 60
	}
	d := time.Second / time.Duration(hcfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", hcfg.Hz)
	}

	h := newHost(cfg)
	p, err := newProgram(h)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := p.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if hcfg.Snapshot != "" {
			if serr := writeSnapshot(h.fb, hcfg.Snapshot); serr != nil && err == nil {
				err = serr
			}
		}
	}()

	var pace <-chan time.Time
	if !hcfg.Fast {
		t := time.NewTicker(d)
		defer t.Stop()
		pace = t.C
	}

	var tick uint64
	for {
		if pace != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-pace:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		h.t.advance(d)
		if err := p.Step(); err != nil {
			return err
		}
		tick++
		if hcfg.Ticks > 0 && tick >= hcfg.Ticks {
			return nil
		}
	}
}

func writeSnapshot(fb *hostFramebuffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, fb.Snapshot()); err != nil {
		return fmt.Errorf("snapshot encode: %w", err)
	}
	return nil
}
