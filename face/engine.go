package face

import "image"

// Engine is the set of callbacks a host shell drives a face with. Every call
// is made from the loop goroutine, in delivery order.
type Engine interface {
	OnCreate() error
	OnDestroy()
	OnVisibilityChanged(visible bool)
	OnAmbientModeChanged(ambient bool)
	OnPropertiesChanged(lowBitAmbient, burnInProtection bool)
	OnShapeChanged(round bool)
	OnOverlayBoundsChanged(bounds image.Rectangle)
	OnTap(kind TapKind, x, y int, eventTime int64)
	OnTimeTick()
}

// Invalidator asks for a redraw. Calls may be coalesced.
type Invalidator interface {
	Invalidate()
}

// InvalidatorFunc adapts a function to Invalidator.
type InvalidatorFunc func()

func (f InvalidatorFunc) Invalidate() { f() }

// ParamsApplier is told about new render parameters as soon as the screen
// shape is known, before the next frame is drawn.
type ParamsApplier interface {
	ApplyParams(Params)
}

// WakeLock is the platform resource a session holds from create to destroy.
type WakeLock interface {
	Acquire() error
	Release()
}

// Frame is the state snapshot a painter consumes.
type Frame struct {
	Params   Params
	Counters Counters
	Mode     Mode
}
