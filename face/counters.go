package face

// TapKind classifies a pointer interaction reported by the platform.
type TapKind uint8

const (
	// TapTouch is a finger landing on the screen.
	TapTouch TapKind = iota
	// TapTouchCancel is a touch that turned into something else (swipe, long press).
	TapTouchCancel
	// TapTap is a completed tap.
	TapTap
)

func (k TapKind) String() string {
	switch k {
	case TapTouch:
		return "touch"
	case TapTouchCancel:
		return "touch_cancel"
	case TapTap:
		return "tap"
	default:
		return "unknown"
	}
}

// Counters tallies tap events for the lifetime of a session.
type Counters struct {
	Touch       uint32
	TouchCancel uint32
	Tap         uint32

	LastX int
	LastY int
}

// Record stores (x, y) as the last touch and bumps the counter for kind.
// Unknown kinds only move the coordinate; Record reports whether kind was known.
func (c *Counters) Record(kind TapKind, x, y int) bool {
	c.LastX = x
	c.LastY = y

	switch kind {
	case TapTouch:
		c.Touch++
	case TapTouchCancel:
		c.TouchCancel++
	case TapTap:
		c.Tap++
	default:
		return false
	}
	return true
}
