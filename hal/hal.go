package hal

import (
	"errors"
	"image"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var (
	ErrNotImplemented = errors.New("not implemented")

	// ErrWakeLockUnavailable is returned when the platform refuses a wake lock.
	ErrWakeLockUnavailable = errors.New("wake lock unavailable")
)

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Capabilities are the panel properties the platform reports once per face.
type Capabilities struct {
	LowBitAmbient    bool
	BurnInProtection bool
}

// Display provides access to the framebuffer and the panel description.
type Display interface {
	Framebuffer() Framebuffer
	Round() bool
	Capabilities() Capabilities
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyEscape
	KeySpace
)

// KeyEvent is a keyboard event. Printable keys arrive with Rune set.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// TouchAction classifies a raw pointer sample.
type TouchAction uint8

const (
	TouchDown TouchAction = iota + 1
	TouchMove
	TouchUp
)

func (a TouchAction) String() string {
	switch a {
	case TouchDown:
		return "down"
	case TouchMove:
		return "move"
	case TouchUp:
		return "up"
	default:
		return "unknown"
	}
}

// TouchEvent is a raw pointer sample in framebuffer coordinates.
type TouchEvent struct {
	Action TouchAction
	X, Y   int
}

// Touch provides raw pointer samples.
type Touch interface {
	Events() <-chan TouchEvent
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Touch() Touch
}

// Time provides a base tick stream.
//
// One tick is one millisecond of monotonic time; the value is the tick count
// since the HAL started.
type Time interface {
	Ticks() <-chan uint64
}

// WakeLock keeps the CPU running while held.
type WakeLock interface {
	Acquire() error
	Release()
	Held() bool
}

// Power hands out wake locks.
type Power interface {
	NewWakeLock(tag string) WakeLock
}

// RadioInfo is the connection summary shown on the face.
//
// IP is an IPv4 address packed little-endian (first octet in the low byte).
type RadioInfo struct {
	IP    uint32
	SSID  string
	BSSID string
}

// Radio reports the current connection.
type Radio interface {
	Info() RadioInfo
}

// HAL provides the only contact point between the face and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
	Power() Power
	Radio() Radio
}

// Program is what the host runners drive: one Step per frame, Close once on exit.
type Program interface {
	Step() error
	Close() error
}

// Snapshotter is implemented by framebuffers that can export an image copy.
type Snapshotter interface {
	Snapshot() *image.RGBA
}
