package shell

import (
	"fmt"
	"image"
	"testing"
	"time"

	"watchface/face"
	"watchface/hal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
	taps  []face.TapKind
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) OnCreate() error             { r.add("create"); return nil }
func (r *recorder) OnDestroy()                  { r.add("destroy") }
func (r *recorder) OnVisibilityChanged(v bool)  { r.add("visible=%v", v) }
func (r *recorder) OnAmbientModeChanged(a bool) { r.add("ambient=%v", a) }
func (r *recorder) OnShapeChanged(round bool)   { r.add("round=%v", round) }
func (r *recorder) OnTimeTick()                 { r.add("time_tick") }

func (r *recorder) OnOverlayBoundsChanged(b image.Rectangle) {
	r.add("overlay=%v", b)
}

func (r *recorder) OnPropertiesChanged(lowBit, burnIn bool) {
	r.add("properties=%v,%v", lowBit, burnIn)
}

func (r *recorder) OnTap(kind face.TapKind, x, y int, _ int64) {
	r.taps = append(r.taps, kind)
	r.add("%s(%d,%d)", kind, x, y)
}

func (r *recorder) reset() {
	r.calls = nil
	r.taps = nil
}

var t0 = time.Date(2024, 1, 1, 12, 0, 30, 0, time.UTC)

func newStarted(t *testing.T, cfg Config) (*Shell, *recorder) {
	t.Helper()
	rec := &recorder{}
	s := New(rec, cfg, nil)
	s.Start(t0)
	rec.reset()
	return s, rec
}

func TestStartOrder(t *testing.T) {
	rec := &recorder{}
	s := New(rec, Config{Round: true, Caps: hal.Capabilities{LowBitAmbient: true}}, nil)
	s.Start(t0)
	s.Start(t0)
	assert.Equal(t, []string{"properties=true,false", "round=true", "visible=true"}, rec.calls)
	assert.True(t, s.Visible())
}

func TestQuickReleaseIsTap(t *testing.T) {
	s, rec := newStarted(t, Config{})
	s.HandleTouch(hal.TouchEvent{Action: hal.TouchDown, X: 10, Y: 20}, t0)
	s.HandleTouch(hal.TouchEvent{Action: hal.TouchMove, X: 12, Y: 21}, t0.Add(50*time.Millisecond))
	s.HandleTouch(hal.TouchEvent{Action: hal.TouchUp, X: 12, Y: 21}, t0.Add(100*time.Millisecond))
	assert.Equal(t, []face.TapKind{face.TapTouch, face.TapTap}, rec.taps)
}

func TestDragCancels(t *testing.T) {
	s, rec := newStarted(t, Config{})
	s.HandleTouch(hal.TouchEvent{Action: hal.TouchDown, X: 10, Y: 20}, t0)
	s.HandleTouch(hal.TouchEvent{Action: hal.TouchMove, X: 60, Y: 20}, t0)
	s.HandleTouch(hal.TouchEvent{Action: hal.TouchMove, X: 90, Y: 20}, t0)
	s.HandleTouch(hal.TouchEvent{Action: hal.TouchUp, X: 90, Y: 20}, t0)
	assert.Equal(t, []face.TapKind{face.TapTouch, face.TapTouchCancel}, rec.taps)
}

func TestLongPressCancels(t *testing.T) {
	s, rec := newStarted(t, Config{LongPress: 300 * time.Millisecond})
	s.HandleTouch(hal.TouchEvent{Action: hal.TouchDown, X: 1, Y: 2}, t0)
	s.Advance(t0.Add(299 * time.Millisecond))
	assert.Equal(t, []face.TapKind{face.TapTouch}, rec.taps)
	s.Advance(t0.Add(300 * time.Millisecond))
	s.HandleTouch(hal.TouchEvent{Action: hal.TouchUp, X: 1, Y: 2}, t0.Add(time.Second))
	assert.Equal(t, []face.TapKind{face.TapTouch, face.TapTouchCancel}, rec.taps)
}

func TestEscapeCancelsTouch(t *testing.T) {
	s, rec := newStarted(t, Config{})
	s.HandleKey(hal.KeyEvent{Code: hal.KeyEscape, Press: true}, t0)
	assert.Empty(t, rec.taps, "nothing to cancel")

	s.HandleTouch(hal.TouchEvent{Action: hal.TouchDown, X: 1, Y: 2}, t0)
	s.HandleKey(hal.KeyEvent{Code: hal.KeyEscape, Press: true}, t0)
	s.HandleTouch(hal.TouchEvent{Action: hal.TouchUp, X: 1, Y: 2}, t0)
	assert.Equal(t, []face.TapKind{face.TapTouch, face.TapTouchCancel}, rec.taps)
}

func TestTouchInAmbientWakes(t *testing.T) {
	s, rec := newStarted(t, Config{})
	s.SetAmbient(true, t0)
	rec.reset()

	s.HandleTouch(hal.TouchEvent{Action: hal.TouchDown, X: 1, Y: 2}, t0)
	s.HandleTouch(hal.TouchEvent{Action: hal.TouchUp, X: 1, Y: 2}, t0)
	assert.Equal(t, []string{"ambient=false"}, rec.calls)
	assert.False(t, s.Ambient())
}

func TestInactivityEntersAmbient(t *testing.T) {
	s, rec := newStarted(t, Config{AmbientAfter: 5 * time.Second, TimeTickEvery: time.Hour})
	s.Advance(t0.Add(4 * time.Second))
	assert.Empty(t, rec.calls)

	s.HandleTouch(hal.TouchEvent{Action: hal.TouchDown, X: 1, Y: 2}, t0.Add(4*time.Second))
	s.HandleTouch(hal.TouchEvent{Action: hal.TouchUp, X: 1, Y: 2}, t0.Add(4*time.Second))
	rec.reset()

	s.Advance(t0.Add(8 * time.Second))
	assert.Empty(t, rec.calls, "input restarts the countdown")
	s.Advance(t0.Add(9 * time.Second))
	assert.Equal(t, []string{"ambient=true"}, rec.calls)
	s.Advance(t0.Add(20 * time.Second))
	assert.Len(t, rec.calls, 1)
}

func TestTimeTickOnMinuteBoundary(t *testing.T) {
	s, rec := newStarted(t, Config{})
	s.Advance(t0.Add(29 * time.Second))
	assert.Empty(t, rec.calls)
	s.Advance(t0.Add(30 * time.Second))
	assert.Equal(t, []string{"time_tick"}, rec.calls)
	s.Advance(t0.Add(60 * time.Second))
	assert.Len(t, rec.calls, 1)
	s.Advance(t0.Add(90 * time.Second))
	assert.Len(t, rec.calls, 2)
}

func TestAdvanceBeforeStartIsNoop(t *testing.T) {
	rec := &recorder{}
	s := New(rec, Config{AmbientAfter: time.Second}, nil)
	s.Advance(t0.Add(time.Hour))
	assert.Empty(t, rec.calls)
}

func TestKeys(t *testing.T) {
	s, rec := newStarted(t, Config{Width: 300, Height: 300})
	for _, r := range "avrpbl" {
		s.HandleKey(hal.KeyEvent{Rune: r, Press: true}, t0)
		s.HandleKey(hal.KeyEvent{Rune: r}, t0)
	}
	assert.Equal(t, []string{
		"ambient=true",
		"visible=false",
		"round=true",
		"overlay=(0,200)-(300,300)",
		"properties=false,true",
		"properties=true,true",
	}, rec.calls)
	assert.True(t, s.Peeking())

	s.HandleKey(hal.KeyEvent{Rune: 'p', Press: true}, t0)
	assert.Equal(t, "overlay=(0,0)-(0,0)", rec.calls[len(rec.calls)-1])
}

func TestCustomPeekCard(t *testing.T) {
	card := image.Rect(10, 10, 50, 50)
	s, rec := newStarted(t, Config{PeekCard: card})
	s.SetPeek(true)
	require.Len(t, rec.calls, 1)
	assert.Equal(t, "overlay="+card.String(), rec.calls[0])
}
