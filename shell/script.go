package shell

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"sort"
	"time"

	"watchface/face"
	"watchface/hal"

	"gopkg.in/yaml.v3"
)

// ErrUnknownEvent is returned for a script step whose event is not recognised.
var ErrUnknownEvent = errors.New("shell: unknown event")

// Step is one scripted platform event, applied once At has elapsed.
type Step struct {
	At     time.Duration `yaml:"at"`
	Event  string        `yaml:"event"`
	Value  bool          `yaml:"value,omitempty"`
	LowBit bool          `yaml:"low_bit,omitempty"`
	BurnIn bool          `yaml:"burn_in,omitempty"`
	Bounds []int         `yaml:"bounds,omitempty"`
	Kind   string        `yaml:"kind,omitempty"`
	Action string        `yaml:"action,omitempty"`
	X      int           `yaml:"x,omitempty"`
	Y      int           `yaml:"y,omitempty"`
	Key    string        `yaml:"key,omitempty"`
}

// Script is an ordered list of steps.
type Script struct {
	Steps []Step `yaml:"steps"`

	next int
}

var tapKinds = map[string]face.TapKind{
	"touch":        face.TapTouch,
	"touch_cancel": face.TapTouchCancel,
	"tap":          face.TapTap,
}

var touchActions = map[string]hal.TouchAction{
	"down": hal.TouchDown,
	"move": hal.TouchMove,
	"up":   hal.TouchUp,
}

func (st Step) validate() error {
	switch st.Event {
	case "visibility", "ambient", "properties", "shape", "peek", "time_tick":
		return nil
	case "overlay":
		if len(st.Bounds) != 0 && len(st.Bounds) != 4 {
			return fmt.Errorf("overlay bounds need 4 values, got %d", len(st.Bounds))
		}
		return nil
	case "tap":
		if _, ok := tapKinds[st.Kind]; !ok {
			return fmt.Errorf("unknown tap kind %q", st.Kind)
		}
		return nil
	case "touch":
		if _, ok := touchActions[st.Action]; !ok {
			return fmt.Errorf("unknown touch action %q", st.Action)
		}
		return nil
	case "key":
		if st.Key == "escape" || len([]rune(st.Key)) == 1 {
			return nil
		}
		return fmt.Errorf("bad key %q", st.Key)
	default:
		return fmt.Errorf("%w %q", ErrUnknownEvent, st.Event)
	}
}

// LoadScript parses and validates a YAML script. Steps are ordered by At,
// keeping file order for equal times.
func LoadScript(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var sc Script
	if err := dec.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("shell: decode script: %w", err)
	}
	for i, st := range sc.Steps {
		if st.At < 0 {
			return nil, fmt.Errorf("shell: step %d: negative time %s", i, st.At)
		}
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("shell: step %d: %w", i, err)
		}
	}
	sort.SliceStable(sc.Steps, func(i, j int) bool { return sc.Steps[i].At < sc.Steps[j].At })
	return &sc, nil
}

// LoadScriptFile reads a script from path.
func LoadScriptFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("shell: open script: %w", err)
	}
	defer f.Close()
	return LoadScript(f)
}

// Due returns the steps that became due since the last call.
func (sc *Script) Due(elapsed time.Duration) []Step {
	start := sc.next
	for sc.next < len(sc.Steps) && sc.Steps[sc.next].At <= elapsed {
		sc.next++
	}
	return sc.Steps[start:sc.next]
}

// Done reports whether every step has been handed out.
func (sc *Script) Done() bool { return sc.next >= len(sc.Steps) }

// Apply performs st against the engine.
func (s *Shell) Apply(st Step, now time.Time) error {
	if err := st.validate(); err != nil {
		return err
	}
	s.log.Debug("script step", "at", st.At, "event", st.Event)
	switch st.Event {
	case "visibility":
		s.SetVisible(st.Value)
	case "ambient":
		s.SetAmbient(st.Value, now)
	case "properties":
		s.SetProperties(st.LowBit, st.BurnIn)
	case "shape":
		s.SetRound(st.Value)
	case "peek":
		s.SetPeek(st.Value)
	case "time_tick":
		s.e.OnTimeTick()
	case "overlay":
		var r image.Rectangle
		if len(st.Bounds) == 4 {
			r = image.Rect(st.Bounds[0], st.Bounds[1], st.Bounds[2], st.Bounds[3])
		}
		s.SetOverlay(r)
	case "tap":
		s.tap(tapKinds[st.Kind], st.X, st.Y, now)
	case "touch":
		s.HandleTouch(hal.TouchEvent{Action: touchActions[st.Action], X: st.X, Y: st.Y}, now)
	case "key":
		ev := hal.KeyEvent{Press: true}
		if st.Key == "escape" {
			ev.Code = hal.KeyEscape
		} else {
			ev.Rune = []rune(st.Key)[0]
		}
		s.HandleKey(ev, now)
	}
	return nil
}
