package face

import "watchface/resources"

// Weight is the typeface weight used for all face text.
type Weight uint8

const (
	// WeightNormal is used under burn-in protection.
	WeightNormal Weight = iota
	// WeightBold is the default.
	WeightBold
)

func (w Weight) String() string {
	if w == WeightBold {
		return "bold"
	}
	return "normal"
}

// Params is everything the painter needs besides the counters.
type Params struct {
	TextSize   float32
	XOffset    float32
	YOffset    float32
	LineHeight float32
	Weight     Weight
	AntiAlias  bool
}

// Params derives the render parameters. It reads nothing but m and d, so the
// result can never lag behind a mode change.
func (m Mode) Params(d resources.Dimens) Params {
	p := Params{
		TextSize:   d.DefaultTextSize,
		LineHeight: d.LineHeight(),
		Weight:     WeightBold,
		AntiAlias:  !(m.LowBitAmbient && m.Ambient),
	}
	if m.ShapeKnown {
		l := d.For(m.Round)
		p.TextSize = l.TextSize
		p.XOffset = l.XOffset
		p.YOffset = l.YOffset
	}
	if m.BurnInProtection {
		p.Weight = WeightNormal
	}
	return p
}
