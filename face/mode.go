package face

import "image"

// Mode is the display state the platform has reported so far.
type Mode struct {
	// Interactive is the last visibility report.
	Interactive bool
	// Ambient is the last low-power report.
	Ambient bool

	LowBitAmbient    bool
	BurnInProtection bool

	Round bool
	// ShapeKnown is false until the first shape report.
	ShapeKnown bool

	// Overlay is the region the platform reserves for a peek card.
	Overlay image.Rectangle
}

// Ticking reports whether the fine-grained redraw timer should run.
func (m Mode) Ticking() bool {
	return m.Interactive && !m.Ambient
}
