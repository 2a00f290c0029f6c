// Package resources holds the shape-dependent layout table.
package resources

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed dimens.yaml
var defaultDimens []byte

// Layout is the counters-block placement for one screen shape.
type Layout struct {
	XOffset  float32 `yaml:"x_offset"`
	YOffset  float32 `yaml:"y_offset"`
	TextSize float32 `yaml:"text_size"`
}

// Dimens is the full layout table.
type Dimens struct {
	// DefaultTextSize applies until the platform reports the screen shape.
	DefaultTextSize float32 `yaml:"default_text_size"`
	// LineGap is added to the square text size to get the line height.
	LineGap float32 `yaml:"line_gap"`
	Square  Layout  `yaml:"square"`
	Round   Layout  `yaml:"round"`
}

// For returns the layout for a screen shape.
func (d Dimens) For(round bool) Layout {
	if round {
		return d.Round
	}
	return d.Square
}

// LineHeight is the vertical distance between counter lines.
func (d Dimens) LineHeight() float32 {
	return d.Square.TextSize + d.LineGap
}

// Validate rejects tables that cannot produce visible text.
func (d Dimens) Validate() error {
	if d.DefaultTextSize <= 0 {
		return errors.New("dimens: default_text_size must be positive")
	}
	if d.Square.TextSize <= 0 {
		return errors.New("dimens: square.text_size must be positive")
	}
	if d.Round.TextSize <= 0 {
		return errors.New("dimens: round.text_size must be positive")
	}
	if d.LineGap < 0 {
		return errors.New("dimens: line_gap must not be negative")
	}
	return nil
}

// Default returns the built-in table.
func Default() Dimens {
	d, err := Load(bytes.NewReader(defaultDimens))
	if err != nil {
		panic(fmt.Sprintf("resources: built-in dimens: %v", err))
	}
	return d
}

// Load decodes a table from YAML. Missing keys keep the built-in values.
func Load(r io.Reader) (Dimens, error) {
	var d Dimens
	if len(defaultDimens) > 0 {
		if err := yaml.Unmarshal(defaultDimens, &d); err != nil {
			return Dimens{}, fmt.Errorf("dimens: built-in: %w", err)
		}
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return Dimens{}, fmt.Errorf("dimens: decode: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Dimens{}, err
	}
	return d, nil
}

// LoadFile reads a table from path.
func LoadFile(path string) (Dimens, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dimens{}, fmt.Errorf("dimens: %w", err)
	}
	defer f.Close()
	return Load(f)
}
