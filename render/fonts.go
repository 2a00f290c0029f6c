package render

import (
	"fmt"
	"math"

	"watchface/face"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type faceKey struct {
	weight face.Weight
	size   int
}

// fontSet hands out scalable faces, cached per weight and pixel size.
type fontSet struct {
	regular *truetype.Font
	bold    *truetype.Font
	faces   map[faceKey]font.Face
}

func loadFonts() (*fontSet, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("render: parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("render: parse bold font: %w", err)
	}
	return &fontSet{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

func (fs *fontSet) face(w face.Weight, size float32) font.Face {
	px := int(math.Round(float64(size)))
	if px < 1 {
		px = 1
	}
	key := faceKey{weight: w, size: px}
	if ff, ok := fs.faces[key]; ok {
		return ff
	}
	f := fs.regular
	if w == face.WeightBold {
		f = fs.bold
	}
	ff := truetype.NewFace(f, &truetype.Options{
		Size:    float64(px),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	fs.faces[key] = ff
	return ff
}
