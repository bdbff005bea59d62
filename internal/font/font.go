// Package font loads the label font and rasterizes short strings into
// alpha masks for the device to upload.
package font

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultSize is the label size in pixels.
const DefaultSize = 10

// maxCached bounds the number of rasterized strings kept around. Labels are
// few and repeat every frame; the cache is dropped wholesale when full.
const maxCached = 256

// Font is a loaded face plus a cache of rasterized labels.
type Font struct {
	face  font.Face
	size  float64
	cache map[string]*image.Alpha
}

// Load parses TrueType/OpenType data and prepares a face of the given pixel
// size.
func Load(data []byte, size float64) (*Font, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font: invalid size %v", size)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: parse: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font: face: %w", err)
	}
	return &Font{
		face:  face,
		size:  size,
		cache: make(map[string]*image.Alpha),
	}, nil
}

// Size returns the pixel size the font was loaded at.
func (f *Font) Size() float64 { return f.size }

// Measure returns the pixel extent of s.
func (f *Font) Measure(s string) (w, h int) {
	m := f.face.Metrics()
	return font.MeasureString(f.face, s).Ceil(), (m.Ascent + m.Descent).Ceil()
}

// Rasterize renders s into an alpha mask whose origin is the top-left corner
// of the text box. Results are cached per string.
func (f *Font) Rasterize(s string) *image.Alpha {
	if img, ok := f.cache[s]; ok {
		return img
	}
	w, h := f.Measure(s)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewAlpha(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: f.face,
		Dot:  fixed.Point26_6{X: 0, Y: f.face.Metrics().Ascent},
	}
	d.DrawString(s)

	if len(f.cache) >= maxCached {
		clear(f.cache)
	}
	f.cache[s] = img
	return img
}

// Close releases the face. It is safe on a nil Font.
func (f *Font) Close() error {
	if f == nil || f.face == nil {
		return nil
	}
	err := f.face.Close()
	f.face = nil
	f.cache = nil
	return err
}
