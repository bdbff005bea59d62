package cmap

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Generator fills a lookup table of n colors, entry 0 mapping the lowest
// normalized value.
type Generator func(n int) ([]color.RGBA, error)

// waterfallStops are the HCL blend stops of the waterfall map, evenly spaced
// over [0,1].
var waterfallStops = []string{
	"#000010", // noise floor
	"#00207f",
	"#0080c0",
	"#20c060",
	"#f0d000",
	"#e02000",
	"#ffffff", // saturation
}

func checkSize(n int) error {
	if n < 2 {
		return fmt.Errorf("cmap: need at least 2 entries, got %d", n)
	}
	return nil
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Waterfall blends a dark-blue to white gradient in HCL space.
func Waterfall(n int) ([]color.RGBA, error) {
	if err := checkSize(n); err != nil {
		return nil, err
	}
	stops := make([]colorful.Color, len(waterfallStops))
	for i, hex := range waterfallStops {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("cmap: waterfall stop %d: %w", i, err)
		}
		stops[i] = c
	}

	lut := make([]color.RGBA, n)
	segments := float64(len(stops) - 1)
	for i := range lut {
		p := float64(i) / float64(n-1) * segments
		seg := int(math.Floor(p))
		if seg >= len(stops)-1 {
			seg = len(stops) - 2
		}
		lut[i] = toRGBA(stops[seg].BlendHcl(stops[seg+1], p-float64(seg)))
	}
	return lut, nil
}

// Histogram sweeps hue from violet through blue, green and yellow to red,
// with the brightness ramping up over the first sixteenth so that empty
// cells stay black.
func Histogram(n int) ([]color.RGBA, error) {
	if err := checkSize(n); err != nil {
		return nil, err
	}
	lut := make([]color.RGBA, n)
	ramp := float64(n) / 16
	for i := range lut {
		p := float64(i) / float64(n-1)
		h := 0.75 - 0.80*p
		if h < 0 {
			h += 1
		}
		v := 1.0
		if float64(i) < ramp {
			v = float64(i) / ramp
		}
		lut[i] = toRGBA(colorful.Hsv(h*360, 1, v))
	}
	return lut, nil
}
