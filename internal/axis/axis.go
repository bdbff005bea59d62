// Package axis formats frequency-axis labels for the ten-division grid.
package axis

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// Divisions is the number of grid divisions spanning the displayed range.
const Divisions = 10

// Freq is a frequency axis around a center. Label i (from -Divisions/2 to
// +Divisions/2) sits at center + i*span/Divisions.
type Freq struct {
	center float64
	span   float64
	div    float64

	// Relative labels are printed in units of scale with the given prefix.
	scale  float64
	prefix string
	digits int

	// Digits used for the absolute center label.
	centerDigits int
}

// Build prepares the axis for the given center and span, both in Hz.
func Build(center, span float64) Freq {
	fx := Freq{center: center, span: math.Abs(span)}
	if fx.span == 0 {
		return fx
	}
	fx.div = fx.span / Divisions

	value, prefix := humanize.ComputeSI(fx.div)
	fx.scale = fx.div / value
	fx.prefix = prefix
	fx.digits = significantDecimals(value)

	if center != 0 {
		cvalue, _ := humanize.ComputeSI(center)
		cscale := math.Abs(center / cvalue)
		if d := int(math.Ceil(math.Log10(cscale / fx.div))); d > 0 {
			fx.centerDigits = d
		}
	}
	return fx
}

// significantDecimals returns the decimals needed to show v with three
// significant digits.
func significantDecimals(v float64) int {
	if v <= 0 {
		return 0
	}
	d := 2 - int(math.Floor(math.Log10(v)))
	if d < 0 {
		return 0
	}
	return d
}

// Render returns the label for division offset step.
func (fx Freq) Render(step int) string {
	if fx.span == 0 {
		return fmt.Sprintf("%+d", step)
	}
	if step == 0 {
		if fx.center == 0 {
			return "0"
		}
		return humanize.SIWithDigits(fx.center, fx.centerDigits, "Hz")
	}
	rel := float64(step) * fx.div / fx.scale
	return fmt.Sprintf("%+.*f%s", fx.digits, rel, fx.prefix)
}
