package app

import (
	"math"

	"github.com/irfansharif/fosphor/internal/render"
)

const (
	minWidth = 1.0 / 64 // narrowest frequency window, normalized
	maxWidth = 1.0

	defaultDBRef    = 0
	defaultDBPerDiv = 10
	minDBRef        = -150
	maxDBRef        = 50
)

// dbPerDivSteps are the selectable power-axis scales.
var dbPerDivSteps = []int{1, 2, 5, 10, 20}

// View manages the displayed frequency window, the power calibration and the
// viewport.
type View struct {
	// Center and Width of the frequency window, normalized to [0,1].
	Center, Width float64

	DBRef, DBPerDiv int

	ViewportWidth, ViewportHeight int
}

// NewView creates a new view showing the whole band.
func NewView(width, height int) *View {
	v := &View{ViewportWidth: width, ViewportHeight: height}
	v.Reset()
	return v
}

// Reset shows the whole band at the default calibration.
func (v *View) Reset() {
	v.Center, v.Width = 0.5, maxWidth
	v.DBRef, v.DBPerDiv = defaultDBRef, defaultDBPerDiv
}

// SetViewport updates the viewport dimensions.
func (v *View) SetViewport(width, height int) {
	v.ViewportWidth = width
	v.ViewportHeight = height
}

// Window returns the displayed frequency window.
func (v *View) Window() (start, stop float64) {
	return render.ZoomWindow(v.Center, v.Width)
}

// SetWidth sets the window width, clamping to the valid range, and keeps the
// window inside the band.
func (v *View) SetWidth(width float64) {
	v.Width = math.Min(math.Max(width, minWidth), maxWidth)
	v.clampCenter()
}

// ZoomAt scales the window by factor keeping the frequency at at (a
// position within the window, in [0,1]) fixed.
func (v *View) ZoomAt(at, factor float64) {
	if factor <= 0 {
		return
	}
	start, _ := v.Window()
	freq := start + at*v.Width
	v.SetWidth(v.Width / factor)
	v.Center = freq - at*v.Width + v.Width/2
	v.clampCenter()
}

// Pan moves the window by the given share of its width.
func (v *View) Pan(delta float64) {
	v.Center += delta * v.Width
	v.clampCenter()
}

func (v *View) clampCenter() {
	half := v.Width / 2
	v.Center = math.Min(math.Max(v.Center, half), 1-half)
}

// ShiftRef moves the top gridline by steps divisions.
func (v *View) ShiftRef(steps int) {
	v.DBRef = min(max(v.DBRef+steps*v.DBPerDiv, minDBRef), maxDBRef)
}

// StepScale selects the next finer (steps < 0) or coarser (steps > 0) power
// scale.
func (v *View) StepScale(steps int) {
	i := 0
	for i < len(dbPerDivSteps)-1 && dbPerDivSteps[i] < v.DBPerDiv {
		i++
	}
	i = min(max(i+steps, 0), len(dbPerDivSteps)-1)
	v.DBPerDiv = dbPerDivSteps[i]
}

// Power returns the power calibration.
func (v *View) Power() render.PowerCal {
	return render.NewPowerCal(v.DBRef, v.DBPerDiv)
}

// Frequency returns the calibration of the displayed window for a band
// centered on center Hz and sampleRate Hz wide.
func (v *View) Frequency(center, sampleRate float64) render.FreqCal {
	start, stop := v.Window()
	return render.FreqCal{
		Center: center + ((start+stop)/2-0.5)*sampleRate,
		Span:   (stop - start) * sampleRate,
	}
}
