package render

import (
	"strconv"

	"github.com/irfansharif/fosphor/internal/axis"
	"github.com/irfansharif/fosphor/internal/geom"
	"github.com/irfansharif/fosphor/internal/gpu"
)

// GridLines is the number of grid lines along each axis.
const GridLines = axis.Divisions + 1

var (
	gridColor  = gpu.Color{R: 0, G: 0, B: 0, A: 0.5}
	labelColor = gpu.Color{R: 1, G: 1, B: 0.33, A: 1}
)

// gridLine is the placement of the i-th vertical and horizontal line.
type gridLine struct {
	index int
	x, y  float64
	// labelShift moves the frequency label inward on the boundary lines so
	// it is not clipped.
	labelShift float64
}

func gridLayout(req *Request) [GridLines]gridLine {
	var lines [GridLines]gridLine
	for i := range lines {
		l := gridLine{
			index: i,
			x:     req.Spectrum.X + float64(i)*req.XDiv,
			y:     req.Spectrum.Y + float64(i)*req.SpectrumYDiv,
		}
		switch i {
		case 0:
			l.labelShift = labelInset
		case GridLines - 1:
			l.labelShift = -labelInset
		}
		lines[i] = l
	}
	return lines
}

// powerLabel returns the dB value of horizontal line i, counted from the
// bottom.
func powerLabel(power PowerCal, i int) int {
	return power.DBRef - (GridLines-1-i)*power.DBPerDiv
}

func (r *Renderer) drawGrid(req *Request, power PowerCal) int {
	var freq FreqCal
	if req.Frequency != nil {
		freq = *req.Frequency
	}
	fx := axis.Build(freq.Center, freq.Span)

	area := req.Spectrum
	calls := 0
	for _, l := range gridLayout(req) {
		r.dev.DrawLines([]geom.Point{
			{X: l.x + 0.5, Y: area.Y + 0.5},
			{X: l.x + 0.5, Y: area.Y1() - 0.5},
			{X: area.X + 0.5, Y: l.y + 0.5},
			{X: area.X1() - 0.5, Y: l.y + 0.5},
		}, gridColor)
		calls++

		if req.Options.Any(LabelPower) {
			r.dev.DrawText(r.font, req.PowerLabelX, gpu.AlignEnd, l.y, gpu.AlignCenter,
				labelColor, strconv.Itoa(powerLabel(power, l.index)))
			calls++
		}
		if req.Options.Any(LabelFreq) {
			r.dev.DrawText(r.font, l.x+l.labelShift, gpu.AlignCenter, req.FreqLabelY, gpu.AlignCenter,
				labelColor, fx.Render(l.index-GridLines/2))
			calls++
		}
	}
	return calls
}
