package render

import (
	"math"

	"github.com/irfansharif/fosphor/internal/geom"
)

// Options selects what a frame shows.
type Options uint32

const (
	ShowWaterfall Options = 1 << iota
	ShowHistogram
	ShowLive
	ShowMaxHold
	LabelPower
	LabelFreq

	// ShowSpectrum is any layer drawn in the spectrum area.
	ShowSpectrum = ShowHistogram | ShowLive | ShowMaxHold
	// ShowTraces is the set of polyline layers.
	ShowTraces = ShowLive | ShowMaxHold
	// ShowAll enables every layer and label.
	ShowAll = ShowWaterfall | ShowSpectrum | LabelPower | LabelFreq
)

// Any reports whether any of the flags in f are set.
func (o Options) Any(f Options) bool { return o&f != 0 }

// PowerCal is the power-axis calibration. Scale and Offset map raw power to
// the normalized display range; DBRef is the dB value of the top gridline
// and DBPerDiv the dB step between gridlines.
type PowerCal struct {
	Scale, Offset float64
	DBRef         int
	DBPerDiv      int
}

// NewPowerCal derives Scale and Offset so that [DBRef - 10*DBPerDiv, DBRef]
// maps onto [0,1] for data sampled as value*Scale + Offset.
func NewPowerCal(dbRef, dbPerDiv int) PowerCal {
	if dbPerDiv <= 0 {
		dbPerDiv = 1
	}
	db0 := float64(dbRef - 10*dbPerDiv)
	scale := 1.0 / float64(10*dbPerDiv)
	return PowerCal{
		Scale:    scale,
		Offset:   -db0 * scale,
		DBRef:    dbRef,
		DBPerDiv: dbPerDiv,
	}
}

// FreqCal is the frequency-axis calibration in Hz.
type FreqCal struct {
	Center, Span float64
}

// Request describes one frame. The caller sets the fields in the first
// group; Refresh derives the screen geometry in the second group from them,
// or the caller may fill it in directly.
type Request struct {
	Options Options

	// Screen area the display occupies, origin bottom-left.
	Pos           geom.Point
	Width, Height float64

	// Fraction of the ring height the waterfall shows, 1 being all of it.
	WaterfallSpan float64
	// Displayed frequency window, normalized to [0,1].
	FreqStart, FreqStop float64
	// Share of the vertical space given to the spectrum area when both it
	// and the waterfall are shown.
	HistoWaterfallRatio float64

	// WaterfallPos is the compute stage's ring write position.
	WaterfallPos int

	// Calibrations held by the owner.
	Power     *PowerCal
	Frequency *FreqCal

	Spectrum      geom.Box // histogram and trace area
	Waterfall     geom.Box
	XDiv          float64 // horizontal grid pitch
	SpectrumYDiv  float64 // vertical grid pitch in the spectrum area
	WaterfallYDiv float64
	PowerLabelX   float64 // right edge of power labels
	FreqLabelY    float64 // vertical center of frequency labels
}

const (
	defaultHistoWaterfallRatio = 0.5

	marginOuter     = 10.0
	marginPowerText = 30.0
	freqLabelBand   = 20.0
	areaGap         = 10.0
	labelInset      = 5.0
)

// Refresh recomputes the derived geometry. A too small area leaves the
// corresponding boxes empty.
func (req *Request) Refresh() {
	req.Spectrum, req.Waterfall = geom.Box{}, geom.Box{}
	req.XDiv, req.SpectrumYDiv, req.WaterfallYDiv = 0, 0, 0

	showSpectrum := req.Options.Any(ShowSpectrum)
	showWaterfall := req.Options.Any(ShowWaterfall)

	left := marginOuter
	if req.Options.Any(LabelPower) {
		left = marginPowerText
	}
	avail := int(req.Width) - int(left) - int(marginOuter)
	if avail < 10 {
		return
	}
	div := avail / 10
	over := avail - 10*div

	x0 := req.Pos.X + left + float64(over/2)
	x1 := x0 + 10*float64(div)
	req.XDiv = float64(div)
	req.PowerLabelX = x0 - labelInset

	top := req.Pos.Y + req.Height - marginOuter
	bot := req.Pos.Y + marginOuter
	band := 0.0
	if req.Options.Any(LabelFreq) {
		band = freqLabelBand
	}

	ratio := req.HistoWaterfallRatio
	if ratio <= 0 || ratio > 1 {
		ratio = defaultHistoWaterfallRatio
	}

	switch {
	case showSpectrum && showWaterfall:
		availY := top - bot - band - areaGap
		ydiv := math.Floor(availY * ratio / 10)
		if ydiv < 1 {
			return
		}
		req.Spectrum = geom.MakeSpan(x0, x1, top-10*ydiv, top)
		req.SpectrumYDiv = ydiv
		wfTop := req.Spectrum.Y - band - areaGap
		if wfTop > bot {
			req.Waterfall = geom.MakeSpan(x0, x1, bot, wfTop)
			req.WaterfallYDiv = req.Waterfall.H / 10
		}
	case showSpectrum:
		ydiv := math.Floor((top - bot - band) / 10)
		if ydiv < 1 {
			return
		}
		req.Spectrum = geom.MakeSpan(x0, x1, top-10*ydiv, top)
		req.SpectrumYDiv = ydiv
	case showWaterfall:
		if top > bot {
			req.Waterfall = geom.MakeSpan(x0, x1, bot, top)
			req.WaterfallYDiv = req.Waterfall.H / 10
		}
	}
	req.FreqLabelY = req.Spectrum.Y - band/2
}

// ZoomWindow returns the normalized frequency window of the given width
// centered as close to center as fits in [0,1].
func ZoomWindow(center, width float64) (start, stop float64) {
	width = math.Min(math.Max(width, 0), 1)
	start = center - width/2
	start = math.Min(math.Max(start, 0), 1-width)
	return start, start + width
}
