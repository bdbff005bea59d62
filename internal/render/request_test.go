package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/irfansharif/fosphor/internal/geom"
)

func TestRefreshSplitLayout(t *testing.T) {
	req := &Request{
		Options: ShowAll,
		Pos:     geom.MakePoint(0, 0),
		Width:   800,
		Height:  600,
	}
	req.Refresh()

	// 760px after margins, ten divisions of 76px.
	assert.Equal(t, 76.0, req.XDiv)
	assert.Equal(t, geom.MakeSpan(30, 790, 320, 590), req.Spectrum)
	assert.Equal(t, 27.0, req.SpectrumYDiv)
	assert.Equal(t, geom.MakeSpan(30, 790, 10, 290), req.Waterfall)
	assert.Equal(t, 28.0, req.WaterfallYDiv)
	assert.Equal(t, 25.0, req.PowerLabelX)
	assert.Equal(t, 310.0, req.FreqLabelY)
}

func TestRefreshSingleArea(t *testing.T) {
	req := &Request{Options: ShowLive, Pos: geom.MakePoint(100, 50), Width: 415, Height: 300}
	req.Refresh()

	// 395px: 39px divisions, 5px left over split around.
	assert.Equal(t, 39.0, req.XDiv)
	assert.Equal(t, 112.0, req.Spectrum.X)
	assert.Equal(t, 390.0, req.Spectrum.W)
	assert.Equal(t, geom.MakeSpan(112, 502, 60, 340), req.Spectrum)
	assert.True(t, req.Waterfall.Empty())

	req = &Request{Options: ShowWaterfall, Width: 300, Height: 300}
	req.Refresh()
	assert.True(t, req.Spectrum.Empty())
	assert.Equal(t, geom.MakeSpan(10, 290, 10, 290), req.Waterfall)
}

func TestRefreshRatio(t *testing.T) {
	small := &Request{Options: ShowHistogram | ShowWaterfall, Width: 400, Height: 1000, HistoWaterfallRatio: 0.2}
	small.Refresh()
	large := &Request{Options: ShowHistogram | ShowWaterfall, Width: 400, Height: 1000, HistoWaterfallRatio: 0.8}
	large.Refresh()
	assert.Less(t, small.Spectrum.H, large.Spectrum.H)
	assert.Greater(t, small.Waterfall.H, large.Waterfall.H)

	// Out of range ratios fall back to an even split.
	even := &Request{Options: ShowHistogram | ShowWaterfall, Width: 400, Height: 1000, HistoWaterfallRatio: 7}
	even.Refresh()
	def := &Request{Options: ShowHistogram | ShowWaterfall, Width: 400, Height: 1000}
	def.Refresh()
	assert.Equal(t, def.Spectrum, even.Spectrum)
}

func TestRefreshDegenerate(t *testing.T) {
	for _, size := range [][2]float64{{0, 0}, {15, 600}, {800, 15}, {-100, -100}} {
		req := &Request{Options: ShowAll, Width: size[0], Height: size[1]}
		req.Refresh()
		assert.True(t, req.Spectrum.Empty(), "%v", size)
		assert.True(t, req.Waterfall.Empty(), "%v", size)
	}
}

func TestNewPowerCal(t *testing.T) {
	power := NewPowerCal(-20, 10)
	norm := func(db float64) float64 { return db*power.Scale + power.Offset }
	assert.InDelta(t, 0.0, norm(-120), 1e-12)
	assert.InDelta(t, 1.0, norm(-20), 1e-12)
	assert.InDelta(t, 0.5, norm(-70), 1e-12)

	assert.Equal(t, 1, NewPowerCal(0, 0).DBPerDiv)
}

func TestZoomWindow(t *testing.T) {
	for _, tc := range []struct {
		center, width float64
		start, stop   float64
	}{
		{0.5, 1, 0, 1},
		{0.5, 0.5, 0.25, 0.75},
		{0.1, 0.5, 0, 0.5},
		{0.9, 0.5, 0.5, 1},
		{0.5, 2, 0, 1},
		{0.5, -1, 0.5, 0.5},
	} {
		start, stop := ZoomWindow(tc.center, tc.width)
		assert.InDelta(t, tc.start, start, 1e-12, "%+v", tc)
		assert.InDelta(t, tc.stop, stop, 1e-12, "%+v", tc)
	}
}
