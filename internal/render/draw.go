package render

import (
	"time"

	"github.com/irfansharif/fosphor/internal/gpu"
)

// histogramScale slightly overdrives the histogram occupancy so that cells
// hit every frame reach the top of the colormap.
const histogramScale = 1.1

var (
	backgroundColor = gpu.Color{R: 0, G: 0, B: 0.1, A: 1}
	liveColor       = gpu.Color{R: 1, G: 1, B: 1, A: 0.75}
	maxHoldColor    = gpu.Color{R: 1, G: 0, B: 0, A: 0.75}
)

var defaultPower = NewPowerCal(0, 10)

// Draw issues one frame: waterfall, then the histogram or a plain
// background, then the live and max-hold traces, then the grid. It returns
// once the device has finished all of it, so the compute stage may write the
// shared objects as soon as Draw returns.
//
// Draw never fails. Layers whose data objects do not exist yet (SharedHandle
// was never called) are skipped; degenerate requests produce empty draws.
func (r *Renderer) Draw(req *Request) {
	if r == nil || r.phase == PhaseReleased || req == nil {
		return
	}
	start := time.Now()
	calls := 0

	power := defaultPower
	if req.Power != nil {
		power = *req.Power
	}
	g := newBinGeometry(r.fftLen)
	ready := r.phase == PhaseGPUReady

	if req.Options.Any(ShowWaterfall) && ready {
		calls += r.drawWaterfall(g, req, power)
	}

	if req.Options.Any(ShowHistogram) {
		if ready {
			calls += r.drawHistogram(g, req)
		}
	} else if req.Options.Any(ShowTraces) {
		r.dev.DrawQuad(quad(req.Spectrum, 0, 0, 0, 0), backgroundColor)
		calls++
	}

	if req.Options.Any(ShowTraces) && ready {
		calls += r.drawTraces(g, req, power)
	}

	if req.Options.Any(ShowSpectrum) {
		calls += r.drawGrid(req, power)
	}

	r.dev.Finish()

	r.stats.LastDrawTimeUs = float64(time.Since(start).Microseconds())
	r.stats.DrawCallsPerFrame = calls
	r.stats.Frames++
}

func (r *Renderer) drawWaterfall(g binGeometry, req *Request, power PowerCal) int {
	u0 := g.textureU(req.FreqStart)
	u1 := g.textureU(req.FreqStop)
	v0, v1 := scrollWindow(req.WaterfallPos, req.WaterfallSpan)

	quads := texturedQuads(req.Waterfall, u0, u1, v0, v1, r.objects.waterfallDesc, r.dev.WrapsTextures())

	r.cmap.Enable(r.objects.waterfall, r.cmapWaterfall,
		float32(power.Scale), float32(power.Offset), gpu.InterpBilinear)
	for _, q := range quads {
		r.dev.DrawQuad(q, gpu.Color{})
	}
	r.cmap.Disable()
	return len(quads)
}

func (r *Renderer) drawHistogram(g binGeometry, req *Request) int {
	u0 := g.textureU(req.FreqStart)
	u1 := g.textureU(req.FreqStop)

	quads := texturedQuads(req.Spectrum, u0, u1, 0, 1, r.objects.histogramDesc, r.dev.WrapsTextures())

	r.cmap.Enable(r.objects.histogram, r.cmapHisto, histogramScale, 0, gpu.InterpBilinear)
	for _, q := range quads {
		r.dev.DrawQuad(q, gpu.Color{})
	}
	r.cmap.Disable()
	return len(quads)
}

func (r *Renderer) drawTraces(g binGeometry, req *Request, power PowerCal) int {
	// The transform divides by the window width.
	if !(req.FreqStop > req.FreqStart) {
		return 0
	}
	first, count := g.spectrumRange(req.FreqStart, req.FreqStop)
	if count == 0 {
		return 0
	}
	xf := g.spectrumTransform(req.Spectrum, power, req.FreqStart, req.FreqStop)

	calls := 0
	if req.Options.Any(ShowLive) {
		r.dev.DrawLineStrip(r.objects.spectrum, first, count, xf, liveColor)
		calls++
	}
	if req.Options.Any(ShowMaxHold) {
		r.dev.DrawLineStrip(r.objects.spectrum, first+r.fftLen, count, xf, maxHoldColor)
		calls++
	}
	return calls
}
