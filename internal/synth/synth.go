// Package synth is a stand-in for the compute stage: it synthesizes spectral
// frames and writes them into the renderer's shared objects the way a real
// FFT pipeline would, one frame per Step.
package synth

import (
	"log"
	"math"
	"math/rand"

	"github.com/irfansharif/fosphor/internal/gpu"
	"github.com/irfansharif/fosphor/internal/render"
)

// Handles hands out the shared device objects. It is satisfied by
// *render.Renderer.
type Handles interface {
	SharedHandle(id render.ResourceID) gpu.Handle
}

// Tone is a narrowband carrier.
type Tone struct {
	Freq  float64 // normalized to the sample rate, in [-0.5, 0.5)
	Power float64 // peak power in dB
	Width float64 // gaussian width in bins
	Drift float64 // Freq change per step
}

// Config parameterizes the synthetic signal.
type Config struct {
	FFTLen int
	Seed   int64
	Tones  []Tone

	NoiseFloor  float64 // mean noise power in dB
	NoiseSpread float64 // standard deviation of the noise power in dB

	// HistoDecay is the share of the histogram kept from one step to the
	// next, in [0,1).
	HistoDecay float64
	// HoldDecay is the dB per step the max-hold trace falls toward live.
	HoldDecay float64
}

// DefaultConfig returns a signal with a few carriers over a noise floor that
// fits the default power calibration.
func DefaultConfig(fftLen int, seed int64) Config {
	return Config{
		FFTLen: fftLen,
		Seed:   seed,
		Tones: []Tone{
			{Freq: -0.3, Power: -25, Width: 1.5},
			{Freq: -0.05, Power: -40, Width: 6, Drift: 0.0002},
			{Freq: 0.12, Power: -30, Width: 2, Drift: -0.0005},
			{Freq: 0.35, Power: -55, Width: 12},
		},
		NoiseFloor:  -80,
		NoiseSpread: 4,
		HistoDecay:  0.97,
		HoldDecay:   0.2,
	}
}

// Producer owns the waterfall write position and the host-side copies of
// the histogram and max-hold state.
type Producer struct {
	dev     gpu.Device
	handles Handles
	cfg     Config
	rng     *rand.Rand

	pos   int
	steps int

	live  []float64 // dB per bin, natural FFT order
	hold  []float64
	row   []float32
	histo []float32 // HistogramRows rows of FFTLen buckets
}

// New returns a Producer writing to the objects handles gives out. Nothing
// is requested from handles until the first Step.
func New(dev gpu.Device, handles Handles, cfg Config) *Producer {
	n := cfg.FFTLen
	cfg.Tones = append([]Tone(nil), cfg.Tones...)
	p := &Producer{
		dev:     dev,
		handles: handles,
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		live:    make([]float64, n),
		hold:    make([]float64, n),
		row:     make([]float32, n),
		histo:   make([]float32, n*render.HistogramRows),
	}
	p.Reset()
	return p
}

// Position is the waterfall ring row the next Step writes. Rows before it
// are the most recent.
func (p *Producer) Position() int { return p.pos }

// Steps is the number of frames produced.
func (p *Producer) Steps() int { return p.steps }

// Reset clears the accumulated histogram and max-hold.
func (p *Producer) Reset() {
	for i := range p.hold {
		p.hold[i] = math.Inf(-1)
	}
	clear(p.histo)
}

// Step produces one frame. The power calibration decides the histogram
// buckets and the trace encoding, so it must be the one the frame is drawn
// with.
func (p *Producer) Step(power render.PowerCal) {
	wf := p.handles.SharedHandle(render.WaterfallTexture)
	hist := p.handles.SharedHandle(render.HistogramTexture)
	traces := p.handles.SharedHandle(render.SpectrumBuffer)
	if wf == gpu.NoHandle || hist == gpu.NoHandle || traces == gpu.NoHandle {
		return
	}

	p.synthesize()
	p.writeWaterfall(wf)
	p.writeHistogram(hist, power)
	p.writeTraces(traces, power)

	p.pos = (p.pos + 1) % render.WaterfallRows
	p.steps++
}

// synthesize fills live with the next frame and folds it into hold.
func (p *Producer) synthesize() {
	n := len(p.live)
	for k := range p.live {
		noise := p.cfg.NoiseFloor + p.rng.NormFloat64()*p.cfg.NoiseSpread
		lin := dbToLinear(noise)
		f := binFreq(k, n)
		for _, t := range p.cfg.Tones {
			d := wrapFreq(f-t.Freq) * float64(n)
			w := max(t.Width, 0.5)
			lin += dbToLinear(t.Power) * math.Exp(-d*d/(2*w*w))
		}
		p.live[k] = 10 * math.Log10(lin)
		p.hold[k] = max(p.live[k], p.hold[k]-p.cfg.HoldDecay)
	}
	for i := range p.cfg.Tones {
		t := &p.cfg.Tones[i]
		t.Freq = wrapFreq(t.Freq + t.Drift)
	}
}

func (p *Producer) writeWaterfall(tex gpu.Handle) {
	for k, v := range p.live {
		p.row[k] = float32(v)
	}
	p.dev.UpdateTexture2D(tex, 0, p.pos, len(p.row), 1, p.row)
}

func (p *Producer) writeHistogram(tex gpu.Handle, power render.PowerCal) {
	n := len(p.live)
	keep := float32(min(max(p.cfg.HistoDecay, 0), 1))
	for i := range p.histo {
		p.histo[i] *= keep
	}
	for k, v := range p.live {
		b := bucket(v*power.Scale + power.Offset)
		p.histo[b*n+k] += 1 - keep
	}
	p.dev.UpdateTexture2D(tex, 0, 0, n, render.HistogramRows, p.histo)
}

func (p *Producer) writeTraces(buf gpu.Handle, power render.PowerCal) {
	data := p.dev.MapBuffer(buf)
	if data == nil {
		log.Printf("WARNING: synth: failed to map spectrum buffer %d, dropping frame traces", buf)
		return
	}
	defer p.dev.UnmapBuffer(buf)

	n := len(p.live)
	half := n / 2
	for i := 0; i < n; i++ {
		k := i ^ half
		x := float32(float64(i)/float64(half) - 1)
		data[2*i] = x
		data[2*i+1] = float32(TraceY(p.live[k], power))
		data[2*(n+i)] = x
		data[2*(n+i)+1] = float32(TraceY(p.hold[k], power))
	}
}

// TraceY encodes a power for the trace vertex buffer. The renderer maps a
// trace y to power.Scale*(y + power.Offset), which for TraceY(db) equals the
// normalized db*power.Scale + power.Offset the textures are colored with.
func TraceY(db float64, power render.PowerCal) float64 {
	if power.Scale == 0 {
		return 0
	}
	norm := db*power.Scale + power.Offset
	return norm/power.Scale - power.Offset
}

// bucket returns the histogram row of a normalized power.
func bucket(norm float64) int {
	if math.IsNaN(norm) {
		return 0
	}
	b := int(math.Floor(norm * render.HistogramRows))
	return min(max(b, 0), render.HistogramRows-1)
}

// binFreq is the signed normalized frequency of FFT bin k.
func binFreq(k, n int) float64 {
	return wrapFreq(float64(k) / float64(n))
}

// wrapFreq folds f into [-0.5, 0.5).
func wrapFreq(f float64) float64 {
	return f - math.Floor(f+0.5)
}

func dbToLinear(db float64) float64 {
	return math.Pow(10, db/10)
}
