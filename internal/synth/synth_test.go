package synth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/fosphor/internal/gpu"
	"github.com/irfansharif/fosphor/internal/gpu/gputest"
	"github.com/irfansharif/fosphor/internal/render"
)

const testFFTLen = 64

// toneConfig is a noiseless carrier at bin testFFTLen/4.
func toneConfig() Config {
	return Config{
		FFTLen:     testFFTLen,
		Tones:      []Tone{{Freq: 0.25, Power: -20, Width: 1}},
		NoiseFloor: -80,
		HistoDecay: 0.9,
		HoldDecay:  0.5,
	}
}

func newTestProducer(t *testing.T, cfg Config) (*gputest.Device, *render.Renderer, *Producer) {
	t.Helper()
	dev := gputest.New()
	r, err := render.Init(render.Config{Device: dev, FFTLen: cfg.FFTLen})
	require.NoError(t, err)
	t.Cleanup(r.Release)
	return dev, r, New(dev, r, cfg)
}

func TestStepWritesWaterfallRow(t *testing.T) {
	dev, r, p := newTestProducer(t, toneConfig())
	assert.Equal(t, render.PhaseConstructed, r.Phase())

	p.Step(render.NewPowerCal(0, 10))
	assert.Equal(t, render.PhaseGPUReady, r.Phase())
	assert.Equal(t, 1, p.Position())
	assert.Equal(t, 1, p.Steps())

	texels := dev.Texels(r.SharedHandle(render.WaterfallTexture))
	row := texels[:testFFTLen]
	peak := 0
	for k := range row {
		if row[k] > row[peak] {
			peak = k
		}
	}
	assert.Equal(t, testFFTLen/4, peak)
	assert.InDelta(t, -20, row[peak], 1e-3)
	assert.InDelta(t, -20-10*math.Log10(math.E)/2, row[peak+1], 1e-3)
	assert.InDelta(t, -80, row[0], 1e-3)

	// The next row is still as cleared.
	for _, v := range texels[testFFTLen : 2*testFFTLen] {
		assert.Zero(t, v)
	}
}

func TestPositionWraps(t *testing.T) {
	cfg := toneConfig()
	cfg.FFTLen = 4
	_, _, p := newTestProducer(t, cfg)
	for i := 0; i < render.WaterfallRows+3; i++ {
		p.Step(render.NewPowerCal(0, 10))
	}
	assert.Equal(t, 3, p.Position())
	assert.Equal(t, render.WaterfallRows+3, p.Steps())
}

func TestHistogramColumns(t *testing.T) {
	dev, r, p := newTestProducer(t, toneConfig())
	power := render.NewPowerCal(0, 10)
	p.Step(power)
	p.Step(power)

	texels := dev.Texels(r.SharedHandle(render.HistogramTexture))
	require.Len(t, texels, testFFTLen*render.HistogramRows)
	for k := 0; k < testFFTLen; k++ {
		var sum float32
		for b := 0; b < render.HistogramRows; b++ {
			sum += texels[b*testFFTLen+k]
		}
		// Two steps of 0.1 each, the first decayed once.
		assert.InDelta(t, 0.19, sum, 1e-5, "bin %d", k)
	}

	// -20 dB normalizes to 0.8.
	tone := testFFTLen / 4
	assert.InDelta(t, 0.19, texels[bucket(0.8)*testFFTLen+tone], 1e-5)
	// The -80 dB floor normalizes to 0.2.
	assert.InDelta(t, 0.19, texels[bucket(0.2)*testFFTLen], 1e-5)
	assert.Zero(t, texels[0])
}

func TestTracesEncoding(t *testing.T) {
	dev, r, p := newTestProducer(t, toneConfig())
	power := render.NewPowerCal(0, 10)
	p.Step(power)

	data := dev.Buffer(r.SharedHandle(render.SpectrumBuffer))
	require.Len(t, data, 4*testFFTLen)
	half := testFFTLen / 2
	for i := 0; i < testFFTLen; i++ {
		x := float64(i)/float64(half) - 1
		assert.InDelta(t, x, data[2*i], 1e-6)
		assert.InDelta(t, x, data[2*(testFFTLen+i)], 1e-6)
	}
	// DC sits in the middle of the trace.
	assert.Zero(t, data[2*half])

	// Storage position i holds bin i^(N/2); the tone's bin N/4 lands at 3N/4.
	pos := (testFFTLen / 4) ^ half
	y := float64(data[2*pos+1])
	assert.InDelta(t, 0.8, power.Scale*(y+power.Offset), 1e-5)
	hold := float64(data[2*(testFFTLen+pos)+1])
	assert.InDelta(t, y, hold, 1e-5)
	assert.Equal(t, 2, dev.Maps) // one of them the deferred init clear
}

func TestMaxHoldDecays(t *testing.T) {
	_, _, p := newTestProducer(t, toneConfig())
	power := render.NewPowerCal(0, 10)
	p.Step(power)

	p.cfg.Tones[0].Power = -60
	p.Step(power)
	tone := testFFTLen / 4
	assert.InDelta(t, -60, p.live[tone], 0.1)
	assert.InDelta(t, -20.5, p.hold[tone], 1e-3)

	p.Reset()
	p.Step(power)
	assert.InDelta(t, p.live[tone], p.hold[tone], 1e-9)
}

func TestConfigTonesCopied(t *testing.T) {
	cfg := toneConfig()
	cfg.Tones[0].Drift = 0.01
	_, _, p := newTestProducer(t, cfg)
	p.Step(render.NewPowerCal(0, 10))
	assert.Equal(t, 0.25, cfg.Tones[0].Freq)
	assert.InDelta(t, 0.26, p.cfg.Tones[0].Freq, 1e-12)
}

func TestStepMapFailure(t *testing.T) {
	dev, r, p := newTestProducer(t, toneConfig())
	r.SharedHandle(render.SpectrumBuffer)
	dev.FailMap = true

	p.Step(render.NewPowerCal(0, 10))
	assert.Equal(t, 1, p.Position())
	for _, v := range dev.Buffer(r.SharedHandle(render.SpectrumBuffer)) {
		assert.Zero(t, v)
	}
}

func TestStepAfterRelease(t *testing.T) {
	dev, r, p := newTestProducer(t, toneConfig())
	r.Release()
	uploads := dev.Uploads

	p.Step(render.NewPowerCal(0, 10))
	assert.Zero(t, p.Position())
	assert.Zero(t, p.Steps())
	assert.Equal(t, uploads, dev.Uploads)
	assert.Equal(t, gpu.NoHandle, r.SharedHandle(render.WaterfallTexture))
}

func TestFreqHelpers(t *testing.T) {
	assert.Equal(t, 0.0, binFreq(0, 8))
	assert.Equal(t, 0.25, binFreq(2, 8))
	assert.Equal(t, -0.5, binFreq(4, 8))
	assert.Equal(t, -0.125, binFreq(7, 8))

	assert.Equal(t, 0, bucket(-3))
	assert.Equal(t, 0, bucket(math.NaN()))
	assert.Equal(t, render.HistogramRows-1, bucket(1))
	assert.Equal(t, 64, bucket(0.5))

	power := render.NewPowerCal(-10, 5)
	assert.InDelta(t, 1.0, power.Scale*(TraceY(-10, power)+power.Offset), 1e-12)
	assert.Zero(t, TraceY(-10, render.PowerCal{}))
}
