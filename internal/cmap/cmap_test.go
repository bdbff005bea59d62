package cmap

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/fosphor/internal/gpu"
	"github.com/irfansharif/fosphor/internal/gpu/gputest"
)

func TestGenerators(t *testing.T) {
	for name, gen := range map[string]Generator{
		"waterfall": Waterfall,
		"histogram": Histogram,
	} {
		t.Run(name, func(t *testing.T) {
			lut, err := gen(256)
			require.NoError(t, err)
			require.Len(t, lut, 256)
			for _, c := range lut {
				assert.Equal(t, uint8(255), c.A)
			}
			assert.NotEqual(t, lut[0], lut[255])

			_, err = gen(1)
			assert.Error(t, err)
		})
	}
}

func TestWaterfallEndpoints(t *testing.T) {
	lut, err := Waterfall(256)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0, G: 0, B: 16, A: 255}, lut[0])
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, lut[255])
}

func TestHistogramStartsBlack(t *testing.T) {
	lut, err := Histogram(256)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{A: 255}, lut[0])
	// Fully bright past the ramp.
	r, g, b := lut[128].R, lut[128].G, lut[128].B
	assert.Equal(t, uint8(255), max(r, g, b))
}

func TestContext(t *testing.T) {
	dev := gputest.New()
	ctx, err := Init(dev)
	require.NoError(t, err)
	assert.True(t, dev.ColormapReady())

	lut, err := ctx.Generate(Histogram, 256)
	require.NoError(t, err)
	assert.Len(t, dev.LUT(lut), 256)

	ctx.Enable(7, lut, 1.1, 0, gpu.InterpBilinear)
	dev.DrawQuad([4]gpu.Vertex{}, gpu.Color{})
	ctx.Disable()
	ctx.Disable() // no-op

	require.Equal(t, []gputest.CallKind{
		gputest.CallBindColormap,
		gputest.CallQuad,
		gputest.CallUnbindColormap,
	}, dev.Kinds())
	assert.Equal(t, gpu.ColormapBinding{Data: 7, LUT: lut, Scale: 1.1, Mode: gpu.InterpBilinear}, dev.Calls[0].Colormap)
	assert.True(t, dev.Calls[1].Textured)

	dev.DeleteTexture(lut)
	ctx.Release()
	assert.False(t, dev.ColormapReady())
	ctx.Release()
	assert.Zero(t, dev.Live())
}

func TestContextFailures(t *testing.T) {
	dev := gputest.New()
	dev.FailColormap = errors.New("link failed")
	_, err := Init(dev)
	assert.ErrorContains(t, err, "link failed")

	dev = gputest.New()
	dev.FailLUT = gpu.ErrOutOfMemory
	ctx, err := Init(dev)
	require.NoError(t, err)
	_, err = ctx.Generate(Waterfall, 256)
	assert.ErrorIs(t, err, gpu.ErrOutOfMemory)

	_, err = ctx.Generate(Waterfall, 0)
	assert.Error(t, err)

	var nilCtx *Context
	nilCtx.Release()
}
