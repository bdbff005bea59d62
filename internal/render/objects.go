package render

import (
	"log"

	"github.com/irfansharif/fosphor/internal/gpu"
)

const (
	// WaterfallRows is the depth of the waterfall ring.
	WaterfallRows = 1024
	// HistogramRows is the number of amplitude buckets of the histogram.
	HistogramRows = 128
	// LUTSize is the number of entries in each colormap lookup table.
	LUTSize = 256

	clearTile = 16
)

// fatalf reports broken graphics-context invariants.
var fatalf = log.Fatalf

// ResourceID names one of the objects shared with the compute stage.
type ResourceID int

const (
	WaterfallTexture ResourceID = iota
	HistogramTexture
	SpectrumBuffer
)

func (id ResourceID) String() string {
	switch id {
	case WaterfallTexture:
		return "waterfall-texture"
	case HistogramTexture:
		return "histogram-texture"
	case SpectrumBuffer:
		return "spectrum-buffer"
	default:
		return "unknown"
	}
}

// SpectrumBufferBytes is the size of the spectrum vertex buffer for an FFT
// of length n: a live and a max-hold polyline of n (x, y) float32 points.
func SpectrumBufferBytes(n int) int { return 2 * 2 * n * 4 }

// WaterfallDesc describes the waterfall ring texture. Both axes repeat: the
// frequency axis so the DC bin can be centered purely by texture offset, the
// time axis so a scroll window may straddle the ring's seam.
func WaterfallDesc(n int) gpu.TextureDesc {
	return gpu.TextureDesc{
		Width:  n,
		Height: WaterfallRows,
		Filter: gpu.FilterLinear,
		WrapU:  gpu.WrapRepeat,
		WrapV:  gpu.WrapRepeat,
	}
}

// HistogramDesc describes the histogram texture; only the frequency axis
// repeats.
func HistogramDesc(n int) gpu.TextureDesc {
	return gpu.TextureDesc{
		Width:  n,
		Height: HistogramRows,
		Filter: gpu.FilterLinear,
		WrapU:  gpu.WrapRepeat,
		WrapV:  gpu.WrapClamp,
	}
}

// objectSet holds the device objects written by the compute stage and read
// at draw time. They are created together and destroyed together.
type objectSet struct {
	waterfall gpu.Handle
	histogram gpu.Handle
	spectrum  gpu.Handle

	waterfallDesc gpu.TextureDesc
	histogramDesc gpu.TextureDesc
	spectrumBytes int
}

func createObjects(dev gpu.Device, n int) objectSet {
	var o objectSet

	o.waterfallDesc = WaterfallDesc(n)
	o.waterfall = dev.CreateTexture2D(o.waterfallDesc)
	clearTexture(dev, o.waterfall, n, WaterfallRows)

	o.histogramDesc = HistogramDesc(n)
	o.histogram = dev.CreateTexture2D(o.histogramDesc)
	clearTexture(dev, o.histogram, n, HistogramRows)

	o.spectrumBytes = SpectrumBufferBytes(n)
	o.spectrum = dev.CreateBuffer(o.spectrumBytes)
	clearBuffer(dev, o.spectrum)

	return o
}

// destroy releases the objects in reverse order of creation.
func (o *objectSet) destroy(dev gpu.Device) {
	dev.DeleteBuffer(o.spectrum)
	dev.DeleteTexture(o.histogram)
	dev.DeleteTexture(o.waterfall)
	*o = objectSet{}
}

func (o objectSet) handle(id ResourceID) gpu.Handle {
	switch id {
	case WaterfallTexture:
		return o.waterfall
	case HistogramTexture:
		return o.histogram
	case SpectrumBuffer:
		return o.spectrum
	}
	return gpu.NoHandle
}

// bytes returns the device memory held by the set.
func (o objectSet) bytes() int64 {
	if o.waterfall == gpu.NoHandle {
		return 0
	}
	return o.waterfallDesc.Bytes() + o.histogramDesc.Bytes() + int64(o.spectrumBytes)
}

// clearTexture zero-fills a float texture tile by tile, reusing one small
// scratch buffer.
func clearTexture(dev gpu.Device, tex gpu.Handle, width, height int) {
	var scratch [clearTile * clearTile]float32
	for y := 0; y < height; y += clearTile {
		for x := 0; x < width; x += clearTile {
			cw := min(clearTile, width-x)
			ch := min(clearTile, height-y)
			dev.UpdateTexture2D(tex, x, y, cw, ch, scratch[:cw*ch])
		}
	}
}

// clearBuffer zero-fills a vertex buffer through a mapping. A failed mapping
// means the graphics context is unusable.
func clearBuffer(dev gpu.Device, buf gpu.Handle) {
	data := dev.MapBuffer(buf)
	if data == nil {
		fatalf("failed to map spectrum buffer %d for clearing", buf)
	}
	clear(data)
	dev.UnmapBuffer(buf)
}
