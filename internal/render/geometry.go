package render

import (
	"math"

	"github.com/irfansharif/fosphor/internal/geom"
	"github.com/irfansharif/fosphor/internal/gpu"
)

// Texture mapping notes:
//
//   - Textures hold the DC bin at texel 0. It is displayed centered by
//     offsetting the horizontal texture coordinate by half a period, which
//     the repeating frequency axis resolves.
//   - The bin at u=0.5 is not displayed: it is both the most positive and
//     the most negative frequency. The (1 - tw) factor skips it.
//
// Vertex mapping notes:
//
//   - The compute stage writes point i of each trace with x = i/(N/2) - 1,
//     point i holding bin i^(N/2). DC lands on 0, the undisplayed bin on -1,
//     and the displayed ones on [-1+2tw, 1-2tw].
//   - That range is remapped onto [0,1], then onto [bw/2, 1-bw/2] so each
//     point sits at the center of its bin on the textures. Zoom and the
//     screen mapping come last.

// binGeometry holds the per-FFT-length constants of the mapping.
type binGeometry struct {
	n  int
	tw float64 // texel width
	bw float64 // displayed bin width
}

func newBinGeometry(n int) binGeometry {
	return binGeometry{
		n:  n,
		tw: 1.0 / float64(n),
		bw: 1.0 / float64(n-1),
	}
}

// textureU maps a normalized display frequency to the horizontal texture
// coordinate of the waterfall and histogram.
func (g binGeometry) textureU(freq float64) float64 {
	return 0.5 + g.tw + (1.0-g.tw)*freq
}

// scrollWindow returns the vertical texture range of the waterfall ending at
// the ring write position. The start is deliberately left unclamped; repeat
// addressing folds it back into the ring.
func scrollWindow(wfPos int, span float64) (v0, v1 float64) {
	v1 = float64(wfPos) / WaterfallRows
	v0 = v1 - span
	return v0, v1
}

// spectrumRange returns the first trace point and the number of points
// covering [start, stop]. The result always lies within the displayed
// points [1, N-1]; an empty window yields count 0.
func (g binGeometry) spectrumRange(start, stop float64) (first, count int) {
	n1 := float64(g.n - 1)
	first = 1 + int(math.Ceil(start*n1-0.5))
	last := 1 + int(math.Floor(stop*n1-0.5))
	first = max(first, 1)
	last = min(last, g.n-1)
	if last < first {
		return first, 0
	}
	return first, last - first + 1
}

// spectrumTransform composes the trace vertex transform, outermost first.
func (g binGeometry) spectrumTransform(area geom.Box, power PowerCal, start, stop float64) geom.Affine {
	return geom.Identity().
		// Screen position scaling.
		Translate(area.X, area.Y).
		Scale(area.W, area.H).
		// Power offset and scaling.
		Scale(1, power.Scale).
		Translate(0, power.Offset).
		// Frequency range selection.
		Scale(1/(stop-start), 1).
		Translate(-start, 0).
		// Center of each of the N-1 displayed bins.
		Translate(0.5*g.bw, 0).
		Scale(1-g.bw, 1).
		// Vertex x from [-1+2tw, 1-2tw] to [0,1].
		Translate(0.5, 0).
		Scale(0.5/(1-2*g.tw), 1)
}

// texturedQuads returns the quads covering box with texture coordinates
// [u0,u1] × [v0,v1]. With native wrap-around sampling that is a single quad;
// otherwise the ranges along repeating axes are split at the texture seam.
func texturedQuads(box geom.Box, u0, u1, v0, v1 float64, desc gpu.TextureDesc, native bool) [][4]gpu.Vertex {
	if native {
		return [][4]gpu.Vertex{quad(box, u0, u1, v0, v1)}
	}
	uSpans := axisSpans(u0, u1, desc.WrapU)
	vSpans := axisSpans(v0, v1, desc.WrapV)

	quads := make([][4]gpu.Vertex, 0, len(uSpans)*len(vSpans))
	xAt := lerpAxis(box.X, box.X1(), u0, u1)
	yAt := lerpAxis(box.Y, box.Y1(), v0, v1)
	for _, vs := range vSpans {
		for _, us := range uSpans {
			sub := geom.MakeSpan(xAt(us.start), xAt(us.end), yAt(vs.start), yAt(vs.end))
			quads = append(quads, quad(sub, us.from, us.to, vs.from, vs.to))
		}
	}
	return quads
}

// axisSpan is a piece of a texture range: [start,end] in the unwrapped
// coordinate and [from,to] folded into the texture.
type axisSpan struct {
	start, end float64
	from, to   float64
}

func axisSpans(c0, c1 float64, wrap gpu.Wrap) []axisSpan {
	if wrap != gpu.WrapRepeat || c1 <= c0 {
		return []axisSpan{{start: c0, end: c1, from: c0, to: c1}}
	}
	spans := gpu.WrapSpans(c0, c1)
	out := make([]axisSpan, len(spans))
	at := c1
	for i := len(spans) - 1; i >= 0; i-- {
		s := spans[i]
		out[i] = axisSpan{start: at - s.Len(), end: at, from: s.From, to: s.To}
		at -= s.Len()
	}
	return out
}

// lerpAxis maps texture coordinate c in [c0,c1] linearly onto [p0,p1].
func lerpAxis(p0, p1, c0, c1 float64) func(float64) float64 {
	return func(c float64) float64 {
		if c1 == c0 {
			return p0
		}
		return p0 + (p1-p0)*(c-c0)/(c1-c0)
	}
}

// quad builds the four vertices of box mapped onto [u0,u1] × [v0,v1],
// counter-clockwise from the lower-left corner.
func quad(box geom.Box, u0, u1, v0, v1 float64) [4]gpu.Vertex {
	c := box.Corners()
	return [4]gpu.Vertex{
		{Pos: c[0], UV: geom.MakePoint(u0, v0)},
		{Pos: c[1], UV: geom.MakePoint(u1, v0)},
		{Pos: c[2], UV: geom.MakePoint(u1, v1)},
		{Pos: c[3], UV: geom.MakePoint(u0, v1)},
	}
}
