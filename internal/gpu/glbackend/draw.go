package glbackend

import (
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/irfansharif/fosphor/internal/geom"
	"github.com/irfansharif/fosphor/internal/gpu"
)

// growStream makes room for n streamed floats. The stream VBO must be
// bound.
func (d *Device) growStream(n int) {
	if n <= d.streamCap {
		return
	}
	capacity := max(n, 2*d.streamCap)
	gl.BufferData(gl.ARRAY_BUFFER, capacity*4, nil, gl.STREAM_DRAW)
	d.streamCap = capacity
}

// stream uploads vertices (x, y, u, v) and draws them as mode.
func (d *Device) stream(mode uint32, vertices []float32) {
	if len(vertices) == 0 {
		return
	}
	gl.BindVertexArray(d.streamVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.streamVBO)
	d.growStream(len(vertices))
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	gl.DrawArrays(mode, 0, int32(len(vertices)/4))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

func setBlend(c gpu.Color) {
	if c.Opaque() {
		gl.Disable(gl.BLEND)
		return
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

func (d *Device) DrawQuad(q [4]gpu.Vertex, c gpu.Color) {
	pts := make([]geom.Point, len(q))
	for i, v := range q {
		pts[i] = v.Pos
	}
	indices := earClip(pts)

	d.scratch = d.scratch[:0]
	for _, i := range indices {
		v := q[i]
		d.scratch = append(d.scratch,
			float32(v.Pos.X), float32(v.Pos.Y), // position
			float32(v.UV.X), float32(v.UV.Y), // texture coordinate
		)
	}

	if b := d.bound; b != nil {
		d.useColormap(*b)
		gl.Disable(gl.BLEND)
	} else {
		d.flat.use()
		d.flat.setTransform(d.ortho.Matrix4())
		d.flat.setColor(c.R, c.G, c.B, c.A)
		setBlend(c)
	}
	d.stream(gl.TRIANGLES, d.scratch)
}

// useColormap activates the colormap program with b's textures on units 0
// and 1.
func (d *Device) useColormap(b gpu.ColormapBinding) {
	data, lut := d.textures[b.Data], d.textures[b.LUT]

	p := d.colormap
	p.use()
	p.setTransform(d.ortho.Matrix4())
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, data.id)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_1D, lut.id)
	gl.ActiveTexture(gl.TEXTURE0)
	p.setInt("uData", 0)
	p.setInt("uLUT", 1)
	p.setFloat("uScale", b.Scale)
	p.setFloat("uOffset", b.Offset)
	if b.Mode == gpu.InterpBilinear {
		p.setInt("uMode", 1)
	} else {
		p.setInt("uMode", 0)
	}
}

func (d *Device) DrawLineStrip(buf gpu.Handle, first, count int, xf geom.Affine, c gpu.Color) {
	b, ok := d.buffers[buf]
	if !ok || count <= 0 {
		return
	}
	d.flat.use()
	d.flat.setTransform(d.ortho.Mul(xf).Matrix4())
	d.flat.setColor(c.R, c.G, c.B, c.A)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.LINE_SMOOTH)
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.LINE_STRIP, int32(first), int32(count))
	gl.BindVertexArray(0)
	gl.Disable(gl.LINE_SMOOTH)
}

func (d *Device) DrawLines(pts []geom.Point, c gpu.Color) {
	d.scratch = d.scratch[:0]
	for _, p := range pts[:len(pts)&^1] {
		d.scratch = append(d.scratch, float32(p.X), float32(p.Y), 0, 0)
	}
	d.flat.use()
	d.flat.setTransform(d.ortho.Matrix4())
	d.flat.setColor(c.R, c.G, c.B, c.A)
	setBlend(c)
	d.stream(gl.LINES, d.scratch)
}

// anchor returns the low edge of an extent of size n placed at p.
func anchor(p float64, a gpu.Align, n int) float64 {
	switch a {
	case gpu.AlignCenter:
		return math.Round(p - float64(n)/2)
	case gpu.AlignEnd:
		return math.Round(p) - float64(n)
	default:
		return math.Round(p)
	}
}

func (d *Device) DrawText(g gpu.Glyphs, x float64, ax gpu.Align, y float64, ay gpu.Align, c gpu.Color, s string) {
	if g == nil || s == "" {
		return
	}
	img := g.Rasterize(s)
	if img == nil || img.Rect.Empty() {
		return
	}
	id := d.glyphs.texture(img)
	w, h := img.Rect.Dx(), img.Rect.Dy()
	x0, y0 := anchor(x, ax, w), anchor(y, ay, h)
	x1, y1 := x0+float64(w), y0+float64(h)

	// Image rows run top down.
	d.scratch = append(d.scratch[:0],
		float32(x0), float32(y0), 0, 1,
		float32(x1), float32(y0), 1, 1,
		float32(x1), float32(y1), 1, 0,
		float32(x0), float32(y0), 0, 1,
		float32(x1), float32(y1), 1, 0,
		float32(x0), float32(y1), 0, 0,
	)

	d.text.use()
	d.text.setTransform(d.ortho.Matrix4())
	d.text.setColor(c.R, c.G, c.B, c.A)
	d.text.setInt("uGlyphs", 0)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, id)
	d.stream(gl.TRIANGLES, d.scratch)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}
