// Package gputest provides an in-memory gpu.Device that counts object
// lifetimes, keeps texture and buffer contents host-side, and records draw
// calls in order.
package gputest

import (
	"fmt"
	"image/color"
	"math"

	"github.com/irfansharif/fosphor/internal/geom"
	"github.com/irfansharif/fosphor/internal/gpu"
)

// CallKind identifies a recorded device call.
type CallKind int

const (
	CallBindColormap CallKind = iota
	CallUnbindColormap
	CallQuad
	CallLineStrip
	CallLines
	CallText
	CallFinish
)

func (k CallKind) String() string {
	switch k {
	case CallBindColormap:
		return "bind-colormap"
	case CallUnbindColormap:
		return "unbind-colormap"
	case CallQuad:
		return "quad"
	case CallLineStrip:
		return "line-strip"
	case CallLines:
		return "lines"
	case CallText:
		return "text"
	case CallFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// Call is one recorded device call. Only the fields relevant to Kind are
// set.
type Call struct {
	Kind     CallKind
	Colormap gpu.ColormapBinding // bind-colormap
	Textured bool                // quad drawn with a bound colormap
	Quad     [4]gpu.Vertex       // quad
	Buffer   gpu.Handle          // line-strip
	First    int                 // line-strip
	Count    int                 // line-strip
	XF       geom.Affine         // line-strip
	Points   []geom.Point        // lines
	Color    gpu.Color
	Text     string    // text
	TextX    float64   // text
	TextY    float64   // text
	AlignX   gpu.Align // text
	AlignY   gpu.Align // text
}

type texture struct {
	desc   gpu.TextureDesc
	texels []float32
	lut    []color.RGBA
}

// Device is a recording gpu.Device. The zero value is not usable; use New.
type Device struct {
	// NativeWrap is returned by WrapsTextures.
	NativeWrap bool
	// FailMap makes MapBuffer return nil.
	FailMap bool
	// FailLUT, if set, is returned by CreateLUT.
	FailLUT error
	// FailColormap, if set, is returned by CompileColormap.
	FailColormap error

	Created, Deleted int // object lifetime counters
	Calls            []Call
	Uploads          int // UpdateTexture2D calls
	Maps             int // MapBuffer calls

	next      gpu.Handle
	textures  map[gpu.Handle]*texture
	buffers   map[gpu.Handle][]float32
	mapped    gpu.Handle
	colormap  bool
	bound     *gpu.ColormapBinding
	finished  bool
	deleteLog []gpu.Handle
}

var _ gpu.Device = (*Device)(nil)

// New returns an empty device with native wrap-around sampling.
func New() *Device {
	return &Device{
		NativeWrap: true,
		textures:   make(map[gpu.Handle]*texture),
		buffers:    make(map[gpu.Handle][]float32),
	}
}

func (d *Device) alloc() gpu.Handle {
	d.next++
	d.Created++
	return d.next
}

// Live returns the number of objects created and not yet deleted.
func (d *Device) Live() int { return len(d.textures) + len(d.buffers) }

// DeleteOrder returns the handles in the order they were deleted.
func (d *Device) DeleteOrder() []gpu.Handle { return d.deleteLog }

// Desc returns the descriptor of a live 2-D texture.
func (d *Device) Desc(tex gpu.Handle) (gpu.TextureDesc, bool) {
	t, ok := d.textures[tex]
	if !ok || t.texels == nil {
		return gpu.TextureDesc{}, false
	}
	return t.desc, true
}

// LUT returns the colors of a live lookup texture.
func (d *Device) LUT(tex gpu.Handle) []color.RGBA {
	t, ok := d.textures[tex]
	if !ok {
		return nil
	}
	return t.lut
}

// Texels returns the host copy of a 2-D texture.
func (d *Device) Texels(tex gpu.Handle) []float32 {
	t, ok := d.textures[tex]
	if !ok {
		return nil
	}
	return t.texels
}

// Buffer returns the host copy of a buffer.
func (d *Device) Buffer(buf gpu.Handle) []float32 { return d.buffers[buf] }

// Sample reads the texel addressed by (u, v) with nearest filtering,
// honoring the texture's wrap modes.
func (d *Device) Sample(tex gpu.Handle, u, v float64) float32 {
	t, ok := d.textures[tex]
	if !ok || t.texels == nil {
		panic(fmt.Sprintf("gputest: sample of unknown texture %d", tex))
	}
	x := address(u, t.desc.Width, t.desc.WrapU)
	y := address(v, t.desc.Height, t.desc.WrapV)
	return t.texels[y*t.desc.Width+x]
}

func address(c float64, n int, w gpu.Wrap) int {
	if w == gpu.WrapRepeat {
		c = gpu.WrapCoord(c)
	}
	i := int(math.Floor(c * float64(n)))
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	return i
}

// Reset forgets recorded calls.
func (d *Device) Reset() {
	d.Calls = nil
	d.finished = false
}

// Kinds returns the kinds of recorded calls, in order.
func (d *Device) Kinds() []CallKind {
	kinds := make([]CallKind, len(d.Calls))
	for i, c := range d.Calls {
		kinds[i] = c.Kind
	}
	return kinds
}

// Filter returns recorded calls of the given kind.
func (d *Device) Filter(kind CallKind) []Call {
	var out []Call
	for _, c := range d.Calls {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func (d *Device) CreateTexture2D(desc gpu.TextureDesc) gpu.Handle {
	h := d.alloc()
	// Undefined contents; fill with NaN so missing clears show up.
	texels := make([]float32, desc.Width*desc.Height)
	for i := range texels {
		texels[i] = float32(math.NaN())
	}
	d.textures[h] = &texture{desc: desc, texels: texels}
	return h
}

func (d *Device) UpdateTexture2D(tex gpu.Handle, x, y, w, h int, texels []float32) {
	t, ok := d.textures[tex]
	if !ok || t.texels == nil {
		panic(fmt.Sprintf("gputest: upload to unknown texture %d", tex))
	}
	if x < 0 || y < 0 || x+w > t.desc.Width || y+h > t.desc.Height {
		panic(fmt.Sprintf("gputest: upload %dx%d@(%d,%d) outside %dx%d", w, h, x, y, t.desc.Width, t.desc.Height))
	}
	if len(texels) < w*h {
		panic(fmt.Sprintf("gputest: upload of %d texels, need %d", len(texels), w*h))
	}
	for row := 0; row < h; row++ {
		copy(t.texels[(y+row)*t.desc.Width+x:], texels[row*w:row*w+w])
	}
	d.Uploads++
}

func (d *Device) CreateLUT(colors []color.RGBA) (gpu.Handle, error) {
	if d.FailLUT != nil {
		return gpu.NoHandle, d.FailLUT
	}
	h := d.alloc()
	d.textures[h] = &texture{lut: append([]color.RGBA(nil), colors...)}
	return h, nil
}

func (d *Device) DeleteTexture(tex gpu.Handle) {
	if tex == gpu.NoHandle {
		return
	}
	if _, ok := d.textures[tex]; !ok {
		panic(fmt.Sprintf("gputest: double delete of texture %d", tex))
	}
	delete(d.textures, tex)
	d.Deleted++
	d.deleteLog = append(d.deleteLog, tex)
}

func (d *Device) CreateBuffer(size int) gpu.Handle {
	h := d.alloc()
	data := make([]float32, size/4)
	for i := range data {
		data[i] = float32(math.NaN())
	}
	d.buffers[h] = data
	return h
}

func (d *Device) MapBuffer(buf gpu.Handle) []float32 {
	d.Maps++
	if d.FailMap {
		return nil
	}
	data, ok := d.buffers[buf]
	if !ok {
		return nil
	}
	d.mapped = buf
	return data
}

func (d *Device) UnmapBuffer(buf gpu.Handle) {
	if d.mapped != buf {
		panic(fmt.Sprintf("gputest: unmap of buffer %d, mapped %d", buf, d.mapped))
	}
	d.mapped = gpu.NoHandle
}

func (d *Device) DeleteBuffer(buf gpu.Handle) {
	if buf == gpu.NoHandle {
		return
	}
	if _, ok := d.buffers[buf]; !ok {
		panic(fmt.Sprintf("gputest: double delete of buffer %d", buf))
	}
	delete(d.buffers, buf)
	d.Deleted++
	d.deleteLog = append(d.deleteLog, buf)
}

func (d *Device) CompileColormap() error {
	if d.FailColormap != nil {
		return d.FailColormap
	}
	d.colormap = true
	return nil
}

// ColormapReady reports whether the colormap stage is compiled.
func (d *Device) ColormapReady() bool { return d.colormap }

func (d *Device) ReleaseColormap() { d.colormap = false }

func (d *Device) BindColormap(b gpu.ColormapBinding) {
	if !d.colormap {
		panic("gputest: colormap bound before it was compiled")
	}
	d.bound = &b
	d.record(Call{Kind: CallBindColormap, Colormap: b})
}

func (d *Device) UnbindColormap() {
	d.bound = nil
	d.record(Call{Kind: CallUnbindColormap})
}

func (d *Device) DrawQuad(q [4]gpu.Vertex, c gpu.Color) {
	d.record(Call{Kind: CallQuad, Quad: q, Color: c, Textured: d.bound != nil})
}

func (d *Device) DrawLineStrip(buf gpu.Handle, first, count int, xf geom.Affine, c gpu.Color) {
	data, ok := d.buffers[buf]
	if !ok {
		panic(fmt.Sprintf("gputest: line strip from unknown buffer %d", buf))
	}
	if first < 0 || count < 0 || 2*(first+count) > len(data) {
		panic(fmt.Sprintf("gputest: line strip [%d,+%d) outside %d points", first, count, len(data)/2))
	}
	d.record(Call{Kind: CallLineStrip, Buffer: buf, First: first, Count: count, XF: xf, Color: c})
}

func (d *Device) DrawLines(pts []geom.Point, c gpu.Color) {
	d.record(Call{Kind: CallLines, Points: append([]geom.Point(nil), pts...), Color: c})
}

func (d *Device) DrawText(_ gpu.Glyphs, x float64, ax gpu.Align, y float64, ay gpu.Align, c gpu.Color, s string) {
	d.record(Call{Kind: CallText, Text: s, TextX: x, TextY: y, AlignX: ax, AlignY: ay, Color: c})
}

func (d *Device) WrapsTextures() bool { return d.NativeWrap }

func (d *Device) Finish() { d.record(Call{Kind: CallFinish}) }

func (d *Device) record(c Call) {
	d.Calls = append(d.Calls, c)
	d.finished = c.Kind == CallFinish
}

// Finished reports whether the last recorded call was Finish.
func (d *Device) Finished() bool { return d.finished }
