// Package glbackend implements gpu.Device on an OpenGL 4.1 core context.
//
// Every method must be called on the thread the context is current on. The
// device draws in pixel coordinates with the origin at the bottom left of
// the viewport set by SetViewport.
package glbackend

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/irfansharif/fosphor/internal/geom"
	"github.com/irfansharif/fosphor/internal/gpu"
)

var glLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("FOSPHOR_DEBUG_GL") == "1" {
		glLogger = log.New(os.Stdout, "[gl] ", log.Ltime|log.Lmsgprefix)
	}
}

const (
	// Streamed vertices: position and texture coordinate, float32 each.
	streamStride = 4 * 4
	// Trace vertices in shared buffers: position only.
	traceStride = 2 * 4
)

type texture struct {
	id     uint32
	target uint32
}

type buffer struct {
	vao, vbo uint32
	size     int
}

// Device is an OpenGL 4.1 core gpu.Device.
type Device struct {
	next     gpu.Handle
	textures map[gpu.Handle]texture
	buffers  map[gpu.Handle]*buffer

	flat     *program
	text     *program
	colormap *program
	bound    *gpu.ColormapBinding

	// Streaming vertex buffer for quads, grid lines and labels.
	streamVAO, streamVBO uint32
	streamCap            int
	scratch              []float32

	glyphs *glyphCache

	ortho geom.Affine
}

var _ gpu.Device = (*Device)(nil)

// New creates the device on the current context. gl.Init must have been
// called.
func New() *Device {
	d := &Device{
		textures: make(map[gpu.Handle]texture),
		buffers:  make(map[gpu.Handle]*buffer),
		flat:     mustProgram(flatFragmentShaderSource, "uTransform", "uColor"),
		text:     mustProgram(textFragmentShaderSource, "uTransform", "uColor", "uGlyphs"),
		glyphs:   newGlyphCache(),
		ortho:    geom.Identity(),
	}

	gl.GenVertexArrays(1, &d.streamVAO)
	gl.GenBuffers(1, &d.streamVBO)
	gl.BindVertexArray(d.streamVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.streamVBO)
	d.growStream(1024)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, streamStride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, streamStride, gl.PtrOffset(8))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	glLogger.Printf("device ready: %s, %s", gl.GoStr(gl.GetString(gl.RENDERER)), gl.GoStr(gl.GetString(gl.VERSION)))
	return d
}

// SetViewport sets the drawable size in pixels.
func (d *Device) SetViewport(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
	d.ortho = geom.Ortho(float64(w), float64(h))
}

// Clear fills the viewport with c.
func (d *Device) Clear(c gpu.Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Close deletes the device's own objects. Objects created through the
// gpu.Device interface should have been deleted by their owners; any left
// are reported and deleted too.
func (d *Device) Close() {
	if n := len(d.textures) + len(d.buffers); n > 0 {
		log.Printf("WARNING: glbackend: %d objects still live at close", n)
	}
	for h := range d.textures {
		d.DeleteTexture(h)
	}
	for h := range d.buffers {
		d.DeleteBuffer(h)
	}
	d.glyphs.purge()
	d.ReleaseColormap()
	d.flat.delete()
	d.text.delete()
	gl.DeleteVertexArrays(1, &d.streamVAO)
	gl.DeleteBuffers(1, &d.streamVBO)
}

func (d *Device) alloc() gpu.Handle {
	d.next++
	return d.next
}

func filterParam(f gpu.Filter) int32 {
	if f == gpu.FilterNearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func wrapParam(w gpu.Wrap) int32 {
	if w == gpu.WrapRepeat {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

// outOfMemory drains the error queue and reports whether it held
// GL_OUT_OF_MEMORY.
func outOfMemory() bool {
	oom := false
	for e := gl.GetError(); e != gl.NO_ERROR; e = gl.GetError() {
		if e == gl.OUT_OF_MEMORY {
			oom = true
		} else {
			glLogger.Printf("GL error 0x%x", e)
		}
	}
	return oom
}

func (d *Device) CreateTexture2D(desc gpu.TextureDesc) gpu.Handle {
	outOfMemory()
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filterParam(desc.Filter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filterParam(desc.Filter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapParam(desc.WrapU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapParam(desc.WrapV))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R32F, int32(desc.Width), int32(desc.Height), 0, gl.RED, gl.FLOAT, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if outOfMemory() {
		log.Fatalf("Texture allocation failed: %dx%d (%v)", desc.Width, desc.Height, gpu.ErrOutOfMemory)
	}

	h := d.alloc()
	d.textures[h] = texture{id: id, target: gl.TEXTURE_2D}
	glLogger.Printf("texture %d: %dx%d r32f, wrap %v/%v", h, desc.Width, desc.Height, desc.WrapU, desc.WrapV)
	return h
}

func (d *Device) UpdateTexture2D(tex gpu.Handle, x, y, w, h int, texels []float32) {
	t, ok := d.textures[tex]
	if !ok || len(texels) < w*h || w <= 0 || h <= 0 {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, int32(x), int32(y), int32(w), int32(h), gl.RED, gl.FLOAT, gl.Ptr(texels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (d *Device) CreateLUT(colors []color.RGBA) (gpu.Handle, error) {
	if len(colors) == 0 {
		return gpu.NoHandle, fmt.Errorf("glbackend: empty lookup table")
	}
	pix := make([]uint8, 0, 4*len(colors))
	for _, c := range colors {
		pix = append(pix, c.R, c.G, c.B, c.A)
	}

	outOfMemory()
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_1D, id)
	gl.TexParameteri(gl.TEXTURE_1D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_1D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_1D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage1D(gl.TEXTURE_1D, 0, gl.RGBA8, int32(len(colors)), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.BindTexture(gl.TEXTURE_1D, 0)
	if outOfMemory() {
		gl.DeleteTextures(1, &id)
		return gpu.NoHandle, fmt.Errorf("glbackend: lookup table of %d entries: %w", len(colors), gpu.ErrOutOfMemory)
	}

	h := d.alloc()
	d.textures[h] = texture{id: id, target: gl.TEXTURE_1D}
	glLogger.Printf("lut %d: %d entries", h, len(colors))
	return h, nil
}

func (d *Device) DeleteTexture(tex gpu.Handle) {
	t, ok := d.textures[tex]
	if !ok {
		return
	}
	gl.DeleteTextures(1, &t.id)
	delete(d.textures, tex)
	glLogger.Printf("texture %d deleted", tex)
}

func (d *Device) CreateBuffer(size int) gpu.Handle {
	b := &buffer{size: size}
	outOfMemory()
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, traceStride, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	if outOfMemory() {
		log.Fatalf("Buffer allocation failed: %d bytes (%v)", size, gpu.ErrOutOfMemory)
	}

	h := d.alloc()
	d.buffers[h] = b
	glLogger.Printf("buffer %d: %d bytes", h, size)
	return h
}

func (d *Device) MapBuffer(buf gpu.Handle) []float32 {
	b, ok := d.buffers[buf]
	if !ok {
		return nil
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	ptr := gl.MapBuffer(gl.ARRAY_BUFFER, gl.WRITE_ONLY)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	if ptr == nil {
		return nil
	}
	return unsafe.Slice((*float32)(ptr), b.size/4)
}

func (d *Device) UnmapBuffer(buf gpu.Handle) {
	b, ok := d.buffers[buf]
	if !ok {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if !gl.UnmapBuffer(gl.ARRAY_BUFFER) {
		log.Printf("WARNING: glbackend: buffer %d contents lost while mapped", buf)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (d *Device) DeleteBuffer(buf gpu.Handle) {
	b, ok := d.buffers[buf]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
	delete(d.buffers, buf)
	glLogger.Printf("buffer %d deleted", buf)
}

// CompileColormap builds the colormap program. Unlike the device's own
// programs a failure here is reported to the caller.
func (d *Device) CompileColormap() error {
	if d.colormap != nil {
		return nil
	}
	p, err := newProgram(colormapFragmentShaderSource,
		"uTransform", "uData", "uLUT", "uScale", "uOffset", "uMode")
	if err != nil {
		return fmt.Errorf("glbackend: colormap: %w", err)
	}
	d.colormap = p
	return nil
}

func (d *Device) ReleaseColormap() {
	d.colormap.delete()
	d.colormap = nil
	d.bound = nil
}

func (d *Device) BindColormap(b gpu.ColormapBinding) {
	if d.colormap == nil {
		log.Fatalf("Colormap bound before it was compiled")
	}
	d.bound = &b
}

func (d *Device) UnbindColormap() {
	d.bound = nil
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_1D, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// WrapsTextures is true: GL_REPEAT addressing is native.
func (d *Device) WrapsTextures() bool { return true }

func (d *Device) Finish() { gl.Finish() }
