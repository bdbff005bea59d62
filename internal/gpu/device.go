// Package gpu describes the device surface the spectrum renderer draws
// through. It is deliberately small: 2-D float textures and 1-D color
// lookup tables, one kind of float vertex buffer, a colormap sampling stage,
// and a handful of draw primitives. The OpenGL implementation lives in
// glbackend; gputest provides a recording device for tests.
package gpu

import (
	"errors"
	"image"
	"image/color"

	"github.com/irfansharif/fosphor/internal/geom"
)

// ErrOutOfMemory is returned (wrapped) when the device cannot allocate an
// object.
var ErrOutOfMemory = errors.New("gpu: out of memory")

// Handle is an opaque device object name. The zero value is never a live
// object.
type Handle uint32

// NoHandle is the null handle.
const NoHandle Handle = 0

// Filter selects texture minification/magnification filtering.
type Filter uint8

const (
	FilterNearest Filter = iota
	FilterLinear
)

// Wrap selects texture addressing outside [0,1].
type Wrap uint8

const (
	WrapClamp Wrap = iota
	WrapRepeat
)

func (w Wrap) String() string {
	switch w {
	case WrapClamp:
		return "clamp"
	case WrapRepeat:
		return "repeat"
	default:
		return "unknown"
	}
}

// TextureDesc describes a single-channel float32 2-D texture.
type TextureDesc struct {
	Width, Height int
	Filter        Filter
	WrapU, WrapV  Wrap
}

// Bytes returns the device memory the texture occupies.
func (d TextureDesc) Bytes() int64 { return int64(d.Width) * int64(d.Height) * 4 }

// InterpMode selects how the colormap stage interpolates between texels.
type InterpMode uint8

const (
	// InterpNearest colormaps the nearest texel.
	InterpNearest InterpMode = iota
	// InterpBilinear colormaps the four surrounding texels and blends the
	// resulting colors.
	InterpBilinear
)

func (m InterpMode) String() string {
	switch m {
	case InterpNearest:
		return "nearest"
	case InterpBilinear:
		return "bilinear"
	default:
		return "unknown"
	}
}

// ColormapBinding is the state of the colormap stage for one draw: sample
// Data, compute clamp(value*Scale + Offset, 0, 1), and look the result up
// in LUT.
type ColormapBinding struct {
	Data, LUT     Handle
	Scale, Offset float32
	Mode          InterpMode
}

// Color is a straight-alpha RGBA color with components in [0,1].
type Color struct {
	R, G, B, A float32
}

// Opaque reports whether drawing with c needs no blending.
func (c Color) Opaque() bool { return c.A >= 1 }

// Vertex is a screen-space position with a texture coordinate.
type Vertex struct {
	Pos geom.Point
	UV  geom.Point
}

// Align anchors text relative to a coordinate.
type Align uint8

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// Glyphs rasterizes label strings. It is satisfied by *font.Font.
type Glyphs interface {
	Rasterize(s string) *image.Alpha
}

// Device is the set of device operations the renderer and the compute stage
// use. All methods must be called from the goroutine owning the graphics
// context.
type Device interface {
	// CreateTexture2D allocates a float texture with undefined contents.
	CreateTexture2D(desc TextureDesc) Handle
	// UpdateTexture2D uploads w*h texels at (x, y).
	UpdateTexture2D(tex Handle, x, y, w, h int, texels []float32)
	// CreateLUT allocates a 1-D RGBA lookup texture holding colors.
	CreateLUT(colors []color.RGBA) (Handle, error)
	DeleteTexture(tex Handle)

	// CreateBuffer allocates a vertex buffer of size bytes with undefined
	// contents.
	CreateBuffer(size int) Handle
	// MapBuffer maps the whole buffer for writing, blocking until pending
	// device work using it completes. It returns nil if the mapping fails.
	MapBuffer(buf Handle) []float32
	UnmapBuffer(buf Handle)
	DeleteBuffer(buf Handle)

	// CompileColormap prepares the colormap stage.
	CompileColormap() error
	ReleaseColormap()
	// BindColormap makes subsequent DrawQuad calls sample through the
	// colormap stage until UnbindColormap.
	BindColormap(b ColormapBinding)
	UnbindColormap()

	// DrawQuad fills the quad. Without a bound colormap it uses c.
	DrawQuad(q [4]Vertex, c Color)
	// DrawLineStrip draws count points of buf, starting at point first,
	// as a smoothed, blended polyline transformed by xf.
	DrawLineStrip(buf Handle, first, count int, xf geom.Affine, c Color)
	// DrawLines draws independent segments from consecutive point pairs.
	DrawLines(pts []geom.Point, c Color)
	// DrawText draws s at (x, y) anchored by ax and ay.
	DrawText(g Glyphs, x float64, ax Align, y float64, ay Align, c Color, s string)

	// WrapsTextures reports whether the device samples WrapRepeat textures
	// with native wrap-around addressing.
	WrapsTextures() bool
	// Finish blocks until all issued work has completed.
	Finish()
}
