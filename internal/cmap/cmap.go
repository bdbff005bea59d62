// Package cmap is the colormap transfer stage: it generates lookup tables
// and binds a data texture plus a lookup table around one draw call.
package cmap

import (
	"fmt"

	"github.com/irfansharif/fosphor/internal/gpu"
)

// Context owns the device-side colormap stage.
type Context struct {
	dev     gpu.Device
	enabled bool
}

// Init compiles the colormap stage on dev.
func Init(dev gpu.Device) (*Context, error) {
	if err := dev.CompileColormap(); err != nil {
		return nil, fmt.Errorf("cmap: compile: %w", err)
	}
	return &Context{dev: dev}, nil
}

// Generate builds an n-entry table with gen and uploads it. The returned
// texture belongs to the caller.
func (c *Context) Generate(gen Generator, n int) (gpu.Handle, error) {
	lut, err := gen(n)
	if err != nil {
		return gpu.NoHandle, err
	}
	tex, err := c.dev.CreateLUT(lut)
	if err != nil {
		return gpu.NoHandle, fmt.Errorf("cmap: upload: %w", err)
	}
	return tex, nil
}

// Enable routes the next draws through the colormap: each sample of data is
// scaled, offset, clamped to [0,1] and looked up in lut using mode.
func (c *Context) Enable(data, lut gpu.Handle, scale, offset float32, mode gpu.InterpMode) {
	c.dev.BindColormap(gpu.ColormapBinding{
		Data:   data,
		LUT:    lut,
		Scale:  scale,
		Offset: offset,
		Mode:   mode,
	})
	c.enabled = true
}

// Disable restores plain shading.
func (c *Context) Disable() {
	if !c.enabled {
		return
	}
	c.dev.UnbindColormap()
	c.enabled = false
}

// Release tears down the stage. It is safe on a nil Context.
func (c *Context) Release() {
	if c == nil || c.dev == nil {
		return
	}
	c.Disable()
	c.dev.ReleaseColormap()
	c.dev = nil
}
