package render

import (
	"errors"

	"github.com/irfansharif/fosphor/internal/gpu"
)

// Failure kinds reported by Init. All of them are final: the owner is
// expected to give up constructing itself.
var (
	// ErrOutOfMemory reports a device allocation failure. It is the same
	// value as gpu.ErrOutOfMemory so either can be matched with errors.Is.
	ErrOutOfMemory = gpu.ErrOutOfMemory
	// ErrResourceMissing reports that the embedded font could not be found.
	ErrResourceMissing = errors.New("render: resource missing")
	// ErrFontLoad reports that the font data could not be parsed.
	ErrFontLoad = errors.New("render: font load failed")
	// ErrColormap reports a failure setting up the colormap stage or one of
	// its lookup tables.
	ErrColormap = errors.New("render: colormap setup failed")
)
