// Package render draws the spectrum display: waterfall, histogram, live and
// max-hold traces, and the labeled grid on top.
//
// A Renderer owns a small set of long-lived device objects. They are not
// created by Init, because the context the compute stage shares them with
// may not be ready yet; the first SharedHandle call creates all of them at
// once. From then on the compute stage writes them between frames and Draw
// reads them, with Draw's closing Finish as the only synchronization point.
package render

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/irfansharif/fosphor/internal/cmap"
	"github.com/irfansharif/fosphor/internal/font"
	"github.com/irfansharif/fosphor/internal/gpu"
	"github.com/irfansharif/fosphor/internal/resource"
)

var renderLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("FOSPHOR_DEBUG_RENDER") == "1" {
		renderLogger = log.New(os.Stdout, "[render] ", log.Ltime|log.Lmsgprefix)
	}
}

// Phase is the lifecycle state of a Renderer.
type Phase int

const (
	// PhaseConstructed: host-side state, font and colormaps exist; the
	// shared device objects do not.
	PhaseConstructed Phase = iota
	// PhaseGPUReady: all shared device objects exist.
	PhaseGPUReady
	// PhaseReleased: everything has been torn down.
	PhaseReleased
)

func (p Phase) String() string {
	switch p {
	case PhaseConstructed:
		return "constructed"
	case PhaseGPUReady:
		return "gpu-ready"
	case PhaseReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Config carries construction-time settings.
type Config struct {
	Device gpu.Device
	// FFTLen is the number of bins per spectral frame. It must be a power of
	// two, at least 4, and cannot change for the Renderer's lifetime.
	FFTLen int
	// Resources locates embedded files. Defaults to resource.Get.
	Resources resource.Loader
	// FontName defaults to resource.MonoFont.
	FontName string
	// FontSize defaults to font.DefaultSize.
	FontSize float64
}

// Renderer is the per-display renderer state.
type Renderer struct {
	dev    gpu.Device
	fftLen int
	phase  Phase

	font *font.Font

	cmap          *cmap.Context
	cmapWaterfall gpu.Handle
	cmapHisto     gpu.Handle

	objects objectSet

	stats Stats
}

// ValidFFTLen reports whether n can be used as an FFT length.
func ValidFFTLen(n int) bool {
	return n >= 4 && n&(n-1) == 0
}

// Init builds the host-side renderer state: the label font and both
// colormaps. On failure everything built so far is released and the error
// matches one of ErrResourceMissing, ErrFontLoad, ErrColormap or
// ErrOutOfMemory.
func Init(cfg Config) (*Renderer, error) {
	if cfg.Device == nil {
		return nil, errors.New("render: nil device")
	}
	if !ValidFFTLen(cfg.FFTLen) {
		return nil, fmt.Errorf("render: invalid FFT length %d", cfg.FFTLen)
	}
	if cfg.Resources == nil {
		cfg.Resources = resource.Get
	}
	if cfg.FontName == "" {
		cfg.FontName = resource.MonoFont
	}
	if cfg.FontSize == 0 {
		cfg.FontSize = font.DefaultSize
	}

	r := &Renderer{
		dev:    cfg.Device,
		fftLen: cfg.FFTLen,
		phase:  PhaseConstructed,
	}
	if err := r.init(cfg); err != nil {
		r.Release()
		return nil, err
	}
	renderLogger.Printf("initialized (fft=%d, font=%s at %gpx, embedded %v)",
		r.fftLen, cfg.FontName, r.font.Size(), resource.Names())
	return r, nil
}

func (r *Renderer) init(cfg Config) error {
	data, ok := cfg.Resources(cfg.FontName)
	if !ok {
		return fmt.Errorf("%w: %s", ErrResourceMissing, cfg.FontName)
	}
	f, err := font.Load(data, cfg.FontSize)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFontLoad, err)
	}
	r.font = f

	r.cmap, err = cmap.Init(r.dev)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrColormap, err)
	}
	r.cmapWaterfall, err = r.cmap.Generate(cmap.Waterfall, LUTSize)
	if err != nil {
		return fmt.Errorf("%w: waterfall: %w", ErrColormap, err)
	}
	r.cmapHisto, err = r.cmap.Generate(cmap.Histogram, LUTSize)
	if err != nil {
		return fmt.Errorf("%w: histogram: %w", ErrColormap, err)
	}
	return nil
}

// FFTLen returns the number of bins per frame.
func (r *Renderer) FFTLen() int { return r.fftLen }

// Phase returns the lifecycle state.
func (r *Renderer) Phase() Phase {
	if r == nil {
		return PhaseReleased
	}
	return r.phase
}

// deferredInit creates the shared device objects the first time it runs.
func (r *Renderer) deferredInit() {
	if r.phase != PhaseConstructed {
		return
	}
	r.objects = createObjects(r.dev, r.fftLen)
	r.phase = PhaseGPUReady
	renderLogger.Printf("shared objects ready: waterfall=%d histogram=%d spectrum=%d",
		r.objects.waterfall, r.objects.histogram, r.objects.spectrum)
}

// SharedHandle returns the device handle of a shared object, creating all
// shared objects on first use. The compute stage writes through these
// handles between frames. Unknown ids, and any id once the Renderer has
// been released, yield gpu.NoHandle.
func (r *Renderer) SharedHandle(id ResourceID) gpu.Handle {
	if r == nil {
		return gpu.NoHandle
	}
	r.deferredInit()
	return r.objects.handle(id)
}

// Release tears everything down in reverse order of creation: the shared
// objects, both lookup tables, the colormap stage and the font. It is safe
// on a nil, partially initialized or already released Renderer; owners
// should drop their reference afterwards.
func (r *Renderer) Release() {
	if r == nil || r.phase == PhaseReleased {
		return
	}

	if r.phase == PhaseGPUReady {
		r.objects.destroy(r.dev)
	}

	r.dev.DeleteTexture(r.cmapHisto)
	r.dev.DeleteTexture(r.cmapWaterfall)
	r.cmapHisto, r.cmapWaterfall = gpu.NoHandle, gpu.NoHandle
	r.cmap.Release()
	r.cmap = nil

	if err := r.font.Close(); err != nil {
		log.Printf("WARNING: closing font: %v", err)
	}
	r.font = nil

	r.phase = PhaseReleased
	renderLogger.Printf("released")
}
