package app

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/fosphor/internal/gpu"
	"github.com/irfansharif/fosphor/internal/gpu/glbackend"
	"github.com/irfansharif/fosphor/internal/render"
	"github.com/irfansharif/fosphor/internal/synth"
)

var clearColor = gpu.Color{R: 0, G: 0, B: 0, A: 1}

// Config carries the application settings.
type Config struct {
	FFTLen int
	Seed   int64

	WaterfallSpan       float64 // share of the ring shown, in (0,1]
	HistoWaterfallRatio float64

	// The band the normalized frequency axis covers, in Hz.
	CenterFreq, SampleRate float64
}

// App encapsulates the main application state and logic.
type App struct {
	Window   *glfw.Window
	Device   *glbackend.Device
	Renderer *render.Renderer
	Producer *synth.Producer
	View     *View
	Options  render.Options
	Paused   bool

	cfg     Config
	request render.Request
	power   render.PowerCal
	freq    render.FreqCal
}

// NewApp creates a new application instance on window's current context.
func NewApp(window *glfw.Window, view *View, cfg Config) (*App, error) {
	device := glbackend.New()
	renderer, err := render.Init(render.Config{Device: device, FFTLen: cfg.FFTLen})
	if err != nil {
		device.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}
	return &App{
		Window:   window,
		Device:   device,
		Renderer: renderer,
		Producer: synth.New(device, renderer, synth.DefaultConfig(cfg.FFTLen, cfg.Seed)),
		View:     view,
		Options:  render.ShowAll,
		cfg:      cfg,
	}, nil
}

// Toggle flips the given display options.
func (app *App) Toggle(opts render.Options) {
	app.Options ^= opts
}

// Frame produces and draws one frame into the framebuffer.
func (app *App) Frame() {
	w, h := app.Window.GetFramebufferSize()
	app.View.SetViewport(w, h)
	app.Device.SetViewport(w, h)
	app.Device.Clear(clearColor)

	app.power = app.View.Power()
	app.freq = app.View.Frequency(app.cfg.CenterFreq, app.cfg.SampleRate)
	if !app.Paused {
		app.Producer.Step(app.power)
	}

	start, stop := app.View.Window()
	app.request = render.Request{
		Options:             app.Options,
		Width:               float64(w),
		Height:              float64(h),
		WaterfallSpan:       app.cfg.WaterfallSpan,
		FreqStart:           start,
		FreqStop:            stop,
		HistoWaterfallRatio: app.cfg.HistoWaterfallRatio,
		WaterfallPos:        app.Producer.Position(),
		Power:               &app.power,
		Frequency:           &app.freq,
	}
	app.request.Refresh()
	app.Renderer.Draw(&app.request)
}

// Request returns the last frame's request.
func (app *App) Request() render.Request { return app.request }

// ResetHistory clears the accumulated histogram and max-hold.
func (app *App) ResetHistory() { app.Producer.Reset() }

// Close releases the renderer and the device. The App is unusable
// afterwards.
func (app *App) Close() {
	app.Renderer.Release()
	app.Renderer = nil
	app.Device.Close()
}
