package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/fosphor/internal/app"
	"github.com/irfansharif/fosphor/internal/render"
)

const logFlags = log.Ltime | log.Lshortfile

var runtimeLogger *log.Logger = log.New(io.Discard, "", 0)

var (
	fftLen     = flag.Int("fft", 1024, "FFT length (power of two, at least 4)")
	width      = flag.Int("width", 1280, "initial window width")
	height     = flag.Int("height", 960, "initial window height")
	span       = flag.Float64("span", 0.5, "share of the waterfall history shown, in (0,1]")
	ratio      = flag.Float64("ratio", 0.5, "share of the height given to the spectrum when the waterfall is shown")
	centerFreq = flag.Float64("center", 100e6, "center frequency in Hz")
	sampleRate = flag.Float64("rate", 2e6, "sample rate in Hz")
)

func init() {
	// OpenGL contexts are tied to specific OS threads - let's pin to just one.
	runtime.LockOSThread()
	log.SetFlags(logFlags)

	if os.Getenv("FOSPHOR_DEBUG_RUNTIME") == "1" {
		runtimeLogger = log.New(os.Stdout, "[runtime] ", log.Ltime|log.Lmsgprefix)
	}
}

func makeTitle(fps float64, avgFrameTime float64, stats render.Stats) string {
	return fmt.Sprintf("fosphor (%.1f FPS, %.2fms/frame, %d draw calls/frame, %.2fµs/draw, %s GPU)",
		fps,
		avgFrameTime,
		stats.DrawCallsPerFrame,
		stats.LastDrawTimeUs,
		humanize.IBytes(uint64(stats.ResidentBytes)),
	)
}

func main() {
	flag.Parse()

	if !render.ValidFFTLen(*fftLen) {
		log.Fatalf("Invalid -fft value %d: must be a power of two, at least 4", *fftLen)
	}
	if *span <= 0 || *span > 1 {
		log.Fatalf("Invalid -span value %g: must be in (0,1]", *span)
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfw.Terminate()

	// Configure GLFW window hints - use OpenGL 4.1.
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	window, err := glfw.CreateWindow(*width, *height, "fosphor", nil, nil)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		log.Fatalf("Failed to initialize OpenGL: %v", err)
	}

	cw, ch := window.GetFramebufferSize()
	application, err := app.NewApp(window, app.NewView(cw, ch), app.Config{
		FFTLen:              *fftLen,
		Seed:                seed(),
		WaterfallSpan:       *span,
		HistoWaterfallRatio: *ratio,
		CenterFreq:          *centerFreq,
		SampleRate:          *sampleRate,
	})
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer application.Close()

	// Initialize event handlers.
	NewEventHandlers(application)

	frameCount, frameTimeSum := 0, 0.0
	lastFPSUpdate := time.Now()

	// Main loop.
	for !application.Window.ShouldClose() {
		frameStart := time.Now()

		application.Frame()
		application.Window.SwapBuffers()
		glfw.PollEvents()

		frameTime := time.Since(frameStart).Seconds() * 1000.0 // ms
		frameTimeSum += frameTime

		frameCount++
		now := time.Now()
		if now.Sub(lastFPSUpdate) >= time.Second {
			fps := float64(frameCount) / now.Sub(lastFPSUpdate).Seconds()
			avgFrameTime := frameTimeSum / float64(frameCount)
			frameCount, frameTimeSum = 0, 0.0
			lastFPSUpdate = now

			stats := application.Renderer.Stats()
			application.Window.SetTitle(makeTitle(fps, avgFrameTime, stats))

			view := application.View
			start, stop := view.Window()
			runtimeLogger.Println("=== Performance statistics ===")
			runtimeLogger.Printf("Frame rate:     %.1f FPS (%.2f ms/frame, %d draw calls/frame)", fps, avgFrameTime, stats.DrawCallsPerFrame)
			runtimeLogger.Printf("Render time:    %.2f µs (last draw)", stats.LastDrawTimeUs)
			runtimeLogger.Printf("GPU memory:     %s (%s)", humanize.IBytes(uint64(stats.ResidentBytes)), stats.Phase)
			runtimeLogger.Printf("View:           [%.4f, %.4f], %d dB ref, %d dB/div", start, stop, view.DBRef, view.DBPerDiv)
			runtimeLogger.Printf("Producer:       %s frames, ring row %d", humanize.Comma(int64(application.Producer.Steps())), application.Producer.Position())
			runtimeLogger.Println("==============================")

			application.Renderer.PrintStats()
		}
	}
}

func seed() int64 {
	seedStr := os.Getenv("FOSPHOR_SEED")
	now := time.Now().Unix()
	if seedStr == "" {
		return now
	}
	seed, err := strconv.ParseInt(seedStr, 10, 64)
	if err != nil {
		log.Fatalf("Invalid FOSPHOR_SEED value '%s': %v", seedStr, err)
	}
	return seed
}
