package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewDefaults(t *testing.T) {
	v := NewView(800, 600)
	start, stop := v.Window()
	assert.Equal(t, 0.0, start)
	assert.Equal(t, 1.0, stop)
	assert.Equal(t, 800, v.ViewportWidth)

	power := v.Power()
	assert.Equal(t, 0, power.DBRef)
	assert.Equal(t, 10, power.DBPerDiv)
}

func TestViewZoomAt(t *testing.T) {
	v := NewView(800, 600)

	// Zooming about the middle stays centered.
	v.ZoomAt(0.5, 2)
	start, stop := v.Window()
	assert.InDelta(t, 0.25, start, 1e-12)
	assert.InDelta(t, 0.75, stop, 1e-12)

	// The frequency under the cursor stays put.
	v.ZoomAt(0.25, 2)
	start, stop = v.Window()
	assert.InDelta(t, 0.25, stop-start, 1e-12)
	assert.InDelta(t, 0.375, start+0.25*(stop-start), 1e-12)

	// Zooming out past the band clamps.
	v.ZoomAt(0.9, 0.01)
	start, stop = v.Window()
	assert.Equal(t, 0.0, start)
	assert.Equal(t, 1.0, stop)

	v.ZoomAt(0.5, 0)
	assert.Equal(t, 1.0, v.Width)
}

func TestViewZoomLimits(t *testing.T) {
	v := NewView(800, 600)
	for i := 0; i < 20; i++ {
		v.ZoomAt(1, 2)
	}
	assert.Equal(t, minWidth, v.Width)
	start, stop := v.Window()
	assert.InDelta(t, 1.0, stop, 1e-12)
	assert.InDelta(t, 1-minWidth, start, 1e-12)
}

func TestViewPan(t *testing.T) {
	v := NewView(800, 600)
	v.SetWidth(0.5)
	v.Pan(0.5)
	assert.InDelta(t, 0.75, v.Center, 1e-12)
	v.Pan(0.5)
	assert.InDelta(t, 0.75, v.Center, 1e-12)
	v.Pan(-10)
	assert.InDelta(t, 0.25, v.Center, 1e-12)

	v.Reset()
	assert.Equal(t, 0.5, v.Center)
	assert.Equal(t, 1.0, v.Width)
}

func TestViewPowerAdjust(t *testing.T) {
	v := NewView(800, 600)
	v.ShiftRef(-2)
	assert.Equal(t, -20, v.DBRef)

	v.StepScale(-1)
	assert.Equal(t, 5, v.DBPerDiv)
	v.StepScale(-5)
	assert.Equal(t, 1, v.DBPerDiv)
	v.StepScale(10)
	assert.Equal(t, 20, v.DBPerDiv)

	for i := 0; i < 100; i++ {
		v.ShiftRef(1)
	}
	assert.Equal(t, maxDBRef, v.DBRef)

	// Off-step scales snap to the next one up.
	v.DBPerDiv = 3
	v.StepScale(0)
	assert.Equal(t, 5, v.DBPerDiv)
}

func TestViewFrequency(t *testing.T) {
	v := NewView(800, 600)
	fc := v.Frequency(100e6, 2e6)
	assert.Equal(t, 100e6, fc.Center)
	assert.Equal(t, 2e6, fc.Span)

	v.SetWidth(0.25)
	v.Pan(1)
	fc = v.Frequency(100e6, 2e6)
	assert.InDelta(t, 100.5e6, fc.Center, 1e-3)
	assert.InDelta(t, 0.5e6, fc.Span, 1e-3)
}
