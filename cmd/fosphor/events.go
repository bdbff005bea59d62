package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/fosphor/internal/app"
	"github.com/irfansharif/fosphor/internal/geom"
	"github.com/irfansharif/fosphor/internal/render"
)

const zoomStep = 1.15 // window scale per scroll notch

// layerKeys maps keys to the display options they toggle.
var layerKeys = map[glfw.Key]render.Options{
	glfw.KeyW: render.ShowWaterfall,
	glfw.KeyH: render.ShowHistogram,
	glfw.KeyL: render.ShowLive,
	glfw.KeyM: render.ShowMaxHold,
	glfw.KeyP: render.LabelPower,
	glfw.KeyF: render.LabelFreq,
}

// EventHandlers manages all event handling for the application.
type EventHandlers struct {
	application *app.App

	// Drag/pan state (per-gesture), captured on mouse press.
	isDragging      bool
	dragStartMouseX float64
	dragStartCenter float64
}

// NewEventHandlers creates a new event handlers manager.
func NewEventHandlers(application *app.App) *EventHandlers {
	eh := &EventHandlers{application: application}
	eh.SetupCallbacks(application.Window)
	return eh
}

// SetupCallbacks configures all GLFW event callbacks.
func (eh *EventHandlers) SetupCallbacks(window *glfw.Window) {
	window.SetKeyCallback(func(wnd *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		eh.handleKey(key, action, mods)
	})
	window.SetMouseButtonCallback(func(wnd *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		eh.handleMouseButton(button, action) // for panning
	})
	window.SetCursorPosCallback(func(wnd *glfw.Window, xpos, ypos float64) {
		eh.updatePanning(xpos)
	})
	window.SetScrollCallback(func(wnd *glfw.Window, _, zoomDelta float64) {
		eh.performZoom(zoomDelta)
	})
	window.SetFramebufferSizeCallback(func(wnd *glfw.Window, newW, newH int) {
		eh.application.View.SetViewport(newW, newH)
	})
}

// handleKey handles keyboard input events.
func (eh *EventHandlers) handleKey(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Release {
		return
	}
	view := eh.application.View

	if opts, ok := layerKeys[key]; ok {
		if action == glfw.Press {
			eh.application.Toggle(opts)
		}
		return
	}

	switch key {
	case glfw.KeyUp:
		view.ShiftRef(1)
	case glfw.KeyDown:
		view.ShiftRef(-1)
	case glfw.KeyLeft:
		view.StepScale(-1)
	case glfw.KeyRight:
		view.StepScale(1)
	case glfw.KeyEqual:
		if (mods & glfw.ModShift) != 0 { // '+'
			view.ZoomAt(0.5, zoomStep)
		}
	case glfw.KeyMinus:
		view.ZoomAt(0.5, 1/zoomStep)
	case glfw.KeyR:
		if action == glfw.Press {
			view.Reset()
		}
	case glfw.KeyC:
		if action == glfw.Press {
			eh.application.ResetHistory()
		}
	case glfw.KeySpace:
		if action == glfw.Press {
			eh.application.Paused = !eh.application.Paused
		}
	case glfw.KeyEscape, glfw.KeyQ:
		eh.application.Window.SetShouldClose(true)
	}
}

// cursorFraction returns the cursor's horizontal position within the last
// drawn frequency window, in [0,1].
func (eh *EventHandlers) cursorFraction(xpos float64) float64 {
	area := eh.displayArea()
	if area.W <= 0 {
		return 0.5
	}
	scaleX, _ := eh.application.Window.GetContentScale()
	at := (xpos*float64(scaleX) - area.X) / area.W
	return min(max(at, 0), 1)
}

// displayArea returns the screen box the frequency axis spans.
func (eh *EventHandlers) displayArea() geom.Box {
	req := eh.application.Request()
	if !req.Spectrum.Empty() {
		return req.Spectrum
	}
	return req.Waterfall
}

// handleMouseButton handles mouse button events for panning.
func (eh *EventHandlers) handleMouseButton(button glfw.MouseButton, action glfw.Action) {
	if button != glfw.MouseButtonLeft {
		return // nothing to do
	}

	switch action {
	case glfw.Press:
		eh.isDragging = true
		eh.dragStartMouseX, _ = eh.application.Window.GetCursorPos()
		eh.dragStartCenter = eh.application.View.Center
	case glfw.Release:
		eh.isDragging = false
	}
}

// updatePanning drags the frequency window with the cursor.
func (eh *EventHandlers) updatePanning(xpos float64) {
	if !eh.isDragging {
		return
	}
	area := eh.displayArea()
	if area.W <= 0 {
		return
	}
	scaleX, _ := eh.application.Window.GetContentScale()
	dx := (xpos - eh.dragStartMouseX) * float64(scaleX) / area.W

	view := eh.application.View
	view.Center = eh.dragStartCenter
	view.Pan(-dx)
}

// performZoom zooms about the frequency under the cursor.
func (eh *EventHandlers) performZoom(zoomDelta float64) {
	if zoomDelta == 0 {
		return
	}
	mouseX, _ := eh.application.Window.GetCursorPos()
	factor := zoomStep
	if zoomDelta < 0 {
		factor = 1 / zoomStep
	}
	eh.application.View.ZoomAt(eh.cursorFraction(mouseX), factor)
}
