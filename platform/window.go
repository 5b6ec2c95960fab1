// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package platform

import (
	"math"

	"github.com/gogpu/ui"
)

// WindowParams configures a new window.
type WindowParams struct {
	Bounds ui.Bounds

	// ScaleFactor is the device pixel ratio. Zero defaults to 1.
	ScaleFactor float32

	Title string
}

// Window is the surface frames are rendered into.
//
// A Window is confined to the goroutine that created it: the host
// registers callbacks and dispatches events from its UI loop, and the
// window invokes the callbacks synchronously on that same goroutine.
// No field is locked; using a Window from two goroutines is a bug in
// the caller.
type Window struct {
	bounds      ui.Bounds
	scaleFactor float32
	title       string
	display     *Display
	device      DeviceHandle
	active      bool
	closed      bool

	requestFrameCallback func()
	resizeCallback       func(size ui.Size, scaleFactor float32)
	activeCallback       func(active bool)
	shouldCloseCallback  func() bool
	closeCallback        func()
}

// NewWindow creates a window on display, rendering through device.
func NewWindow(params WindowParams, display *Display, device DeviceHandle) *Window {
	scale := params.ScaleFactor
	if scale <= 0 {
		scale = 1
	}
	if device == nil {
		device = NullDeviceHandle{}
	}
	return &Window{
		bounds:      params.Bounds,
		scaleFactor: scale,
		title:       params.Title,
		display:     display,
		device:      device,
	}
}

// Bounds returns the window bounds in logical pixels.
func (w *Window) Bounds() ui.Bounds { return w.bounds }

// ContentSize returns the drawable size in logical pixels.
func (w *Window) ContentSize() ui.Size { return w.bounds.Size }

// ScaleFactor returns the device pixel ratio.
func (w *Window) ScaleFactor() float32 { return w.scaleFactor }

// ViewportSize returns the drawable size in device pixels, which is
// what the renderer's passes and the intermediate path texture use.
func (w *Window) ViewportSize() ui.DeviceSize {
	return ui.DeviceSize{
		Width:  ui.DevicePixels(math.Ceil(float64(w.bounds.Size.Width * w.scaleFactor))),
		Height: ui.DevicePixels(math.Ceil(float64(w.bounds.Size.Height * w.scaleFactor))),
	}
}

// Title returns the window title.
func (w *Window) Title() string { return w.title }

// SetTitle updates the window title.
func (w *Window) SetTitle(title string) { w.title = title }

// Display returns the display the window is on.
func (w *Window) Display() *Display { return w.display }

// Device returns the handle to the host's GPU device.
func (w *Window) Device() DeviceHandle { return w.device }

// IsActive reports whether the window has focus.
func (w *Window) IsActive() bool { return w.active }

// OnRequestFrame registers the callback invoked when the host wants a
// new frame drawn.
func (w *Window) OnRequestFrame(callback func()) {
	w.requestFrameCallback = callback
}

// OnResize registers the callback invoked after the content size or
// scale factor changes.
func (w *Window) OnResize(callback func(size ui.Size, scaleFactor float32)) {
	w.resizeCallback = callback
}

// OnActiveStatusChange registers the callback invoked when the window
// gains or loses focus.
func (w *Window) OnActiveStatusChange(callback func(active bool)) {
	w.activeCallback = callback
}

// OnShouldClose registers the callback consulted before closing. The
// window stays open when it returns false.
func (w *Window) OnShouldClose(callback func() bool) {
	w.shouldCloseCallback = callback
}

// OnClose registers the callback invoked once when the window closes.
func (w *Window) OnClose(callback func()) {
	w.closeCallback = callback
}

// RequestFrame asks for a frame via the registered callback.
func (w *Window) RequestFrame() {
	if w.requestFrameCallback != nil {
		w.requestFrameCallback()
	}
}

// Resize updates the content size and notifies the resize callback.
func (w *Window) Resize(size ui.Size) {
	w.bounds.Size = size
	if w.resizeCallback != nil {
		w.resizeCallback(size, w.scaleFactor)
	}
}

// SetScaleFactor updates the device pixel ratio, notifying the resize
// callback since the device viewport changes with it.
func (w *Window) SetScaleFactor(scale float32) {
	if scale <= 0 || scale == w.scaleFactor {
		return
	}
	w.scaleFactor = scale
	if w.resizeCallback != nil {
		w.resizeCallback(w.bounds.Size, scale)
	}
}

// SetActive updates focus state, notifying on change.
func (w *Window) SetActive(active bool) {
	if active == w.active {
		return
	}
	w.active = active
	if w.activeCallback != nil {
		w.activeCallback(active)
	}
}

// Close closes the window, honoring the should-close callback. It
// reports whether the window actually closed; closing twice is a no-op
// that reports true.
func (w *Window) Close() bool {
	if w.closed {
		return true
	}
	if w.shouldCloseCallback != nil && !w.shouldCloseCallback() {
		return false
	}
	w.closed = true
	if w.closeCallback != nil {
		w.closeCallback()
	}
	return true
}

// IsClosed reports whether Close has completed.
func (w *Window) IsClosed() bool { return w.closed }
