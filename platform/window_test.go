package platform

import (
	"reflect"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ui"
	"github.com/gogpu/ui/internal/gpu"
)

func newTestWindow() *Window {
	display := NewDisplay(1, ui.Bounds{})
	return NewWindow(WindowParams{
		Bounds:      ui.Rect(0, 0, 800, 600),
		ScaleFactor: 2,
		Title:       "test",
	}, display, nil)
}

func TestWindowDefaults(t *testing.T) {
	w := NewWindow(WindowParams{Bounds: ui.Rect(0, 0, 100, 100)}, nil, nil)
	if w.ScaleFactor() != 1 {
		t.Errorf("default scale factor = %v, want 1", w.ScaleFactor())
	}
	if w.Device() == nil {
		t.Error("nil device should default to NullDeviceHandle")
	}
}

func TestWindowViewportSize(t *testing.T) {
	w := newTestWindow()
	got := w.ViewportSize()
	want := ui.DeviceSize{Width: 1600, Height: 1200}
	if got != want {
		t.Errorf("ViewportSize() = %+v, want %+v", got, want)
	}

	// Fractional logical sizes round the device viewport up.
	w.Resize(ui.Size{Width: 100.25, Height: 100})
	got = w.ViewportSize()
	want = ui.DeviceSize{Width: 201, Height: 200}
	if got != want {
		t.Errorf("ViewportSize() after fractional resize = %+v, want %+v", got, want)
	}
}

func TestWindowResizeNotifies(t *testing.T) {
	w := newTestWindow()
	var gotSize ui.Size
	var gotScale float32
	calls := 0
	w.OnResize(func(size ui.Size, scale float32) {
		gotSize, gotScale = size, scale
		calls++
	})

	w.Resize(ui.Size{Width: 1024, Height: 768})
	if calls != 1 || gotSize.Width != 1024 || gotScale != 2 {
		t.Errorf("resize callback: calls=%d size=%+v scale=%v", calls, gotSize, gotScale)
	}

	w.SetScaleFactor(1)
	if calls != 2 || gotScale != 1 {
		t.Errorf("scale change callback: calls=%d scale=%v", calls, gotScale)
	}

	// Unchanged scale factor does not renotify.
	w.SetScaleFactor(1)
	if calls != 2 {
		t.Errorf("redundant scale change fired callback, calls=%d", calls)
	}
}

func TestWindowRequestFrame(t *testing.T) {
	w := newTestWindow()
	frames := 0
	w.OnRequestFrame(func() { frames++ })
	w.RequestFrame()
	w.RequestFrame()
	if frames != 2 {
		t.Errorf("frames = %d, want 2", frames)
	}
}

func TestWindowActiveStatus(t *testing.T) {
	w := newTestWindow()
	var events []bool
	w.OnActiveStatusChange(func(active bool) { events = append(events, active) })

	w.SetActive(true)
	w.SetActive(true) // no change, no event
	w.SetActive(false)

	if len(events) != 2 || !events[0] || events[1] {
		t.Errorf("active events = %v, want [true false]", events)
	}
	if w.IsActive() {
		t.Error("window should be inactive")
	}
}

func TestWindowCloseHonorsShouldClose(t *testing.T) {
	w := newTestWindow()
	allow := false
	closed := false
	w.OnShouldClose(func() bool { return allow })
	w.OnClose(func() { closed = true })

	if w.Close() {
		t.Error("Close() should be refused while should-close returns false")
	}
	if closed || w.IsClosed() {
		t.Error("window closed despite refusal")
	}

	allow = true
	if !w.Close() {
		t.Error("Close() should succeed")
	}
	if !closed || !w.IsClosed() {
		t.Error("close callback not invoked")
	}

	// Closing again is a no-op that reports success.
	closed = false
	if !w.Close() {
		t.Error("second Close() should report true")
	}
	if closed {
		t.Error("close callback invoked twice")
	}
}

func TestRenderFormat(t *testing.T) {
	if got := RenderFormat(gputypes.TextureFormatBGRA8Unorm); got != gpu.TextureFormatBGRA8Unorm {
		t.Errorf("RenderFormat(BGRA8) = %v", got)
	}
	if got := RenderFormat(gputypes.TextureFormatRGBA8Unorm); got != gpu.TextureFormatRGBA8Unorm {
		t.Errorf("RenderFormat(RGBA8) = %v", got)
	}
	if got := RenderFormat(gputypes.TextureFormatUndefined); got != gpu.TextureFormatBGRA8Unorm {
		t.Errorf("RenderFormat(Undefined) = %v, want BGRA8 fallback", got)
	}
}

func TestNullDeviceHandle(t *testing.T) {
	var dh DeviceHandle = NullDeviceHandle{}
	if dh.Device() != nil || dh.Queue() != nil {
		t.Error("null device handle should return nil device and queue")
	}
	if (NullDeviceHandle{}).SurfaceFormat() != gputypes.TextureFormatUndefined {
		t.Error("null device surface format should be undefined")
	}
	if info := dh.AdapterInfo(); !reflect.DeepEqual(info, gpucontext.AdapterInfo{}) {
		t.Errorf("null device adapter info = %+v, want zero value", info)
	}
}
