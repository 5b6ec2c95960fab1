// Package platform glues windows and GPU devices from a host
// application to the renderer. The toolkit receives its device from
// the host, it never creates one.
package platform

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ui/internal/gpu"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host (for example a gogpu.App) implements DeviceHandle and
// passes it in when opening a window, so the toolkit shares the host's
// device and queue instead of creating its own.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, giving the
// interface a local name while staying compatible with the gpucontext
// ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle with no device behind it. Used
// when rendering to a recording device in tests or headless runs.
type NullDeviceHandle struct{}

func (NullDeviceHandle) Device() gpucontext.Device   { return nil }
func (NullDeviceHandle) Queue() gpucontext.Queue     { return nil }
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo reports a zero adapter description for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{}
}

// SurfaceFormat returns undefined for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

var _ DeviceHandle = NullDeviceHandle{}

// RenderFormat maps the host surface format onto the renderer's
// target format. Surfaces are BGRA on every backend the renderer
// supports, so anything unrecognized falls back to BGRA8.
func RenderFormat(format gputypes.TextureFormat) gpu.TextureFormat {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm:
		return gpu.TextureFormatRGBA8Unorm
	default:
		return gpu.TextureFormatBGRA8Unorm
	}
}
