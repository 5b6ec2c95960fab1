package platform

import "github.com/gogpu/ui"

// DisplayID identifies one display of the host system.
type DisplayID uint32

// Display describes a display the host can place windows on.
type Display struct {
	id     DisplayID
	bounds ui.Bounds
}

// NewDisplay creates a display with the given id and bounds in logical
// pixels. A zero bounds defaults to a 1920x1080 viewport.
func NewDisplay(id DisplayID, bounds ui.Bounds) *Display {
	if bounds.Size.IsEmpty() {
		bounds = ui.Rect(0, 0, 1920, 1080)
	}
	return &Display{id: id, bounds: bounds}
}

// ID returns the display's identifier.
func (d *Display) ID() DisplayID { return d.id }

// Bounds returns the display's bounds in logical pixels.
func (d *Display) Bounds() ui.Bounds { return d.bounds }

// SetBounds updates the display bounds, for host viewport changes.
func (d *Display) SetBounds(bounds ui.Bounds) { d.bounds = bounds }
