package ui

import (
	"fmt"
	"math"
)

// Pixels is a length in logical pixels, before the display scale factor
// is applied.
type Pixels float32

// ScaledPixels is a length in logical pixels multiplied by the display
// scale factor. Scene primitives and line layouts use this space.
type ScaledPixels float32

// DevicePixels is an integer length in physical device pixels.
// Rasterized bitmaps and atlas tiles are measured in this space.
type DevicePixels int32

// Scale converts logical pixels to scaled pixels.
func (p Pixels) Scale(factor float32) ScaledPixels {
	return ScaledPixels(float32(p) * factor)
}

// Point is a location in scaled pixel space.
type Point struct {
	X float32
	Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Size is an extent in scaled pixel space.
type Size struct {
	Width  float32
	Height float32
}

// IsEmpty returns true if either dimension is not positive.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Bounds is an axis-aligned rectangle in scaled pixel space.
type Bounds struct {
	Origin Point
	Size   Size
}

// Rect builds a Bounds from edge coordinates.
func Rect(minX, minY, maxX, maxY float32) Bounds {
	return Bounds{
		Origin: Point{X: minX, Y: minY},
		Size:   Size{Width: maxX - minX, Height: maxY - minY},
	}
}

// MaxX returns the right edge.
func (b Bounds) MaxX() float32 { return b.Origin.X + b.Size.Width }

// MaxY returns the bottom edge.
func (b Bounds) MaxY() float32 { return b.Origin.Y + b.Size.Height }

// IsEmpty returns true if the bounds enclose no area.
func (b Bounds) IsEmpty() bool {
	return b.Size.IsEmpty()
}

// Contains returns true if p lies within the bounds.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Origin.X && p.X < b.MaxX() &&
		p.Y >= b.Origin.Y && p.Y < b.MaxY()
}

// Union returns the smallest bounds containing both b and other.
// An empty operand yields the other operand unchanged.
func (b Bounds) Union(other Bounds) Bounds {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}
	minX := minf(b.Origin.X, other.Origin.X)
	minY := minf(b.Origin.Y, other.Origin.Y)
	maxX := maxf(b.MaxX(), other.MaxX())
	maxY := maxf(b.MaxY(), other.MaxY())
	return Rect(minX, minY, maxX, maxY)
}

// Intersect returns the overlap of b and other.
// Disjoint bounds yield an empty result.
func (b Bounds) Intersect(other Bounds) Bounds {
	minX := maxf(b.Origin.X, other.Origin.X)
	minY := maxf(b.Origin.Y, other.Origin.Y)
	maxX := minf(b.MaxX(), other.MaxX())
	maxY := minf(b.MaxY(), other.MaxY())
	if maxX < minX {
		maxX = minX
	}
	if maxY < minY {
		maxY = minY
	}
	return Rect(minX, minY, maxX, maxY)
}

// Dilate grows the bounds outward by amount on every side.
func (b Bounds) Dilate(amount float32) Bounds {
	return Bounds{
		Origin: Point{X: b.Origin.X - amount, Y: b.Origin.Y - amount},
		Size:   Size{Width: b.Size.Width + 2*amount, Height: b.Size.Height + 2*amount},
	}
}

// Scale multiplies all coordinates by factor.
func (b Bounds) Scale(factor float32) Bounds {
	return Bounds{
		Origin: Point{X: b.Origin.X * factor, Y: b.Origin.Y * factor},
		Size:   Size{Width: b.Size.Width * factor, Height: b.Size.Height * factor},
	}
}

// String returns a string representation of the bounds.
func (b Bounds) String() string {
	return fmt.Sprintf("Bounds(%g,%g %gx%g)", b.Origin.X, b.Origin.Y, b.Size.Width, b.Size.Height)
}

// DevicePoint is an integer location in device pixel space.
type DevicePoint struct {
	X DevicePixels
	Y DevicePixels
}

// DeviceSize is an integer extent in device pixel space.
type DeviceSize struct {
	Width  DevicePixels
	Height DevicePixels
}

// IsEmpty returns true if either dimension is not positive.
func (s DeviceSize) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Area returns Width*Height in pixels.
func (s DeviceSize) Area() int {
	return int(s.Width) * int(s.Height)
}

// DeviceBounds is an integer rectangle in device pixel space.
type DeviceBounds struct {
	Origin DevicePoint
	Size   DeviceSize
}

// IsEmpty returns true if the bounds enclose no pixels.
func (b DeviceBounds) IsEmpty() bool {
	return b.Size.IsEmpty()
}

// OuterDeviceBounds converts fractional bounds to integer device bounds
// with outward rounding: the min corner is floored and the max corner is
// ceiled, guaranteeing the integer rect fully covers the input.
func OuterDeviceBounds(minX, minY, maxX, maxY float32) DeviceBounds {
	x0 := DevicePixels(math.Floor(float64(minX)))
	y0 := DevicePixels(math.Floor(float64(minY)))
	x1 := DevicePixels(math.Ceil(float64(maxX)))
	y1 := DevicePixels(math.Ceil(float64(maxY)))
	return DeviceBounds{
		Origin: DevicePoint{X: x0, Y: y0},
		Size:   DeviceSize{Width: x1 - x0, Height: y1 - y0},
	}
}

// Corners holds per-corner radii for rounded rectangles.
type Corners struct {
	TopLeft     float32
	TopRight    float32
	BottomRight float32
	BottomLeft  float32
}

// UniformCorners returns Corners with the same radius on every corner.
func UniformCorners(radius float32) Corners {
	return Corners{TopLeft: radius, TopRight: radius, BottomRight: radius, BottomLeft: radius}
}

// Edges holds per-edge widths, e.g. border widths.
type Edges struct {
	Top    float32
	Right  float32
	Bottom float32
	Left   float32
}

// UniformEdges returns Edges with the same width on every edge.
func UniformEdges(width float32) Edges {
	return Edges{Top: width, Right: width, Bottom: width, Left: width}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
