package scene

import (
	"testing"

	"github.com/gogpu/ui"
)

func TestPathTriangleFan(t *testing.T) {
	p := NewPath()
	p.MoveTo(ui.Pt(0, 0))
	p.LineTo(ui.Pt(10, 0))
	p.LineTo(ui.Pt(10, 10))
	p.LineTo(ui.Pt(0, 10))

	// A quad fans into two interior triangles.
	if got := len(p.Vertices); got != 6 {
		t.Fatalf("vertex count = %d, want 6", got)
	}
	for i, v := range p.Vertices {
		if v.ST != ui.Pt(0, 1) {
			t.Errorf("vertex %d st = %v, want (0,1) for solid triangle", i, v.ST)
		}
	}
	want := ui.Rect(0, 0, 10, 10)
	if p.Bounds != want {
		t.Errorf("bounds = %v, want %v", p.Bounds, want)
	}
}

func TestPathCurveVertices(t *testing.T) {
	p := NewPath()
	p.MoveTo(ui.Pt(0, 0))
	p.LineTo(ui.Pt(10, 0))
	p.CurveTo(ui.Pt(15, 5), ui.Pt(10, 10))

	// The curve contributes an interior fan triangle plus one curve
	// triangle carrying the parametric coordinates.
	if got := len(p.Vertices); got != 6 {
		t.Fatalf("vertex count = %d, want 6", got)
	}
	curve := p.Vertices[3:]
	if curve[0].ST != ui.Pt(0, 0) || curve[1].ST != ui.Pt(0.5, 0) || curve[2].ST != ui.Pt(1, 1) {
		t.Errorf("curve st = %v, %v, %v; want (0,0), (0.5,0), (1,1)",
			curve[0].ST, curve[1].ST, curve[2].ST)
	}
	if p.Bounds.MaxX() != 15 {
		t.Errorf("bounds should include the control point, MaxX = %g", p.Bounds.MaxX())
	}
}

func TestPathEmpty(t *testing.T) {
	p := NewPath()
	if !p.IsEmpty() {
		t.Error("new path should be empty")
	}
	p.MoveTo(ui.Pt(1, 1))
	p.LineTo(ui.Pt(2, 2))
	if !p.IsEmpty() {
		t.Error("path with fewer than three points should be empty")
	}
	p.LineTo(ui.Pt(3, 1))
	if p.IsEmpty() {
		t.Error("path with a triangle should not be empty")
	}
}
