package scene

import "github.com/gogpu/ui"

// PathVertex is one triangulated vertex of a filled path. ST carries
// the parametric curve coordinate: the path fragment shader treats a
// fragment as covered when st.x² − st.y ≤ 0, so solid interior
// triangles use (0, 1) per vertex and quadratic curve triangles use
// (0, 0), (0.5, 0), (1, 1).
type PathVertex struct {
	Position ui.Point
	ST       ui.Point
}

// Path is a filled vector shape triangulated into curve-aware
// vertices. Build one with NewPath and the MoveTo/LineTo/CurveTo
// methods, then insert it into a Scene.
type Path struct {
	Order       uint32
	Bounds      ui.Bounds
	ContentMask ContentMask
	Color       ui.Hsla
	Vertices    []PathVertex

	start        ui.Point
	current      ui.Point
	contourCount int
}

// NewPath starts an empty path at origin.
func NewPath() *Path {
	return &Path{}
}

// MoveTo starts a new contour at p.
func (p *Path) MoveTo(pt ui.Point) {
	p.contourCount++
	p.start = pt
	p.current = pt
}

// LineTo extends the current contour with a straight edge to pt.
func (p *Path) LineTo(pt ui.Point) {
	p.contourCount++
	if p.contourCount > 2 {
		p.pushTriangle(
			p.start, p.current, pt,
			ui.Pt(0, 1), ui.Pt(0, 1), ui.Pt(0, 1),
		)
	}
	p.current = pt
}

// CurveTo extends the current contour with a quadratic Bézier through
// control point ctrl ending at pt.
func (p *Path) CurveTo(ctrl, pt ui.Point) {
	p.contourCount++
	if p.contourCount > 2 {
		p.pushTriangle(
			p.start, p.current, pt,
			ui.Pt(0, 1), ui.Pt(0, 1), ui.Pt(0, 1),
		)
	}
	p.pushTriangle(
		p.current, ctrl, pt,
		ui.Pt(0, 0), ui.Pt(0.5, 0), ui.Pt(1, 1),
	)
	p.current = pt
}

// IsEmpty reports whether the path produced no fillable geometry.
func (p *Path) IsEmpty() bool {
	return len(p.Vertices) == 0
}

func (p *Path) pushTriangle(a, b, c, sta, stb, stc ui.Point) {
	if len(p.Vertices) == 0 {
		p.Bounds = ui.Bounds{Origin: a}
	}
	p.Bounds = p.Bounds.Union(boundsOfTriangle(a, b, c))
	p.Vertices = append(p.Vertices,
		PathVertex{Position: a, ST: sta},
		PathVertex{Position: b, ST: stb},
		PathVertex{Position: c, ST: stc},
	)
}

func boundsOfTriangle(a, b, c ui.Point) ui.Bounds {
	minX := min3(a.X, b.X, c.X)
	minY := min3(a.Y, b.Y, c.Y)
	maxX := max3(a.X, b.X, c.X)
	maxY := max3(a.Y, b.Y, c.Y)
	return ui.Rect(minX, minY, maxX, maxY)
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
