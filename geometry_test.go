package ui

import "testing"

func TestBoundsIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Bounds
		want Bounds
	}{
		{
			name: "overlap",
			a:    Rect(0, 0, 10, 10),
			b:    Rect(5, 5, 20, 20),
			want: Rect(5, 5, 10, 10),
		},
		{
			name: "contained",
			a:    Rect(0, 0, 100, 100),
			b:    Rect(10, 20, 30, 40),
			want: Rect(10, 20, 30, 40),
		},
		{
			name: "disjoint",
			a:    Rect(0, 0, 10, 10),
			b:    Rect(20, 20, 30, 30),
			want: Bounds{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Intersect(tt.b)
			if got.IsEmpty() != tt.want.IsEmpty() {
				t.Fatalf("Intersect(%v, %v) emptiness = %v, want %v", tt.a, tt.b, got.IsEmpty(), tt.want.IsEmpty())
			}
			if !got.IsEmpty() && got != tt.want {
				t.Errorf("Intersect(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestBoundsUnion(t *testing.T) {
	a := Rect(0, 0, 10, 10)
	b := Rect(20, 5, 30, 40)
	got := a.Union(b)
	want := Rect(0, 0, 30, 40)
	if got != want {
		t.Errorf("Union = %v, want %v", got, want)
	}

	if got := a.Union(Bounds{}); got != a {
		t.Errorf("Union with empty = %v, want %v", got, a)
	}
	if got := (Bounds{}).Union(b); got != b {
		t.Errorf("empty Union = %v, want %v", got, b)
	}
}

func TestBoundsContains(t *testing.T) {
	b := Rect(10, 10, 20, 20)
	if !b.Contains(Pt(10, 10)) {
		t.Error("origin should be inside")
	}
	if !b.Contains(Pt(15, 19)) {
		t.Error("interior point should be inside")
	}
	if b.Contains(Pt(20, 20)) {
		t.Error("max corner is exclusive")
	}
	if b.Contains(Pt(5, 15)) {
		t.Error("point left of bounds should be outside")
	}
}

func TestBoundsDilate(t *testing.T) {
	b := Rect(10, 10, 20, 20)
	got := b.Dilate(3)
	want := Rect(7, 7, 23, 23)
	if got != want {
		t.Errorf("Dilate(3) = %v, want %v", got, want)
	}
}

func TestOuterDeviceBounds(t *testing.T) {
	got := OuterDeviceBounds(1.2, 2.7, 9.1, 10.0)
	if got.Origin.X != 1 || got.Origin.Y != 2 {
		t.Errorf("origin = %v, want (1, 2)", got.Origin)
	}
	if got.Size.Width != 9 || got.Size.Height != 8 {
		t.Errorf("size = %v, want (9, 8)", got.Size)
	}
}

func TestBoundsScale(t *testing.T) {
	b := Rect(1, 2, 3, 4)
	got := b.Scale(2)
	want := Rect(2, 4, 6, 8)
	if got != want {
		t.Errorf("Scale(2) = %v, want %v", got, want)
	}
}
