package atlas

import "testing"

func TestShelfPackerRows(t *testing.T) {
	p := newShelfPacker(100, 100, 0)

	x, y, _, ok := p.allocate(40, 10)
	if !ok || x != 0 || y != 0 {
		t.Fatalf("first alloc = (%d,%d) ok=%v, want (0,0) true", x, y, ok)
	}
	x, y, _, ok = p.allocate(40, 10)
	if !ok || x != 40 || y != 0 {
		t.Fatalf("second alloc = (%d,%d) ok=%v, want (40,0) true", x, y, ok)
	}
	// Does not fit on the first shelf; opens a new one below.
	x, y, _, ok = p.allocate(40, 20)
	if !ok || x != 0 || y != 10 {
		t.Fatalf("third alloc = (%d,%d) ok=%v, want (0,10) true", x, y, ok)
	}
}

func TestShelfPackerFull(t *testing.T) {
	p := newShelfPacker(32, 32, 0)
	if _, _, _, ok := p.allocate(33, 8); ok {
		t.Error("oversized width should fail")
	}
	if _, _, _, ok := p.allocate(32, 32); !ok {
		t.Error("exact fit should succeed")
	}
	if _, _, _, ok := p.allocate(1, 1); ok {
		t.Error("full packer should reject further allocations")
	}
	p.reset()
	if _, _, _, ok := p.allocate(1, 1); !ok {
		t.Error("reset packer should accept allocations again")
	}
}

func TestShelfPackerIDsUnique(t *testing.T) {
	p := newShelfPacker(64, 64, 1)
	seen := map[TileID]bool{}
	for i := 0; i < 10; i++ {
		_, _, id, ok := p.allocate(5, 5)
		if !ok {
			t.Fatalf("alloc %d failed", i)
		}
		if seen[id] {
			t.Fatalf("duplicate tile id %d", id)
		}
		seen[id] = true
	}
}
