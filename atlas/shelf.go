package atlas

// shelfPacker packs rectangles into a fixed-size area using horizontal
// shelves: each rectangle goes onto the first shelf with room, or onto
// a new shelf below the last one. Freed space is not reclaimed; callers
// reset the whole packer instead.
//
// Not safe for concurrent use; the owning atlas serializes access.
type shelfPacker struct {
	width   int
	height  int
	padding int
	shelves []shelf
	nextID  TileID
}

type shelf struct {
	y      int
	height int
	nextX  int
}

func newShelfPacker(width, height, padding int) *shelfPacker {
	if padding < 0 {
		padding = 0
	}
	return &shelfPacker{width: width, height: height, padding: padding}
}

// allocate finds space for a width x height rectangle.
// Returns the placement and false if the packer is full.
func (p *shelfPacker) allocate(width, height int) (x, y int, id TileID, ok bool) {
	if width <= 0 || height <= 0 {
		return 0, 0, 0, false
	}
	pw := width + p.padding
	ph := height + p.padding
	if pw > p.width || ph > p.height {
		return 0, 0, 0, false
	}

	for i := range p.shelves {
		s := &p.shelves[i]
		if s.nextX+pw > p.width {
			continue
		}
		// A shelf can only grow taller while empty.
		if ph > s.height && s.nextX > 0 {
			continue
		}
		x = s.nextX
		y = s.y
		s.nextX += pw
		if ph > s.height {
			s.height = ph
		}
		p.nextID++
		return x, y, p.nextID, true
	}

	newY := 0
	if n := len(p.shelves); n > 0 {
		last := p.shelves[n-1]
		newY = last.y + last.height
	}
	if newY+ph > p.height {
		return 0, 0, 0, false
	}
	p.shelves = append(p.shelves, shelf{y: newY, height: ph, nextX: pw})
	p.nextID++
	return 0, newY, p.nextID, true
}

func (p *shelfPacker) reset() {
	p.shelves = p.shelves[:0]
}
