package fluid

// BoundaryKind selects how a field is mirrored into the border cells.
type BoundaryKind int

const (
	// BoundaryScalar copies the neighbouring interior value unchanged. Used
	// for densities, pressure and divergence.
	BoundaryScalar BoundaryKind = iota
	// BoundaryHorizontal negates the value across the left and right walls.
	// Used for the u velocity.
	BoundaryHorizontal
	// BoundaryVertical negates the value across the top and bottom walls.
	// Used for the v velocity.
	BoundaryVertical
)

func (k BoundaryKind) String() string {
	switch k {
	case BoundaryScalar:
		return "scalar"
	case BoundaryHorizontal:
		return "horizontal"
	case BoundaryVertical:
		return "vertical"
	}
	return "unknown"
}

// setBoundary fills the border cells of d from their interior neighbours.
// Corners are computed last since they average two edge cells.
func (f *Fluid) setBoundary(kind BoundaryKind, d []float32) {
	last, lastY := f.NumX-1, f.NumY-1

	for x := 1; x < last; x++ {
		top, bottom := d[f.idx(x, 1)], d[f.idx(x, lastY-1)]
		if kind == BoundaryVertical {
			top, bottom = -top, -bottom
		}
		d[f.idx(x, 0)] = top
		d[f.idx(x, lastY)] = bottom
	}

	for y := 1; y < lastY; y++ {
		left, right := d[f.idx(1, y)], d[f.idx(last-1, y)]
		if kind == BoundaryHorizontal {
			left, right = -left, -right
		}
		d[f.idx(0, y)] = left
		d[f.idx(last, y)] = right
	}

	d[f.idx(0, 0)] = 0.5 * (d[f.idx(1, 0)] + d[f.idx(0, 1)])
	d[f.idx(0, lastY)] = 0.5 * (d[f.idx(1, lastY)] + d[f.idx(0, lastY-1)])
	d[f.idx(last, 0)] = 0.5 * (d[f.idx(last-1, 0)] + d[f.idx(last, 1)])
	d[f.idx(last, lastY)] = 0.5 * (d[f.idx(last-1, lastY)] + d[f.idx(last, lastY-1)])
}
