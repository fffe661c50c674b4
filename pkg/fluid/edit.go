package fluid

// editable reports whether (x, y) is an interior cell. Edits on the border
// are silently dropped.
func (f *Fluid) editable(x, y int) bool {
	return x > 0 && x < f.NumX-1 && y > 0 && y < f.NumY-1
}

// stamp writes r, g and b into the source fields at (x, y) and its four
// orthogonal neighbours.
func (f *Fluid) stamp(x, y int, r, g, b float32) {
	i := f.idx(x, y)
	n := f.NumX
	for c, val := range [numColours]float32{r, g, b} {
		s := f.sources[c]
		s[i] = val
		s[i-1] = val
		s[i+1] = val
		s[i-n] = val
		s[i+n] = val
	}
}

// PlaceSource sets a persistent colour source on the cell (x, y) and its four
// orthogonal neighbours, replacing what was there.
func (f *Fluid) PlaceSource(x, y int, r, g, b float32) {
	if !f.editable(x, y) {
		return
	}
	f.stamp(x, y, r, g, b)
}

// EraseSource removes the sources under the same stamp as PlaceSource.
func (f *Fluid) EraseSource(x, y int) {
	if !f.editable(x, y) {
		return
	}
	f.stamp(x, y, 0, 0, 0)
}

// ClearSources removes every source.
func (f *Fluid) ClearSources() {
	for _, s := range f.sources {
		fill(s, 0)
	}
}

// ClearDensity empties all three colour channels. Sources and velocities
// are left alone.
func (f *Fluid) ClearDensity() {
	for c := range f.density {
		f.density[c].clear()
	}
}

// ApplyForce adds a swirling impulse of the given strength around (x, y).
// The left column is pushed left and the right column right; the top row is
// pushed up and the bottom row down. The centre cell is untouched.
func (f *Fluid) ApplyForce(x, y int, amount float32) {
	if !f.editable(x, y) {
		return
	}
	u, v := f.u.current(), f.v.current()

	for dy := -1; dy <= 1; dy++ {
		u[f.idx(x-1, y+dy)] -= amount
		u[f.idx(x+1, y+dy)] += amount
	}
	for dx := -1; dx <= 1; dx++ {
		v[f.idx(x+dx, y-1)] -= amount
		v[f.idx(x+dx, y+1)] += amount
	}
}

// SetGravity sets the gravity vector in screen coordinates. The vertical
// component is flipped, so a positive gv pulls towards row 0.
func (f *Fluid) SetGravity(gu, gv float32) {
	f.gravityU = gu
	f.gravityV = -gv
}

// Gravity returns the gravity vector as applied to the grid, with the
// vertical component already flipped by SetGravity.
func (f *Fluid) Gravity() (gu, gv float32) {
	return f.gravityU, f.gravityV
}

// Reset zeroes every density, velocity and source field. Gravity is kept.
func (f *Fluid) Reset() {
	f.ClearDensity()
	f.ClearSources()
	f.u.clear()
	f.v.clear()
}
