package fluid

import "math"

// divergenceAt is the central-difference divergence used by project.
func (f *Fluid) divergenceAt(u, v []float32, x, y int) float32 {
	i := f.idx(x, y)
	n := f.NumX
	return 0.5 * (u[i+1] - u[i-1] + v[i+n] - v[i-n])
}

// Divergence returns the mean absolute divergence over the interior cells.
func (f *Fluid) Divergence() float32 {
	u, v := f.u.current(), f.v.current()
	total := float32(0.0)
	for y := 1; y < f.NumY-1; y++ {
		for x := 1; x < f.NumX-1; x++ {
			total += float32(math.Abs(float64(f.divergenceAt(u, v, x, y))))
		}
	}
	return total / float32((f.NumX-2)*(f.NumY-2))
}

// MaxDivergence returns the maximum absolute divergence across the interior.
func (f *Fluid) MaxDivergence() float32 {
	u, v := f.u.current(), f.v.current()
	maxDiv := float32(0.0)
	for y := 1; y < f.NumY-1; y++ {
		for x := 1; x < f.NumX-1; x++ {
			if a := float32(math.Abs(float64(f.divergenceAt(u, v, x, y)))); a > maxDiv {
				maxDiv = a
			}
		}
	}
	return maxDiv
}

// TotalDensity sums the channel ch over the interior cells.
func (f *Fluid) TotalDensity(ch Channel) float32 {
	d := f.values(ch)
	total := float32(0.0)
	for y := 1; y < f.NumY-1; y++ {
		for x := 1; x < f.NumX-1; x++ {
			total += d[f.idx(x, y)]
		}
	}
	return total
}
