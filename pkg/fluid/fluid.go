package fluid

import (
	"fmt"
	"math"
)

// SolverIterations is the default number of Gauss-Seidel sweeps used by both
// the diffusion and the pressure solve.
const SolverIterations = 10

// Fluid is a 2-D grid fluid with three transported colour channels.
//
// The outermost row and column on every side are border cells. They are only
// written by boundary-condition propagation and are never valid targets for
// edits. A Fluid is not safe for concurrent use: callers serialise edits,
// ticks and reads.
type Fluid struct {
	NumX, NumY int
	numCells   int

	viscosity float32
	diffusion float32
	decay     float32

	density [numColours]buffer // r, g, b
	u, v    buffer             // velocities

	sources [numColours][]float32

	gravityU, gravityV float32

	// Number of relaxation sweeps for diffusion and projection.
	Iterations int

	hook TickHook
}

// A TickHook is called at the start of every Tick. The returned function, if
// not nil, is called once the tick has finished.
type TickHook func(dt float32) (done func())

// New creates a fluid of width x height cells, border included. Both
// dimensions must be at least 3 so that every interior cell has four
// neighbours.
func New(width, height int, viscosity, diffusion, decay float32) (*Fluid, error) {
	if width < 3 || height < 3 {
		return nil, fmt.Errorf("%w: %dx%d, must be at least 3x3", ErrInvalidDimensions, width, height)
	}
	params := []struct {
		name  string
		value float32
	}{
		{"viscosity", viscosity},
		{"diffusion", diffusion},
		{"decay", decay},
	}
	for _, p := range params {
		if !finite(p.value) || p.value < 0 {
			return nil, fmt.Errorf("%w: %s = %v", ErrInvalidParameter, p.name, p.value)
		}
	}

	numCells := width * height
	f := &Fluid{
		NumX:       width,
		NumY:       height,
		numCells:   numCells,
		viscosity:  viscosity,
		diffusion:  diffusion,
		decay:      decay,
		u:          newBuffer(numCells),
		v:          newBuffer(numCells),
		Iterations: SolverIterations,
	}
	for c := range f.density {
		f.density[c] = newBuffer(numCells)
		f.sources[c] = make([]float32, numCells)
	}
	return f, nil
}

func (f *Fluid) idx(x, y int) int { return y*f.NumX + x }

// Viscosity returns the kinematic viscosity used to diffuse velocity.
func (f *Fluid) Viscosity() float32 { return f.viscosity }

// Diffusion returns the diffusion rate of the colour channels.
func (f *Fluid) Diffusion() float32 { return f.diffusion }

// DecayRate returns the amount of density removed per second.
func (f *Fluid) DecayRate() float32 { return f.decay }

// SetTickHook installs h around every subsequent Tick. A nil hook removes it.
func (f *Fluid) SetTickHook(h TickHook) { f.hook = h }

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}

// Tick advances the simulation by dt seconds: each colour channel is
// transported, then the velocity field, then the densities decay.
func (f *Fluid) Tick(dt float32) error {
	if !finite(dt) || dt <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTimeStep, dt)
	}
	if f.hook != nil {
		if done := f.hook(dt); done != nil {
			defer done()
		}
	}

	for c := range f.density {
		f.densityStep(f.sources[c], &f.density[c], dt)
	}
	f.velocityStep(dt)
	for c := range f.density {
		f.decayDensity(f.density[c].current(), dt)
	}
	return nil
}

func (f *Fluid) densityStep(src []float32, d *buffer, dt float32) {
	addSource(d.current(), src, dt)
	d.swap()
	f.diffuse(BoundaryScalar, d.current(), d.previous(), f.diffusion, dt)
	d.swap()
	f.advect(BoundaryScalar, d.current(), d.previous(), f.u.current(), f.v.current(), dt)
}

// The scratch half of each velocity pair doubles as a force accumulator: it
// is added in before diffusion and is overwritten by the pressure solve.
func (f *Fluid) velocityStep(dt float32) {
	addSource(f.u.current(), f.u.previous(), dt)
	addSource(f.v.current(), f.v.previous(), dt)
	f.applyGravity(dt)

	f.u.swap()
	f.diffuse(BoundaryHorizontal, f.u.current(), f.u.previous(), f.viscosity, dt)
	f.v.swap()
	f.diffuse(BoundaryVertical, f.v.current(), f.v.previous(), f.viscosity, dt)
	f.project(f.u.current(), f.v.current(), f.u.previous(), f.v.previous())

	f.u.swap()
	f.v.swap()
	u0, v0 := f.u.previous(), f.v.previous()
	f.advect(BoundaryHorizontal, f.u.current(), u0, u0, v0, dt)
	f.advect(BoundaryVertical, f.v.current(), v0, u0, v0, dt)
	f.project(f.u.current(), f.v.current(), u0, v0)
}

func addSource(dst, src []float32, dt float32) {
	for i := range dst {
		dst[i] += dt * src[i]
	}
}

// applyGravity pushes every interior cell along the gravity vector in
// proportion to its mean density.
func (f *Fluid) applyGravity(dt float32) {
	gu := f.gravityU * dt
	gv := f.gravityV * dt
	if gu == 0 && gv == 0 {
		return
	}
	r, g, b := f.density[0].current(), f.density[1].current(), f.density[2].current()
	u, v := f.u.current(), f.v.current()

	for y := 1; y < f.NumY-1; y++ {
		for x := 1; x < f.NumX-1; x++ {
			i := f.idx(x, y)
			d := (r[i] + g[i] + b[i]) / 3
			u[i] += d * gu
			v[i] += d * gv
		}
	}
}

func (f *Fluid) decayDensity(d []float32, dt float32) {
	amount := f.decay * dt

	for y := 1; y < f.NumY-1; y++ {
		for x := 1; x < f.NumX-1; x++ {
			i := f.idx(x, y)
			d[i] -= amount
			if d[i] < 0 {
				d[i] = 0
			}
		}
	}
}

// diffuse relaxes d towards the implicit diffusion of d0. Updates are made in
// place, so later cells of a sweep see the already updated neighbours.
func (f *Fluid) diffuse(kind BoundaryKind, d, d0 []float32, rate, dt float32) {
	a := dt * rate * float32(f.NumX) * float32(f.NumY)
	c := 1 + 4*a
	n := f.NumX

	for k := 0; k < f.Iterations; k++ {
		for y := 1; y < f.NumY-1; y++ {
			for x := 1; x < f.NumX-1; x++ {
				i := f.idx(x, y)
				d[i] = (d0[i] + a*(d[i-1]+d[i+1]+d[i-n]+d[i+n])) / c
			}
		}
		f.setBoundary(kind, d)
	}
}

// advect moves d0 along (u, v) into d by tracing every interior cell
// backwards and sampling d0 bilinearly at the departure point.
func (f *Fluid) advect(kind BoundaryKind, d, d0, u, v []float32, dt float32) {
	dt0 := dt * float32(f.NumX)
	// The upper clamp keeps x0+1 and y0+1 inside the grid.
	maxX := float32(f.NumX) - 1.501
	maxY := float32(f.NumY) - 1.501

	for y := 1; y < f.NumY-1; y++ {
		for x := 1; x < f.NumX-1; x++ {
			i := f.idx(x, y)
			x1 := clampCoord(float32(x)-dt0*u[i], 0.5, maxX)
			y1 := clampCoord(float32(y)-dt0*v[i], 0.5, maxY)

			i0 := int(x1)
			i1 := i0 + 1
			j0 := int(y1)
			j1 := j0 + 1

			s1 := x1 - float32(i0)
			s0 := 1 - s1
			t1 := y1 - float32(j0)
			t0 := 1 - t1

			d[i] = s0*(t0*d0[f.idx(i0, j0)]+t1*d0[f.idx(i0, j1)]) +
				s1*(t0*d0[f.idx(i1, j0)]+t1*d0[f.idx(i1, j1)])
		}
	}
	f.setBoundary(kind, d)
}

// clampCoord limits a backtraced coordinate to [lo, hi]. NaN maps to lo, so
// a blown-up velocity still samples inside the grid.
func clampCoord(c, lo, hi float32) float32 {
	if !(c >= lo) {
		return lo
	}
	if c > hi {
		return hi
	}
	return c
}

// project removes the divergent part of (u, v). p and div are scratch
// buffers; their previous contents are discarded.
func (f *Fluid) project(u, v, p, div []float32) {
	h := 1 / float32(f.NumX)
	n := f.NumX

	for y := 1; y < f.NumY-1; y++ {
		for x := 1; x < f.NumX-1; x++ {
			i := f.idx(x, y)
			div[i] = -0.5 * h * (u[i+1] - u[i-1] + v[i+n] - v[i-n])
			p[i] = 0
		}
	}
	f.setBoundary(BoundaryScalar, div)
	f.setBoundary(BoundaryScalar, p)

	for k := 0; k < f.Iterations; k++ {
		for y := 1; y < f.NumY-1; y++ {
			for x := 1; x < f.NumX-1; x++ {
				i := f.idx(x, y)
				p[i] = (div[i] + p[i-1] + p[i+1] + p[i-n] + p[i+n]) / 4
			}
		}
		f.setBoundary(BoundaryScalar, p)
	}

	for y := 1; y < f.NumY-1; y++ {
		for x := 1; x < f.NumX-1; x++ {
			i := f.idx(x, y)
			u[i] -= 0.5 * (p[i+1] - p[i-1]) / h
			v[i] -= 0.5 * (p[i+n] - p[i-n]) / h
		}
	}
	f.setBoundary(BoundaryHorizontal, u)
	f.setBoundary(BoundaryVertical, v)
}
