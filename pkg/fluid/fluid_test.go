package fluid

import (
	"errors"
	"math"
	"testing"
)

func newTestFluid(t *testing.T, width, height int, viscosity, diffusion, decay float32) *Fluid {
	t.Helper()
	f, err := New(width, height, viscosity, diffusion, decay)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", width, height, err)
	}
	return f
}

func approxEqual(a, b, tolerance float32) bool {
	return math.Abs(float64(a-b)) <= float64(tolerance)
}

// allFields returns every field a tick can touch, scratch halves included.
func allFields(f *Fluid) [][]float32 {
	fields := [][]float32{
		f.u.slots[0], f.u.slots[1],
		f.v.slots[0], f.v.slots[1],
	}
	for c := range f.density {
		fields = append(fields, f.density[c].slots[0], f.density[c].slots[1], f.sources[c])
	}
	return fields
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	tests := []struct {
		width, height int
	}{
		{0, 10},
		{10, 0},
		{-5, 10},
		{2, 10},
		{10, 2},
	}
	for _, tt := range tests {
		_, err := New(tt.width, tt.height, 0, 0, 0)
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("New(%d, %d) error = %v, want ErrInvalidDimensions", tt.width, tt.height, err)
		}
	}

	if _, err := New(3, 3, 0, 0, 0); err != nil {
		t.Errorf("New(3, 3) returned error: %v", err)
	}
}

func TestNewRejectsInvalidParameters(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	tests := []struct {
		name                        string
		viscosity, diffusion, decay float32
	}{
		{"negative viscosity", -1, 0, 0},
		{"negative diffusion", 0, -0.1, 0},
		{"negative decay", 0, 0, -0.5},
		{"nan viscosity", nan, 0, 0},
		{"inf diffusion", 0, inf, 0},
		{"nan decay", 0, 0, nan},
	}
	for _, tt := range tests {
		_, err := New(10, 10, tt.viscosity, tt.diffusion, tt.decay)
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%s: error = %v, want ErrInvalidParameter", tt.name, err)
		}
	}
}

func TestNewAllocatesZeroedFields(t *testing.T) {
	f := newTestFluid(t, 7, 5, 0.1, 0.2, 0.3)

	if f.Viscosity() != 0.1 || f.Diffusion() != 0.2 || f.DecayRate() != 0.3 {
		t.Errorf("parameters = %v, %v, %v", f.Viscosity(), f.Diffusion(), f.DecayRate())
	}
	if f.Iterations != SolverIterations {
		t.Errorf("Iterations = %d, want %d", f.Iterations, SolverIterations)
	}
	for n, field := range allFields(f) {
		if len(field) != 7*5 {
			t.Fatalf("field %d has %d cells, want %d", n, len(field), 7*5)
		}
		for i, v := range field {
			if v != 0 {
				t.Fatalf("field %d cell %d = %v, want 0", n, i, v)
			}
		}
	}
}

func TestTickRejectsInvalidTimeStep(t *testing.T) {
	f := newTestFluid(t, 10, 10, 0, 0, 0)
	f.PlaceSource(5, 5, 1, 1, 1)

	for _, dt := range []float32{0, -0.1, float32(math.NaN()), float32(math.Inf(1)), float32(math.Inf(-1))} {
		if err := f.Tick(dt); !errors.Is(err, ErrInvalidTimeStep) {
			t.Errorf("Tick(%v) error = %v, want ErrInvalidTimeStep", dt, err)
		}
	}
	if total := f.TotalDensity(DensityRed); total != 0 {
		t.Errorf("rejected ticks changed density, total = %v", total)
	}
}

func TestZeroSteadyState(t *testing.T) {
	f := newTestFluid(t, 16, 12, 0.0002, 0.0001, 0.5)

	for step := 0; step < 50; step++ {
		if err := f.Tick(0.03); err != nil {
			t.Fatal(err)
		}
	}

	for n, field := range allFields(f) {
		for i, v := range field {
			if v != 0 {
				t.Fatalf("field %d cell %d = %v after idle ticks, want 0", n, i, v)
			}
		}
	}
}

func runScenario(t *testing.T) *Fluid {
	t.Helper()
	f := newTestFluid(t, 24, 18, 0.0002, 0.0001, 0.5)
	f.SetGravity(0, -10)
	f.PlaceSource(8, 6, 15, 3, 7)
	f.PlaceSource(15, 12, 2, 12, 1)
	for step := 0; step < 30; step++ {
		if step%5 == 0 {
			f.ApplyForce(12, 9, 40)
		}
		if step == 20 {
			f.EraseSource(8, 6)
		}
		if err := f.Tick(0.03); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

func TestDeterminism(t *testing.T) {
	a := runScenario(t)
	b := runScenario(t)

	for _, ch := range []Channel{DensityRed, DensityGreen, DensityBlue, VelocityU, VelocityV} {
		va, vb := a.Field(ch).Values(), b.Field(ch).Values()
		for i := range va {
			if math.Float32bits(va[i]) != math.Float32bits(vb[i]) {
				t.Fatalf("%v differs at cell %d: %v != %v", ch, i, va[i], vb[i])
			}
		}
	}
}

func TestSingleSourceTick(t *testing.T) {
	f := newTestFluid(t, 10, 10, 0, 0, 0)
	f.PlaceSource(5, 5, 10, 0, 0)

	if err := f.Tick(0.1); err != nil {
		t.Fatal(err)
	}

	stamp := map[[2]int]bool{{5, 5}: true, {4, 5}: true, {6, 5}: true, {5, 4}: true, {5, 6}: true}
	red := f.Field(DensityRed)
	for y := 1; y < f.NumY-1; y++ {
		for x := 1; x < f.NumX-1; x++ {
			got, err := red.Value(x, y)
			if err != nil {
				t.Fatal(err)
			}
			want := float32(0)
			if stamp[[2]int{x, y}] {
				want = 1
			}
			if !approxEqual(got, want, 1e-5) {
				t.Errorf("red density at (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if total := f.TotalDensity(DensityGreen) + f.TotalDensity(DensityBlue); total != 0 {
		t.Errorf("green+blue density = %v, want 0", total)
	}
}

func TestDecayIsMonotonic(t *testing.T) {
	const (
		rate = 1.0
		dt   = 0.125
	)
	f := newTestFluid(t, 10, 10, 0, 0, rate)
	f.PlaceSource(5, 5, 8, 0, 0)
	if err := f.Tick(dt); err != nil {
		t.Fatal(err)
	}
	f.ClearSources()

	i := f.idx(5, 5)
	initial := f.density[0].current()[i]
	if initial != 0.875 {
		t.Fatalf("density after first tick = %v, want 0.875", initial)
	}

	maxTicks := int(math.Ceil(float64(initial) / (rate * dt)))
	prev := initial
	for step := 1; step <= maxTicks; step++ {
		if err := f.Tick(dt); err != nil {
			t.Fatal(err)
		}
		cur := f.density[0].current()[i]
		if cur > prev {
			t.Fatalf("tick %d: density increased from %v to %v", step, prev, cur)
		}
		if cur < 0 {
			t.Fatalf("tick %d: density %v is negative", step, cur)
		}
		prev = cur
	}
	if prev != 0 {
		t.Errorf("density after %d ticks = %v, want 0", maxTicks, prev)
	}
}

func TestDiffusionConservesMass(t *testing.T) {
	f := newTestFluid(t, 20, 20, 0, 0.001, 0)
	d := make([]float32, f.numCells)
	d0 := make([]float32, f.numCells)
	for _, c := range [][2]int{{10, 10}, {9, 10}, {11, 10}, {10, 9}, {10, 11}} {
		d0[f.idx(c[0], c[1])] = 1
	}

	f.diffuse(BoundaryScalar, d, d0, f.diffusion, 0.1)

	interior := func(s []float32) float32 {
		total := float32(0)
		for y := 1; y < f.NumY-1; y++ {
			for x := 1; x < f.NumX-1; x++ {
				total += s[f.idx(x, y)]
			}
		}
		return total
	}
	before, after := interior(d0), interior(d)
	if !approxEqual(before, after, 1e-3) {
		t.Errorf("diffusion changed interior mass from %v to %v", before, after)
	}
	if centre := d[f.idx(10, 10)]; centre >= 1 || centre <= 0.9 {
		t.Errorf("centre after diffusion = %v, want slightly below 1", centre)
	}
	if neighbour := d[f.idx(12, 10)]; neighbour <= 0 {
		t.Errorf("expected density to spread to (12,10), got %v", neighbour)
	}
}

func sumSquaredDivergence(f *Fluid) float32 {
	u, v := f.u.current(), f.v.current()
	total := float32(0)
	for y := 1; y < f.NumY-1; y++ {
		for x := 1; x < f.NumX-1; x++ {
			d := f.divergenceAt(u, v, x, y)
			total += d * d
		}
	}
	return total
}

func TestProjectionReducesDivergence(t *testing.T) {
	f := newTestFluid(t, 16, 16, 0, 0, 0)
	u, v := f.u.current(), f.v.current()

	// Gaussian outflow centred on the grid.
	c := float64(f.NumX) / 2
	for y := 1; y < f.NumY-1; y++ {
		for x := 1; x < f.NumX-1; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			g := math.Exp(-(dx*dx + dy*dy) / 8)
			u[f.idx(x, y)] = float32(dx * g * 0.1)
			v[f.idx(x, y)] = float32(dy * g * 0.1)
		}
	}

	initialMean := f.Divergence()
	initialSq := sumSquaredDivergence(f)

	f.project(u, v, f.u.previous(), f.v.previous())

	finalMean := f.Divergence()
	finalSq := sumSquaredDivergence(f)
	if finalMean >= initialMean*0.5 {
		t.Errorf("mean divergence went from %v to %v, want at least halved", initialMean, finalMean)
	}
	if finalSq >= initialSq*0.2 {
		t.Errorf("squared divergence went from %v to %v, want a large reduction", initialSq, finalSq)
	}
}

func TestAdvectFollowsVelocity(t *testing.T) {
	f := newTestFluid(t, 12, 12, 0, 0, 0)
	dt := float32(0.1)
	d := make([]float32, f.numCells)
	d0 := make([]float32, f.numCells)
	u := make([]float32, f.numCells)
	v := make([]float32, f.numCells)

	// One cell per step to the right.
	speed := 1 / (dt * float32(f.NumX))
	for i := range u {
		u[i] = speed
	}
	d0[f.idx(4, 6)] = 1

	f.advect(BoundaryScalar, d, d0, u, v, dt)

	if got := d[f.idx(5, 6)]; !approxEqual(got, 1, 1e-4) {
		t.Errorf("density at (5,6) = %v, want 1", got)
	}
	if got := d[f.idx(4, 6)]; !approxEqual(got, 0, 1e-4) {
		t.Errorf("density at (4,6) = %v, want 0", got)
	}
}

func TestAdvectClampsBacktrace(t *testing.T) {
	f := newTestFluid(t, 8, 6, 0, 0, 0)
	d := make([]float32, f.numCells)
	d0 := make([]float32, f.numCells)
	u := make([]float32, f.numCells)
	v := make([]float32, f.numCells)
	for i := range d0 {
		d0[i] = 2
		u[i] = 1e6
		v[i] = -1e6
	}

	f.advect(BoundaryScalar, d, d0, u, v, 1)

	for i, val := range d {
		if !approxEqual(val, 2, 1e-5) {
			t.Fatalf("cell %d = %v, want 2", i, val)
		}
	}
}

func TestAdvectHandlesNaNVelocity(t *testing.T) {
	f := newTestFluid(t, 8, 6, 0, 0, 0)
	d := make([]float32, f.numCells)
	d0 := make([]float32, f.numCells)
	u := make([]float32, f.numCells)
	v := make([]float32, f.numCells)
	nan := float32(math.NaN())
	for i := range d0 {
		d0[i] = 3
		u[i] = nan
		v[i] = nan
	}

	f.advect(BoundaryScalar, d, d0, u, v, 1)

	// Every departure point collapses onto (0.5, 0.5), which still blends
	// in-grid cells.
	for i, val := range d {
		if !approxEqual(val, 3, 1e-5) {
			t.Fatalf("cell %d = %v, want 3", i, val)
		}
	}
}

func TestTickSurvivesExtremeInput(t *testing.T) {
	tests := []struct {
		name string
		edit func(f *Fluid)
	}{
		{"huge force", func(f *Fluid) {
			f.ApplyForce(5, 5, math.MaxFloat32)
		}},
		{"infinite source with gravity", func(f *Fluid) {
			f.PlaceSource(5, 5, float32(math.Inf(1)), 0, 0)
			f.SetGravity(0, -10)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFluid(t, 10, 10, 0.0002, 0.0001, 0.5)
			tt.edit(f)
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Tick panicked: %v", r)
				}
			}()
			for i := 0; i < 3; i++ {
				if err := f.Tick(0.03); err != nil {
					t.Fatalf("tick %d: %v", i, err)
				}
			}
		})
	}
}

func TestClampCoord(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{-3, 0.5},
		{0.5, 0.5},
		{2.25, 2.25},
		{9, 6.499},
		{float32(math.Inf(1)), 6.499},
		{float32(math.Inf(-1)), 0.5},
		{float32(math.NaN()), 0.5},
	}
	for _, tt := range tests {
		if got := clampCoord(tt.in, 0.5, 6.499); got != tt.want {
			t.Errorf("clampCoord(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestForceTransportsDensity(t *testing.T) {
	f := newTestFluid(t, 20, 20, 0.0002, 0.0001, 0.5)
	f.PlaceSource(10, 10, 15, 0, 0)
	f.ApplyForce(10, 10, 40)

	for step := 0; step < 5; step++ {
		if err := f.Tick(0.03); err != nil {
			t.Fatal(err)
		}
	}

	stamp := map[[2]int]bool{{10, 10}: true, {9, 10}: true, {11, 10}: true, {10, 9}: true, {10, 11}: true}
	red := f.density[0].current()
	moved := false
	for y := 1; y < f.NumY-1; y++ {
		for x := 1; x < f.NumX-1; x++ {
			if !stamp[[2]int{x, y}] && red[f.idx(x, y)] > 0.01 {
				moved = true
			}
		}
	}
	if !moved {
		t.Error("expected the force to carry density outside the source stamp")
	}
	for _, ch := range []Channel{VelocityU, VelocityV} {
		field := f.Field(ch)
		if math.IsNaN(float64(field.MaxValue)) || math.IsNaN(float64(field.MinValue)) {
			t.Errorf("%v contains NaN", ch)
		}
	}
}

func TestGravityMovesDensity(t *testing.T) {
	centroidY := func(f *Fluid) float32 {
		d := f.density[0].current()
		var total, weighted float32
		for y := 1; y < f.NumY-1; y++ {
			for x := 1; x < f.NumX-1; x++ {
				total += d[f.idx(x, y)]
				weighted += float32(y) * d[f.idx(x, y)]
			}
		}
		return weighted / total
	}

	still := newTestFluid(t, 20, 20, 0, 0, 0)
	still.PlaceSource(10, 5, 10, 10, 10)
	falling := newTestFluid(t, 20, 20, 0, 0, 0)
	falling.PlaceSource(10, 5, 10, 10, 10)
	falling.SetGravity(0, -10)

	for step := 0; step < 10; step++ {
		if err := still.Tick(0.03); err != nil {
			t.Fatal(err)
		}
		if err := falling.Tick(0.03); err != nil {
			t.Fatal(err)
		}
	}

	if got := centroidY(still); !approxEqual(got, 5, 1e-3) {
		t.Errorf("centroid without gravity = %v, want 5", got)
	}
	if got := centroidY(falling); got <= 5.5 {
		t.Errorf("centroid with gravity = %v, want it to move past 5.5", got)
	}
}

func TestTickRestoresBufferRoles(t *testing.T) {
	f := newTestFluid(t, 10, 10, 0.001, 0.001, 0.1)
	f.PlaceSource(5, 5, 1, 2, 3)
	if err := f.Tick(0.03); err != nil {
		t.Fatal(err)
	}

	for c := range f.density {
		if f.density[c].cur != 0 {
			t.Errorf("density %d current slot = %d, want 0", c, f.density[c].cur)
		}
	}
	if f.u.cur != 0 || f.v.cur != 0 {
		t.Errorf("velocity current slots = %d, %d, want 0", f.u.cur, f.v.cur)
	}
}

func TestTickHook(t *testing.T) {
	f := newTestFluid(t, 10, 10, 0, 0, 0)
	var started, finished int
	var seen float32
	f.SetTickHook(func(dt float32) func() {
		started++
		seen = dt
		return func() { finished++ }
	})

	for i := 0; i < 3; i++ {
		if err := f.Tick(0.25); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.Tick(-1); err == nil {
		t.Fatal("expected error for negative dt")
	}

	if started != 3 || finished != 3 {
		t.Errorf("hook called %d/%d times, want 3/3", started, finished)
	}
	if seen != 0.25 {
		t.Errorf("hook saw dt = %v, want 0.25", seen)
	}

	f.SetTickHook(nil)
	if err := f.Tick(0.25); err != nil {
		t.Fatal(err)
	}
	if started != 3 {
		t.Errorf("removed hook was still called")
	}
}

func TestBufferSwap(t *testing.T) {
	b := newBuffer(4)
	b.current()[0] = 1
	b.previous()[0] = 2

	b.swap()
	if b.current()[0] != 2 || b.previous()[0] != 1 {
		t.Errorf("after swap current = %v, previous = %v", b.current()[0], b.previous()[0])
	}
	b.swap()
	if b.current()[0] != 1 {
		t.Errorf("double swap did not restore roles")
	}

	b.clear()
	if b.current()[0] != 0 || b.previous()[0] != 0 {
		t.Errorf("clear left values behind")
	}
}
