// Package render turns fluid snapshots into RGBA pixels for display.
package render

import (
	"fmt"
	"math"

	"github.com/carmethene/fluidsim/pkg/fluid"
	"github.com/lucasb-eyer/go-colorful"
)

// Options controls what Draw shows. Sources are drawn over velocity, which
// is drawn over density.
type Options struct {
	ClampColours bool
	ShowSources  bool
	ShowVelocity bool
	Palette      Palette
}

// Renderer keeps one colour per simulation cell and the upscaled display
// pixels built from them.
type Renderer struct {
	simW, simH int
	scale      int
	width      int
	height     int

	cells  []colorful.Color
	pixels []byte

	fields [8][]float32
}

// New returns a renderer for a simW x simH fluid displayed scale times
// larger. The display drops the last cell row and column, which only feed
// the interpolation.
func New(simW, simH, scale int) (*Renderer, error) {
	if simW < 2 || simH < 2 {
		return nil, fmt.Errorf("simulation size %dx%d too small to render", simW, simH)
	}
	if scale < 1 {
		return nil, fmt.Errorf("invalid scale %d, must be at least 1", scale)
	}
	w := simW*scale - scale
	h := simH*scale - scale
	return &Renderer{
		simW:   simW,
		simH:   simH,
		scale:  scale,
		width:  w,
		height: h,
		cells:  make([]colorful.Color, simW*simH),
		pixels: make([]byte, w*h*4),
	}, nil
}

// Size returns the display size in pixels.
func (r *Renderer) Size() (w, h int) { return r.width, r.height }

// Pixels returns the RGBA bytes of the last Upscale, row by row.
func (r *Renderer) Pixels() []byte { return r.pixels }

// Cell returns the colour computed for cell (x, y) by the last Draw.
func (r *Renderer) Cell(x, y int) colorful.Color { return r.cells[y*r.simW+x] }

// CellAt maps a display pixel to the simulation cell under it.
func (r *Renderer) CellAt(px, py int) (x, y int) {
	x = min(max(px, 0)/r.scale, r.simW-1)
	y = min(max(py, 0)/r.scale, r.simH-1)
	return x, y
}

func (r *Renderer) read(f *fluid.Fluid, ch fluid.Channel) []float32 {
	r.fields[ch] = f.CopyField(r.fields[ch], ch)
	return r.fields[ch]
}

// Draw computes one colour per cell from the current state of f.
func (r *Renderer) Draw(f *fluid.Fluid, opts Options) error {
	if f.NumX != r.simW || f.NumY != r.simH {
		return fmt.Errorf("fluid is %dx%d, renderer expects %dx%d", f.NumX, f.NumY, r.simW, r.simH)
	}
	dr := r.read(f, fluid.DensityRed)
	dg := r.read(f, fluid.DensityGreen)
	db := r.read(f, fluid.DensityBlue)

	for i := range r.cells {
		cr, cg, cb := dr[i], dg[i], db[i]
		if opts.ClampColours {
			if cmax := max(cr, cg, cb); cmax > 1 {
				cr /= cmax
				cg /= cmax
				cb /= cmax
			}
		}
		r.cells[i] = colorful.Color{R: float64(cr), G: float64(cg), B: float64(cb)}
	}

	if opts.ShowVelocity {
		r.drawVelocity(f, opts.Palette)
	}
	if opts.ShowSources {
		r.drawSources(f)
	}
	return nil
}

func (r *Renderer) drawVelocity(f *fluid.Fluid, palette Palette) {
	u := r.read(f, fluid.VelocityU)
	v := r.read(f, fluid.VelocityV)

	speed := func(i int) float32 {
		return float32(math.Abs(float64(u[i])) + math.Abs(float64(v[i]))/2)
	}

	switch palette {
	case PaletteSci:
		top := float32(1e-6)
		for i := range r.cells {
			top = max(top, speed(i))
		}
		for i := range r.cells {
			r.cells[i] = sciColor(speed(i), 0, top)
		}
	default:
		for i := range r.cells {
			s := float64(speed(i))
			r.cells[i] = colorful.Color{R: s, G: s, B: s}
		}
	}
}

// drawSources shows every cell holding a source in the source's colour,
// normalised so its strongest channel is 1.
func (r *Renderer) drawSources(f *fluid.Fluid) {
	sr := r.read(f, fluid.SourceRed)
	sg := r.read(f, fluid.SourceGreen)
	sb := r.read(f, fluid.SourceBlue)

	for i := range r.cells {
		smax := max(sr[i], sg[i], sb[i])
		if smax <= 0 {
			continue
		}
		r.cells[i] = colorful.Color{
			R: float64(sr[i] / smax),
			G: float64(sg[i] / smax),
			B: float64(sb[i] / smax),
		}
	}
}

// Upscale bilinearly interpolates the cell colours into the display pixels.
func (r *Renderer) Upscale() {
	rowBands(r.height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			r.upscaleRow(y)
		}
	})
}

func (r *Renderer) upscaleRow(y int) {
	scale := float64(r.scale)
	fy := float64(y) / scale
	iy := math.Floor(fy)
	yRatio := fy - iy
	row := int(iy) * r.simW

	for x := 0; x < r.width; x++ {
		fx := float64(x) / scale
		ix := math.Floor(fx)
		xRatio := fx - ix
		i := row + int(ix)

		top := r.cells[i].BlendRgb(r.cells[i+1], xRatio)
		bottom := r.cells[i+r.simW].BlendRgb(r.cells[i+r.simW+1], xRatio)
		cr, cg, cb := top.BlendRgb(bottom, yRatio).Clamped().RGB255()

		p := (y*r.width + x) * 4
		r.pixels[p] = cr
		r.pixels[p+1] = cg
		r.pixels[p+2] = cb
		r.pixels[p+3] = 0xff
	}
}
