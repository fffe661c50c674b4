// Package scenario drives a fluid through a scripted session without a
// window: a source in the middle of the grid and a periodic swirl.
package scenario

import (
	"errors"
	"fmt"
	"io"

	"github.com/carmethene/fluidsim/pkg/fluid"
	"github.com/carmethene/fluidsim/pkg/stats"
)

// Config describes a scripted run.
type Config struct {
	Ticks         int
	Step          float32 // seconds per tick
	SourceDensity float32
	Push          float32
	ForceEvery    int // ticks between forces, 0 disables them

	// Progress, if set, is called after every tick with the tick number
	// (starting at 1) and the total density.
	Progress func(tick int, total float64)
}

// Report collects what a run produced.
type Report struct {
	Ticks         int
	Totals        []float64 // total density over all channels, per tick
	Red           stats.Summary
	MaxDivergence float32
}

var errNoTicks = errors.New("scenario needs at least one tick")

// Run plays cfg against f and reports the outcome. f is modified in place.
func Run(f *fluid.Fluid, cfg Config) (Report, error) {
	if cfg.Ticks <= 0 {
		return Report{}, errNoTicks
	}
	cx, cy := f.NumX/2, f.NumY/2
	f.PlaceSource(cx, cy, cfg.SourceDensity, cfg.SourceDensity/2, cfg.SourceDensity/4)

	rep := Report{Totals: make([]float64, 0, cfg.Ticks)}
	for tick := 1; tick <= cfg.Ticks; tick++ {
		if cfg.ForceEvery > 0 && (tick-1)%cfg.ForceEvery == 0 {
			f.ApplyForce(cx, cy, cfg.Push)
		}
		if err := f.Tick(cfg.Step); err != nil {
			return rep, fmt.Errorf("tick %d: %w", tick, err)
		}
		total := float64(f.TotalDensity(fluid.DensityRed)) +
			float64(f.TotalDensity(fluid.DensityGreen)) +
			float64(f.TotalDensity(fluid.DensityBlue))
		rep.Totals = append(rep.Totals, total)
		rep.Ticks = tick
		if cfg.Progress != nil {
			cfg.Progress(tick, total)
		}
	}

	rep.Red = stats.Summarize(f.Field(fluid.DensityRed).Values())
	rep.MaxDivergence = f.MaxDivergence()
	return rep, nil
}

// Write prints a chart of the density totals followed by the final numbers.
func (r Report) Write(w io.Writer) error {
	history := stats.NewHistory(256)
	for _, v := range r.Totals {
		history.Add(v)
	}
	if _, err := fmt.Fprintln(w, stats.Plot(history.Values(), "total density per tick")); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nticks: %d\nred density: %v\nmax divergence: %.6f\n",
		r.Ticks, r.Red, r.MaxDivergence)
	return err
}
