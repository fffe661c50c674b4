// Package stats summarises fluid fields for logs and terminal reports.
package stats

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"
)

// Summary describes the values of one field.
type Summary struct {
	Sum, Min, Max, Mean float64
}

func (s Summary) String() string {
	return fmt.Sprintf("sum=%.4f min=%.4f max=%.4f mean=%.4f", s.Sum, s.Min, s.Max, s.Mean)
}

// Summarize computes a Summary of values. An empty slice gives the zero
// Summary.
func Summarize(values []float32) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	wide := make([]float64, len(values))
	for i, v := range values {
		wide[i] = float64(v)
	}
	sum := floats.Sum(wide)
	return Summary{
		Sum:  sum,
		Min:  floats.Min(wide),
		Max:  floats.Max(wide),
		Mean: sum / float64(len(wide)),
	}
}

// History keeps the most recent samples of a series, oldest first.
type History struct {
	samples []float64
	limit   int
}

// NewHistory returns a History holding at most limit samples.
func NewHistory(limit int) *History {
	return &History{limit: max(limit, 1)}
}

// Add appends v, dropping the oldest sample once the history is full.
func (h *History) Add(v float64) {
	if len(h.samples) == h.limit {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:len(h.samples)-1]
	}
	h.samples = append(h.samples, v)
}

// Values returns a copy of the samples, oldest first.
func (h *History) Values() []float64 {
	return append([]float64(nil), h.samples...)
}

// Len returns the number of samples held.
func (h *History) Len() int { return len(h.samples) }

// Plot draws values as a terminal line chart.
func Plot(values []float64, caption string) string {
	if len(values) == 0 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(10),
		asciigraph.Width(min(len(values), 72)),
		asciigraph.Caption(caption))
}
