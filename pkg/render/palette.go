package render

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette selects how the velocity view colours a cell.
type Palette int

const (
	// PaletteGrey shows speed as a grey level.
	PaletteGrey Palette = iota
	// PaletteSci maps speed onto a blue-cyan-green-yellow-red ramp scaled to
	// the fastest cell of the frame.
	PaletteSci
)

func (p Palette) String() string {
	switch p {
	case PaletteGrey:
		return "grey"
	case PaletteSci:
		return "sci"
	}
	return fmt.Sprintf("Palette(%d)", int(p))
}

// ParsePalette accepts the names returned by Palette.String.
func ParsePalette(name string) (Palette, error) {
	switch name {
	case "grey", "gray":
		return PaletteGrey, nil
	case "sci":
		return PaletteSci, nil
	}
	return 0, fmt.Errorf("unknown palette %q, want grey or sci", name)
}

// Next cycles through the palettes.
func (p Palette) Next() Palette {
	if p == PaletteSci {
		return PaletteGrey
	}
	return PaletteSci
}

// sciRamp runs from slow to fast.
var sciRamp = [...]colorful.Color{
	{R: 0, G: 0, B: 1}, // blue
	{R: 0, G: 1, B: 1}, // cyan
	{R: 0, G: 1, B: 0}, // green
	{R: 1, G: 1, B: 0}, // yellow
	{R: 1, G: 0, B: 0}, // red
}

// sciColor places val on sciRamp, lo at the blue end and hi at the red end.
// An empty range gives the middle of the ramp.
func sciColor(val, lo, hi float32) colorful.Color {
	t := 0.5
	if hi > lo {
		t = float64((min(max(val, lo), hi) - lo) / (hi - lo))
	}
	if !(t >= 0) {
		t = 0
	}
	last := len(sciRamp) - 1
	pos := t * float64(last)
	k := min(int(pos), last-1)
	return sciRamp[k].BlendRgb(sciRamp[k+1], pos-float64(k))
}
