package fluid

import "fmt"

// Channel names a field that can be read from a Fluid.
type Channel int

const (
	DensityRed Channel = iota
	DensityGreen
	DensityBlue
	VelocityU
	VelocityV
	SourceRed
	SourceGreen
	SourceBlue
)

const numColours = 3

var channelNames = [...]string{
	DensityRed:   "density-red",
	DensityGreen: "density-green",
	DensityBlue:  "density-blue",
	VelocityU:    "velocity-u",
	VelocityV:    "velocity-v",
	SourceRed:    "source-red",
	SourceGreen:  "source-green",
	SourceBlue:   "source-blue",
}

func (c Channel) String() string {
	if c < 0 || int(c) >= len(channelNames) {
		return fmt.Sprintf("Channel(%d)", int(c))
	}
	return channelNames[c]
}

// values returns the live slice backing ch. Only the current half of a
// buffer pair is ever handed out.
func (f *Fluid) values(ch Channel) []float32 {
	switch ch {
	case DensityRed, DensityGreen, DensityBlue:
		return f.density[ch-DensityRed].current()
	case VelocityU:
		return f.u.current()
	case VelocityV:
		return f.v.current()
	case SourceRed, SourceGreen, SourceBlue:
		return f.sources[ch-SourceRed]
	}
	panic(fmt.Sprintf("invalid channel: %d", ch))
}

// CopyField copies the field ch into dst, growing it if needed, and returns
// the result. Passing the previous result back in avoids allocating on every
// frame.
func (f *Fluid) CopyField(dst []float32, ch Channel) []float32 {
	src := f.values(ch)
	if cap(dst) < len(src) {
		dst = make([]float32, len(src))
	}
	dst = dst[:len(src)]
	copy(dst, src)
	return dst
}

// Field returns a snapshot of the field ch.
func (f *Fluid) Field(ch Channel) ScalarField {
	return newScalarField(f.NumX, f.NumY, f.CopyField(nil, ch))
}

// Velocity returns a snapshot of the velocity field.
func (f *Fluid) Velocity() VectorField {
	return VectorField{
		NumX:    f.NumX,
		NumY:    f.NumY,
		valuesU: f.CopyField(nil, VelocityU),
		valuesV: f.CopyField(nil, VelocityV),
	}
}
