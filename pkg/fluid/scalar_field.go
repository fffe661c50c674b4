package fluid

import (
	"fmt"
	"math"
)

// ScalarField is a read-only copy of one field, laid out row by row.
type ScalarField struct {
	NumX, NumY         int
	MinValue, MaxValue float32
	values             []float32
}

func newScalarField(numX, numY int, values []float32) ScalarField {
	minValue := float32(math.MaxFloat32)
	maxValue := float32(-math.MaxFloat32)
	for _, v := range values {
		minValue = min(minValue, v)
		maxValue = max(maxValue, v)
	}
	return ScalarField{
		NumX:     numX,
		NumY:     numY,
		MinValue: minValue,
		MaxValue: maxValue,
		values:   values,
	}
}

func (s ScalarField) Value(x, y int) (float32, error) {
	if x < 0 || x >= s.NumX {
		return 0.0, fmt.Errorf("x index out of range, must be between 0 and %d", s.NumX-1)
	}
	if y < 0 || y >= s.NumY {
		return 0.0, fmt.Errorf("y index out of range, must be between 0 and %d", s.NumY-1)
	}

	return s.values[y*s.NumX+x], nil
}

// Values returns the underlying cells. The slice belongs to the snapshot,
// not to the Fluid.
func (s ScalarField) Values() []float32 { return s.values }
