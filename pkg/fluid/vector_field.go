package fluid

import "fmt"

// VectorField is a read-only copy of the velocity field.
type VectorField struct {
	NumX, NumY       int
	valuesU, valuesV []float32
}

func (v VectorField) Value(x, y int) (float32, float32, error) {
	if x < 0 || x >= v.NumX {
		return 0.0, 0.0, fmt.Errorf("x index out of range, must be between 0 and %d", v.NumX-1)
	}
	if y < 0 || y >= v.NumY {
		return 0.0, 0.0, fmt.Errorf("y index out of range, must be between 0 and %d", v.NumY-1)
	}

	i := y*v.NumX + x
	return v.valuesU[i], v.valuesV[i], nil
}
