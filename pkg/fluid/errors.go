package fluid

import "errors"

var (
	// ErrInvalidDimensions is returned by New for grids smaller than 3x3.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrInvalidParameter is returned by New for a negative or non-finite
	// viscosity, diffusion or decay rate.
	ErrInvalidParameter = errors.New("invalid fluid parameter")
	// ErrInvalidTimeStep is returned by Tick for a non-positive or
	// non-finite time step.
	ErrInvalidTimeStep = errors.New("invalid time step")
)
