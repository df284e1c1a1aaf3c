package odr

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidProblem is returned for malformed models, data or starting values.
	ErrInvalidProblem = errors.New("odr: invalid problem")
	// ErrNotConverged is returned when the iteration limit is reached.
	ErrNotConverged = errors.New("odr: iteration limit reached without convergence")
	// ErrSingular is returned when the normal equations cannot be solved.
	ErrSingular = errors.New("odr: singular normal matrix")
	// ErrNumerical is returned when the model produces non-finite values.
	ErrNumerical = errors.New("odr: numerical error")
)

// Func is a model function evaluated at a single x value.
type Func func(beta []float64, x float64) float64

// Model is the function to fit with optional analytic derivatives.
type Model struct {
	Func Func

	// JacBeta stores df/dβ_j at x into dst. Optional.
	JacBeta func(dst, beta []float64, x float64)

	// JacX returns df/dx at x. Optional.
	JacX func(beta []float64, x float64) float64
}

// Eval evaluates the model at every x.
func (m Model) Eval(beta, x []float64) []float64 {
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = m.Func(beta, xi)
	}
	return y
}

// Data holds observations and the weights of both axes.
// Nil weights mean unit weights.
type Data struct {
	X  []float64
	Y  []float64
	WX []float64
	WY []float64
}

// NewRealData creates Data from standard deviations of x and y.
// Either sx or sy may be nil. Weights are 1/s².
func NewRealData(x, y, sx, sy []float64) (*Data, error) {
	d := &Data{X: x, Y: y}
	var err error
	if sx != nil {
		if d.WX, err = weights(sx); err != nil {
			return nil, fmt.Errorf("x: %w", err)
		}
	}
	if sy != nil {
		if d.WY, err = weights(sy); err != nil {
			return nil, fmt.Errorf("y: %w", err)
		}
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Len returns the number of observations.
func (d *Data) Len() int {
	return len(d.X)
}

func weights(sd []float64) ([]float64, error) {
	w := make([]float64, len(sd))
	for i, s := range sd {
		if !(s > 0) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("%w: standard deviation %v at index %d must be positive", ErrInvalidProblem, s, i)
		}
		w[i] = 1 / (s * s)
	}
	return w, nil
}

func (d *Data) validate() error {
	n := len(d.X)
	if n == 0 {
		return fmt.Errorf("%w: no observations", ErrInvalidProblem)
	}
	if len(d.Y) != n {
		return fmt.Errorf("%w: %d x values, %d y values", ErrInvalidProblem, n, len(d.Y))
	}
	for _, w := range [][]float64{d.WX, d.WY} {
		if w == nil {
			continue
		}
		if len(w) != n {
			return fmt.Errorf("%w: %d weights for %d observations", ErrInvalidProblem, len(w), n)
		}
		for i, v := range w {
			if !(v > 0) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: weight %v at index %d", ErrInvalidProblem, v, i)
			}
		}
	}
	for i := range d.X {
		if !finite(d.X[i]) || !finite(d.Y[i]) {
			return fmt.Errorf("%w: observation %d is not finite", ErrInvalidProblem, i)
		}
	}
	return nil
}

func (d *Data) wx(i int) float64 {
	if d.WX == nil {
		return 1
	}
	return d.WX[i]
}

func (d *Data) wy(i int) float64 {
	if d.WY == nil {
		return 1
	}
	return d.WY[i]
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
