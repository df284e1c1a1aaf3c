package measurement

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmpty is returned for samples without points.
	ErrEmpty = errors.New("measurement: sample has no points")
	// ErrLengthMismatch is returned when paired sequences differ in length.
	ErrLengthMismatch = errors.New("measurement: length mismatch")
	// ErrInvalidUncertainty is returned for negative or non-finite uncertainties.
	ErrInvalidUncertainty = errors.New("measurement: invalid uncertainty")
	// ErrNonFinite is returned for NaN or infinite x or y values.
	ErrNonFinite = errors.New("measurement: non-finite value")
)

// Sample represents paired x/y observations with optional uncertainties.
type Sample struct {
	Name string
	X    []float64
	Y    []float64
	XErr Uncertainty
	YErr Uncertainty
}

// New creates a sample from x and y values without uncertainties.
func New(x, y []float64) (*Sample, error) {
	s := &Sample{X: x, Y: y}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Len returns the number of points.
func (s *Sample) Len() int {
	return len(s.X)
}

// Validate checks lengths and uncertainties.
func (s *Sample) Validate() error {
	if len(s.X) != len(s.Y) {
		return fmt.Errorf("%w: %d x values, %d y values", ErrLengthMismatch, len(s.X), len(s.Y))
	}
	if len(s.X) == 0 {
		return ErrEmpty
	}
	for i := range s.X {
		if !finite(s.X[i]) || !finite(s.Y[i]) {
			return fmt.Errorf("%w: point %d is (%v, %v)", ErrNonFinite, i, s.X[i], s.Y[i])
		}
	}
	if err := s.XErr.Validate(len(s.X)); err != nil {
		return fmt.Errorf("x uncertainty: %w", err)
	}
	if err := s.YErr.Validate(len(s.X)); err != nil {
		return fmt.Errorf("y uncertainty: %w", err)
	}
	return nil
}

// XRange returns the minimum and maximum x value. It panics on an empty sample.
func (s *Sample) XRange() (min, max float64) {
	return floats.Min(s.X), floats.Max(s.X)
}

// YRange returns the minimum and maximum y value. It panics on an empty sample.
func (s *Sample) YRange() (min, max float64) {
	return floats.Min(s.Y), floats.Max(s.Y)
}

// Copy creates a deep copy of the sample.
func (s *Sample) Copy() *Sample {
	x := make([]float64, len(s.X))
	copy(x, s.X)
	y := make([]float64, len(s.Y))
	copy(y, s.Y)
	return &Sample{
		Name: s.Name,
		X:    x,
		Y:    y,
		XErr: copyUncertainty(s.XErr),
		YErr: copyUncertainty(s.YErr),
	}
}

func copyUncertainty(u Uncertainty) Uncertainty {
	if u.kind == kindPerPoint {
		return PerPoint(u.values)
	}
	return u
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
