package measurement

import "fmt"

type uncertaintyKind uint8

const (
	kindNone uncertaintyKind = iota
	kindScalar
	kindPerPoint
)

// Uncertainty is the standard deviation attached to one axis of a sample.
// The zero value means no uncertainty was given.
type Uncertainty struct {
	kind   uncertaintyKind
	scalar float64
	values []float64
}

// None returns an absent uncertainty.
func None() Uncertainty {
	return Uncertainty{}
}

// Scalar returns an uncertainty shared by every point.
func Scalar(v float64) Uncertainty {
	return Uncertainty{kind: kindScalar, scalar: v}
}

// PerPoint returns an uncertainty with one value per point.
// The slice is copied.
func PerPoint(values []float64) Uncertainty {
	vs := make([]float64, len(values))
	copy(vs, values)
	return Uncertainty{kind: kindPerPoint, values: vs}
}

// IsSet reports whether an uncertainty was given.
func (u Uncertainty) IsSet() bool {
	return u.kind != kindNone
}

// IsScalar reports whether the uncertainty is broadcast from a single value.
func (u Uncertainty) IsScalar() bool {
	return u.kind == kindScalar
}

// Values expands the uncertainty to n values. It returns nil when the
// uncertainty is absent.
func (u Uncertainty) Values(n int) []float64 {
	switch u.kind {
	case kindScalar:
		vs := make([]float64, n)
		for i := range vs {
			vs[i] = u.scalar
		}
		return vs
	case kindPerPoint:
		vs := make([]float64, len(u.values))
		copy(vs, u.values)
		return vs
	}
	return nil
}

// Validate checks the uncertainty against a sample of n points.
func (u Uncertainty) Validate(n int) error {
	switch u.kind {
	case kindScalar:
		if !finite(u.scalar) || u.scalar < 0 {
			return fmt.Errorf("%w: scalar uncertainty %v", ErrInvalidUncertainty, u.scalar)
		}
	case kindPerPoint:
		if len(u.values) != n {
			return fmt.Errorf("%w: %d uncertainties for %d points", ErrLengthMismatch, len(u.values), n)
		}
		for i, v := range u.values {
			if !finite(v) || v < 0 {
				return fmt.Errorf("%w: uncertainty %v at index %d", ErrInvalidUncertainty, v, i)
			}
		}
	}
	return nil
}

// String implements fmt.Stringer.
func (u Uncertainty) String() string {
	switch u.kind {
	case kindScalar:
		return fmt.Sprintf("±%g", u.scalar)
	case kindPerPoint:
		return fmt.Sprintf("±[%d values]", len(u.values))
	}
	return "none"
}
