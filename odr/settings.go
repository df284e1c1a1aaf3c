package odr

import (
	"math"

	"github.com/sirupsen/logrus"
)

// Method selects the fit type.
type Method int

const (
	// ExplicitODR estimates corrections to x alongside the parameters.
	ExplicitODR Method = iota
	// LeastSquares keeps x exact and fits y residuals only.
	LeastSquares
)

func (m Method) String() string {
	switch m {
	case ExplicitODR:
		return "explicit ODR"
	case LeastSquares:
		return "ordinary least squares"
	}
	return "unknown"
}

// Settings holds the solver configuration.
type Settings struct {
	Method        Method
	MaxIterations int     // Maximum number of iterations (default: 50)
	SumSquaresTol float64 // Relative sum of squares reduction tolerance (default: 1e-12)
	ParameterTol  float64 // Relative parameter step tolerance (default: eps^(2/3))
	Tau           float64 // Initial damping relative to the normal matrix diagonal (default: 1e-3)
	Logger        logrus.FieldLogger
}

// DefaultSettings returns the default solver settings.
func DefaultSettings() *Settings {
	eps := math.Nextafter(1, 2) - 1
	return &Settings{
		Method:        ExplicitODR,
		MaxIterations: 50,
		SumSquaresTol: 1e-12,
		ParameterTol:  math.Pow(eps, 2.0/3),
		Tau:           1e-3,
		Logger:        logrus.StandardLogger(),
	}
}

// withDefaults fills zero fields from DefaultSettings.
func (s *Settings) withDefaults() *Settings {
	d := DefaultSettings()
	if s == nil {
		return d
	}
	out := *s
	if out.MaxIterations <= 0 {
		out.MaxIterations = d.MaxIterations
	}
	if out.SumSquaresTol <= 0 {
		out.SumSquaresTol = d.SumSquaresTol
	}
	if out.ParameterTol <= 0 {
		out.ParameterTol = d.ParameterTol
	}
	if out.Tau <= 0 {
		out.Tau = d.Tau
	}
	if out.Logger == nil {
		out.Logger = d.Logger
	}
	return &out
}
