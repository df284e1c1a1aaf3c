package odr

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// StopReason describes why the iteration halted.
type StopReason int

const (
	StopNone StopReason = iota
	StopSumSquares
	StopParameters
	StopZeroResidual
	StopIterationLimit
	StopNumerical
	StopSingular
)

func (r StopReason) String() string {
	switch r {
	case StopSumSquares:
		return "Sum of squares convergence"
	case StopParameters:
		return "Parameter convergence"
	case StopZeroResidual:
		return "Sum of squares is zero"
	case StopIterationLimit:
		return "Iteration limit reached"
	case StopNumerical:
		return "Numerical error detected"
	case StopSingular:
		return "Singular normal matrix"
	}
	return "Not started"
}

// Converged reports whether the reason is a successful termination.
func (r StopReason) Converged() bool {
	return r == StopSumSquares || r == StopParameters || r == StopZeroResidual
}

// Result holds the output of a fit.
type Result struct {
	Method Method

	Beta    []float64     // Estimated parameters
	SdBeta  []float64     // Standard errors of the parameters
	CovBeta *mat.SymDense // Parameter covariance, not scaled by ResVar; nil if unavailable

	Delta []float64 // Estimated x corrections
	Eps   []float64 // y residuals f(β; x+δ) - y
	XPlus []float64 // x + δ
	YFit  []float64 // f(β; x+δ)

	SumSquares      float64 // Weighted sum of squares S
	SumSquaresDelta float64 // Delta part of S
	SumSquaresEps   float64 // Epsilon part of S
	ResVar          float64 // S / (n - p)
	InvCondNum      float64 // Inverse condition number of the Jacobian
	DOF             int     // n - p
	PValue          float64 // Chi-squared survival probability of S at DOF

	Iterations int
	FuncEvals  int
	Converged  bool
	Stop       StopReason
}

// Report returns the pretty-printed diagnostics.
func (r *Result) Report() string {
	var b strings.Builder
	r.WriteReport(&b)
	return b.String()
}

// WriteReport writes the pretty-printed diagnostics to w.
func (r *Result) WriteReport(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Beta: %s\n", formatVec(r.Beta))
	fmt.Fprintf(&b, "Beta Std Error: %s\n", formatVec(r.SdBeta))
	if r.CovBeta != nil {
		fmt.Fprintf(&b, "Beta Covariance: %s\n", formatSym(r.CovBeta))
	} else {
		b.WriteString("Beta Covariance: unavailable\n")
	}
	fmt.Fprintf(&b, "Residual Variance: %.8g\n", r.ResVar)
	fmt.Fprintf(&b, "Inverse Condition #: %.8g\n", r.InvCondNum)
	fmt.Fprintf(&b, "Sum of Squares: %.8g (delta %.8g, eps %.8g)\n", r.SumSquares, r.SumSquaresDelta, r.SumSquaresEps)
	fmt.Fprintf(&b, "Chi-squared p-value: %.8g (dof %d)\n", r.PValue, r.DOF)
	fmt.Fprintf(&b, "Method: %s, %d iterations, %d function evaluations\n", r.Method, r.Iterations, r.FuncEvals)
	b.WriteString("Reason(s) for Halting:\n")
	fmt.Fprintf(&b, "  %s\n", r.Stop)
	_, err := io.WriteString(w, b.String())
	return err
}

func formatVec(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.8g", x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatSym(m *mat.SymDense) string {
	n := m.SymmetricDim()
	rows := make([]string, n)
	for i := 0; i < n; i++ {
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			row[j] = m.At(i, j)
		}
		rows[i] = formatVec(row)
	}
	return "[" + strings.Join(rows, "\n ") + "]"
}
