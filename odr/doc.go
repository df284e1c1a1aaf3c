// Package odr implements orthogonal distance regression (ODR).
//
// Ordinary least squares assumes the independent variable is exact and
// minimizes only the y residuals. ODR accounts for measurement error in both
// variables: for a model y = f(β; x) it estimates the parameters β together
// with a correction δ for every x value, minimizing
//
//	S(β, δ) = Σ wy_i (f(β; x_i + δ_i) - y_i)² + wx_i δ_i²
//
// where wx and wy are the weights of the two axes (1/σ² for standard
// deviations σ).
//
// # Basic Usage
//
//	line := func(b []float64, x float64) float64 { return b[0] + b[1]*x }
//
//	data, err := odr.NewRealData(x, y, sx, sy) // sx or sy may be nil
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := odr.Solve(odr.Model{Func: line}, data, []float64{0, 1}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Beta, res.SdBeta)
//	res.WriteReport(os.Stdout)
//
// # Algorithm
//
// The solver is a Levenberg-Marquardt iteration on the joint (β, δ)
// problem. Because every δ_i only enters the residuals of point i, the δ
// part of the normal equations is diagonal and is eliminated point by point,
// leaving a p×p system per iteration. The damping is scaled by the
// diagonal of the normal matrix and adapted from the ratio of the actual to
// the predicted reduction of the sum of squares. Derivatives are taken from
// the Model when given, by central finite differences otherwise.
//
// Setting Settings.Method to LeastSquares fixes δ at zero and turns the
// solver into a weighted nonlinear least squares fit.
//
// # Output
//
// Result mirrors the output of ODRPACK: CovBeta is the covariance matrix
// not scaled by the residual variance, SdBeta the scaled standard errors.
package odr
