package odr

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// diffStep is the relative step of central differences, eps^(1/3).
const diffStep = 6.055454452393343e-06

// Bounds of the damping parameter, relative to the scaled normal matrix.
const (
	lambdaMin = 1e-16
	lambdaMax = 1e16
)

type solver struct {
	model    Model
	data     *Data
	settings *Settings
	log      logrus.FieldLogger
	odr      bool
	n, p     int

	beta  []float64
	delta []float64
	eps   []float64
	ss    float64

	jb   [][]float64 // df/dβ at every point
	jx   []float64   // df/dx at every point
	nfev int

	dBeta  []float64 // Marquardt scaling of β
	dDelta []float64 // Marquardt scaling of δ
}

// Solve fits model to data starting from beta0.
//
// On ErrNotConverged the returned Result is non-nil and holds the last
// iterate. On ErrSingular or ErrNumerical found during the iteration the
// Result is non-nil but has no covariance.
func Solve(model Model, data *Data, beta0 []float64, settings *Settings) (*Result, error) {
	if model.Func == nil {
		return nil, fmt.Errorf("%w: nil model function", ErrInvalidProblem)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: nil data", ErrInvalidProblem)
	}
	if err := data.validate(); err != nil {
		return nil, err
	}
	if len(beta0) == 0 {
		return nil, fmt.Errorf("%w: no parameters", ErrInvalidProblem)
	}
	for j, b := range beta0 {
		if !finite(b) {
			return nil, fmt.Errorf("%w: initial parameter %d is not finite", ErrInvalidProblem, j)
		}
	}

	s := newSolver(model, data, beta0, settings.withDefaults())
	return s.run()
}

func newSolver(model Model, data *Data, beta0 []float64, settings *Settings) *solver {
	n, p := data.Len(), len(beta0)
	s := &solver{
		model:    model,
		data:     data,
		settings: settings,
		log:      settings.Logger,
		odr:      settings.Method == ExplicitODR,
		n:        n,
		p:        p,
		beta:     make([]float64, p),
		delta:    make([]float64, n),
		eps:      make([]float64, n),
		jb:       make([][]float64, n),
		jx:       make([]float64, n),
		dBeta:    make([]float64, p),
		dDelta:   make([]float64, n),
	}
	copy(s.beta, beta0)
	for i := range s.jb {
		s.jb[i] = make([]float64, p)
	}
	return s
}

func (s *solver) run() (*Result, error) {
	ss, ok := s.evaluate(s.beta, s.delta, s.eps)
	if !ok {
		return nil, fmt.Errorf("%w: model is not finite at the starting parameters", ErrNumerical)
	}
	s.ss = ss

	trialBeta := make([]float64, s.p)
	trialDelta := make([]float64, s.n)
	trialEps := make([]float64, s.n)

	stop := StopNone
	lambda, nu := s.settings.Tau, 2.0
	iter := 0

iterations:
	for iter < s.settings.MaxIterations {
		if s.ss == 0 {
			stop = StopZeroResidual
			break
		}
		if err := s.derivatives(); err != nil {
			return s.fail(iter, StopNumerical, err)
		}
		s.updateScale()
		iter++

		var lastErr error
		for {
			dbeta, ddelta, err := s.step(lambda)
			if err == nil {
				for j := range trialBeta {
					trialBeta[j] = s.beta[j] + dbeta[j]
				}
				for i := range trialDelta {
					trialDelta[i] = s.delta[i] + ddelta[i]
				}
				newSS, ok := s.evaluate(trialBeta, trialDelta, trialEps)
				small := s.smallStep(dbeta)

				if ok && newSS < s.ss {
					rho := 0.0
					if pred := s.predicted(dbeta, ddelta); pred > 0 {
						rho = (s.ss - newSS) / pred
					}
					prev := s.ss
					s.beta, trialBeta = trialBeta, s.beta
					s.delta, trialDelta = trialDelta, s.delta
					s.eps, trialEps = trialEps, s.eps
					s.ss = newSS
					lambda = math.Max(lambda*math.Max(1.0/3, 1-math.Pow(2*rho-1, 3)), lambdaMin)
					nu = 2

					s.log.WithFields(logrus.Fields{
						"iteration":   iter,
						"sum_squares": newSS,
						"lambda":      lambda,
					}).Debug("odr: step accepted")

					switch {
					case newSS == 0:
						stop = StopZeroResidual
					case prev-newSS <= s.settings.SumSquaresTol*prev:
						stop = StopSumSquares
					case small:
						stop = StopParameters
					}
					if stop != StopNone {
						break iterations
					}
					continue iterations
				}
				if ok && small {
					stop = StopParameters
					break iterations
				}
				lastErr = ErrNumerical
				if ok {
					lastErr = nil
				}
			} else {
				lastErr = err
			}

			lambda *= nu
			nu *= 2
			if lambda > lambdaMax {
				if lastErr == nil {
					// No descent direction left at this damping.
					stop = StopParameters
					break iterations
				}
				if errors.Is(lastErr, ErrSingular) {
					return s.fail(iter, StopSingular, lastErr)
				}
				return s.fail(iter, StopNumerical, lastErr)
			}
		}
	}

	if stop == StopNone {
		stop = StopIterationLimit
	}
	return s.finish(iter, stop)
}

// evaluate computes residuals into eps and returns the weighted sum of
// squares. It reports false when any residual is not finite.
func (s *solver) evaluate(beta, delta, eps []float64) (float64, bool) {
	s.nfev++
	ss := 0.0
	for i := 0; i < s.n; i++ {
		e := s.model.Func(beta, s.data.X[i]+delta[i]) - s.data.Y[i]
		if !finite(e) {
			return 0, false
		}
		eps[i] = e
		ss += s.data.wy(i) * e * e
		if s.odr {
			ss += s.data.wx(i) * delta[i] * delta[i]
		}
	}
	return ss, finite(ss)
}

// derivatives refreshes jb and jx at the current iterate.
func (s *solver) derivatives() error {
	bp := make([]float64, s.p)
	copy(bp, s.beta)

	for i := 0; i < s.n; i++ {
		xi := s.data.X[i] + s.delta[i]
		row := s.jb[i]

		if s.model.JacBeta != nil {
			s.model.JacBeta(row, s.beta, xi)
		} else {
			for j, b := range s.beta {
				h := diffStep * math.Max(math.Abs(b), 1)
				h = (b + h) - b
				bp[j] = b + h
				fp := s.model.Func(bp, xi)
				bp[j] = b - h
				fm := s.model.Func(bp, xi)
				bp[j] = b
				row[j] = (fp - fm) / (2 * h)
			}
			s.nfev += 2 * s.p
		}

		if s.odr {
			if s.model.JacX != nil {
				s.jx[i] = s.model.JacX(s.beta, xi)
			} else {
				h := diffStep * math.Max(math.Abs(xi), 1)
				h = (xi + h) - xi
				s.jx[i] = (s.model.Func(s.beta, xi+h) - s.model.Func(s.beta, xi-h)) / (2 * h)
				s.nfev += 2
			}
			if !finite(s.jx[i]) {
				return fmt.Errorf("%w: df/dx is not finite at point %d", ErrNumerical, i)
			}
		}
		for j, v := range row {
			if !finite(v) {
				return fmt.Errorf("%w: df/dβ%d is not finite at point %d", ErrNumerical, j, i)
			}
		}
	}
	return nil
}

// updateScale sets the Marquardt scaling to the diagonal of the undamped
// joint normal matrix at the current iterate.
func (s *solver) updateScale() {
	for j := 0; j < s.p; j++ {
		sum := 0.0
		for i := 0; i < s.n; i++ {
			sum += s.data.wy(i) * s.jb[i][j] * s.jb[i][j]
		}
		s.dBeta[j] = sum
	}
	if s.odr {
		for i := 0; i < s.n; i++ {
			d := s.jx[i]
			s.dDelta[i] = s.data.wy(i)*d*d + s.data.wx(i)
		}
	}
}

// predicted returns the reduction of the sum of squares predicted by the
// linearized model for the step (dbeta, ddelta).
func (s *solver) predicted(dbeta, ddelta []float64) float64 {
	pred := 0.0
	for i := 0; i < s.n; i++ {
		lin := s.eps[i]
		for j, v := range s.jb[i] {
			lin += v * dbeta[j]
		}
		if s.odr {
			lin += s.jx[i] * ddelta[i]
			nd := s.delta[i] + ddelta[i]
			pred += s.data.wx(i) * (s.delta[i]*s.delta[i] - nd*nd)
		}
		pred += s.data.wy(i) * (s.eps[i]*s.eps[i] - lin*lin)
	}
	return pred
}

// normal builds the reduced normal matrix Σ ω_i J_iᵀJ_i and the weights ω
// for damping lambda, with the δ unknowns eliminated point by point.
// The δ damping of point i is lambda·dDelta[i].
func (s *solver) normal(lambda float64) (*mat.SymDense, []float64) {
	a := mat.NewSymDense(s.p, nil)
	omega := make([]float64, s.n)
	for i := 0; i < s.n; i++ {
		wy := s.data.wy(i)
		omega[i] = wy
		if s.odr {
			wx := s.data.wx(i)
			d := s.jx[i]
			mu := lambda * s.dDelta[i]
			omega[i] = wy * (wx + mu) / (wy*d*d + wx + mu)
		}
		row := s.jb[i]
		for j := 0; j < s.p; j++ {
			for k := j; k < s.p; k++ {
				a.SetSym(j, k, a.At(j, k)+omega[i]*row[j]*row[k])
			}
		}
	}
	return a, omega
}

// step solves the damped normal equations for the updates of β and δ.
func (s *solver) step(lambda float64) (dbeta, ddelta []float64, err error) {
	a, omega := s.normal(lambda)
	for j := 0; j < s.p; j++ {
		a.SetSym(j, j, a.At(j, j)+lambda*s.dBeta[j])
	}

	g := mat.NewVecDense(s.p, nil)
	for i := 0; i < s.n; i++ {
		r := omega[i] * s.eps[i]
		if s.odr {
			wy, wx, d := s.data.wy(i), s.data.wx(i), s.jx[i]
			r -= wy * d * wx * s.delta[i] / (wy*d*d + wx + lambda*s.dDelta[i])
		}
		for j, v := range s.jb[i] {
			g.SetVec(j, g.AtVec(j)-v*r)
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(a); !ok {
		return nil, nil, ErrSingular
	}
	var x mat.VecDense
	if err := chol.SolveVecTo(&x, g); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	dbeta = make([]float64, s.p)
	for j := range dbeta {
		dbeta[j] = x.AtVec(j)
	}

	ddelta = make([]float64, s.n)
	if s.odr {
		for i := 0; i < s.n; i++ {
			wy, wx, d := s.data.wy(i), s.data.wx(i), s.jx[i]
			u := s.eps[i]
			for j, v := range s.jb[i] {
				u += v * dbeta[j]
			}
			ddelta[i] = -(wy*d*u + wx*s.delta[i]) / (wy*d*d + wx + lambda*s.dDelta[i])
		}
	}
	return dbeta, ddelta, nil
}

// smallStep reports whether the parameter step is below ParameterTol
// relative to the parameters.
func (s *solver) smallStep(dbeta []float64) bool {
	var step, size float64
	for j, v := range dbeta {
		step += v * v
		size += s.beta[j] * s.beta[j]
	}
	tol := s.settings.ParameterTol
	return math.Sqrt(step) <= tol*(math.Sqrt(size)+tol)
}

func (s *solver) fail(iter int, stop StopReason, err error) (*Result, error) {
	res := s.result(iter, stop)
	s.log.WithFields(logrus.Fields{
		"iterations": iter,
		"reason":     stop.String(),
	}).Warn("odr: fit failed")
	return res, err
}

func (s *solver) finish(iter int, stop StopReason) (*Result, error) {
	res := s.result(iter, stop)
	if err := s.derivatives(); err != nil {
		res.Stop, res.Converged = StopNumerical, false
		return res, err
	}

	a, _ := s.normal(0)
	var chol mat.Cholesky
	if ok := chol.Factorize(a); !ok {
		res.Stop, res.Converged = StopSingular, false
		return res, fmt.Errorf("%w: parameter covariance is not positive definite", ErrSingular)
	}
	cov := mat.NewSymDense(s.p, nil)
	if err := chol.InverseTo(cov); err != nil {
		res.Stop, res.Converged = StopSingular, false
		return res, fmt.Errorf("%w: %v", ErrSingular, err)
	}
	res.CovBeta = cov
	for j := range res.SdBeta {
		res.SdBeta[j] = math.Sqrt(cov.At(j, j) * res.ResVar)
	}
	if c := mat.Cond(a, 2); c > 0 {
		res.InvCondNum = 1 / math.Sqrt(c)
	}

	s.log.WithFields(logrus.Fields{
		"iterations":  iter,
		"sum_squares": res.SumSquares,
		"reason":      stop.String(),
	}).Debug("odr: fit finished")

	if !res.Converged {
		return res, fmt.Errorf("%w after %d iterations", ErrNotConverged, iter)
	}
	return res, nil
}

func (s *solver) result(iter int, stop StopReason) *Result {
	res := &Result{
		Method:     s.settings.Method,
		Beta:       make([]float64, s.p),
		SdBeta:     make([]float64, s.p),
		Delta:      make([]float64, s.n),
		Eps:        make([]float64, s.n),
		XPlus:      make([]float64, s.n),
		YFit:       make([]float64, s.n),
		DOF:        s.n - s.p,
		PValue:     math.NaN(),
		Iterations: iter,
		FuncEvals:  s.nfev,
		Converged:  stop.Converged(),
		Stop:       stop,
	}
	copy(res.Beta, s.beta)
	copy(res.Delta, s.delta)
	copy(res.Eps, s.eps)
	for i := 0; i < s.n; i++ {
		res.XPlus[i] = s.data.X[i] + s.delta[i]
		res.YFit[i] = s.data.Y[i] + s.eps[i]
		res.SumSquaresEps += s.data.wy(i) * s.eps[i] * s.eps[i]
		if s.odr {
			res.SumSquaresDelta += s.data.wx(i) * s.delta[i] * s.delta[i]
		}
	}
	res.SumSquares = res.SumSquaresEps + res.SumSquaresDelta
	if res.DOF > 0 {
		res.ResVar = res.SumSquares / float64(res.DOF)
		res.PValue = distuv.ChiSquared{K: float64(res.DOF)}.Survival(res.SumSquares)
	}
	return res
}
