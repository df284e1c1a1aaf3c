package graph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goodr/measurement"
	"github.com/sartorproj/goodr/odr"
)

func TestFitLinear(t *testing.T) {
	x, y := linearData(10)

	tests := []struct {
		name string
		opts []Option
	}{
		{"no errors", nil},
		{"y errors", []Option{WithYErr(measurement.Scalar(0.2))}},
		{"both errors", []Option{WithXErr(measurement.Scalar(0.1)), WithYErr(measurement.Scalar(0.2))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, r := newSeries(t, x, y, tt.opts...)
			r.reset()

			res, err := ds.Fit(line, []float64{1, 1}, "")
			require.NoError(t, err)
			require.Len(t, res.Params, 2)
			assert.InDelta(t, 2.0, res.Params[0], 1e-6)
			assert.InDelta(t, 3.0, res.Params[1], 1e-6)
			assert.True(t, res.Output.Converged)

			require.Equal(t, []string{"DrawLine", "ShowLegend"}, r.names())
			c := r.calls[0]
			assert.Equal(t, DefaultFitLabel, c.label)
			assert.Equal(t, FitStyle, c.style)
			assert.Len(t, c.x, CurveSamples)
		})
	}
}

func TestFitReport(t *testing.T) {
	var buf bytes.Buffer
	x, y := linearData(6)
	ds, _ := newSeries(t, x, y, WithReport(&buf))

	res, err := ds.Fit(line, []float64{0, 1}, "linear")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Greater(t, len(lines), 2)
	assert.Equal(t, "#linear"+strings.Repeat("#", 78), lines[0])
	assert.Equal(t, strings.Repeat("#", 85), lines[len(lines)-1])
	assert.Contains(t, buf.String(), "Beta:")
	assert.Contains(t, buf.String(), res.Output.Stop.String())
}

func TestFitParamsAreCopied(t *testing.T) {
	x, y := linearData(5)
	ds, _ := newSeries(t, x, y)

	res, err := ds.Fit(line, []float64{1, 1}, "")
	require.NoError(t, err)
	res.Params[0] = 100
	assert.NotEqual(t, 100.0, res.Output.Beta[0])
}

func TestFitModelAnalytic(t *testing.T) {
	x, y := linearData(8)
	ds, _ := newSeries(t, x, y)

	model := odr.Model{
		Func:    line,
		JacBeta: func(dst, b []float64, x float64) { dst[0], dst[1] = 1, x },
		JacX:    func(b []float64, x float64) float64 { return b[1] },
	}
	res, err := ds.FitModel(model, []float64{0, 0}, "analytic")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, res.Params[0], 1e-6)
	assert.InDelta(t, 3.0, res.Params[1], 1e-6)
}

func TestFitNotConverged(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := make([]float64, len(x))
	for i := range x {
		y[i] = exponential([]float64{2, 0.5}, x[i])
	}

	var buf bytes.Buffer
	s := quietSolver()
	s.MaxIterations = 1
	ds, r := newSeries(t, x, y, WithSolverSettings(s), WithReport(&buf))
	r.reset()

	res, err := ds.Fit(exponential, []float64{1, 0.1}, "")
	require.ErrorIs(t, err, ErrFitDidNotConverge)
	require.ErrorIs(t, err, odr.ErrNotConverged)
	assert.Nil(t, res)
	assert.Empty(t, r.find("DrawLine"))
	assert.Contains(t, buf.String(), "Iteration limit reached")
}

func TestFitNumericalError(t *testing.T) {
	ds, r := newSeries(t, []float64{0, 5, 10}, []float64{1, 2, 3})
	r.reset()

	_, err := ds.Fit(exponential, []float64{1, 1000}, "")
	require.ErrorIs(t, err, ErrFitDidNotConverge)
	assert.Empty(t, r.calls)
}

func TestFitInvalid(t *testing.T) {
	x, y := linearData(5)

	ds, _ := newSeries(t, x, y)
	_, err := ds.Fit(nil, []float64{1, 1}, "")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ds.Fit(line, nil, "")
	require.ErrorIs(t, err, ErrInvalidArgument)

	// Zero uncertainties are accepted for display but cannot weight a fit.
	ds, r := newSeries(t, x, y, WithYErr(measurement.Scalar(0)))
	r.reset()
	_, err = ds.Fit(line, []float64{1, 1}, "")
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, r.calls)
}
