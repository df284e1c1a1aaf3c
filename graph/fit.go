package graph

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sartorproj/goodr/odr"
)

// reportWidth is the width of the fit report border.
const reportWidth = 85

// FitResult holds the fitted parameters and the full solver output.
type FitResult struct {
	Params []float64
	Output *odr.Result
}

// Fit fits f to the data by orthogonal distance regression starting from
// beta0 and draws the fitted curve. An empty label selects DefaultFitLabel.
//
// Uncertainties present on an axis weight that axis by 1/σ²; an axis
// without uncertainties gets unit weights. A report framed by label is
// written to the report writer whenever the solver produced output. When
// the solver fails the error wraps ErrFitDidNotConverge and nothing is drawn.
func (ds *DataSeries) Fit(f odr.Func, beta0 []float64, label string) (*FitResult, error) {
	return ds.FitModel(odr.Model{Func: f}, beta0, label)
}

// FitModel is like Fit for a model with optional analytic derivatives.
func (ds *DataSeries) FitModel(model odr.Model, beta0 []float64, label string) (*FitResult, error) {
	if label == "" {
		label = DefaultFitLabel
	}

	s := ds.sample
	n := s.Len()
	data, err := odr.NewRealData(s.X, s.Y, s.XErr.Values(n), s.YErr.Values(n))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	settings := ds.settings
	if settings == nil {
		settings = odr.DefaultSettings()
		settings.Logger = ds.log
	}

	out, err := odr.Solve(model, data, beta0, settings)
	if out != nil {
		ds.writeReport(label, out)
	}
	if err != nil {
		if errors.Is(err, odr.ErrInvalidProblem) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
		ds.log.WithFields(logrus.Fields{"label": label}).Warnf("graph: fit failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrFitDidNotConverge, err)
	}

	x := ds.curveX()
	if err := ds.surface.DrawLine(x, model.Eval(out.Beta, x), FitStyle, label); err != nil {
		return nil, err
	}
	ds.refreshLegend()

	params := make([]float64, len(out.Beta))
	copy(params, out.Beta)
	return &FitResult{Params: params, Output: out}, nil
}

func (ds *DataSeries) writeReport(label string, out *odr.Result) {
	if ds.report == nil {
		return
	}
	var b strings.Builder
	b.WriteString(reportHeader(label))
	b.WriteByte('\n')
	out.WriteReport(&b)
	b.WriteString(strings.Repeat("#", reportWidth))
	b.WriteByte('\n')
	if _, err := io.WriteString(ds.report, b.String()); err != nil {
		ds.log.WithFields(logrus.Fields{"label": label}).Warnf("graph: writing fit report: %v", err)
	}
}

// reportHeader returns "#label" padded with '#' to reportWidth characters.
func reportHeader(label string) string {
	h := "#" + label
	if pad := reportWidth - len(h); pad > 0 {
		h += strings.Repeat("#", pad)
	}
	return h
}
