// Package goodr provides data plotting and errors-in-variables curve fitting
// for laboratory measurements.
//
// GoODR wraps a plot axes with the handful of operations needed when
// reporting measured data: scatter and error-bar rendering, orthogonal
// distance regression (ODR) against a user supplied model, overlay of a fixed
// reference model, annotation boxes and figure export.
//
// # Features
//
//   - Orthogonal distance regression with uncertainties on both axes
//   - Ordinary weighted least squares as an alternative fit method
//   - Automatic display bounds with a 5% margin
//   - gonum/plot backed axes with PNG and PDF export
//   - LaTeX markup typeset in DejaVu, embeddable in PDF
//   - CSV loading of measurement tables
//
// # Quick Start
//
//	fig, _ := plotsurface.NewFigure(1, 1, nil)
//	ds, _ := graph.New(fig.Axes(0, 0), x, y,
//	    graph.WithXLabel("U [V]"),
//	    graph.WithYLabel("I [mA]"),
//	    graph.WithYErr(measurement.Scalar(0.1)),
//	)
//	ds.RenderData("")
//	res, err := ds.Fit(func(b []float64, x float64) float64 {
//	    return b[0] + b[1]*x
//	}, []float64{0, 1}, "")
//	fig.Save("iv-curve")
//
// # Packages
//
//   - graph: the DataSeries bound to one drawing surface
//   - odr: orthogonal distance regression solver
//   - measurement: measured samples, uncertainties and CSV loading
//   - plotsurface: gonum/plot drawing surface and figure export
//
// # References
//
//   - Boggs, P. T., & Rogers, J. E. (1990). Orthogonal Distance Regression.
//     Contemporary Mathematics, 112, 183-194.
//   - Boggs, P. T., Byrd, R. H., & Schnabel, R. B. (1987). A stable and
//     efficient algorithm for nonlinear orthogonal distance regression.
package goodr
