// Package graph implements DataSeries, a measured dataset bound to one
// drawing surface.
//
// A DataSeries renders its points (with error bars when uncertainties are
// given), fits a model by orthogonal distance regression, overlays fixed
// models and adds annotation boxes. All drawing goes through the Surface
// interface; plotsurface provides a gonum/plot implementation.
//
// # Basic Usage
//
//	ds, err := graph.New(axes, x, y,
//	    graph.WithXLabel("t [s]"),
//	    graph.WithYLabel("s [m]"),
//	    graph.WithXErr(measurement.Scalar(0.01)),
//	    graph.WithYErr(measurement.PerPoint(sy)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ds.RenderData("")
//	res, err := ds.Fit(parabola, []float64{0, 0, 9.81}, "fit")
//	if errors.Is(err, graph.ErrFitDidNotConverge) {
//	    ...
//	}
//	ds.AddTextBox([]string{fmt.Sprintf("g = %.2f", 2*res.Params[2])})
//
// # Bounds
//
// Display bounds not given explicitly are derived from the data with a
// margin of 1/20 of the data span on each side. They are resolved once and
// reused by every later drawing operation.
//
// # Options from TOML
//
// DecodeOptions and LoadOptions read labels, bounds and the grid and legend
// flags from TOML:
//
//	xlabel = "t [s]"
//	x_low  = 0
//	grid   = true
//	legend = false
package graph
