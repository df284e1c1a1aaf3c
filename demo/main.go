// Package main demonstrates fitting measured data with orthogonal distance
// regression and exporting the figure.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/sartorproj/goodr/graph"
	"github.com/sartorproj/goodr/measurement"
	"github.com/sartorproj/goodr/odr"
	"github.com/sartorproj/goodr/plotsurface"
)

// FitSummary holds one fit for JSON export.
type FitSummary struct {
	Label      string    `json:"label"`
	Params     []float64 `json:"params"`
	StdErr     []float64 `json:"std_err"`
	ResVar     float64   `json:"res_var"`
	PValue     float64   `json:"p_value"`
	Iterations int       `json:"iterations"`
	Stop       string    `json:"stop"`
}

func linear(b []float64, x float64) float64 {
	return b[0] + b[1]*x
}

func discharge(b []float64, t float64) float64 {
	return b[0] * math.Exp(-t/b[1])
}

func main() {
	dataFile := flag.String("data", "", "CSV file with x, y and optional xerr, yerr columns")
	out := flag.String("out", "demo", "output name without extension")
	seriesConfig := flag.String("config", "", "TOML file with series options")
	figureConfig := flag.String("figure", "", "TOML file with figure size and dpi")
	latex := flag.Bool("latex", false, "render text with LaTeX markup in DejaVu")
	ols := flag.Bool("ols", false, "fit y residuals only (ordinary least squares)")
	verbose := flag.BoolP("verbose", "v", false, "log solver iterations")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("goodr demonstration - orthogonal distance regression")
	fmt.Println(strings.Repeat("=", 80))

	if *latex {
		if err := plotsurface.UseFancyLatex(); err != nil {
			logrus.Fatal(err)
		}
	}

	sample, err := loadSample(*dataFile)
	if err != nil {
		logrus.Fatal(err)
	}
	fmt.Printf("\nLoaded %d points (%s)\n", sample.Len(), sample.Name)

	var opts []graph.Option
	if *seriesConfig != "" {
		if opts, err = graph.LoadOptions(*seriesConfig); err != nil {
			logrus.Fatal(err)
		}
	} else {
		opts = []graph.Option{graph.WithXLabel("t [s]"), graph.WithYLabel("U [V]")}
	}

	cfg := plotsurface.DefaultConfig()
	if *figureConfig != "" {
		if cfg, err = plotsurface.LoadConfig(*figureConfig); err != nil {
			logrus.Fatal(err)
		}
	}
	fig, err := plotsurface.NewFigure(1, 2, cfg)
	if err != nil {
		logrus.Fatal(err)
	}

	solver := odr.DefaultSettings()
	if *ols {
		solver.Method = odr.LeastSquares
	}
	opts = append(opts, graph.WithSolverSettings(solver))

	var summaries []FitSummary

	// Left: the measurement with an exponential fit and the nominal model.
	left, err := graph.NewFromSample(fig.Axes(0, 0), sample, append(opts, graph.WithTitle("Measurement"))...)
	if err != nil {
		logrus.Fatal(err)
	}
	if err := left.RenderData(""); err != nil {
		logrus.Fatal(err)
	}
	res, err := left.Fit(discharge, []float64{1, 1}, "fit")
	switch {
	case errors.Is(err, graph.ErrFitDidNotConverge):
		fmt.Printf("   Exponential fit failed: %v\n", err)
	case err != nil:
		logrus.Fatal(err)
	default:
		summaries = append(summaries, summarize("fit", res))
		if err := left.RenderModel(discharge, []float64{5, 2}, "model"); err != nil {
			logrus.Fatal(err)
		}
		if err := left.AddTextBox([]string{
			fmt.Sprintf("U0 = %.3f ± %.3f V", res.Params[0], res.Output.SdBeta[0]),
			fmt.Sprintf("tau = %.3f ± %.3f s", res.Params[1], res.Output.SdBeta[1]),
		}); err != nil {
			logrus.Fatal(err)
		}
	}

	// Right: the linearized data, ln U against t.
	lin, err := linearize(sample)
	if err != nil {
		logrus.Fatal(err)
	}
	right, err := graph.NewFromSample(fig.Axes(0, 1), lin,
		graph.WithXLabel("t [s]"), graph.WithYLabel("ln U"), graph.WithTitle("Linearized"),
		graph.WithSolverSettings(solver))
	if err != nil {
		logrus.Fatal(err)
	}
	if err := right.RenderData("ln U"); err != nil {
		logrus.Fatal(err)
	}
	if res, err := right.Fit(linear, []float64{0, -1}, "linear"); err == nil {
		summaries = append(summaries, summarize("linear", res))
		if err := right.AddTextBox([]string{
			fmt.Sprintf("k = %.3f", res.Params[1]),
			fmt.Sprintf("n = %.3f", res.Params[0]),
		}, graph.TextBoxAt(0.55, 0.9)); err != nil {
			logrus.Fatal(err)
		}
	} else {
		fmt.Printf("   Linear fit failed: %v\n", err)
	}

	fmt.Printf("\n%s\nEXPORTING RESULTS\n%s\n", strings.Repeat("=", 80), strings.Repeat("=", 80))
	if err := fig.Save(*out); err != nil {
		logrus.Fatal(err)
	}
	fmt.Printf("Saved %s.png and %s.pdf\n", *out, *out)

	if data, err := json.MarshalIndent(summaries, "", "  "); err == nil {
		if err := os.WriteFile(*out+".json", data, 0644); err != nil {
			logrus.Fatal(err)
		}
		fmt.Printf("Exported %d fits to %s.json\n", len(summaries), *out)
	}
}

// loadSample reads the CSV file or, without one, generates a capacitor
// discharge with both uncertainties.
func loadSample(path string) (*measurement.Sample, error) {
	if path != "" {
		s, err := measurement.LoadCSV(path, nil)
		if err != nil {
			return nil, err
		}
		s.Name = path
		return s, nil
	}

	noise := []float64{0.02, -0.03, 0.01, 0.04, -0.02, 0.01, -0.01, 0.02, -0.03, 0.01, 0.02, -0.01}
	x := make([]float64, len(noise))
	y := make([]float64, len(noise))
	sy := make([]float64, len(noise))
	for i := range x {
		x[i] = 0.5 * float64(i)
		y[i] = discharge([]float64{5, 2.2}, x[i]) * (1 + noise[i])
		sy[i] = 0.02*y[i] + 0.01
	}
	s, err := measurement.New(x, y)
	if err != nil {
		return nil, err
	}
	s.Name = "synthetic discharge"
	s.XErr = measurement.Scalar(0.05)
	s.YErr = measurement.PerPoint(sy)
	return s, nil
}

// linearize maps (t, U ± σ) to (t, ln U ± σ/U).
func linearize(s *measurement.Sample) (*measurement.Sample, error) {
	n := s.Len()
	y := make([]float64, n)
	for i, v := range s.Y {
		if v <= 0 {
			return nil, fmt.Errorf("cannot linearize non-positive value %v at index %d", v, i)
		}
		y[i] = math.Log(v)
	}
	out, err := measurement.New(s.X, y)
	if err != nil {
		return nil, err
	}
	out.XErr = s.XErr
	if sy := s.YErr.Values(n); sy != nil {
		rel := make([]float64, n)
		for i := range rel {
			rel[i] = sy[i] / s.Y[i]
		}
		out.YErr = measurement.PerPoint(rel)
	}
	return out, nil
}

func summarize(label string, res *graph.FitResult) FitSummary {
	out := res.Output
	return FitSummary{
		Label:      label,
		Params:     res.Params,
		StdErr:     out.SdBeta,
		ResVar:     out.ResVar,
		PValue:     nanToZero(out.PValue),
		Iterations: out.Iterations,
		Stop:       out.Stop.String(),
	}
}

// nanToZero keeps the JSON encodable.
func nanToZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
