package graph

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/sartorproj/goodr/odr"
)

// call is one recorded Surface invocation.
type call struct {
	name  string
	x, y  []float64
	xerr  []float64
	yerr  []float64
	style Style
	label string
	text  string
	args  []float64
}

// recorder is a Surface that records every call.
type recorder struct {
	calls []call
}

func (r *recorder) add(c call) { r.calls = append(r.calls, c) }

func (r *recorder) SetXLabel(label string) { r.add(call{name: "SetXLabel", label: label}) }
func (r *recorder) SetYLabel(label string) { r.add(call{name: "SetYLabel", label: label}) }
func (r *recorder) SetTitle(title string)  { r.add(call{name: "SetTitle", label: title}) }
func (r *recorder) EnableGrid()            { r.add(call{name: "EnableGrid"}) }
func (r *recorder) ShowLegend()            { r.add(call{name: "ShowLegend"}) }

func (r *recorder) SetXRange(low, high float64) {
	r.add(call{name: "SetXRange", args: []float64{low, high}})
}

func (r *recorder) SetYRange(low, high float64) {
	r.add(call{name: "SetYRange", args: []float64{low, high}})
}

func (r *recorder) DrawMarkers(x, y []float64, style Style, label string) error {
	r.add(call{name: "DrawMarkers", x: x, y: y, style: style, label: label})
	return nil
}

func (r *recorder) DrawErrorBars(x, y, xerr, yerr []float64, style Style, label string) error {
	r.add(call{name: "DrawErrorBars", x: x, y: y, xerr: xerr, yerr: yerr, style: style, label: label})
	return nil
}

func (r *recorder) DrawLine(x, y []float64, style Style, label string) error {
	r.add(call{name: "DrawLine", x: x, y: y, style: style, label: label})
	return nil
}

func (r *recorder) DrawTextBox(text string, x, y, fontSize float64) error {
	r.add(call{name: "DrawTextBox", text: text, args: []float64{x, y, fontSize}})
	return nil
}

func (r *recorder) names() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.name
	}
	return out
}

func (r *recorder) find(name string) []call {
	var out []call
	for _, c := range r.calls {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

func (r *recorder) reset() { r.calls = nil }

// failing is a Surface whose draw calls fail.
type failing struct{ recorder }

var errDraw = errors.New("draw failed")

func (f *failing) DrawMarkers(x, y []float64, style Style, label string) error { return errDraw }
func (f *failing) DrawLine(x, y []float64, style Style, label string) error    { return errDraw }

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

func quietSolver() *odr.Settings {
	s := odr.DefaultSettings()
	s.Logger = quietLogger()
	return s
}
