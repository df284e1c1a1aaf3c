package graph

import (
	"strings"

	"github.com/sartorproj/goodr/odr"
)

// RenderData draws the data points and sets the surface ranges to the
// resolved bounds. Points with uncertainties are drawn with error bars on
// the axes that have them. An empty label selects DefaultDataLabel.
func (ds *DataSeries) RenderData(label string) error {
	if label == "" {
		label = DefaultDataLabel
	}

	s := ds.sample
	n := s.Len()
	var err error
	if s.XErr.IsSet() || s.YErr.IsSet() {
		err = ds.surface.DrawErrorBars(s.X, s.Y, s.XErr.Values(n), s.YErr.Values(n), ErrorBarStyle, label)
	} else {
		err = ds.surface.DrawMarkers(s.X, s.Y, MarkerStyle, label)
	}
	if err != nil {
		return err
	}

	xLow, xHigh, yLow, yHigh := ds.ResolveBounds()
	ds.surface.SetXRange(xLow, xHigh)
	ds.surface.SetYRange(yLow, yHigh)
	ds.refreshLegend()
	return nil
}

// RenderModel draws f with fixed parameters across the x bounds.
// An empty label selects DefaultModelLabel.
func (ds *DataSeries) RenderModel(f odr.Func, beta []float64, label string) error {
	if label == "" {
		label = DefaultModelLabel
	}
	x := ds.curveX()
	if err := ds.surface.DrawLine(x, odr.Model{Func: f}.Eval(beta, x), ModelStyle, label); err != nil {
		return err
	}
	ds.refreshLegend()
	return nil
}

type textBox struct {
	x, y     float64
	fontSize float64
}

// TextBoxOption configures AddTextBox.
type TextBoxOption func(*textBox)

// TextBoxAt places the box with its top left corner at fractional surface
// coordinates. Defaults to (0.68, 0.5).
func TextBoxAt(x, y float64) TextBoxOption {
	return func(b *textBox) { b.x, b.y = x, y }
}

// TextBoxFontSize sets the font size in points. Defaults to 9.
func TextBoxFontSize(size float64) TextBoxOption {
	return func(b *textBox) { b.fontSize = size }
}

// AddTextBox joins lines with newlines and draws them in a box.
func (ds *DataSeries) AddTextBox(lines []string, opts ...TextBoxOption) error {
	b := textBox{x: 0.68, y: 0.5, fontSize: 9}
	for _, opt := range opts {
		opt(&b)
	}
	return ds.surface.DrawTextBox(strings.Join(lines, "\n"), b.x, b.y, b.fontSize)
}
