package graph

import (
	"image/color"
)

// Surface is the drawing context a DataSeries renders into.
// It is owned by the caller and must not be used concurrently while a
// DataSeries method is running.
type Surface interface {
	SetXLabel(label string)
	SetYLabel(label string)
	SetTitle(title string)
	EnableGrid()
	SetXRange(low, high float64)
	SetYRange(low, high float64)
	DrawMarkers(x, y []float64, style Style, label string) error
	// DrawErrorBars draws points with error bars. Either xerr or yerr may be nil.
	DrawErrorBars(x, y, xerr, yerr []float64, style Style, label string) error
	DrawLine(x, y []float64, style Style, label string) error
	// DrawTextBox places a boxed text with its top left corner at the
	// fractional surface coordinates x, y.
	DrawTextBox(text string, x, y, fontSize float64) error
	ShowLegend()
}

// Marker is the glyph drawn for data points.
type Marker int

const (
	MarkerNone Marker = iota
	MarkerDot
	MarkerCross
)

// Style describes how a series is drawn. Sizes are in points.
type Style struct {
	Color      color.Color
	Marker     Marker
	MarkerSize float64
	LineWidth  float64
	CapSize    float64
}

var (
	black = color.RGBA{A: 0xff}
	red   = color.RGBA{R: 0xff, A: 0xff}
	green = color.RGBA{G: 0x80, A: 0xff}
)

// Default styles: black data, red fit, green model.
var (
	MarkerStyle   = Style{Color: black, Marker: MarkerCross, MarkerSize: 4}
	ErrorBarStyle = Style{Color: black, Marker: MarkerDot, MarkerSize: 5, LineWidth: 0.5, CapSize: 4}
	FitStyle      = Style{Color: red, LineWidth: 1.5}
	ModelStyle    = Style{Color: green, LineWidth: 1.5}
)
