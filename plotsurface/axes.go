package plotsurface

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/sartorproj/goodr/graph"
)

var _ graph.Surface = (*Axes)(nil)

// axisRange is a pinned axis range.
type axisRange struct {
	min, max float64
	set      bool
}

type legendEntry struct {
	label string
	thumb plot.Thumbnailer
}

// Axes is one subplot. It implements graph.Surface.
type Axes struct {
	plot *plot.Plot

	xRange, yRange axisRange
	pending        []legendEntry
}

// NewAxes creates an empty subplot.
func NewAxes() *Axes {
	return &Axes{plot: plot.New()}
}

func (a *Axes) SetXLabel(label string) { a.plot.X.Label.Text = label }
func (a *Axes) SetYLabel(label string) { a.plot.Y.Label.Text = label }
func (a *Axes) SetTitle(title string)  { a.plot.Title.Text = title }

// EnableGrid adds dashed grid lines at the major ticks.
func (a *Axes) EnableGrid() {
	g := plotter.NewGrid()
	dashes := []vg.Length{vg.Points(2), vg.Points(2)}
	g.Vertical.Dashes = dashes
	g.Horizontal.Dashes = dashes
	a.plot.Add(g)
}

// SetXRange pins the x range. Plotters added later do not change it.
func (a *Axes) SetXRange(low, high float64) { a.xRange = axisRange{low, high, true} }

// SetYRange pins the y range.
func (a *Axes) SetYRange(low, high float64) { a.yRange = axisRange{low, high, true} }

// DrawMarkers draws unconnected points.
func (a *Axes) DrawMarkers(x, y []float64, style graph.Style, label string) error {
	pts, err := xys(x, y)
	if err != nil {
		return err
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("plotsurface: markers: %w", err)
	}
	s.GlyphStyle = glyphStyle(style)
	a.plot.Add(s)
	a.addLegend(label, s)
	return nil
}

// errPoints carries points with both kinds of error bars.
type errPoints struct {
	plotter.XYs
	plotter.XErrors
	plotter.YErrors
}

// DrawErrorBars draws points with symmetric error bars. Either xerr or yerr
// may be nil.
func (a *Axes) DrawErrorBars(x, y, xerr, yerr []float64, style graph.Style, label string) error {
	pts, err := xys(x, y)
	if err != nil {
		return err
	}
	data := errPoints{XYs: pts}
	if xerr != nil {
		if len(xerr) != len(x) {
			return fmt.Errorf("plotsurface: %d x errors for %d points", len(xerr), len(x))
		}
		data.XErrors = make(plotter.XErrors, len(xerr))
		for i, e := range xerr {
			data.XErrors[i].Low, data.XErrors[i].High = e, e
		}
	}
	if yerr != nil {
		if len(yerr) != len(y) {
			return fmt.Errorf("plotsurface: %d y errors for %d points", len(yerr), len(y))
		}
		data.YErrors = make(plotter.YErrors, len(yerr))
		for i, e := range yerr {
			data.YErrors[i].Low, data.YErrors[i].High = e, e
		}
	}

	line := lineStyle(style)
	if xerr != nil {
		xb, err := plotter.NewXErrorBars(data)
		if err != nil {
			return fmt.Errorf("plotsurface: x error bars: %w", err)
		}
		xb.LineStyle = line
		xb.CapWidth = capWidth(style)
		a.plot.Add(xb)
	}
	if yerr != nil {
		yb, err := plotter.NewYErrorBars(data)
		if err != nil {
			return fmt.Errorf("plotsurface: y error bars: %w", err)
		}
		yb.LineStyle = line
		yb.CapWidth = capWidth(style)
		a.plot.Add(yb)
	}

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("plotsurface: markers: %w", err)
	}
	s.GlyphStyle = glyphStyle(style)
	a.plot.Add(s)
	a.addLegend(label, s)
	return nil
}

// DrawLine draws a connected line.
func (a *Axes) DrawLine(x, y []float64, style graph.Style, label string) error {
	pts, err := xys(x, y)
	if err != nil {
		return err
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("plotsurface: line: %w", err)
	}
	l.LineStyle = lineStyle(style)
	a.plot.Add(l)
	a.addLegend(label, l)
	return nil
}

// DrawTextBox draws a boxed text with its top left corner at the fractional
// coordinates x, y of the data area.
func (a *Axes) DrawTextBox(text string, x, y, fontSize float64) error {
	if fontSize <= 0 {
		return fmt.Errorf("plotsurface: font size %v must be positive", fontSize)
	}
	a.plot.Add(newTextBox(text, x, y, fontSize, a.plot.Legend.TextStyle))
	return nil
}

// ShowLegend shows the legend with every labeled series drawn so far.
func (a *Axes) ShowLegend() {
	for _, e := range a.pending {
		a.plot.Legend.Add(e.label, e.thumb)
	}
	a.pending = nil
}

// Plot returns the underlying plot with the pinned ranges applied.
func (a *Axes) Plot() *plot.Plot {
	if a.xRange.set {
		a.plot.X.Min, a.plot.X.Max = widen(a.xRange.min, a.xRange.max)
	}
	if a.yRange.set {
		a.plot.Y.Min, a.plot.Y.Max = widen(a.yRange.min, a.yRange.max)
	}
	return a.plot
}

func (a *Axes) addLegend(label string, thumb plot.Thumbnailer) {
	if label == "" {
		return
	}
	a.pending = append(a.pending, legendEntry{label, thumb})
}

// widen expands a zero-width range by one unit on both sides.
func widen(low, high float64) (float64, float64) {
	if low == high {
		return low - 1, high + 1
	}
	return low, high
}

func xys(x, y []float64) (plotter.XYs, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("plotsurface: %d x values, %d y values", len(x), len(y))
	}
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X, pts[i].Y = x[i], y[i]
	}
	return pts, nil
}

func styleColor(style graph.Style) color.Color {
	if style.Color == nil {
		return color.Black
	}
	return style.Color
}

func glyphStyle(style graph.Style) draw.GlyphStyle {
	gs := draw.GlyphStyle{
		Color:  styleColor(style),
		Radius: vg.Points(style.MarkerSize / 2),
	}
	switch style.Marker {
	case graph.MarkerCross:
		gs.Shape = draw.CrossGlyph{}
	case graph.MarkerDot:
		gs.Shape = draw.CircleGlyph{}
	default:
		gs.Radius = 0
		gs.Shape = draw.CircleGlyph{}
	}
	return gs
}

// capWidth is the full width of an error bar cap. CapSize is the length on
// each side of the bar, as in matplotlib where a capsize of 4 gives 8 point
// wide caps.
func capWidth(style graph.Style) vg.Length {
	return vg.Points(2 * style.CapSize)
}

func lineStyle(style graph.Style) draw.LineStyle {
	width := style.LineWidth
	if width <= 0 {
		width = 1
	}
	return draw.LineStyle{
		Color: styleColor(style),
		Width: vg.Points(width),
	}
}
