package graph

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/sartorproj/goodr/measurement"
	"github.com/sartorproj/goodr/odr"
)

// Default labels and placement.
const (
	DefaultDataLabel  = "podatki"
	DefaultFitLabel   = "fit"
	DefaultModelLabel = "model"

	// CurveSamples is the number of points a fitted or model curve is evaluated at.
	CurveSamples = 600
)

// bound is an optional display bound.
type bound struct {
	value float64
	set   bool
}

func (b *bound) resolve(v float64) float64 {
	if !b.set {
		b.value, b.set = v, true
	}
	return b.value
}

// DataSeries is one measured dataset bound to a drawing surface.
type DataSeries struct {
	surface Surface
	sample  *measurement.Sample

	xLabel, yLabel, title string
	xLow, xHigh           bound
	yLow, yHigh           bound
	grid, legend          bool

	report   io.Writer
	settings *odr.Settings
	log      logrus.FieldLogger
}

// Option configures a DataSeries.
type Option func(*DataSeries)

// WithXLabel sets the x axis label.
func WithXLabel(label string) Option {
	return func(ds *DataSeries) { ds.xLabel = label }
}

// WithYLabel sets the y axis label.
func WithYLabel(label string) Option {
	return func(ds *DataSeries) { ds.yLabel = label }
}

// WithTitle sets the surface title.
func WithTitle(title string) Option {
	return func(ds *DataSeries) { ds.title = title }
}

// WithXErr sets the x uncertainty.
func WithXErr(u measurement.Uncertainty) Option {
	return func(ds *DataSeries) { ds.sample.XErr = u }
}

// WithYErr sets the y uncertainty.
func WithYErr(u measurement.Uncertainty) Option {
	return func(ds *DataSeries) { ds.sample.YErr = u }
}

// WithXLow fixes the lower x bound.
func WithXLow(v float64) Option {
	return func(ds *DataSeries) { ds.xLow = bound{v, true} }
}

// WithXHigh fixes the upper x bound.
func WithXHigh(v float64) Option {
	return func(ds *DataSeries) { ds.xHigh = bound{v, true} }
}

// WithYLow fixes the lower y bound.
func WithYLow(v float64) Option {
	return func(ds *DataSeries) { ds.yLow = bound{v, true} }
}

// WithYHigh fixes the upper y bound.
func WithYHigh(v float64) Option {
	return func(ds *DataSeries) { ds.yHigh = bound{v, true} }
}

// WithXBounds fixes both x bounds.
func WithXBounds(low, high float64) Option {
	return func(ds *DataSeries) { ds.xLow, ds.xHigh = bound{low, true}, bound{high, true} }
}

// WithYBounds fixes both y bounds.
func WithYBounds(low, high float64) Option {
	return func(ds *DataSeries) { ds.yLow, ds.yHigh = bound{low, true}, bound{high, true} }
}

// WithGrid enables or disables dashed grid lines. Enabled by default.
func WithGrid(enabled bool) Option {
	return func(ds *DataSeries) { ds.grid = enabled }
}

// WithLegend enables or disables the legend. Enabled by default.
func WithLegend(enabled bool) Option {
	return func(ds *DataSeries) { ds.legend = enabled }
}

// WithReport sets where fit reports are written. Defaults to os.Stdout;
// nil disables reports.
func WithReport(w io.Writer) Option {
	return func(ds *DataSeries) { ds.report = w }
}

// WithSolverSettings sets the regression solver settings.
func WithSolverSettings(s *odr.Settings) Option {
	return func(ds *DataSeries) { ds.settings = s }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(ds *DataSeries) { ds.log = l }
}

// New creates a DataSeries for x and y bound to surface and applies labels,
// title and grid to the surface.
func New(surface Surface, x, y []float64, opts ...Option) (*DataSeries, error) {
	return NewFromSample(surface, &measurement.Sample{X: x, Y: y}, opts...)
}

// NewFromSample creates a DataSeries from a sample. The sample is copied;
// uncertainty options override the sample's uncertainties.
func NewFromSample(surface Surface, sample *measurement.Sample, opts ...Option) (*DataSeries, error) {
	if surface == nil {
		return nil, fmt.Errorf("%w: nil surface", ErrInvalidArgument)
	}
	if sample == nil {
		return nil, fmt.Errorf("%w: nil sample", ErrInvalidArgument)
	}

	ds := &DataSeries{
		surface: surface,
		sample:  sample.Copy(),
		grid:    true,
		legend:  true,
		report:  os.Stdout,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(ds)
	}

	if err := ds.sample.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	ds.decorate()
	return ds, nil
}

// decorate applies the construction-time decorations to the surface.
func (ds *DataSeries) decorate() {
	if ds.xLabel != "" {
		ds.surface.SetXLabel(ds.xLabel)
	}
	if ds.yLabel != "" {
		ds.surface.SetYLabel(ds.yLabel)
	}
	if ds.title != "" {
		ds.surface.SetTitle(ds.title)
	}
	if ds.grid {
		ds.surface.EnableGrid()
	}
}

// Sample returns a copy of the underlying sample.
func (ds *DataSeries) Sample() *measurement.Sample {
	return ds.sample.Copy()
}

// ResolveBounds returns the display bounds. Bounds not given explicitly are
// computed from the data on the first call as min - span/20 and
// max + span/20 and kept for the lifetime of the DataSeries.
func (ds *DataSeries) ResolveBounds() (xLow, xHigh, yLow, yHigh float64) {
	if !ds.xLow.set || !ds.xHigh.set {
		lo, hi := ds.sample.XRange()
		pad := (hi - lo) / 20
		ds.xLow.resolve(lo - pad)
		ds.xHigh.resolve(hi + pad)
		if pad == 0 {
			ds.log.WithFields(logrus.Fields{"axis": "x", "value": lo}).Warn("graph: all values equal, zero width bounds")
		}
	}
	if !ds.yLow.set || !ds.yHigh.set {
		lo, hi := ds.sample.YRange()
		pad := (hi - lo) / 20
		ds.yLow.resolve(lo - pad)
		ds.yHigh.resolve(hi + pad)
		if pad == 0 {
			ds.log.WithFields(logrus.Fields{"axis": "y", "value": lo}).Warn("graph: all values equal, zero width bounds")
		}
	}
	return ds.xLow.value, ds.xHigh.value, ds.yLow.value, ds.yHigh.value
}

// curveX returns CurveSamples evenly spaced x values across the x bounds.
func (ds *DataSeries) curveX() []float64 {
	lo, hi, _, _ := ds.ResolveBounds()
	return floats.Span(make([]float64, CurveSamples), lo, hi)
}

func (ds *DataSeries) refreshLegend() {
	if ds.legend {
		ds.surface.ShowLegend()
	}
}

// String implements fmt.Stringer.
func (ds *DataSeries) String() string {
	return fmt.Sprintf("DataSeries(n=%d, xlabel=%q, ylabel=%q, title=%q, xerr=%s, yerr=%s, x=[%s, %s], y=[%s, %s])",
		ds.sample.Len(), ds.xLabel, ds.yLabel, ds.title, ds.sample.XErr, ds.sample.YErr,
		formatBound(ds.xLow), formatBound(ds.xHigh), formatBound(ds.yLow), formatBound(ds.yHigh))
}

func formatBound(b bound) string {
	if !b.set {
		return "auto"
	}
	return fmt.Sprintf("%g", b.value)
}
