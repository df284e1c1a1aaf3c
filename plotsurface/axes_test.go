package plotsurface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/sartorproj/goodr/graph"
)

func TestAxesPinnedRanges(t *testing.T) {
	a := NewAxes()
	a.SetXRange(-1, 1)
	a.SetYRange(0, 2)
	require.NoError(t, a.DrawLine([]float64{-10, 10}, []float64{-5, 50}, graph.FitStyle, "fit"))

	p := a.Plot()
	assert.Equal(t, -1.0, p.X.Min)
	assert.Equal(t, 1.0, p.X.Max)
	assert.Equal(t, 0.0, p.Y.Min)
	assert.Equal(t, 2.0, p.Y.Max)
}

func TestAxesZeroWidthRange(t *testing.T) {
	a := NewAxes()
	a.SetXRange(3, 3)

	p := a.Plot()
	assert.Equal(t, 2.0, p.X.Min)
	assert.Equal(t, 4.0, p.X.Max)
}

func TestAxesLabels(t *testing.T) {
	a := NewAxes()
	a.SetXLabel("t [s]")
	a.SetYLabel("U [V]")
	a.SetTitle("Discharge")

	p := a.Plot()
	assert.Equal(t, "t [s]", p.X.Label.Text)
	assert.Equal(t, "U [V]", p.Y.Label.Text)
	assert.Equal(t, "Discharge", p.Title.Text)
}

func TestAxesLegendEntries(t *testing.T) {
	a := NewAxes()
	x := []float64{0, 1}
	y := []float64{1, 2}

	require.NoError(t, a.DrawMarkers(x, y, graph.MarkerStyle, "data"))
	require.NoError(t, a.DrawLine(x, y, graph.FitStyle, ""))
	assert.Len(t, a.pending, 1)

	a.ShowLegend()
	assert.Empty(t, a.pending)

	require.NoError(t, a.DrawLine(x, y, graph.ModelStyle, "model"))
	assert.Len(t, a.pending, 1)
}

func TestAxesDrawErrors(t *testing.T) {
	a := NewAxes()
	x := []float64{0, 1, 2}
	y := []float64{1, 2, 3}

	require.NoError(t, a.DrawErrorBars(x, y, nil, []float64{0.1, 0.1, 0.1}, graph.ErrorBarStyle, "data"))
	require.NoError(t, a.DrawErrorBars(x, y, []float64{0.1, 0.2, 0.3}, nil, graph.ErrorBarStyle, "data"))
	require.NoError(t, a.DrawErrorBars(x, y, []float64{0.1, 0.2, 0.3}, []float64{1, 1, 1}, graph.ErrorBarStyle, "data"))

	assert.Error(t, a.DrawErrorBars(x, y, []float64{0.1}, nil, graph.ErrorBarStyle, "data"))
	assert.Error(t, a.DrawMarkers(x, y[:2], graph.MarkerStyle, "data"))
	assert.Error(t, a.DrawLine(x[:1], y, graph.FitStyle, "fit"))
	assert.Error(t, a.DrawTextBox("a", 0.5, 0.5, 0))
}

func TestCapWidth(t *testing.T) {
	assert.Equal(t, vg.Points(8), capWidth(graph.ErrorBarStyle))
	assert.Equal(t, vg.Length(0), capWidth(graph.Style{}))
}

func TestWiden(t *testing.T) {
	lo, hi := widen(1, 2)
	assert.Equal(t, []float64{1, 2}, []float64{lo, hi})
	lo, hi = widen(5, 5)
	assert.Equal(t, []float64{4, 6}, []float64{lo, hi})
}
