package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goodr/measurement"
)

func TestRenderDataStyle(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{1, 2, 3}

	tests := []struct {
		name     string
		opts     []Option
		method   string
		wantXErr []float64
		wantYErr []float64
		style    Style
	}{
		{"no errors", nil, "DrawMarkers", nil, nil, MarkerStyle},
		{"y errors", []Option{WithYErr(measurement.Scalar(0.2))}, "DrawErrorBars", nil, []float64{0.2, 0.2, 0.2}, ErrorBarStyle},
		{"x errors", []Option{WithXErr(measurement.PerPoint([]float64{0.1, 0.2, 0.3}))}, "DrawErrorBars", []float64{0.1, 0.2, 0.3}, nil, ErrorBarStyle},
		{"both errors", []Option{WithXErr(measurement.Scalar(0.1)), WithYErr(measurement.Scalar(0.2))}, "DrawErrorBars", []float64{0.1, 0.1, 0.1}, []float64{0.2, 0.2, 0.2}, ErrorBarStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, r := newSeries(t, x, y, tt.opts...)
			r.reset()

			require.NoError(t, ds.RenderData(""))
			assert.Equal(t, []string{tt.method, "SetXRange", "SetYRange", "ShowLegend"}, r.names())

			c := r.calls[0]
			assert.Equal(t, DefaultDataLabel, c.label)
			assert.Equal(t, x, c.x)
			assert.Equal(t, y, c.y)
			assert.Equal(t, tt.wantXErr, c.xerr)
			assert.Equal(t, tt.wantYErr, c.yerr)
			assert.Equal(t, tt.style, c.style)
		})
	}
}

func TestRenderDataSetsBounds(t *testing.T) {
	ds, r := newSeries(t, []float64{0, 10}, []float64{0, 20}, WithXBounds(-1, 11))
	require.NoError(t, ds.RenderData("measured"))

	assert.Equal(t, "measured", r.find("DrawMarkers")[0].label)
	assert.Equal(t, []float64{-1, 11}, r.find("SetXRange")[0].args)
	yr := r.find("SetYRange")[0].args
	assert.InDelta(t, -1.0, yr[0], 1e-12)
	assert.InDelta(t, 21.0, yr[1], 1e-12)
}

func TestRenderDataWithoutLegend(t *testing.T) {
	ds, r := newSeries(t, []float64{0, 1}, []float64{0, 1}, WithLegend(false))
	require.NoError(t, ds.RenderData(""))
	assert.Empty(t, r.find("ShowLegend"))
}

func TestRenderDataSurfaceError(t *testing.T) {
	f := &failing{}
	ds, err := New(f, []float64{0, 1}, []float64{0, 1}, WithLogger(quietLogger()))
	require.NoError(t, err)

	require.ErrorIs(t, ds.RenderData(""), errDraw)
	assert.Empty(t, f.find("SetXRange"))
}

func TestRenderModel(t *testing.T) {
	ds, r := newSeries(t, []float64{0, 10}, []float64{0, 20})
	r.reset()

	require.NoError(t, ds.RenderModel(line, []float64{1, 2}, ""))
	require.Equal(t, []string{"DrawLine", "ShowLegend"}, r.names())

	c := r.calls[0]
	assert.Equal(t, DefaultModelLabel, c.label)
	assert.Equal(t, ModelStyle, c.style)
	require.Len(t, c.x, CurveSamples)
	assert.InDelta(t, -0.5, c.x[0], 1e-12)
	assert.InDelta(t, 10.5, c.x[CurveSamples-1], 1e-12)
	for i := range c.x {
		assert.InDelta(t, 1+2*c.x[i], c.y[i], 1e-12)
	}
}

func TestAddTextBox(t *testing.T) {
	ds, r := newSeries(t, []float64{0, 1}, []float64{0, 1})
	r.reset()

	require.NoError(t, ds.AddTextBox([]string{"a = 1", "b = 2"}))
	require.Len(t, r.calls, 1)
	assert.Equal(t, "a = 1\nb = 2", r.calls[0].text)
	assert.Equal(t, []float64{0.68, 0.5, 9}, r.calls[0].args)

	r.reset()
	require.NoError(t, ds.AddTextBox([]string{"c"}, TextBoxAt(0.1, 0.9), TextBoxFontSize(12)))
	assert.Equal(t, []float64{0.1, 0.9, 12}, r.calls[0].args)
}
