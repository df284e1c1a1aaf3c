package plotsurface

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goodr/graph"
	"github.com/sartorproj/goodr/measurement"
)

func smallConfig() *Config {
	return &Config{Width: 3, Height: 2, DPI: 72}
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestFigureSave(t *testing.T) {
	fig, err := NewFigure(1, 2, smallConfig())
	require.NoError(t, err)
	fig.SetLogger(quietLogger())

	x := []float64{0, 1, 2, 3, 4}
	y := []float64{2, 5, 8, 11, 14}

	left, err := graph.New(fig.Axes(0, 0), x, y,
		graph.WithXLabel("x"), graph.WithYLabel("y"),
		graph.WithYErr(measurement.Scalar(0.5)),
		graph.WithReport(nil), graph.WithLogger(quietLogger()))
	require.NoError(t, err)
	require.NoError(t, left.RenderData(""))
	require.NoError(t, left.AddTextBox([]string{"k = 3", "n = 2"}))

	right, err := graph.New(fig.Axes(0, 1), x, y, graph.WithReport(nil), graph.WithLogger(quietLogger()))
	require.NoError(t, err)
	require.NoError(t, right.RenderData("points"))
	require.NoError(t, right.RenderModel(func(b []float64, x float64) float64 { return b[0] + b[1]*x }, []float64{2, 3}, ""))

	name := filepath.Join(t.TempDir(), "figure")
	require.NoError(t, fig.Save(name))

	png, err := os.ReadFile(name + ".png")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	pdf, err := os.ReadFile(name + ".pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestFigureSaveMissingDir(t *testing.T) {
	fig, err := NewFigure(1, 1, smallConfig())
	require.NoError(t, err)

	err = fig.Save(filepath.Join(t.TempDir(), "missing", "figure"))
	assert.Error(t, err)
}

func TestNewFigureInvalid(t *testing.T) {
	_, err := NewFigure(0, 1, nil)
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewFigure(1, 1, &Config{Width: 0, Height: 1, DPI: 72})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestFigureAxes(t *testing.T) {
	fig, err := NewFigure(2, 3, nil)
	require.NoError(t, err)

	rows, cols := fig.Size()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.NotSame(t, fig.Axes(0, 1), fig.Axes(1, 0))
	assert.Same(t, fig.Axes(1, 2), fig.Axes(1, 2))
	assert.Panics(t, func() { fig.Axes(2, 0) })
}
