package plotsurface

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"

	"github.com/sartorproj/goodr/graph"
	"github.com/sartorproj/goodr/measurement"
)

func TestUseFancyLatexSave(t *testing.T) {
	require.NoError(t, UseFancyLatex())
	require.NoError(t, UseFancyLatex())

	assert.Equal(t, LatexTypeface, plot.DefaultFont.Typeface)
	assert.IsType(t, text.Latex{}, plot.DefaultTextHandler)
	assert.True(t, font.DefaultCache.Has(font.Font{Typeface: LatexTypeface, Variant: "Serif"}))

	fig, err := NewFigure(1, 1, smallConfig())
	require.NoError(t, err)
	fig.SetLogger(quietLogger())

	ds, err := graph.New(fig.Axes(0, 0), []float64{0, 1, 2}, []float64{1, 3, 5},
		graph.WithXLabel(`$\varepsilon$ [V]`), graph.WithYLabel(`$I_0$ [mA]`),
		graph.WithYErr(measurement.Scalar(0.2)),
		graph.WithReport(nil), graph.WithLogger(quietLogger()))
	require.NoError(t, err)
	require.NoError(t, ds.RenderData(""))
	require.NoError(t, ds.AddTextBox([]string{`$k = 2.0$`, "n = 1.0"}))

	name := filepath.Join(t.TempDir(), "latex")
	require.NoError(t, fig.Save(name))

	pdf, err := os.ReadFile(name + ".pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	png, err := os.ReadFile(name + ".png")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
