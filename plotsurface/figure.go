package plotsurface

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
)

// Figure is a grid of subplots exported together.
type Figure struct {
	rows, cols int
	axes       []*Axes
	cfg        Config
	log        logrus.FieldLogger
}

// NewFigure creates a rows×cols figure. A nil cfg selects DefaultConfig.
func NewFigure(rows, cols int, cfg *Config) (*Figure, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d subplots", ErrInvalidConfig, rows, cols)
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f := &Figure{
		rows: rows,
		cols: cols,
		axes: make([]*Axes, rows*cols),
		cfg:  *cfg,
		log:  logrus.StandardLogger(),
	}
	for i := range f.axes {
		f.axes[i] = NewAxes()
	}
	return f, nil
}

// SetLogger sets the logger used by Save.
func (f *Figure) SetLogger(l logrus.FieldLogger) {
	f.log = l
}

// Axes returns the subplot at row r and column c. It panics if the
// position is outside the grid.
func (f *Figure) Axes(r, c int) *Axes {
	if r < 0 || r >= f.rows || c < 0 || c >= f.cols {
		panic(fmt.Sprintf("plotsurface: subplot (%d, %d) outside %dx%d grid", r, c, f.rows, f.cols))
	}
	return f.axes[r*f.cols+c]
}

// Size returns the number of rows and columns.
func (f *Figure) Size() (rows, cols int) {
	return f.rows, f.cols
}

// Save writes name.png and name.pdf.
func (f *Figure) Save(name string) error {
	if err := f.saveFile(name+".png", f.WritePNG); err != nil {
		return err
	}
	if err := f.saveFile(name+".pdf", f.WritePDF); err != nil {
		return err
	}
	f.log.WithFields(logrus.Fields{
		"name": name,
		"dpi":  f.cfg.DPI,
	}).Info("plotsurface: figure saved")
	return nil
}

func (f *Figure) saveFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("plotsurface: %w", err)
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("plotsurface: %w", err)
	}
	return nil
}

// WritePNG renders the figure as PNG at the configured DPI.
func (f *Figure) WritePNG(w io.Writer) error {
	c := vgimg.NewWith(vgimg.UseWH(f.width(), f.height()), vgimg.UseDPI(f.cfg.DPI))
	f.draw(c)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return fmt.Errorf("plotsurface: writing png: %w", err)
	}
	return nil
}

// WritePDF renders the figure as PDF.
func (f *Figure) WritePDF(w io.Writer) error {
	c := vgpdf.New(f.width(), f.height())
	f.draw(c)
	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("plotsurface: writing pdf: %w", err)
	}
	return nil
}

func (f *Figure) width() vg.Length  { return vg.Length(f.cfg.Width) * vg.Inch }
func (f *Figure) height() vg.Length { return vg.Length(f.cfg.Height) * vg.Inch }

// draw tiles the subplots over the canvas.
func (f *Figure) draw(c vg.CanvasSizer) {
	plots := make([][]*plot.Plot, f.rows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, f.cols)
		for col := range plots[r] {
			plots[r][col] = f.Axes(r, col).Plot()
		}
	}

	tiles := draw.Tiles{
		Rows: f.rows,
		Cols: f.cols,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, draw.New(c))
	for r := range plots {
		for col := range plots[r] {
			plots[r][col].Draw(canvases[r][col])
		}
	}
}
