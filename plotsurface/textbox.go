package plotsurface

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// textBox is a plotter drawing boxed text at fractional canvas coordinates.
type textBox struct {
	text  string
	x, y  float64
	style text.Style

	padding vg.Length
	fill    color.Color
	border  draw.LineStyle
}

func newTextBox(txt string, x, y, fontSize float64, base text.Style) *textBox {
	sty := base
	sty.Font.Size = vg.Points(fontSize)
	sty.XAlign = text.XLeft
	sty.YAlign = text.YTop
	return &textBox{
		text:    txt,
		x:       x,
		y:       y,
		style:   sty,
		padding: vg.Points(fontSize / 2),
		fill:    color.White,
		border:  draw.LineStyle{Color: color.Black, Width: vg.Points(0.5)},
	}
}

// Plot implements plot.Plotter.
func (b *textBox) Plot(c draw.Canvas, _ *plot.Plot) {
	pt := vg.Point{X: c.X(b.x), Y: c.Y(b.y)}
	w := b.style.Width(b.text)
	h := b.style.Height(b.text)

	box := []vg.Point{
		{X: pt.X - b.padding, Y: pt.Y + b.padding},
		{X: pt.X + w + b.padding, Y: pt.Y + b.padding},
		{X: pt.X + w + b.padding, Y: pt.Y - h - b.padding},
		{X: pt.X - b.padding, Y: pt.Y - h - b.padding},
	}
	c.FillPolygon(b.fill, box)
	c.StrokeLines(b.border, append(box, box[0]))
	c.FillText(b.style, pt, b.text)
}
