// Package plotsurface implements graph.Surface on top of gonum/plot.
//
// A Figure holds a grid of Axes, one per subplot. Each Axes is a
// graph.Surface; a DataSeries draws into it and the Figure exports all
// subplots at once:
//
//	fig, err := plotsurface.NewFigure(1, 2, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	left, _ := graph.New(fig.Axes(0, 0), x, y)
//	left.RenderData("")
//	...
//	if err := fig.Save("out/discharge"); err != nil {
//	    log.Fatal(err)
//	}
//
// Save writes a PNG and a PDF next to each other. UseFancyLatex switches
// all text to DejaVu with LaTeX markup and must be called before the
// Figure is created.
package plotsurface
