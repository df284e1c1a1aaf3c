package plotsurface

import (
	"fmt"
	"sync"

	"codeberg.org/go-fonts/dejavu/dejavusans"
	"codeberg.org/go-fonts/dejavu/dejavusansbold"
	"codeberg.org/go-fonts/dejavu/dejavusansboldoblique"
	"codeberg.org/go-fonts/dejavu/dejavusansoblique"
	"codeberg.org/go-fonts/dejavu/dejavuserif"
	"codeberg.org/go-fonts/dejavu/dejavuserifbold"
	"codeberg.org/go-fonts/dejavu/dejavuserifbolditalic"
	"codeberg.org/go-fonts/dejavu/dejavuserifitalic"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
)

// LatexTypeface is the typeface registered by UseFancyLatex.
const LatexTypeface font.Typeface = "DejaVu"

var (
	latexOnce sync.Once
	latexErr  error
)

// UseFancyLatex registers the DejaVu family and switches every plot created
// afterwards to LaTeX text rendering in DejaVu Sans, with DejaVu Serif for
// math. It affects the whole process.
//
// The faces have TrueType outlines so they can be embedded in PDF output.
func UseFancyLatex() error {
	latexOnce.Do(func() {
		faces := []struct {
			ttf     []byte
			variant font.Variant
			style   xfont.Style
			weight  xfont.Weight
		}{
			{dejavusans.TTF, "Sans", xfont.StyleNormal, xfont.WeightNormal},
			{dejavusansoblique.TTF, "Sans", xfont.StyleItalic, xfont.WeightNormal},
			{dejavusansbold.TTF, "Sans", xfont.StyleNormal, xfont.WeightBold},
			{dejavusansboldoblique.TTF, "Sans", xfont.StyleItalic, xfont.WeightBold},
			{dejavuserif.TTF, "Serif", xfont.StyleNormal, xfont.WeightNormal},
			{dejavuserifitalic.TTF, "Serif", xfont.StyleItalic, xfont.WeightNormal},
			{dejavuserifbold.TTF, "Serif", xfont.StyleNormal, xfont.WeightBold},
			{dejavuserifbolditalic.TTF, "Serif", xfont.StyleItalic, xfont.WeightBold},
		}

		var coll font.Collection
		for _, f := range faces {
			face, err := opentype.Parse(f.ttf)
			if err != nil {
				latexErr = fmt.Errorf("plotsurface: parsing dejavu: %w", err)
				return
			}
			coll = append(coll, font.Face{
				Font: font.Font{
					Typeface: LatexTypeface,
					Variant:  f.variant,
					Style:    f.style,
					Weight:   f.weight,
				},
				Face: face,
			})
		}
		font.DefaultCache.Add(coll)

		plot.DefaultFont = font.Font{Typeface: LatexTypeface, Variant: "Sans"}
		plot.DefaultTextHandler = text.Latex{Fonts: font.DefaultCache}
	})
	return latexErr
}
