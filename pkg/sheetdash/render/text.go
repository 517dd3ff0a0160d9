package render

import (
	"image/color"
	"math"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// sansVariant selects the Liberation Sans faces bundled with gonum/plot.
const sansVariant font.Variant = "Sans"

var labelColor = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}

func textStyle(size float64, weight xfont.Weight, style xfont.Style) text.Style {
	fnt := font.From(plot.DefaultFont, vg.Points(size))
	fnt.Variant = sansVariant
	fnt.Weight = weight
	fnt.Style = style
	return text.Style{
		Color:   color.Black,
		Font:    fnt,
		XAlign:  text.XCenter,
		YAlign:  text.YTop,
		Handler: plot.DefaultTextHandler,
	}
}

func titleStyle(size float64) text.Style {
	return textStyle(size, xfont.WeightBold, xfont.StyleNormal)
}

func subtitleStyle(size float64) text.Style {
	return textStyle(size, xfont.WeightNormal, xfont.StyleItalic)
}

// useSans switches every text element of p to the sans-serif face.
func useSans(p *plot.Plot) {
	for _, sty := range []*text.Style{
		&p.Title.TextStyle,
		&p.X.Label.TextStyle,
		&p.Y.Label.TextStyle,
		&p.X.Tick.Label,
		&p.Y.Tick.Label,
		&p.Legend.TextStyle,
	} {
		sty.Font.Variant = sansVariant
	}
}

// degrees converts an angle to radians.
func degrees(d float64) float64 {
	return d * math.Pi / 180
}
