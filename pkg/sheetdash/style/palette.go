// Package style holds the named color schemes and background styles used to
// decorate charts.
package style

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// DefaultScheme is used when a requested scheme is unknown.
const DefaultScheme = "corporate"

// ErrUnknownScheme indicates a color scheme name is not registered.
var ErrUnknownScheme = errors.New("unknown color scheme")

// schemeOrder is the order built-in schemes are listed and cycled in.
var schemeOrder = []string{"corporate", "vibrant", "pastel", "hdfc_brand", "gradient_blue", "gradient_red"}

// ColorSchemes maps scheme names to ordered hex palettes.
var ColorSchemes = map[string][]string{
	"corporate":     {"#003f5c", "#2f4b7c", "#665191", "#a05195", "#d45087", "#f95d6a", "#ff7c43", "#ffa600"},
	"vibrant":       {"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b", "#e377c2", "#7f7f7f"},
	"pastel":        {"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3", "#a6d854", "#ffd92f", "#e5c494", "#b3b3b3"},
	"hdfc_brand":    {"#ED232A", "#0033A0", "#808080", "#FF6600", "#003366", "#FFCC00", "#00CCFF", "#009900"},
	"gradient_blue": {"#f7fbff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6", "#4292c6", "#2171b5", "#084594"},
	"gradient_red":  {"#fff5f0", "#fee0d2", "#fcbba1", "#fc9272", "#fb6a4a", "#ef3b2c", "#cb181d", "#99000d"},
}

// DashboardCycle is the scheme sequence a dashboard walks through when no
// schemes are given.
var DashboardCycle = []string{"corporate", "hdfc_brand", "vibrant", "pastel", "gradient_blue", "gradient_red"}

var namedColors = map[string]drawing.Color{
	"white":       drawing.ColorWhite,
	"black":       drawing.ColorBlack,
	"red":         drawing.ColorRed,
	"green":       drawing.ColorGreen,
	"blue":        drawing.ColorBlue,
	"transparent": drawing.ColorTransparent,
	"none":        drawing.ColorTransparent,
}

// ParseColor parses "#rrggbb", "#rgb" or a basic color name.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c.Clamped(), nil
}

// Palette is an ordered list of colors.
type Palette []color.Color

// ParsePalette parses a list of color strings.
func ParsePalette(values []string) (Palette, error) {
	if len(values) == 0 {
		return nil, errors.New("empty palette")
	}
	p := make(Palette, 0, len(values))
	for _, v := range values {
		c, err := ParseColor(v)
		if err != nil {
			return nil, err
		}
		p = append(p, c)
	}
	return p, nil
}

// Extend returns exactly n colors. When the palette is long enough its first n
// colors are used; otherwise a linear RGB gradient from the first to the last
// color is generated.
func (p Palette) Extend(n int) Palette {
	if n <= 0 || len(p) == 0 {
		return nil
	}
	if len(p) >= n {
		out := make(Palette, n)
		copy(out, p[:n])
		return out
	}

	first, _ := colorful.MakeColor(p[0])
	last, _ := colorful.MakeColor(p[len(p)-1])
	out := make(Palette, n)
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = first.BlendRgb(last, t).Clamped()
	}
	return out
}

// WithAlpha returns c with its opacity scaled to alpha (0-1).
func WithAlpha(c color.Color, alpha float64) color.Color {
	if alpha >= 1 {
		return c
	}
	if alpha < 0 {
		alpha = 0
	}
	r, g, b, a := c.RGBA()
	scale := func(v uint32) uint8 { return uint8(float64(v>>8) * alpha) }
	// RGBA is premultiplied, so every channel scales with the alpha.
	return color.RGBA{R: scale(r), G: scale(g), B: scale(b), A: scale(a)}
}

// SchemeNames returns the names in schemes, built-ins first in their usual
// order and any others sorted.
func SchemeNames(schemes map[string][]string) []string {
	seen := make(map[string]bool, len(schemes))
	var names []string
	for _, n := range schemeOrder {
		if _, ok := schemes[n]; ok {
			names = append(names, n)
			seen[n] = true
		}
	}
	var extra []string
	for n := range schemes {
		if !seen[n] {
			extra = append(extra, n)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}
