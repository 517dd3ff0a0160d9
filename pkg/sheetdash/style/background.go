package style

import (
	"errors"
	"image/color"
	"sort"
)

// DefaultBackground is used when a requested background style is unknown.
const DefaultBackground = "default"

// ErrUnknownStyle indicates a background style name is not registered.
var ErrUnknownStyle = errors.New("unknown background style")

// Theme names a base look for the plotting area.
type Theme string

const (
	// ThemeWhiteGrid is a white background with light grey grid lines.
	ThemeWhiteGrid Theme = "whitegrid"
	// ThemeWhite is a plain white background.
	ThemeWhite Theme = "white"
	// ThemeDarkGrid is a light blue-grey background with white grid lines.
	ThemeDarkGrid Theme = "darkgrid"
)

// Background is a named set of display options.
type Background struct {
	Theme     Theme   `yaml:"style" json:"style" validate:"oneof=whitegrid white darkgrid"`
	GridAlpha float64 `yaml:"grid_alpha" json:"grid_alpha" validate:"gte=0,lte=1"`
}

// BackgroundStyles maps style names to their display options.
var BackgroundStyles = map[string]Background{
	"default":      {Theme: ThemeWhiteGrid, GridAlpha: 0.3},
	"minimal":      {Theme: ThemeWhite, GridAlpha: 0.0},
	"classic":      {Theme: ThemeDarkGrid, GridAlpha: 0.1},
	"presentation": {Theme: ThemeWhite, GridAlpha: 0.2},
}

var (
	white    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	gridGrey = color.RGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}
	darkGrid = color.RGBA{R: 0xea, G: 0xea, B: 0xf2, A: 0xff}
)

// Fill returns the plotting area background color.
func (b Background) Fill() color.Color {
	if b.Theme == ThemeDarkGrid {
		return darkGrid
	}
	return white
}

// GridColor returns the grid line color with the style's alpha applied.
// A nil result means grid lines should not be drawn.
func (b Background) GridColor() color.Color {
	if b.GridAlpha <= 0 {
		return nil
	}
	if b.Theme == ThemeDarkGrid {
		return WithAlpha(white, b.GridAlpha)
	}
	return WithAlpha(gridGrey, b.GridAlpha)
}

// BackgroundNames returns the names of styles, sorted.
func BackgroundNames(styles map[string]Background) []string {
	names := make([]string, 0, len(styles))
	for n := range styles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
