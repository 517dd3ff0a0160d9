// Package render draws multi-panel bar-chart figures with gonum/plot and
// writes them as images.
package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/layout"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/parser"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Figure is a titled grid of chart panels.
type Figure struct {
	// Title is drawn bold above the panels.
	Title string
	// Subtitle is drawn in italics below the title.
	Subtitle string
	// Columns lists the plotted columns, one per panel for bar charts.
	Columns []string
	// Grid is the panel arrangement.
	Grid layout.Grid
	// Size is the figure size in inches.
	Size layout.Size
	// Panels holds the plots in row-major order. Cells past the end stay empty.
	Panels []*plot.Plot

	titleStyle    text.Style
	subtitleStyle text.Style
	background    color.Color
}

// SupportedFormats lists the image formats Save understands.
var SupportedFormats = []string{"png", "jpg", "jpeg", "tif", "tiff", "svg", "pdf"}

// IsImagePath reports whether path ends with a supported image extension.
func IsImagePath(path string) bool {
	ext := formatOf(path)
	for _, f := range SupportedFormats {
		if ext == f {
			return true
		}
	}
	return false
}

func formatOf(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// headerHeight returns the space reserved above the panels for the titles.
func (f *Figure) headerHeight() vg.Length {
	var h vg.Length
	if f.Title != "" {
		h += f.titleStyle.Height(f.Title) + f.titleStyle.Font.Size*0.6
	}
	if f.Subtitle != "" {
		h += f.subtitleStyle.Height(f.Subtitle) + f.subtitleStyle.Font.Size*0.5
	}
	return h
}

// Draw renders the figure onto dc.
func (f *Figure) Draw(dc draw.Canvas) {
	bg := f.background
	if bg == nil {
		bg = color.White
	}
	dc.SetColor(bg)
	dc.Fill(dc.Rectangle.Path())

	top := dc.Max.Y - f.titleStyle.Font.Size*0.4
	center := (dc.Min.X + dc.Max.X) / 2
	if f.Title != "" {
		dc.FillText(f.titleStyle, vg.Point{X: center, Y: top}, f.Title)
		top -= f.titleStyle.Height(f.Title) + f.titleStyle.Font.Size*0.2
	}
	if f.Subtitle != "" {
		dc.FillText(f.subtitleStyle, vg.Point{X: center, Y: top}, f.Subtitle)
	}

	body := draw.Crop(dc, 0, 0, vg.Points(10), -f.headerHeight())
	tiles := draw.Tiles{
		Rows:      f.Grid.Rows,
		Cols:      f.Grid.Cols,
		PadX:      vg.Points(24),
		PadY:      vg.Points(24),
		PadTop:    vg.Points(8),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(8),
		PadRight:  vg.Points(8),
	}
	for i, p := range f.Panels {
		if p == nil || i >= f.Grid.Cells() {
			continue
		}
		p.Draw(tiles.At(body, i%f.Grid.Cols, i/f.Grid.Cols))
	}
}

// PixelSize returns the raster size of the figure at dpi.
func (f *Figure) PixelSize(dpi int) (int, int) {
	return parser.InchesToPixels(f.Size.Width, dpi), parser.InchesToPixels(f.Size.Height, dpi)
}

// newCanvas creates a canvas for format sized to the figure.
func (f *Figure) newCanvas(format string, dpi int) (vg.CanvasWriterTo, error) {
	w := vg.Length(f.Size.Width) * vg.Inch
	h := vg.Length(f.Size.Height) * vg.Inch
	if dpi <= 0 {
		dpi = parser.DefaultDPI
	}

	switch format {
	case "png", "":
		return vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))}, nil
	case "jpg", "jpeg":
		return vgimg.JpegCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))}, nil
	case "tif", "tiff":
		return vgimg.TiffCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))}, nil
	case "svg":
		return vgsvg.New(w, h), nil
	case "pdf":
		return vgpdf.New(w, h), nil
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
}

// WriteTo renders the figure in the given format to w.
func (f *Figure) WriteTo(w io.Writer, format string, dpi int) (int64, error) {
	c, err := f.newCanvas(strings.ToLower(format), dpi)
	if err != nil {
		return 0, err
	}
	f.Draw(draw.New(c))
	return c.WriteTo(w)
}

// Save writes the figure to path, choosing the format from its extension.
func (f *Figure) Save(path string, dpi int) (err error) {
	format := formatOf(path)
	if format == "" {
		return fmt.Errorf("missing image extension in %q", path)
	}
	if !IsImagePath(path) {
		return fmt.Errorf("unsupported image format %q", format)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err := f.WriteTo(out, format, dpi); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
