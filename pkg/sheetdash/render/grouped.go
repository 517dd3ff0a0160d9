package render

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/format"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/layout"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/models"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/style"
	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// GroupedOptions configures GroupedBarPlots.
type GroupedOptions struct {
	// Scheme names the palette cycled over the columns of a group.
	Scheme   string
	Registry *style.Registry
	// Width is the figure width and PanelHeight the height of each group panel, in inches.
	Width       float64
	PanelHeight float64

	TitleFontSize float64
	AxisFontSize  float64
	TickFontSize  float64
	// TickRotation rotates category labels, in degrees.
	TickRotation float64
	// GridAlpha is the opacity of the horizontal grid lines.
	GridAlpha float64
	BarAlpha  float64
}

// DefaultGroupedOptions returns the exploration plot look.
func DefaultGroupedOptions() GroupedOptions {
	return GroupedOptions{
		Scheme:        "pastel",
		Width:         12,
		PanelHeight:   8,
		TitleFontSize: 18,
		AxisFontSize:  14,
		TickFontSize:  12,
		TickRotation:  45,
		GridAlpha:     0.3,
		BarAlpha:      0.8,
	}
}

func (o GroupedOptions) withDefaults() GroupedOptions {
	d := DefaultGroupedOptions()
	if o.Scheme == "" {
		o.Scheme = d.Scheme
	}
	if o.Registry == nil {
		o.Registry = style.Default()
	}
	setDefault(&o.Width, d.Width)
	setDefault(&o.PanelHeight, d.PanelHeight)
	setDefault(&o.TitleFontSize, d.TitleFontSize)
	setDefault(&o.AxisFontSize, d.AxisFontSize)
	setDefault(&o.TickFontSize, d.TickFontSize)
	setDefault(&o.BarAlpha, d.BarAlpha)
	return o
}

// GroupTitle names a group panel after its first two columns.
func GroupTitle(i int, group []string) string {
	var shown []string
	for _, c := range group {
		if len(shown) == 2 {
			break
		}
		shown = append(shown, format.Humanize(c))
	}
	title := fmt.Sprintf("Group %d: %s", i, strings.Join(shown, " | "))
	if len(group) > 2 {
		title += fmt.Sprintf("\n+ %d more columns", len(group)-2)
	}
	return title
}

// GroupedBarPlots stacks one panel per group vertically. Within a panel every
// column gets a side-by-side bar for each category. Missing values plot as
// zero and are not labelled.
func GroupedBarPlots(t *models.Table, groups [][]string, opts GroupedOptions) (*Figure, error) {
	opts = opts.withDefaults()
	if t.Len() == 0 {
		return nil, ErrNoCategories
	}

	// Groups without valid columns get no panel but keep their number.
	var valid [][]string
	var numbers []int
	var all []string
	for i, g := range groups {
		cols := ValidColumns(t, g)
		if len(cols) == 0 {
			continue
		}
		valid = append(valid, cols)
		numbers = append(numbers, i+1)
		all = append(all, cols...)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("%w (available: %v)", ErrNoValidColumns, t.Columns)
	}

	fig := &Figure{
		Columns:    all,
		Grid:       layout.Grid{Rows: len(valid), Cols: 1},
		Size:       layout.Size{Width: opts.Width, Height: opts.PanelHeight * float64(len(valid))},
		background: color.White,
	}
	palette := opts.Registry.Palette(opts.Scheme)
	// Slot width of one category in the plotting area.
	slot := vg.Length(opts.Width) * vg.Inch * 0.8 / vg.Length(t.Len())

	for i, group := range valid {
		p, err := groupPanel(t, numbers[i], group, palette, slot, opts)
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", numbers[i], err)
		}
		fig.Panels = append(fig.Panels, p)
	}
	return fig, nil
}

func groupPanel(t *models.Table, n int, group []string, palette style.Palette, slot vg.Length, opts GroupedOptions) (*plot.Plot, error) {
	p := plot.New()
	useSans(p)

	p.Title.Text = GroupTitle(n, group)
	p.Title.TextStyle.Font.Size = vg.Points(opts.TitleFontSize)
	p.Title.TextStyle.Font.Weight = xfont.WeightBold
	p.Title.Padding = vg.Points(20)
	p.X.Label.Text = format.Humanize(t.IndexName)
	p.Y.Label.Text = "Values"
	for _, a := range []*plot.Axis{&p.X, &p.Y} {
		a.Label.TextStyle.Font.Size = vg.Points(opts.AxisFontSize)
		a.Label.TextStyle.Font.Weight = xfont.WeightBold
		a.Label.Padding = vg.Points(15)
		a.Tick.Label.Font.Size = vg.Points(opts.TickFontSize)
	}
	if opts.TickRotation != 0 {
		p.X.Tick.Label.Rotation = degrees(opts.TickRotation)
		p.X.Tick.Label.XAlign = text.XRight
		p.X.Tick.Label.YAlign = text.YCenter
	}

	if opts.GridAlpha > 0 {
		g := plotter.NewGrid()
		g.Vertical.Color = nil
		g.Horizontal.Color = style.WithAlpha(color.Gray{Y: 0x80}, opts.GridAlpha)
		g.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(g)
	}

	k := len(group)
	width := slot / vg.Length(k)
	var all []float64
	for j, col := range group {
		raw, _ := t.Column(col)
		values := make(plotter.Values, len(raw))
		for i, v := range raw {
			if !math.IsNaN(v) {
				values[i] = v
			}
		}
		all = append(all, values...)

		bars, err := plotter.NewBarChart(values, width)
		if err != nil {
			return nil, err
		}
		bars.Offset = vg.Length(float64(j)-float64(k)/2+0.5) * width
		bars.Color = style.WithAlpha(palette[j%len(palette)], opts.BarAlpha)
		bars.LineStyle.Width = 0
		p.Add(bars)
		p.Legend.Add(format.Humanize(col), bars)

		labels, err := compactLabels(raw, bars.Offset, opts.TickFontSize-2)
		if err != nil {
			return nil, err
		}
		if labels != nil {
			p.Add(labels)
		}
	}
	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = vg.Points(opts.TickFontSize)

	p.NominalX(t.Index...)
	p.X.Min = -0.5
	p.X.Max = float64(t.Len()) - 0.5
	p.Y.Min, p.Y.Max = valueRange(all, true)
	return p, nil
}

// compactLabels labels every non-missing value of a bar series shifted by dx.
func compactLabels(values []float64, dx vg.Length, size float64) (*plotter.Labels, error) {
	var xys plotter.XYs
	var strs []string
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(i), Y: v})
		strs = append(strs, format.CompactValue(v))
	}
	if len(xys) == 0 {
		return nil, nil
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: strs})
	if err != nil {
		return nil, err
	}
	labels.Offset = vg.Point{X: dx, Y: vg.Points(3)}
	for i := range labels.TextStyle {
		sty := &labels.TextStyle[i]
		sty.Font.Variant = sansVariant
		sty.Font.Size = vg.Points(math.Max(size, 6))
		sty.Color = labelColor
		sty.XAlign = text.XCenter
		sty.YAlign = text.YBottom
	}
	return labels, nil
}
