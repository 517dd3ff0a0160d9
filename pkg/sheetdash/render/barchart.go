package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"

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

// ErrNoValidColumns indicates none of the requested columns exist in the table.
var ErrNoValidColumns = errors.New("none of the specified columns exist in the table")

// ErrNoCategories indicates the table has no rows to plot.
var ErrNoCategories = errors.New("table has no categories")

// columnTitleWidth is the wrap width for panel titles.
const columnTitleWidth = 30

// BarChartOptions configures PlotBarChart. Zero numeric fields take the
// values from DefaultBarChartOptions.
type BarChartOptions struct {
	// Title is the figure title; Subtitle is only drawn with a title.
	Title    string
	Subtitle string
	// ColumnTitles maps column names to panel titles.
	ColumnTitles map[string]string
	// XLabel overrides the x-axis label (default: the table index name).
	XLabel string
	// YLabel sets one y-axis label for every panel.
	YLabel string
	// YLabels sets per-column y-axis labels; missing columns get "Value".
	YLabels map[string]string

	// Scheme names a registered color scheme. Colors, when set, is used instead.
	Scheme string
	Colors []string
	// Background names a registered background style.
	Background string
	// Registry resolves schemes and styles (default: style.Default()).
	Registry *style.Registry

	// HideValues disables value labels above bars.
	HideValues bool
	// ValueFormats overrides label formatting per column.
	ValueFormats map[string]format.ValueFormat
	// ValueRotation rotates value labels, in degrees.
	ValueRotation float64
	// AnnotateOffset shifts value labels, in points. Nil selects (0, 5).
	AnnotateOffset *vg.Point

	// Size is the figure size in inches (default: layout.AutoFigSize).
	Size layout.Size
	// Grid is the panel arrangement (default: layout.AutoGrid).
	Grid *layout.Grid
	// ShareY gives every panel the same y range.
	ShareY bool

	TitleFontSize       float64
	SubtitleFontSize    float64
	ColumnTitleFontSize float64
	LabelFontSize       float64
	ValueFontSize       float64

	// HideGrid disables horizontal grid lines.
	HideGrid bool
	// Legend adds a per-category legend to every panel.
	Legend bool
	// BarWidth is the share of each category slot covered by its bar (0-1).
	BarWidth float64
	// BarEdgeColor outlines bars when set; BarEdgeWidth is in points.
	BarEdgeColor string
	BarEdgeWidth float64
	// BarAlpha is the bar opacity (0-1).
	BarAlpha float64
}

// DefaultBarChartOptions returns the standard chart look.
func DefaultBarChartOptions() BarChartOptions {
	return BarChartOptions{
		Scheme:              style.DefaultScheme,
		Background:          style.DefaultBackground,
		AnnotateOffset:      &vg.Point{X: 0, Y: vg.Points(5)},
		TitleFontSize:       20,
		SubtitleFontSize:    16,
		ColumnTitleFontSize: 14,
		LabelFontSize:       12,
		ValueFontSize:       10,
		BarWidth:            0.7,
		BarAlpha:            0.9,
	}
}

func (o BarChartOptions) withDefaults() BarChartOptions {
	d := DefaultBarChartOptions()
	if o.Scheme == "" {
		o.Scheme = d.Scheme
	}
	if o.Background == "" {
		o.Background = d.Background
	}
	if o.Registry == nil {
		o.Registry = style.Default()
	}
	if o.AnnotateOffset == nil {
		o.AnnotateOffset = d.AnnotateOffset
	}
	setDefault(&o.TitleFontSize, d.TitleFontSize)
	setDefault(&o.SubtitleFontSize, d.SubtitleFontSize)
	setDefault(&o.ColumnTitleFontSize, d.ColumnTitleFontSize)
	setDefault(&o.LabelFontSize, d.LabelFontSize)
	setDefault(&o.ValueFontSize, d.ValueFontSize)
	setDefault(&o.BarWidth, d.BarWidth)
	setDefault(&o.BarAlpha, d.BarAlpha)
	return o
}

func setDefault(v *float64, d float64) {
	if *v <= 0 {
		*v = d
	}
}

// ValidColumns returns the requested columns that exist in the table.
func ValidColumns(t *models.Table, columns []string) []string {
	var valid []string
	for _, c := range columns {
		if t.HasColumn(c) {
			valid = append(valid, c)
		}
	}
	return valid
}

// PlotBarChart builds a figure with one bar-chart panel per column. Each
// category gets its own bar color from the scheme.
func PlotBarChart(t *models.Table, columns []string, opts BarChartOptions) (*Figure, error) {
	opts = opts.withDefaults()

	valid := ValidColumns(t, columns)
	if len(valid) == 0 {
		return nil, fmt.Errorf("%w (available: %v)", ErrNoValidColumns, t.Columns)
	}
	if t.Len() == 0 {
		return nil, ErrNoCategories
	}

	size := opts.Size
	if size.IsZero() {
		size = layout.AutoFigSize(len(valid))
	}
	grid := layout.AutoGrid(len(valid))
	if opts.Grid != nil && opts.Grid.Rows > 0 && opts.Grid.Cols > 0 {
		grid = *opts.Grid
	}

	var palette style.Palette
	if len(opts.Colors) > 0 {
		p, err := style.ParsePalette(opts.Colors)
		if err != nil {
			return nil, err
		}
		palette = p.Extend(t.Len())
	} else {
		palette = opts.Registry.Colors(opts.Scheme, t.Len())
	}

	var edge color.Color
	if opts.BarEdgeColor != "" && opts.BarEdgeWidth > 0 {
		c, err := style.ParseColor(opts.BarEdgeColor)
		if err != nil {
			return nil, err
		}
		edge = c
	}

	b := &barBuilder{
		table:   t,
		opts:    opts,
		bg:      opts.Registry.Background(opts.Background),
		palette: palette,
		edge:    edge,
		// The plotting area is roughly 70% of a tile.
		slot: vg.Length(size.Width) * vg.Inch / vg.Length(grid.Cols) * 0.7 / vg.Length(t.Len()),
	}

	fig := &Figure{
		Title:         opts.Title,
		Columns:       valid,
		Grid:          grid,
		Size:          size,
		titleStyle:    titleStyle(opts.TitleFontSize),
		subtitleStyle: subtitleStyle(opts.SubtitleFontSize),
		background:    color.White,
	}
	if opts.Title != "" {
		fig.Subtitle = opts.Subtitle
	}

	for i, col := range valid {
		if i >= grid.Cells() {
			break
		}
		p, err := b.panel(col)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col, err)
		}
		fig.Panels = append(fig.Panels, p)
	}

	if opts.ShareY {
		shareY(fig.Panels)
	}

	return fig, nil
}

type barBuilder struct {
	table   *models.Table
	opts    BarChartOptions
	bg      style.Background
	palette style.Palette
	edge    color.Color
	slot    vg.Length
}

func (b *barBuilder) valueFormat(col string) (bool, int) {
	if vf, ok := b.opts.ValueFormats[col]; ok {
		return vf.IsPercentage, vf.PrecisionOrAuto()
	}
	return format.IsPercentageColumn(col), format.AutoPrecision
}

func (b *barBuilder) yLabel(col string, values []float64, isPct bool) string {
	if len(b.opts.YLabels) > 0 {
		if l, ok := b.opts.YLabels[col]; ok {
			return l
		}
		return "Value"
	}
	if b.opts.YLabel != "" {
		return b.opts.YLabel
	}
	return format.AxisLabel(values, isPct)
}

func (b *barBuilder) panel(col string) (*plot.Plot, error) {
	values, _ := b.table.Column(col)
	isPct, precision := b.valueFormat(col)
	opts := b.opts

	p := plot.New()
	useSans(p)
	p.BackgroundColor = b.bg.Fill()

	p.Title.Text = format.WrapText(col, columnTitleWidth)
	if custom, ok := opts.ColumnTitles[col]; ok {
		p.Title.Text = custom
	}
	p.Title.TextStyle.Font.Size = vg.Points(opts.ColumnTitleFontSize)
	p.Title.TextStyle.Font.Weight = xfont.WeightBold
	p.Title.Padding = vg.Points(15)

	p.X.Label.Text = opts.XLabel
	if p.X.Label.Text == "" {
		p.X.Label.Text = b.table.IndexName
	}
	p.Y.Label.Text = b.yLabel(col, values, isPct)
	for _, l := range []*plot.Axis{&p.X, &p.Y} {
		l.Label.TextStyle.Font.Size = vg.Points(opts.LabelFontSize)
		l.Label.Padding = vg.Points(10)
	}

	if !opts.HideGrid {
		if gc := b.bg.GridColor(); gc != nil {
			g := plotter.NewGrid()
			g.Vertical.Color = nil
			g.Horizontal.Color = gc
			g.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
			p.Add(g)
		}
	}

	width := b.slot * vg.Length(opts.BarWidth)
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		bars, err := plotter.NewBarChart(plotter.Values{v}, width)
		if err != nil {
			return nil, err
		}
		bars.XMin = float64(i)
		bars.Color = style.WithAlpha(b.palette[i], opts.BarAlpha)
		if b.edge != nil {
			bars.LineStyle.Color = b.edge
			bars.LineStyle.Width = vg.Points(opts.BarEdgeWidth)
		} else {
			bars.LineStyle.Width = 0
		}
		p.Add(bars)
		if opts.Legend {
			p.Legend.Add(b.table.Index[i], bars)
		}
	}
	if opts.Legend {
		p.Legend.Top = true
		p.Legend.TextStyle.Font.Size = vg.Points(math.Max(opts.LabelFontSize-2, 6))
	}

	p.NominalX(b.table.Index...)
	p.X.Min = -0.5
	p.X.Max = float64(b.table.Len()) - 0.5
	p.Y.Min, p.Y.Max = valueRange(values, !opts.HideValues)

	if isPct {
		p.Y.Tick.Marker = percentTicks{}
	}

	if !opts.HideValues {
		labels, err := b.valueLabels(values, isPct, precision)
		if err != nil {
			return nil, err
		}
		p.Add(labels)
	}

	return p, nil
}

func (b *barBuilder) valueLabels(values []float64, isPct bool, precision int) (*plotter.Labels, error) {
	xys := make(plotter.XYs, len(values))
	strs := make([]string, len(values))
	for i, v := range values {
		y := v
		if math.IsNaN(v) {
			y = 0
		}
		xys[i] = plotter.XY{X: float64(i), Y: y}
		strs[i] = format.FormatValue(v, isPct, precision)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: strs})
	if err != nil {
		return nil, err
	}
	labels.Offset = *b.opts.AnnotateOffset
	for i := range labels.TextStyle {
		sty := &labels.TextStyle[i]
		sty.Font.Variant = sansVariant
		sty.Font.Size = vg.Points(b.opts.ValueFontSize)
		sty.Font.Weight = xfont.WeightBold
		sty.Color = labelColor
		sty.XAlign = text.XCenter
		sty.YAlign = text.YBottom
		sty.Rotation = degrees(b.opts.ValueRotation)
	}
	return labels, nil
}

// valueRange returns a y range that includes zero, with headroom for labels.
func valueRange(values []float64, labelled bool) (float64, float64) {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		return 0, 1
	}
	pad := (hi - lo) * 0.05
	if labelled {
		pad = (hi - lo) * 0.15
	}
	if hi > 0 {
		hi += pad
	}
	if lo < 0 {
		lo -= pad
	}
	return lo, hi
}

func shareY(panels []*plot.Plot) {
	if len(panels) == 0 {
		return
	}
	lo, hi := panels[0].Y.Min, panels[0].Y.Max
	for _, p := range panels[1:] {
		lo = math.Min(lo, p.Y.Min)
		hi = math.Max(hi, p.Y.Max)
	}
	for _, p := range panels {
		p.Y.Min, p.Y.Max = lo, hi
	}
}

// percentTicks labels the default ticks as percentages.
type percentTicks struct{}

func (percentTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = format.PercentTick(ticks[i].Value)
		}
	}
	return ticks
}
