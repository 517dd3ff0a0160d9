// Package sheetdash turns spreadsheet sheets into styled bar-chart dashboards.
package sheetdash

import (
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/format"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/layout"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/models"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/parser"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/style"
	"go.uber.org/zap"
)

// DefaultTitlePrefix starts every generated dashboard title.
const DefaultTitlePrefix = "HDFC"

// LoadOptions configures how a sheet is read.
type LoadOptions struct {
	// IndexColumn is the category column header (default "Category").
	IndexColumn string
	// Range restricts the table to a cell range.
	Range *models.CellRange
	// UsePrintArea restricts the table to the sheet's first print area when
	// Range is nil and a print area is defined.
	UsePrintArea bool
	// DropLabels removes the rows with these category labels after loading.
	DropLabels []string
}

func (o LoadOptions) tableOptions() parser.TableOptions {
	return parser.TableOptions{IndexColumn: o.IndexColumn, Range: o.Range}
}

// DashboardOptions configures CreateDashboard. Maps keyed by int use the
// zero-based group index.
type DashboardOptions struct {
	// Groups lists the column groups; nil groups the table columns by four.
	Groups [][]string
	// Output is the save path stem. Empty means figures are not saved.
	Output string
	// TitlePrefix starts the default group titles (default "HDFC").
	TitlePrefix string
	// Schemes is cycled over the groups (default style.DashboardCycle).
	Schemes []string
	// Background names the background style of every figure.
	Background string

	Titles       map[int]string
	Subtitles    map[int]string
	ColumnTitles map[int]map[string]string
	ValueFormats map[int]map[string]format.ValueFormat
	Layouts      map[int]layout.Grid

	XLabel string
	YLabel string
	// Size is the figure size in inches (default: chosen per group).
	Size layout.Size
	// DPI is the raster resolution when saving (default 300).
	DPI int

	// BarEdgeColor and BarEdgeWidth outline every bar when both are set.
	BarEdgeColor string
	BarEdgeWidth float64

	Registry *style.Registry
	Logger   *zap.Logger
}

func (o DashboardOptions) withDefaults() DashboardOptions {
	if o.TitlePrefix == "" {
		o.TitlePrefix = DefaultTitlePrefix
	}
	if len(o.Schemes) == 0 {
		o.Schemes = style.DashboardCycle
	}
	if o.Background == "" {
		o.Background = style.DefaultBackground
	}
	if o.DPI <= 0 {
		o.DPI = parser.DefaultDPI
	}
	if o.Registry == nil {
		o.Registry = style.Default()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// RunOptions configures the bulk drivers.
type RunOptions struct {
	// Sheets limits processing to the named sheets (default: every sheet).
	Sheets []string
	// OutputDir receives one sub-directory of images per sheet.
	OutputDir string
	// Format is the image file extension (default "png").
	Format string
	// TitlePrefix starts every figure title and image directory name.
	TitlePrefix string
	// Scheme and Background style the dashboards. An empty Scheme cycles
	// style.DashboardCycle over the groups.
	Scheme     string
	Background string
	DPI        int
	// Layout overrides the panel grid of every dashboard figure.
	Layout *layout.Grid

	Load     LoadOptions
	Registry *style.Registry
	Logger   *zap.Logger
}

// DefaultRunOptions returns the settings of the bulk dashboard export.
func DefaultRunOptions() RunOptions {
	return RunOptions{
		OutputDir:   "exports",
		Format:      "png",
		TitlePrefix: DefaultTitlePrefix,
		Scheme:      "hdfc_brand",
		Background:  "presentation",
		DPI:         parser.DefaultDPI,
	}
}

func (o RunOptions) withDefaults() RunOptions {
	d := DefaultRunOptions()
	if o.OutputDir == "" {
		o.OutputDir = d.OutputDir
	}
	if o.Format == "" {
		o.Format = d.Format
	}
	if o.TitlePrefix == "" {
		o.TitlePrefix = d.TitlePrefix
	}
	if o.DPI <= 0 {
		o.DPI = d.DPI
	}
	if o.Registry == nil {
		o.Registry = style.Default()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
