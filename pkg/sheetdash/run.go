package sheetdash

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/layout"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/models"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/parser"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/render"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// RunDashboards exports a dashboard for every selected sheet of the workbook
// at path. A sheet that fails is logged and recorded in the manifest; the
// remaining sheets are still processed.
func RunDashboards(path string, opts RunOptions) (*models.Manifest, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	f, err := OpenWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb := Describe(f, path)
	sheets := opts.Sheets
	if len(sheets) == 0 {
		sheets = wb.Sheets
	}

	schemes := []string(nil)
	if opts.Scheme != "" {
		schemes = []string{opts.Scheme}
	}

	manifest := &models.Manifest{BookName: wb.BookName, OutputDir: opts.OutputDir}
	for _, sheet := range sheets {
		log.Info("Processing sheet", zap.String("sheet", sheet))
		report := models.SheetReport{Sheet: sheet}

		table, err := LoadSheet(f, sheet, opts.Load)
		if err != nil {
			manifest.Sheets = append(manifest.Sheets, failSheet(log, report, err))
			continue
		}
		report.Rows, report.Columns = table.Shape()
		logRegion(log, f, sheet)

		groups := layout.GroupColumns(table.Columns, layout.GroupSize)
		var layouts map[int]layout.Grid
		if opts.Layout != nil {
			layouts = make(map[int]layout.Grid, len(groups))
			for i := range groups {
				layouts[i] = *opts.Layout
			}
		}

		stem := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_%s.%s", opts.TitlePrefix, sheet, opts.Format))
		dash, err := CreateDashboard(table, DashboardOptions{
			Groups:      groups,
			Layouts:     layouts,
			Output:      stem,
			TitlePrefix: opts.TitlePrefix,
			Schemes:     schemes,
			Background:  opts.Background,
			DPI:         opts.DPI,
			Registry:    opts.Registry,
			Logger:      log,
		})
		if dash != nil {
			report.Images = dash.Images
		}
		if err != nil {
			manifest.Sheets = append(manifest.Sheets, failSheet(log, report, err))
			continue
		}
		manifest.Sheets = append(manifest.Sheets, report)
	}

	log.Info("All dashboards exported",
		zap.String("output", opts.OutputDir),
		zap.Int("images", manifest.ImageCount()),
		zap.Int("failed", len(manifest.Failed())))
	return manifest, nil
}

func failSheet(log *zap.Logger, report models.SheetReport, err error) models.SheetReport {
	log.Error("Error processing sheet", zap.String("sheet", report.Sheet), zap.Error(err))
	report.Error = err.Error()
	return report
}

func logRegion(log *zap.Logger, f *excelize.File, sheet string) {
	region, density, err := parser.DataRegion(f, sheet)
	if err != nil || region == nil {
		return
	}
	log.Debug("Data region", zap.String("sheet", sheet), zap.Stringer("range", region), zap.Float64("density", density))
}

// RunExamples renders the example gallery for every sheet: a basic chart, a
// professional chart, a gradient chart in a 2x3 grid and a full dashboard.
func RunExamples(path string, opts RunOptions) (*models.Manifest, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	f, err := OpenWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb := Describe(f, path)
	sheets := opts.Sheets
	if len(sheets) == 0 {
		sheets = wb.Sheets
	}
	log.Info("Generating example visualizations", zap.Int("sheets", len(sheets)))

	manifest := &models.Manifest{BookName: wb.BookName, OutputDir: opts.OutputDir}
	for i, sheet := range sheets {
		log.Info("Processing sheet", zap.String("sheet", sheet), zap.Int("n", i+1), zap.Int("of", len(sheets)))
		report := models.SheetReport{Sheet: sheet}

		table, err := LoadSheet(f, sheet, opts.Load)
		if err != nil {
			manifest.Sheets = append(manifest.Sheets, failSheet(log, report, err))
			continue
		}
		report.Rows, report.Columns = table.Shape()

		images, err := sheetExamples(table, opts)
		report.Images = images
		if err != nil {
			manifest.Sheets = append(manifest.Sheets, failSheet(log, report, err))
			continue
		}
		log.Info("Created visualizations", zap.String("sheet", sheet), zap.Int("images", len(images)))
		manifest.Sheets = append(manifest.Sheets, report)
	}

	log.Info("All example visualizations generated", zap.String("output", opts.OutputDir))
	return manifest, nil
}

type example struct {
	suffix   string
	title    string
	subtitle string
	columns  []string
	chart    func(*render.BarChartOptions)
}

func sheetExamples(t *models.Table, opts RunOptions) ([]models.ImageRecord, error) {
	cols := t.Columns
	first := func(n int) []string { return cols[:min(n, len(cols))] }

	professional := first(4)
	if len(cols) > 4 {
		professional = cols[4:min(8, len(cols))]
	}
	grid := layout.Grid{Rows: 2, Cols: 3}

	examples := []example{
		{
			suffix:   "basic",
			title:    "Basic Example",
			subtitle: "Default settings with corporate color scheme",
			columns:  first(4),
			chart: func(o *render.BarChartOptions) {
				o.Scheme = "corporate"
			},
		},
		{
			suffix:   "professional",
			title:    "Professional Style",
			subtitle: "HDFC brand colors with enhanced presentation style",
			columns:  professional,
			chart: func(o *render.BarChartOptions) {
				o.Scheme = "hdfc_brand"
				o.Background = "presentation"
				o.BarEdgeColor = "white"
				o.BarEdgeWidth = 0.5
			},
		},
		{
			suffix:   "gradient",
			title:    "Gradient Style",
			subtitle: "Blue gradient with 2x3 grid layout",
			columns:  first(6),
			chart: func(o *render.BarChartOptions) {
				o.Scheme = "gradient_blue"
				o.Background = "minimal"
				o.Grid = &grid
			},
		},
	}

	var images []models.ImageRecord
	for _, ex := range examples {
		if len(ex.columns) == 0 {
			continue
		}
		chart := render.DefaultBarChartOptions()
		chart.Title = fmt.Sprintf("%s %s - %s", opts.TitlePrefix, t.Sheet, ex.title)
		chart.Subtitle = ex.subtitle
		chart.Registry = opts.Registry
		ex.chart(&chart)

		fig, err := render.PlotBarChart(t, ex.columns, chart)
		if err != nil {
			return images, NewSheetError(t.Sheet, StageRender, fmt.Errorf("%s example: %w", ex.suffix, err))
		}
		path := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_%s.%s", t.Sheet, ex.suffix, opts.Format))
		if err := fig.Save(path, opts.DPI); err != nil {
			return images, NewSheetError(t.Sheet, StageSave, err)
		}
		images = append(images, imageRecord(fig, path, opts.DPI))
	}

	groups := layout.GroupColumns(cols, layout.GroupSize)
	titles := make(map[int]string, len(groups))
	for j := range groups {
		titles[j] = fmt.Sprintf("%s %s - Group %d", opts.TitlePrefix, t.Sheet, j+1)
	}
	dash, err := CreateDashboard(t, DashboardOptions{
		Groups:      groups,
		Output:      filepath.Join(opts.OutputDir, fmt.Sprintf("%s_dashboard.%s", t.Sheet, opts.Format)),
		TitlePrefix: opts.TitlePrefix,
		Schemes:     opts.Registry.Schemes(),
		Background:  "presentation",
		Titles:      titles,
		DPI:         opts.DPI,
		Registry:    opts.Registry,
		Logger:      opts.Logger,
	})
	if dash != nil {
		images = append(images, dash.Images...)
	}
	return images, err
}

// PredefinedPlotOptions is the look of the predefined-group exploration plot.
func PredefinedPlotOptions() render.GroupedOptions {
	o := render.DefaultGroupedOptions()
	o.Width = 16
	o.TitleFontSize = 14
	o.TickRotation = 0
	return o
}

// CustomPlotOptions is the look of the plot drawn from caller-chosen groups.
func CustomPlotOptions() render.GroupedOptions {
	o := PredefinedPlotOptions()
	o.PanelHeight = 7
	o.TitleFontSize = 16
	return o
}

// ExploreOptions configures Explore.
type ExploreOptions struct {
	Load LoadOptions
	// Output saves the grouped figure when set. The custom figure is saved
	// next to it with a "_custom" suffix.
	Output string
	DPI    int
	// Grouped styles the predefined plot; nil selects PredefinedPlotOptions.
	Grouped *render.GroupedOptions
	// CustomGroups renders a second figure from these column groups.
	CustomGroups [][]string
	// Custom styles the custom plot; nil selects CustomPlotOptions.
	Custom *render.GroupedOptions
	Logger *zap.Logger
}

// Exploration summarises a sheet and holds its grouped bar plots.
type Exploration struct {
	Table  *models.Table
	Groups [][]string
	Figure *render.Figure
	// Image is set when the figure was saved.
	Image *models.ImageRecord

	CustomGroups [][]string
	CustomFigure *render.Figure
	CustomImage  *models.ImageRecord
}

// CustomPath derives the custom figure path from the exploration output.
func CustomPath(output string) string {
	ext := filepath.Ext(output)
	if !render.IsImagePath(output) {
		return output + "_custom.png"
	}
	return strings.TrimSuffix(output, ext) + "_custom" + ext
}

// Explore loads one sheet, buckets its numeric columns with
// layout.PredefinedGroups and renders the grouped bar plot. When
// opts.CustomGroups is set a second plot is drawn from those groups.
func Explore(path, sheet string, opts ExploreOptions) (*Exploration, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	dpi := opts.DPI
	if dpi <= 0 {
		dpi = parser.DefaultDPI
	}
	predefined := PredefinedPlotOptions()
	if opts.Grouped != nil {
		predefined = *opts.Grouped
	}
	custom := CustomPlotOptions()
	if opts.Custom != nil {
		custom = *opts.Custom
	}

	table, err := Load(path, sheet, opts.Load)
	if err != nil {
		return nil, err
	}

	ex := &Exploration{
		Table:        table,
		Groups:       layout.PredefinedGroups(table.NumericColumns()),
		CustomGroups: opts.CustomGroups,
	}
	if len(ex.Groups) == 0 {
		return ex, NewSheetError(sheet, StageRender, errors.New("no numeric columns"))
	}
	for i, g := range ex.Groups {
		log.Debug("Column group", zap.Int("group", i+1), zap.Strings("columns", g))
	}

	ex.Figure, err = render.GroupedBarPlots(table, ex.Groups, predefined)
	if err != nil {
		return ex, NewSheetError(sheet, StageRender, err)
	}
	if opts.Output != "" {
		ex.Image, err = saveExploration(ex.Figure, opts.Output, dpi)
		if err != nil {
			return ex, NewSheetError(sheet, StageSave, err)
		}
		log.Info("Saved grouped plot", zap.String("path", opts.Output))
	}

	if len(opts.CustomGroups) == 0 {
		return ex, nil
	}
	ex.CustomFigure, err = render.GroupedBarPlots(table, opts.CustomGroups, custom)
	if err != nil {
		return ex, NewSheetError(sheet, StageRender, fmt.Errorf("custom groups: %w", err))
	}
	if opts.Output != "" {
		out := CustomPath(opts.Output)
		ex.CustomImage, err = saveExploration(ex.CustomFigure, out, dpi)
		if err != nil {
			return ex, NewSheetError(sheet, StageSave, err)
		}
		log.Info("Saved custom grouped plot", zap.String("path", out))
	}
	return ex, nil
}

func saveExploration(fig *render.Figure, out string, dpi int) (*models.ImageRecord, error) {
	if err := fig.Save(out, dpi); err != nil {
		return nil, err
	}
	rec := imageRecord(fig, out, dpi)
	return &rec, nil
}
