package sheetdash

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/layout"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/models"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/render"
	"go.uber.org/zap"
)

// Dashboard is the set of figures produced for one table.
type Dashboard struct {
	Figures []*render.Figure
	// Images records the saved files, one per figure, when an output path was given.
	Images []models.ImageRecord
}

// GroupTitle returns the default title of group i (zero-based).
func GroupTitle(prefix, sheet string, i int) string {
	return fmt.Sprintf("%s %s Analysis - Group %d", prefix, sheet, i+1)
}

// GroupPath returns the save path of group i (zero-based) for an output stem.
// An output with an image extension keeps its extension; any other output
// gets "_group<n>.png" appended.
func GroupPath(output string, i int) string {
	if render.IsImagePath(output) {
		ext := filepath.Ext(output)
		return fmt.Sprintf("%s_group%d%s", strings.TrimSuffix(output, ext), i+1, ext)
	}
	return fmt.Sprintf("%s_group%d.png", output, i+1)
}

// CreateDashboard renders one bar-chart figure per column group, cycling
// color schemes over the groups, and saves each figure when opts.Output is set.
func CreateDashboard(t *models.Table, opts DashboardOptions) (*Dashboard, error) {
	opts = opts.withDefaults()
	log := opts.Logger.With(zap.String("sheet", t.Sheet))

	groups := opts.Groups
	if groups == nil {
		groups = layout.AutoGroups(t.Columns)
	}

	dash := &Dashboard{}
	for i, group := range groups {
		chart := render.DefaultBarChartOptions()
		chart.Title = GroupTitle(opts.TitlePrefix, t.Sheet, i)
		if title, ok := opts.Titles[i]; ok {
			chart.Title = title
		}
		chart.Subtitle = opts.Subtitles[i]
		chart.ColumnTitles = opts.ColumnTitles[i]
		chart.ValueFormats = opts.ValueFormats[i]
		if grid, ok := opts.Layouts[i]; ok {
			chart.Grid = &grid
		}
		chart.Scheme = opts.Schemes[i%len(opts.Schemes)]
		chart.Background = opts.Background
		chart.Registry = opts.Registry
		chart.XLabel = opts.XLabel
		chart.YLabel = opts.YLabel
		chart.Size = opts.Size
		chart.BarEdgeColor = opts.BarEdgeColor
		chart.BarEdgeWidth = opts.BarEdgeWidth

		fig, err := render.PlotBarChart(t, group, chart)
		if err != nil {
			return dash, NewSheetError(t.Sheet, StageRender, fmt.Errorf("group %d: %w", i+1, err))
		}
		dash.Figures = append(dash.Figures, fig)

		if opts.Output == "" {
			continue
		}
		path := GroupPath(opts.Output, i)
		if err := fig.Save(path, opts.DPI); err != nil {
			return dash, NewSheetError(t.Sheet, StageSave, err)
		}
		dash.Images = append(dash.Images, imageRecord(fig, path, opts.DPI))
		log.Info("Saved chart", zap.Int("group", i+1), zap.String("path", path), zap.String("scheme", chart.Scheme))
	}

	log.Info("Generated chart groups", zap.Int("groups", len(dash.Figures)))
	return dash, nil
}

func imageRecord(fig *render.Figure, path string, dpi int) models.ImageRecord {
	rec := models.ImageRecord{
		Path:    path,
		Title:   fig.Title,
		Columns: fig.Columns,
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg", ".pdf":
	default:
		w, h := fig.PixelSize(dpi)
		rec.W, rec.H = &w, &h
	}
	return rec
}
