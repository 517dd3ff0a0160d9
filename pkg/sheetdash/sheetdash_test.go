package sheetdash

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/layout"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const testDPI = 30

// writeWorkbook saves a workbook with one sheet per entry of sheets. Each
// sheet is a header row followed by data rows.
func writeWorkbook(t *testing.T, sheets map[string][][]interface{}, order ...string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func statusRows(ncols int) [][]interface{} {
	header := []interface{}{"Category"}
	active := []interface{}{"Active"}
	inactive := []interface{}{"Inactive"}
	for i := 0; i < ncols; i++ {
		header = append(header, fmt.Sprintf("Metric_%d", i+1))
		active = append(active, float64(10*(i+1)))
		inactive = append(inactive, 0.5+float64(i))
	}
	return [][]interface{}{header, active, inactive}
}

func TestOpenWorkbookErrors(t *testing.T) {
	_, err := OpenWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorIs(t, err, ErrFileNotFound)

	bad := filepath.Join(t.TempDir(), "bad.xlsx")
	require.NoError(t, os.WriteFile(bad, []byte("not a workbook"), 0644))
	_, err = OpenWorkbook(bad)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestLoad(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{"WorkStatus": statusRows(3)}, "WorkStatus")

	table, err := Load(path, "WorkStatus", LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Active", "Inactive"}, table.Index)
	assert.Equal(t, []string{"Metric_1", "Metric_2", "Metric_3"}, table.Columns)

	_, err = Load(path, "Nope", LoadOptions{})
	assert.ErrorIs(t, err, ErrSheetNotFound)

	var sheetErr *SheetError
	require.True(t, errors.As(err, &sheetErr))
	assert.Equal(t, "Nope", sheetErr.SheetName)
	assert.Equal(t, StageLoad, sheetErr.Stage)
}

func TestLoadMissingIndex(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Raw": {{"Name", "Value"}, {"a", 1}},
	}, "Raw")

	_, err := Load(path, "Raw", LoadOptions{})
	assert.ErrorIs(t, err, ErrMissingIndexColumn)
}

func TestLoadPrintArea(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	rows := statusRows(4)
	for r, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Area",
		RefersTo: "Sheet1!$A$1:$C$3",
		Scope:    "Sheet1",
	}))
	path := filepath.Join(t.TempDir(), "print.xlsx")
	require.NoError(t, f.SaveAs(path))

	full, err := Load(path, "Sheet1", LoadOptions{})
	require.NoError(t, err)
	assert.Len(t, full.Columns, 4)

	area, err := Load(path, "Sheet1", LoadOptions{UsePrintArea: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Metric_1", "Metric_2"}, area.Columns)

	ranged, err := Load(path, "Sheet1", LoadOptions{Range: &models.CellRange{R1: 1, C1: 1, R2: 2, C2: 2}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Active"}, ranged.Index)
	assert.Equal(t, []string{"Metric_1"}, ranged.Columns)
}

func TestGroupPath(t *testing.T) {
	tests := []struct {
		output string
		i      int
		want   string
	}{
		{"exports/HDFC_WorkStatus", 0, "exports/HDFC_WorkStatus_group1.png"},
		{"exports/HDFC_WorkStatus.svg", 1, "exports/HDFC_WorkStatus_group2.svg"},
		{"out/dash.PNG", 2, "out/dash_group3.PNG"},
		{"out/report.v2", 0, "out/report.v2_group1.png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GroupPath(tt.output, tt.i), tt.output)
	}
}

func TestGroupTitle(t *testing.T) {
	assert.Equal(t, "HDFC WorkStatus Analysis - Group 1", GroupTitle("HDFC", "WorkStatus", 0))
	assert.Equal(t, "Acme Sales Analysis - Group 3", GroupTitle("Acme", "Sales", 2))
}

func TestCreateDashboard(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{"WorkStatus": statusRows(9)}, "WorkStatus")
	table, err := Load(path, "WorkStatus", LoadOptions{})
	require.NoError(t, err)

	dash, err := CreateDashboard(table, DashboardOptions{
		Titles:    map[int]string{1: "Second"},
		Subtitles: map[int]string{0: "First subtitle"},
		Layouts:   map[int]layout.Grid{2: {Rows: 1, Cols: 1}},
	})
	require.NoError(t, err)
	require.Len(t, dash.Figures, 3)
	assert.Empty(t, dash.Images)

	assert.Equal(t, "HDFC WorkStatus Analysis - Group 1", dash.Figures[0].Title)
	assert.Equal(t, "First subtitle", dash.Figures[0].Subtitle)
	assert.Equal(t, "Second", dash.Figures[1].Title)
	assert.Equal(t, []string{"Metric_9"}, dash.Figures[2].Columns)
	assert.Equal(t, layout.Grid{Rows: 1, Cols: 1}, dash.Figures[2].Grid)
	assert.Equal(t, layout.Grid{Rows: 2, Cols: 2}, dash.Figures[0].Grid)
}

func TestCreateDashboardSaves(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{"WorkStatus": statusRows(5)}, "WorkStatus")
	table, err := Load(path, "WorkStatus", LoadOptions{})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "charts", "status")
	dash, err := CreateDashboard(table, DashboardOptions{Output: out, DPI: testDPI})
	require.NoError(t, err)
	require.Len(t, dash.Images, 2)

	for i, img := range dash.Images {
		assert.Equal(t, GroupPath(out, i), img.Path)
		assert.FileExists(t, img.Path)
		require.NotNil(t, img.W)
		assert.Positive(t, *img.W)
	}
}

func TestCreateDashboardNoValidColumns(t *testing.T) {
	table := models.NewTable("S", "Category")
	table.Index = []string{"a"}
	table.AddColumn("x", []float64{1})

	_, err := CreateDashboard(table, DashboardOptions{Groups: [][]string{{"missing"}}})
	assert.ErrorIs(t, err, ErrNoValidColumns)
}

func TestRunDashboards(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"WorkStatus": statusRows(6),
		"Broken":     {{"Name", "Value"}, {"a", 1}},
		"Tiny":       statusRows(2),
	}, "WorkStatus", "Broken", "Tiny")

	core, logs := observer.New(zap.InfoLevel)
	outDir := t.TempDir()
	opts := DefaultRunOptions()
	opts.OutputDir = outDir
	opts.DPI = testDPI
	opts.Logger = zap.New(core)

	manifest, err := RunDashboards(path, opts)
	require.NoError(t, err)

	assert.Equal(t, "book.xlsx", manifest.BookName)
	require.Len(t, manifest.Sheets, 3)
	assert.Len(t, manifest.Sheets[0].Images, 2)
	assert.Equal(t, 2, manifest.Sheets[0].Rows)
	assert.Equal(t, 6, manifest.Sheets[0].Columns)
	assert.NotEmpty(t, manifest.Sheets[1].Error)
	assert.Len(t, manifest.Sheets[2].Images, 1)
	assert.Equal(t, 3, manifest.ImageCount())
	assert.Len(t, manifest.Failed(), 1)

	assert.FileExists(t, filepath.Join(outDir, "HDFC_WorkStatus_group1.png"))
	assert.FileExists(t, filepath.Join(outDir, "HDFC_WorkStatus_group2.png"))
	assert.FileExists(t, filepath.Join(outDir, "HDFC_Tiny_group1.png"))
	assert.Equal(t, 1, logs.FilterMessage("Error processing sheet").Len())
}

func TestRunDashboardsSelectedSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"A": statusRows(1),
		"B": statusRows(1),
	}, "A", "B")

	manifest, err := RunDashboards(path, RunOptions{
		Sheets:    []string{"B"},
		OutputDir: t.TempDir(),
		Format:    "svg",
		DPI:       testDPI,
	})
	require.NoError(t, err)
	require.Len(t, manifest.Sheets, 1)
	require.Len(t, manifest.Sheets[0].Images, 1)

	img := manifest.Sheets[0].Images[0]
	assert.Equal(t, "HDFC_B_group1.svg", filepath.Base(img.Path))
	assert.Nil(t, img.W)
}

func TestRunExamples(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{"WorkStatus": statusRows(6)}, "WorkStatus")
	outDir := t.TempDir()

	manifest, err := RunExamples(path, RunOptions{OutputDir: outDir, DPI: testDPI})
	require.NoError(t, err)
	require.Len(t, manifest.Sheets, 1)
	assert.Empty(t, manifest.Sheets[0].Error)

	for _, name := range []string{
		"WorkStatus_basic.png",
		"WorkStatus_professional.png",
		"WorkStatus_gradient.png",
		"WorkStatus_dashboard_group1.png",
		"WorkStatus_dashboard_group2.png",
	} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}
	assert.Equal(t, 5, manifest.ImageCount())
	assert.Equal(t, "HDFC WorkStatus - Group 2", manifest.Sheets[0].Images[4].Title)
}

func TestExplore(t *testing.T) {
	rows := statusRows(7)
	rows[0] = append(rows[0], "Note")
	rows[1] = append(rows[1], "text")
	path := writeWorkbook(t, map[string][][]interface{}{"WorkStatus": rows}, "WorkStatus")
	out := filepath.Join(t.TempDir(), "explore.png")

	ex, err := Explore(path, "WorkStatus", ExploreOptions{Output: out, DPI: testDPI})
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"Metric_1", "Metric_2"},
		{"Metric_3", "Metric_4", "Metric_5", "Metric_6"},
		{"Metric_7"},
	}, ex.Groups)
	assert.Len(t, ex.Figure.Panels, 3)
	require.NotNil(t, ex.Image)
	assert.FileExists(t, out)
}

func TestExploreCustomGroups(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{"WorkStatus": statusRows(3)}, "WorkStatus")
	out := filepath.Join(t.TempDir(), "explore.svg")

	ex, err := Explore(path, "WorkStatus", ExploreOptions{
		Output:       out,
		DPI:          testDPI,
		CustomGroups: [][]string{{"Missing"}, {"Metric_3", "Metric_1"}},
	})
	require.NoError(t, err)

	assert.Equal(t, layout.Size{Width: 16, Height: 16}, ex.Figure.Size)
	require.NotNil(t, ex.CustomFigure)
	assert.Equal(t, layout.Size{Width: 16, Height: 7}, ex.CustomFigure.Size)
	require.Len(t, ex.CustomFigure.Panels, 1)
	assert.Equal(t, "Group 2: Metric 3 | Metric 1", ex.CustomFigure.Panels[0].Title.Text)
	require.NotNil(t, ex.CustomImage)
	assert.Equal(t, CustomPath(out), ex.CustomImage.Path)
	assert.FileExists(t, CustomPath(out))
}

func TestExplorationPlotOptions(t *testing.T) {
	predefined := PredefinedPlotOptions()
	assert.Equal(t, 16.0, predefined.Width)
	assert.Equal(t, 8.0, predefined.PanelHeight)
	assert.Equal(t, 14.0, predefined.TitleFontSize)
	assert.Zero(t, predefined.TickRotation)

	custom := CustomPlotOptions()
	assert.Equal(t, 7.0, custom.PanelHeight)
	assert.Equal(t, 16.0, custom.TitleFontSize)

	assert.Equal(t, "out/explore_custom.png", CustomPath("out/explore.png"))
	assert.Equal(t, "out/explore_custom.png", CustomPath("out/explore"))
}

func TestRunDashboardsTextInfinity(t *testing.T) {
	rows := statusRows(2)
	rows[0] = append(rows[0], "Note")
	rows[1] = append(rows[1], "inf")
	rows[2] = append(rows[2], "NaN")
	path := writeWorkbook(t, map[string][][]interface{}{"S": rows}, "S")

	manifest, err := RunDashboards(path, RunOptions{OutputDir: t.TempDir(), DPI: testDPI})
	require.NoError(t, err)
	require.Len(t, manifest.Sheets, 1)
	assert.Empty(t, manifest.Sheets[0].Error)
	assert.Equal(t, 1, manifest.ImageCount())
}

func TestExploreNoNumericColumns(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Notes": {{"Category", "Note"}, {"a", "x"}},
	}, "Notes")

	_, err := Explore(path, "Notes", ExploreOptions{})
	var sheetErr *SheetError
	require.ErrorAs(t, err, &sheetErr)
	assert.Equal(t, StageRender, sheetErr.Stage)
}

func TestLoadDropLabels(t *testing.T) {
	rows := statusRows(2)
	rows = append(rows, []interface{}{"Sub total", 30, 2})
	path := writeWorkbook(t, map[string][][]interface{}{"S": rows}, "S")

	table, err := Load(path, "S", LoadOptions{DropLabels: []string{"Sub total"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Active", "Inactive"}, table.Index)
	values, _ := table.Column("Metric_1")
	assert.Equal(t, []float64{10, 0.5}, values)
}

func TestRunDashboardsLayout(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{"S": statusRows(3)}, "S")

	manifest, err := RunDashboards(path, RunOptions{
		OutputDir: t.TempDir(),
		DPI:       testDPI,
		Layout:    &layout.Grid{Rows: 3, Cols: 1},
	})
	require.NoError(t, err)
	require.Len(t, manifest.Sheets[0].Images, 1)
	assert.Equal(t, []string{"Metric_1", "Metric_2", "Metric_3"}, manifest.Sheets[0].Images[0].Columns)
}
