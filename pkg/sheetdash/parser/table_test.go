package parser

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/models"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheetName string, cells map[string]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheetName != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheetName); err != nil {
			t.Fatalf("Failed to rename sheet: %v", err)
		}
	}
	for cell, v := range cells {
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			t.Fatalf("Failed to set %s: %v", cell, err)
		}
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func TestReadTable(t *testing.T) {
	path := writeWorkbook(t, "WorkStatus", map[string]interface{}{
		"A1": "Category", "B1": "CAP_LRM_cohort", "C1": "Attrition %", "D1": "Note",
		"A2": "Active", "B2": 2866, "C2": 0.125, "D2": "ok",
		"A3": "Inactive", "B3": 4169, "C3": 0.5,
	})

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f.Close()

	table, err := ReadTable(f, "WorkStatus", TableOptions{})
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}

	if table.IndexName != "Category" {
		t.Errorf("Expected index name 'Category', got %q", table.IndexName)
	}
	if len(table.Index) != 2 || table.Index[0] != "Active" || table.Index[1] != "Inactive" {
		t.Errorf("Unexpected index: %v", table.Index)
	}

	wantCols := []string{"CAP_LRM_cohort", "Attrition %", "Note"}
	if len(table.Columns) != len(wantCols) {
		t.Fatalf("Expected %d columns, got %v", len(wantCols), table.Columns)
	}
	for i, c := range wantCols {
		if table.Columns[i] != c {
			t.Errorf("Column %d: expected %q, got %q", i, c, table.Columns[i])
		}
	}

	cohort, _ := table.Column("CAP_LRM_cohort")
	if cohort[0] != 2866 || cohort[1] != 4169 {
		t.Errorf("Unexpected cohort values: %v", cohort)
	}
	pct, _ := table.Column("Attrition %")
	if pct[0] != 0.125 {
		t.Errorf("Expected raw 0.125, got %v", pct[0])
	}

	note, _ := table.Column("Note")
	if !math.IsNaN(note[0]) || !math.IsNaN(note[1]) {
		t.Errorf("Expected NaN for text and empty cells, got %v", note)
	}
	if table.Numeric["Note"] {
		t.Errorf("Expected 'Note' to be non-numeric")
	}
	if got := table.NumericColumns(); len(got) != 2 {
		t.Errorf("Expected 2 numeric columns, got %v", got)
	}
}

func TestReadTableColumnKinds(t *testing.T) {
	path := writeWorkbook(t, "S", map[string]interface{}{
		"A1": "Category", "B1": "Score", "C1": "Note", "D1": "Mixed", "E1": "Blank",
		"A2": "Active", "B2": 12, "C2": "inf", "D2": 3,
		"A3": "Inactive", "B3": 7, "C3": "NaN", "D3": "n/a",
	})

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f.Close()

	table, err := ReadTable(f, "S", TableOptions{})
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}

	note, _ := table.Column("Note")
	for i, v := range note {
		if !math.IsNaN(v) {
			t.Errorf("Note[%d]: expected NaN for text cell, got %v", i, v)
		}
	}
	mixed, _ := table.Column("Mixed")
	if mixed[0] != 3 || !math.IsNaN(mixed[1]) {
		t.Errorf("Unexpected Mixed values: %v", mixed)
	}

	want := []string{"Score", "Blank"}
	got := table.NumericColumns()
	if len(got) != len(want) {
		t.Fatalf("Expected numeric columns %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Numeric column %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestReadTableOffsetAndRange(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", map[string]interface{}{
		"C3": "Category", "D3": "Sales",
		"C4": "North", "D4": 10,
		"C6": "South", "D6": 20,
		"C8": "Sub total", "D8": 30,
	})

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f.Close()

	table, err := ReadTable(f, "Sheet1", TableOptions{})
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if table.Len() != 3 {
		t.Errorf("Expected blank row to be skipped and 3 rows kept, got %v", table.Index)
	}

	table, err = ReadTable(f, "Sheet1", TableOptions{Range: &models.CellRange{R1: 3, C1: 3, R2: 6, C2: 4}})
	if err != nil {
		t.Fatalf("ReadTable with range failed: %v", err)
	}
	if table.Len() != 2 {
		t.Errorf("Expected 2 rows inside range, got %v", table.Index)
	}
}

func TestReadTableMissingIndex(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", map[string]interface{}{
		"A1": "Name", "B1": "Value",
		"A2": "x", "B2": 1,
	})

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f.Close()

	if _, err := ReadTable(f, "Sheet1", TableOptions{}); err == nil {
		t.Errorf("Expected error for missing index column")
	}
	table, err := ReadTable(f, "Sheet1", TableOptions{IndexColumn: "Name"})
	if err != nil {
		t.Fatalf("ReadTable with custom index failed: %v", err)
	}
	if table.IndexName != "Name" || table.Len() != 1 {
		t.Errorf("Unexpected table: %+v", table)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{" 7 ", int64(7)},
		{"hello", "hello"},
		{"", ""},
		{"inf", "inf"},
		{"-Infinity", "-Infinity"},
		{"NaN", "NaN"},
		{"1e999", "1e999"},
		{"2.5e3", 2500.0},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		if result != tt.expected {
			t.Errorf("parseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}

func TestFindDataBounds(t *testing.T) {
	rows := [][]string{
		{},
		{"", "", "a"},
		{"", "b", "", "c"},
	}
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow != 1 || maxRow != 2 || minCol != 1 || maxCol != 3 {
		t.Errorf("findDataBounds = (%d, %d, %d, %d), expected (1, 2, 1, 3)", minRow, maxRow, minCol, maxCol)
	}

	minRow, _, _, _ = findDataBounds([][]string{{"", ""}})
	if minRow != -1 {
		t.Errorf("Expected -1 for empty rows, got %d", minRow)
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		ref      string
		expected models.CellRange
		wantErr  bool
	}{
		{"A1:D10", models.CellRange{R1: 1, C1: 1, R2: 10, C2: 4}, false},
		{"$B$2:$F$9", models.CellRange{R1: 2, C1: 2, R2: 9, C2: 6}, false},
		{"'My Sheet'!$A$1:$B$2", models.CellRange{R1: 1, C1: 1, R2: 2, C2: 2}, false},
		{"D10:A1", models.CellRange{R1: 1, C1: 1, R2: 10, C2: 4}, false},
		{"A1", models.CellRange{}, true},
		{"foo:bar", models.CellRange{}, true},
	}

	for _, tt := range tests {
		got, err := ParseRange(tt.ref)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRange(%q) expected error", tt.ref)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRange(%q) unexpected error: %v", tt.ref, err)
			continue
		}
		if *got != tt.expected {
			t.Errorf("ParseRange(%q) = %+v, expected %+v", tt.ref, *got, tt.expected)
		}
	}
}

func TestParsePrintAreaReference(t *testing.T) {
	sheet, areas := parsePrintAreaReference("'Work Status'!$A$1:$D$10,'Work Status'!$F$1:$G$4")
	if sheet != "Work Status" {
		t.Errorf("Expected sheet 'Work Status', got %q", sheet)
	}
	if len(areas) != 2 {
		t.Fatalf("Expected 2 areas, got %d", len(areas))
	}
	if areas[1] != (models.CellRange{R1: 1, C1: 6, R2: 4, C2: 7}) {
		t.Errorf("Unexpected second area: %+v", areas[1])
	}
}

func TestInchesToPixels(t *testing.T) {
	tests := []struct {
		inches   float64
		dpi      int
		expected int
	}{
		{16, 300, 4800},
		{1, 96, 96},
		{2.5, 100, 250},
		{1, 0, 300},
	}

	for _, tt := range tests {
		if got := InchesToPixels(tt.inches, tt.dpi); got != tt.expected {
			t.Errorf("InchesToPixels(%v, %d) = %d, expected %d", tt.inches, tt.dpi, got, tt.expected)
		}
	}
}
