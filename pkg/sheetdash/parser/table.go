package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/models"
	"github.com/xuri/excelize/v2"
)

// DefaultIndexColumn is the header of the category column.
const DefaultIndexColumn = "Category"

// ErrMissingIndexColumn indicates the header row has no category column.
var ErrMissingIndexColumn = errors.New("index column not found")

// ErrEmptySheet indicates the sheet (or the selected range) holds no data.
var ErrEmptySheet = errors.New("sheet has no data")

// TableOptions configures how a sheet is read into a Table.
type TableOptions struct {
	// IndexColumn is the header of the category column. Defaults to "Category".
	IndexColumn string
	// Range restricts reading to the given cell bounds. When nil the bounding
	// box of non-empty cells is used.
	Range *models.CellRange
}

// ReadTable reads a sheet into a Table keyed by the index column.
// The first row of the region is the header; fully empty rows are skipped.
func ReadTable(f *excelize.File, sheetName string, opts TableOptions) (*models.Table, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	indexName := opts.IndexColumn
	if indexName == "" {
		indexName = DefaultIndexColumn
	}

	var area models.CellRange
	if opts.Range != nil {
		area = *opts.Range
	} else {
		minRow, maxRow, minCol, maxCol := findDataBounds(rows)
		if minRow < 0 {
			return nil, ErrEmptySheet
		}
		area = models.CellRange{R1: minRow + 1, C1: minCol + 1, R2: maxRow + 1, C2: maxCol + 1}
	}

	grid := sliceRegion(rows, area)
	if len(grid) == 0 {
		return nil, ErrEmptySheet
	}

	header := grid[0]
	indexCol := -1
	for i, h := range header {
		if strings.TrimSpace(h) == indexName {
			indexCol = i
			break
		}
	}
	if indexCol < 0 {
		return nil, fmt.Errorf("%w: %q in sheet %q", ErrMissingIndexColumn, indexName, sheetName)
	}

	table := models.NewTable(sheetName, indexName)
	var body [][]string
	for _, row := range grid[1:] {
		if isBlankRow(row) {
			continue
		}
		table.Index = append(table.Index, strings.TrimSpace(cellAt(row, indexCol)))
		body = append(body, row)
	}

	for colIdx, name := range header {
		if colIdx == indexCol {
			continue
		}
		name = strings.TrimSpace(name)
		values := make([]float64, len(body))
		hasData, hasText := false, false
		for r, row := range body {
			cell := cellAt(row, colIdx)
			if cell != "" {
				hasData = true
			}
			v := parseValue(cell)
			if str, ok := v.(string); ok && str != "" {
				hasText = true
			}
			values[r] = toFloat(v)
		}
		if name == "" {
			if !hasData {
				continue
			}
			name = fmt.Sprintf("Unnamed: %d", colIdx)
		}
		table.AddColumn(name, values)
		table.Numeric[name] = !hasText
	}

	return table, nil
}

// sliceRegion returns the cells of rows within area as a dense grid.
func sliceRegion(rows [][]string, area models.CellRange) [][]string {
	var grid [][]string
	for r := area.R1; r <= area.R2 && r-1 < len(rows); r++ {
		src := rows[r-1]
		row := make([]string, 0, area.C2-area.C1+1)
		for c := area.C1; c <= area.C2; c++ {
			row = append(row, cellAt(src, c-1))
		}
		grid = append(grid, row)
	}
	return grid
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for finite decimals, or the original
// string. Words such as "inf" or "NaN" stay text.
func parseValue(s string) interface{} {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if !strings.ContainsAny(s, "0123456789") {
		return s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return s
}

// toFloat converts a parsed cell value to float64, NaN for text.
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	default:
		return math.NaN()
	}
}
