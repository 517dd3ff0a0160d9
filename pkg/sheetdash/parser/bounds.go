package parser

import (
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/models"
	"github.com/xuri/excelize/v2"
)

// DataRegion returns the bounding box of non-empty cells in a sheet together
// with the share of cells inside it that hold data.
func DataRegion(f *excelize.File, sheetName string) (*models.CellRange, float64, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, 0, err
	}

	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return nil, 0, nil
	}

	total := (maxRow - minRow + 1) * (maxCol - minCol + 1)
	density := float64(countNonEmptyCells(rows, minRow, maxRow, minCol, maxCol)) / float64(total)

	return &models.CellRange{R1: minRow + 1, C1: minCol + 1, R2: maxRow + 1, C2: maxCol + 1}, density, nil
}

// findDataBounds finds the bounding box of non-empty cells.
// All results are -1 when no cell holds data.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

// countNonEmptyCells counts non-empty cells within bounds.
func countNonEmptyCells(rows [][]string, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for rowIdx := minRow; rowIdx <= maxRow && rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
			if row[colIdx] != "" {
				count++
			}
		}
	}
	return count
}
