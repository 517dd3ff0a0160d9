// Package clean removes subtotal rows from workbooks before they are charted.
package clean

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/parser"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// DefaultMarker is the label of subtotal rows.
const DefaultMarker = "Sub total"

// Options configures RemoveSubtotals.
type Options struct {
	// Marker is the cell text identifying subtotal rows (default "Sub total").
	Marker string
	// IndexColumn is the category header checked first (default "Category").
	IndexColumn string
	// NoBackup skips the "<name>_backup.xlsx" copy of the source.
	NoBackup bool
	Logger   *zap.Logger
}

// SheetResult reports the rows removed from one sheet.
type SheetResult struct {
	Sheet string `json:"sheet"`
	// RowsBefore and RowsAfter count data rows, excluding the header.
	RowsBefore int `json:"rows_before"`
	RowsAfter  int `json:"rows_after"`
	// Columns is the number of columns in the header row.
	Columns int `json:"columns"`
	// ByIndex is true when rows were matched on the category column only.
	ByIndex bool `json:"by_index"`
	// Removed lists the 1-based sheet rows that were deleted.
	Removed []int `json:"removed,omitempty"`
}

// Result is the outcome of a cleaning run.
type Result struct {
	Source string `json:"source"`
	Output string `json:"output"`
	// Backup is set when a backup was written during this run.
	Backup string        `json:"backup,omitempty"`
	Sheets []SheetResult `json:"sheets"`
}

// BackupPath returns "<dir>/<name>_backup<ext>" for src.
func BackupPath(src string) string {
	ext := filepath.Ext(src)
	return strings.TrimSuffix(src, ext) + "_backup" + ext
}

// RemoveSubtotals copies src to dst without its subtotal rows. When a sheet
// has a category column only rows labelled with the marker there are dropped;
// otherwise any row with a cell equal to the marker is dropped.
func RemoveSubtotals(src, dst string, opts Options) (*Result, error) {
	if opts.Marker == "" {
		opts.Marker = DefaultMarker
	}
	if opts.IndexColumn == "" {
		opts.IndexColumn = parser.DefaultIndexColumn
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	res := &Result{Source: src, Output: dst}
	if !opts.NoBackup {
		backup := BackupPath(src)
		created, err := backupOnce(src, backup)
		if err != nil {
			return nil, fmt.Errorf("backup failed: %w", err)
		}
		if created {
			res.Backup = backup
			log.Info("Created backup", zap.String("source", src), zap.String("backup", backup))
		}
	}

	f, err := excelize.OpenFile(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	log.Info("Found sheets", zap.Int("count", len(sheets)), zap.Strings("sheets", sheets))

	for _, sheet := range sheets {
		sr, err := cleanSheet(f, sheet, opts)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		log.Info("Processed sheet",
			zap.String("sheet", sheet),
			zap.String("original_shape", fmt.Sprintf("(%d, %d)", sr.RowsBefore, sr.Columns)),
			zap.String("new_shape", fmt.Sprintf("(%d, %d)", sr.RowsAfter, sr.Columns)),
			zap.Int("removed", len(sr.Removed)))
		res.Sheets = append(res.Sheets, sr)
	}

	if err := f.SaveAs(dst); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", dst, err)
	}
	log.Info("Modified file saved", zap.String("output", dst))
	return res, nil
}

func cleanSheet(f *excelize.File, sheet string, opts Options) (SheetResult, error) {
	sr := SheetResult{Sheet: sheet}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return sr, err
	}

	headerIdx := -1
	for i, row := range rows {
		if !blank(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return sr, nil
	}
	header := rows[headerIdx]
	sr.Columns = len(header)

	indexCol := -1
	for i, h := range header {
		if strings.TrimSpace(h) == opts.IndexColumn {
			indexCol = i
			break
		}
	}
	sr.ByIndex = indexCol >= 0

	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		sr.RowsBefore++
		if matches(row, indexCol, opts.Marker) {
			sr.Removed = append(sr.Removed, i+1)
		}
	}
	sr.RowsAfter = sr.RowsBefore - len(sr.Removed)

	// Bottom-up so earlier row numbers stay valid.
	for i := len(sr.Removed) - 1; i >= 0; i-- {
		if err := f.RemoveRow(sheet, sr.Removed[i]); err != nil {
			return sr, err
		}
	}
	return sr, nil
}

func matches(row []string, indexCol int, marker string) bool {
	if indexCol >= 0 {
		return indexCol < len(row) && strings.TrimSpace(row[indexCol]) == marker
	}
	for _, cell := range row {
		if strings.TrimSpace(cell) == marker {
			return true
		}
	}
	return false
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// backupOnce copies src to dst unless dst already exists. A failed copy
// leaves no file at dst.
func backupOnce(src, dst string) (bool, error) {
	if _, err := os.Stat(dst); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	in, err := os.Open(src)
	if err != nil {
		return false, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return false, err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return false, err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return false, err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return false, err
	}
	return true, os.Chtimes(dst, info.ModTime(), info.ModTime())
}
