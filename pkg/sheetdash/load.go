package sheetdash

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/models"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/parser"
	"github.com/xuri/excelize/v2"
)

// OpenWorkbook opens an xlsx file. The caller must close the returned file.
func OpenWorkbook(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, path, err)
	}
	return f, nil
}

// Describe lists the sheets of an open workbook.
func Describe(f *excelize.File, path string) *models.Workbook {
	return &models.Workbook{
		BookName: filepath.Base(path),
		Sheets:   f.GetSheetList(),
	}
}

// Load reads one sheet of the workbook at path.
func Load(path, sheet string, opts LoadOptions) (*models.Table, error) {
	f, err := OpenWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadSheet(f, sheet, opts)
}

// LoadSheet reads one sheet of an open workbook into a Table.
func LoadSheet(f *excelize.File, sheet string, opts LoadOptions) (*models.Table, error) {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, NewSheetError(sheet, StageLoad, ErrSheetNotFound)
	}

	topts := opts.tableOptions()
	if topts.Range == nil && opts.UsePrintArea {
		if areas := parser.ExtractPrintAreas(f)[sheet]; len(areas) > 0 {
			area := areas[0]
			topts.Range = &area
		}
	}

	table, err := parser.ReadTable(f, sheet, topts)
	if err != nil {
		return nil, NewSheetError(sheet, StageLoad, err)
	}
	for _, label := range opts.DropLabels {
		table.DropRow(label)
	}
	return table, nil
}
