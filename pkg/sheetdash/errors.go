package sheetdash

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/parser"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/render"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/style"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrSheetNotFound indicates the workbook has no sheet with the requested name.
var ErrSheetNotFound = errors.New("sheet not found")

// Errors returned by the sub-packages, re-exported for callers of this package.
var (
	ErrMissingIndexColumn = parser.ErrMissingIndexColumn
	ErrEmptySheet         = parser.ErrEmptySheet
	ErrNoValidColumns     = render.ErrNoValidColumns
	ErrUnknownScheme      = style.ErrUnknownScheme
	ErrUnknownStyle       = style.ErrUnknownStyle
)

// Processing stages reported by SheetError.
const (
	StageLoad   = "load"
	StageRender = "render"
	StageSave   = "save"
	StageClean  = "clean"
)

// SheetError represents a failure while processing one sheet.
type SheetError struct {
	SheetName string
	Stage     string // "load", "render", "save", "clean"
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q (%s): %v", e.SheetName, e.Stage, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(sheetName, stage string, err error) *SheetError {
	return &SheetError{
		SheetName: sheetName,
		Stage:     stage,
		Err:       err,
	}
}
