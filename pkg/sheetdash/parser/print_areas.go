package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/models"
	"github.com/xuri/excelize/v2"
)

// ExtractPrintAreas extracts print areas from a workbook.
// Returns a map of sheet name to list of print areas.
func ExtractPrintAreas(f *excelize.File) map[string][]models.CellRange {
	result := make(map[string][]models.CellRange)

	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		sheetName, areas := parsePrintAreaReference(dn.RefersTo)
		if sheetName == "" && dn.Scope != "" && dn.Scope != "Workbook" {
			sheetName = dn.Scope
		}
		if sheetName != "" && len(areas) > 0 {
			result[sheetName] = append(result[sheetName], areas...)
		}
	}

	return result
}

// ParseRange parses an A1-style range such as "B2:F9" or "$B$2:$F$9".
func ParseRange(ref string) (*models.CellRange, error) {
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		ref = ref[idx+1:]
	}
	area := parseRangeToArea(strings.TrimSpace(ref))
	if area == nil {
		return nil, fmt.Errorf("invalid cell range %q", ref)
	}
	return area, nil
}

// parsePrintAreaReference parses a print area reference string.
// Format: 'SheetName'!$A$1:$D$10 or SheetName!$A$1:$D$10
func parsePrintAreaReference(ref string) (string, []models.CellRange) {
	var areas []models.CellRange
	var sheetName string

	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			continue
		}
		sheet := strings.Trim(part[:idx], "'")
		if sheetName == "" {
			sheetName = sheet
		}
		if area := parseRangeToArea(part[idx+1:]); area != nil {
			areas = append(areas, *area)
		}
	}

	return sheetName, areas
}

// parseRangeToArea parses a range string like $A$1:$D$10.
// Start and end are normalised so that R1 <= R2 and C1 <= C2.
func parseRangeToArea(rangeStr string) *models.CellRange {
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}

	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return &models.CellRange{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}
}
