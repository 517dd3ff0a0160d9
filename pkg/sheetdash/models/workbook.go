package models

// Workbook describes an opened spreadsheet file.
type Workbook struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets lists the sheet names in workbook order.
	Sheets []string `json:"sheets"`
}
