package models

// ImageRecord describes one saved chart image.
type ImageRecord struct {
	// Path is the file the figure was written to.
	Path string `json:"path"`
	// Title is the figure title.
	Title string `json:"title,omitempty"`
	// Columns lists the columns plotted in the figure.
	Columns []string `json:"columns"`
	// W is the image width in pixels (raster formats only).
	W *int `json:"w,omitempty"`
	// H is the image height in pixels (raster formats only).
	H *int `json:"h,omitempty"`
}

// SheetReport records the outcome of processing one sheet.
type SheetReport struct {
	// Sheet is the sheet name.
	Sheet string `json:"sheet"`
	// Rows is the number of categories loaded.
	Rows int `json:"rows"`
	// Columns is the number of data columns loaded.
	Columns int `json:"columns"`
	// Images lists the images written for the sheet.
	Images []ImageRecord `json:"images,omitempty"`
	// Error holds the failure message when the sheet could not be processed.
	Error string `json:"error,omitempty"`
}

// Manifest records every sheet processed in a run.
type Manifest struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// OutputDir is the directory images were written under.
	OutputDir string `json:"output_dir"`
	// Sheets holds one report per processed sheet, in processing order.
	Sheets []SheetReport `json:"sheets"`
}

// ImageCount returns the total number of images recorded.
func (m *Manifest) ImageCount() int {
	n := 0
	for _, s := range m.Sheets {
		n += len(s.Images)
	}
	return n
}

// Failed returns the reports of sheets that could not be processed.
func (m *Manifest) Failed() []SheetReport {
	var out []SheetReport
	for _, s := range m.Sheets {
		if s.Error != "" {
			out = append(out, s)
		}
	}
	return out
}
