// Package parser reads spreadsheet sheets into category-keyed tables.
package parser

import "math"

// DefaultDPI is the resolution used when none is given.
const DefaultDPI = 300

// InchesToPixels converts a length in inches to pixels at the given DPI.
// A non-positive dpi falls back to DefaultDPI.
func InchesToPixels(inches float64, dpi int) int {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return int(math.Ceil(inches * float64(dpi)))
}
