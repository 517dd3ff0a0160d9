// Package models defines data structures shared by the loader, renderer and CLI.
package models

import "math"

// Table represents one sheet of category-keyed metric data.
type Table struct {
	// Sheet is the sheet name the table was read from.
	Sheet string `json:"sheet"`
	// IndexName is the header of the category column (e.g. "Category").
	IndexName string `json:"index_name"`
	// Index holds the category labels in row order.
	Index []string `json:"index"`
	// Columns holds the data column names in sheet order.
	Columns []string `json:"columns"`
	// Values maps column name to one value per category (NaN when empty or non-numeric).
	Values map[string][]float64 `json:"-"`
	// Numeric records whether a column is numeric. AddColumn sets it when the
	// column has a value; loaders may override it from the cell types.
	Numeric map[string]bool `json:"-"`
}

// NewTable creates an empty table for the given sheet and index column.
func NewTable(sheet, indexName string) *Table {
	return &Table{
		Sheet:     sheet,
		IndexName: indexName,
		Values:    make(map[string][]float64),
		Numeric:   make(map[string]bool),
	}
}

// AddColumn appends a column. Values shorter than the index are padded with NaN.
func (t *Table) AddColumn(name string, values []float64) {
	vals := make([]float64, len(t.Index))
	for i := range vals {
		if i < len(values) {
			vals[i] = values[i]
		} else {
			vals[i] = math.NaN()
		}
	}
	if _, exists := t.Values[name]; !exists {
		t.Columns = append(t.Columns, name)
	}
	t.Values[name] = vals
	numeric := false
	for _, v := range vals {
		if !math.IsNaN(v) {
			numeric = true
			break
		}
	}
	t.Numeric[name] = numeric
}

// Column returns the values of a column.
func (t *Table) Column(name string) ([]float64, bool) {
	v, ok := t.Values[name]
	return v, ok
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Values[name]
	return ok
}

// NumericColumns returns the columns holding numeric data, in sheet order.
func (t *Table) NumericColumns() []string {
	var cols []string
	for _, c := range t.Columns {
		if t.Numeric[c] {
			cols = append(cols, c)
		}
	}
	return cols
}

// Len returns the number of categories.
func (t *Table) Len() int {
	return len(t.Index)
}

// Shape returns (rows, columns), not counting the index column.
func (t *Table) Shape() (int, int) {
	return len(t.Index), len(t.Columns)
}

// DropRow removes every row labelled label and reports how many were removed.
func (t *Table) DropRow(label string) int {
	keep := make([]int, 0, len(t.Index))
	for i, l := range t.Index {
		if l != label {
			keep = append(keep, i)
		}
	}
	removed := len(t.Index) - len(keep)
	if removed == 0 {
		return 0
	}

	index := make([]string, len(keep))
	for j, i := range keep {
		index[j] = t.Index[i]
	}
	t.Index = index

	for name, vals := range t.Values {
		nv := make([]float64, len(keep))
		for j, i := range keep {
			nv[j] = vals[i]
		}
		t.Values[name] = nv
	}
	return removed
}
