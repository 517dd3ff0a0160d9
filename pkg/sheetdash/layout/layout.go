// Package layout decides how columns are grouped into figures and how panels
// are arranged within a figure.
package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GroupSize is the number of columns plotted together by default.
const GroupSize = 4

// Grid is a subplot arrangement.
type Grid struct {
	Rows int `yaml:"rows" json:"rows"`
	Cols int `yaml:"cols" json:"cols"`
}

// Cells returns the number of panels the grid can hold.
func (g Grid) Cells() int {
	return g.Rows * g.Cols
}

func (g Grid) String() string {
	return fmt.Sprintf("%dx%d", g.Rows, g.Cols)
}

// Size is a figure size in inches.
type Size struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// IsZero reports whether no size was set.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// GroupColumns splits columns into consecutive groups of at most size.
// N columns always yield ceil(N/size) non-empty groups.
func GroupColumns(columns []string, size int) [][]string {
	if size <= 0 {
		size = GroupSize
	}
	groups := make([][]string, 0, (len(columns)+size-1)/size)
	for i := 0; i < len(columns); i += size {
		end := i + size
		if end > len(columns) {
			end = len(columns)
		}
		group := make([]string, end-i)
		copy(group, columns[i:end])
		groups = append(groups, group)
	}
	return groups
}

// AutoGroups keeps up to GroupSize columns together and otherwise splits them
// into groups of GroupSize.
func AutoGroups(columns []string) [][]string {
	if len(columns) == 0 {
		return nil
	}
	if len(columns) <= GroupSize {
		return [][]string{append([]string(nil), columns...)}
	}
	return GroupColumns(columns, GroupSize)
}

// AutoGrid picks a panel arrangement for n panels.
func AutoGrid(n int) Grid {
	switch {
	case n <= 0:
		return Grid{Rows: 1, Cols: 1}
	case n <= 2:
		return Grid{Rows: 1, Cols: n}
	case n <= 4:
		return Grid{Rows: 2, Cols: 2}
	default:
		cols := 3
		return Grid{Rows: (n + cols - 1) / cols, Cols: cols}
	}
}

// AutoFigSize picks a figure size in inches for n panels.
func AutoFigSize(n int) Size {
	return Size{
		Width:  math.Min(16, math.Max(8, float64(n)*4)),
		Height: math.Min(10, math.Max(5, float64(n)*2)),
	}
}

// PredefinedGroups buckets numeric columns the way the exploration view
// expects: the first 2, the next 4, the next 4, the next 2, then the rest.
func PredefinedGroups(columns []string) [][]string {
	bounds := []int{2, 6, 10, 12}
	var groups [][]string
	start := 0
	for _, end := range bounds {
		if start >= len(columns) {
			break
		}
		if end > len(columns) {
			end = len(columns)
		}
		groups = append(groups, append([]string(nil), columns[start:end]...))
		start = end
	}
	if start < len(columns) {
		groups = append(groups, append([]string(nil), columns[start:]...))
	}
	return groups
}

// ParseGrid parses "ROWSxCOLS", e.g. "2x3".
func ParseGrid(s string) (Grid, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return Grid{}, fmt.Errorf("invalid layout %q: expected ROWSxCOLS", s)
	}
	rows, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || rows <= 0 {
		return Grid{}, fmt.Errorf("invalid layout rows in %q", s)
	}
	cols, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || cols <= 0 {
		return Grid{}, fmt.Errorf("invalid layout columns in %q", s)
	}
	return Grid{Rows: rows, Cols: cols}, nil
}
