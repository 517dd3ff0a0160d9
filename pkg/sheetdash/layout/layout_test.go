package layout

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func columns(n int) []string {
	cols := make([]string, n)
	for i := range cols {
		cols[i] = fmt.Sprintf("col%d", i)
	}
	return cols
}

func TestGroupColumnsProperty(t *testing.T) {
	for n := 0; n <= 41; n++ {
		cols := columns(n)
		groups := GroupColumns(cols, GroupSize)

		require.Len(t, groups, (n+3)/4, "n=%d", n)
		var flat []string
		for _, g := range groups {
			assert.NotEmpty(t, g)
			assert.LessOrEqual(t, len(g), 4)
			flat = append(flat, g...)
		}
		if n > 0 {
			assert.Equal(t, cols, flat)
		}
	}
}

func TestGroupColumnsDoesNotAlias(t *testing.T) {
	cols := columns(5)
	groups := GroupColumns(cols, 4)
	groups[0][0] = "changed"
	assert.Equal(t, "col0", cols[0])
}

func TestAutoGroups(t *testing.T) {
	assert.Nil(t, AutoGroups(nil))
	assert.Equal(t, [][]string{{"col0", "col1", "col2"}}, AutoGroups(columns(3)))
	assert.Len(t, AutoGroups(columns(9)), 3)
}

func TestAutoGrid(t *testing.T) {
	tests := []struct {
		n    int
		want Grid
	}{
		{1, Grid{1, 1}},
		{2, Grid{1, 2}},
		{3, Grid{2, 2}},
		{4, Grid{2, 2}},
		{5, Grid{2, 3}},
		{6, Grid{2, 3}},
		{7, Grid{3, 3}},
		{10, Grid{4, 3}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AutoGrid(tt.n), "n=%d", tt.n)
	}
	for n := 1; n <= 30; n++ {
		assert.GreaterOrEqual(t, AutoGrid(n).Cells(), n)
	}
}

func TestAutoFigSize(t *testing.T) {
	assert.Equal(t, Size{Width: 8, Height: 5}, AutoFigSize(1))
	assert.Equal(t, Size{Width: 12, Height: 6}, AutoFigSize(3))
	assert.Equal(t, Size{Width: 16, Height: 8}, AutoFigSize(4))
	assert.Equal(t, Size{Width: 16, Height: 10}, AutoFigSize(6))
	assert.True(t, Size{}.IsZero())
}

func TestPredefinedGroups(t *testing.T) {
	groups := PredefinedGroups(columns(17))
	sizes := make([]int, len(groups))
	for i, g := range groups {
		sizes[i] = len(g)
	}
	assert.Equal(t, []int{2, 4, 4, 2, 5}, sizes)

	groups = PredefinedGroups(columns(7))
	assert.Equal(t, [][]string{{"col0", "col1"}, {"col2", "col3", "col4", "col5"}, {"col6"}}, groups)

	assert.Equal(t, [][]string{{"col0"}}, PredefinedGroups(columns(1)))
	assert.Empty(t, PredefinedGroups(nil))
}

func TestParseGrid(t *testing.T) {
	g, err := ParseGrid("2x3")
	require.NoError(t, err)
	assert.Equal(t, Grid{Rows: 2, Cols: 3}, g)
	assert.Equal(t, "2x3", g.String())

	g, err = ParseGrid(" 1 X 4 ")
	require.NoError(t, err)
	assert.Equal(t, Grid{Rows: 1, Cols: 4}, g)

	for _, bad := range []string{"", "2", "0x3", "ax3", "2x-1", strings.Repeat("x", 3)} {
		_, err := ParseGrid(bad)
		assert.Error(t, err, bad)
	}
}
