package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/format"
)

// headRows is the number of rows previewed by explore.
const headRows = 5

var (
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0033A0")).Bold(true).MarginTop(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	cellStyle    = lipgloss.NewStyle().PaddingRight(2)
)

func newExploreCmd() *cobra.Command {
	var (
		file  string
		sheet string
		out    string
		dpi    int
		groups []string
	)

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Summarize a sheet and plot its numeric columns in predefined groups",
		Long: `Print the columns, shape and categories of one sheet, then plot its numeric
columns grouped as 2, 4, 4, 2 and the rest, one stacked panel per group.
Each --group adds a panel to a second plot built from those columns.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromConfig(cmd, "file", &file, cfg.Input)
			fromConfig(cmd, "dpi", &dpi, cfg.DPI)

			ex, err := sheetdash.Explore(file, sheet, sheetdash.ExploreOptions{
				Load:         sheetdash.LoadOptions{IndexColumn: cfg.IndexColumn},
				Output:       out,
				DPI:          dpi,
				CustomGroups: parseGroups(groups),
				Logger:       logger,
			})
			if ex != nil {
				fmt.Fprintln(cmd.OutOrStdout(), renderSummary(ex))
			}
			if err != nil {
				return fmt.Errorf("explore failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "HDFC_modified.xlsx", "Excel file path")
	cmd.Flags().StringVar(&sheet, "sheet", "WorkStatus", "Excel sheet name")
	cmd.Flags().StringVar(&out, "output", "", "Save the grouped plot to this image file")
	cmd.Flags().IntVar(&dpi, "dpi", 300, "Image resolution")
	cmd.Flags().StringArrayVar(&groups, "group", nil, "Comma-separated columns for one custom group (repeatable)")
	return cmd
}

// parseGroups splits each --group value into trimmed column names.
func parseGroups(values []string) [][]string {
	var groups [][]string
	for _, v := range values {
		var cols []string
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				cols = append(cols, c)
			}
		}
		if len(cols) > 0 {
			groups = append(groups, cols)
		}
	}
	return groups
}

// renderSummary describes the explored table for the terminal.
func renderSummary(ex *sheetdash.Exploration) string {
	t := ex.Table
	rows, cols := t.Shape()

	var b strings.Builder
	b.WriteString(headingStyle.Render("Available columns"))
	b.WriteString("\n")
	for _, c := range t.Columns {
		b.WriteString("  " + c + "\n")
	}

	b.WriteString(headingStyle.Render("Table"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s (%d, %d)\n", labelStyle.Render("shape:"), rows, cols)
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("index name:"), t.IndexName)
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("index values:"), strings.Join(t.Index, ", "))

	b.WriteString(headingStyle.Render("First rows"))
	b.WriteString("\n")
	b.WriteString(preview(ex))

	b.WriteString(headingStyle.Render("Column groups"))
	b.WriteString("\n")
	for i, g := range ex.Groups {
		fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render(fmt.Sprintf("Group %d:", i+1)), strings.Join(g, ", "))
	}
	for i, g := range ex.CustomGroups {
		fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render(fmt.Sprintf("Custom %d:", i+1)), strings.Join(g, ", "))
	}
	if ex.Image != nil {
		fmt.Fprintf(&b, "\n%s %s\n", labelStyle.Render("saved:"), ex.Image.Path)
	}
	if ex.CustomImage != nil {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("saved:"), ex.CustomImage.Path)
	}
	return b.String()
}

// preview renders the first rows of the table as aligned columns.
func preview(ex *sheetdash.Exploration) string {
	t := ex.Table
	n := min(headRows, t.Len())

	columns := make([]string, 0, len(t.Columns)+1)
	index := []string{t.IndexName}
	index = append(index, t.Index[:n]...)
	columns = append(columns, cellStyle.Render(strings.Join(index, "\n")))

	for _, c := range t.Columns {
		values, _ := t.Column(c)
		cells := []string{c}
		for _, v := range values[:n] {
			cells = append(cells, format.FormatValue(v, format.IsPercentageColumn(c), format.AutoPrecision))
		}
		columns = append(columns, cellStyle.Render(strings.Join(cells, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...) + "\n"
}
