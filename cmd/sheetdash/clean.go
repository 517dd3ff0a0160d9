package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/clean"
	"go.uber.org/zap"
)

func newCleanCmd() *cobra.Command {
	var (
		file     string
		out      string
		marker   string
		noBackup bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove subtotal rows from every sheet of a workbook",
		Long: `Write a copy of the workbook without its subtotal rows. A backup named
<file>_backup.xlsx is created next to the input unless one already exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := clean.RemoveSubtotals(file, out, clean.Options{
				Marker:      marker,
				IndexColumn: cfg.IndexColumn,
				NoBackup:    noBackup,
				Logger:      logger,
			})
			if err != nil {
				return fmt.Errorf("cleaning failed: %w", err)
			}

			removed := 0
			for _, s := range res.Sheets {
				removed += len(s.Removed)
			}
			logger.Info("Finished processing all sheets",
				zap.Int("sheets", len(res.Sheets)),
				zap.Int("rows_removed", removed))
			fmt.Fprintf(cmd.OutOrStdout(), "Modified file saved as %s\n", out)
			fmt.Fprintf(cmd.OutOrStdout(), "Review the changes and rename %s to %s if satisfied.\n", out, file)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "HDFC.xlsx", "Excel file to clean")
	cmd.Flags().StringVar(&out, "output", "HDFC_modified.xlsx", "Path of the cleaned workbook")
	cmd.Flags().StringVar(&marker, "marker", clean.DefaultMarker, "Label of the rows to remove")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Do not create a backup of the input file")
	return cmd
}
