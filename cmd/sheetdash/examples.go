package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash"
)

func newExamplesCmd() *cobra.Command {
	var (
		file   string
		outDir string
		dpi    int
	)

	cmd := &cobra.Command{
		Use:   "examples",
		Short: "Generate the example gallery for every sheet",
		Long: `For every sheet write four variations: <sheet>_basic, <sheet>_professional,
<sheet>_gradient and a full <sheet>_dashboard_group<n> set cycling through all
color schemes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromConfig(cmd, "file", &file, cfg.Input)
			fromConfig(cmd, "dpi", &dpi, cfg.DPI)

			_, err := sheetdash.RunExamples(file, sheetdash.RunOptions{
				OutputDir:   outDir,
				TitlePrefix: cfg.TitlePrefix,
				DPI:         dpi,
				Load:        sheetdash.LoadOptions{IndexColumn: cfg.IndexColumn},
				Registry:    cfg.Registry(),
				Logger:      logger,
			})
			if err != nil {
				return fmt.Errorf("example generation failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "HDFC_modified.xlsx", "Excel file path")
	cmd.Flags().StringVar(&outDir, "output", "exports/examples", "Output directory")
	cmd.Flags().IntVar(&dpi, "dpi", 300, "Image resolution")
	return cmd
}
