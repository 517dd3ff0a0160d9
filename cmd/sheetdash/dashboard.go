package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/layout"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/output"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/parser"
	"github.com/ukaji3/sheetdash-go/pkg/sheetdash/render"
	"go.uber.org/zap"
)

type dashboardFlags struct {
	file      string
	sheet     string
	output    string
	dpi       int
	title     string
	style     string
	colors    string
	format    string
	manifest  string
	printArea bool
	cells     string
	layout    string
	drop      []string
}

func newDashboardCmd() *cobra.Command {
	var f dashboardFlags

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Export dashboard images for every sheet of a workbook",
		Long: `Export one image per group of four columns for every sheet (or the sheet
given with --sheet). Images are written to <output>/<title>_<sheet>_group<n>.<format>.
A sheet that cannot be processed is logged and skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.file, "file", "HDFC_modified.xlsx", "Excel file path")
	flags.StringVar(&f.sheet, "sheet", "", "Excel sheet name (default: all sheets)")
	flags.StringVar(&f.output, "output", "./exports", "Output directory")
	flags.IntVar(&f.dpi, "dpi", 300, "Image resolution")
	flags.StringVar(&f.title, "title", "HDFC", "Dashboard title prefix")
	flags.StringVar(&f.style, "style", "presentation", "Background style")
	flags.StringVar(&f.colors, "colors", "hdfc_brand", "Color scheme")
	flags.StringVar(&f.format, "format", "png", "Image format: png, jpg, svg, pdf, tiff")
	flags.StringVar(&f.manifest, "manifest", "", "Write a JSON manifest of the run to this file")
	flags.BoolVar(&f.printArea, "print-area", false, "Only read each sheet's print area when one is defined")
	flags.StringVar(&f.cells, "range", "", "Only read this cell range of each sheet, e.g. B2:F9")
	flags.StringVar(&f.layout, "layout", "", "Panel grid of every figure as ROWSxCOLS, e.g. 2x3")
	flags.StringSliceVar(&f.drop, "drop", nil, "Category labels to leave out, e.g. \"Sub total\"")
	return cmd
}

func runDashboard(cmd *cobra.Command, f dashboardFlags) error {
	fromConfig(cmd, "file", &f.file, cfg.Input)
	fromConfig(cmd, "output", &f.output, cfg.OutputDir)
	fromConfig(cmd, "dpi", &f.dpi, cfg.DPI)
	fromConfig(cmd, "title", &f.title, cfg.TitlePrefix)
	fromConfig(cmd, "style", &f.style, cfg.Background)
	fromConfig(cmd, "colors", &f.colors, cfg.Scheme)
	fromConfig(cmd, "format", &f.format, cfg.Format)

	registry := cfg.Registry()
	if err := registry.Lookup(f.colors, f.style); err != nil {
		return err
	}
	if !render.IsImagePath("chart." + f.format) {
		return fmt.Errorf("invalid format: %s (must be one of %v)", f.format, render.SupportedFormats)
	}

	load := sheetdash.LoadOptions{
		IndexColumn:  cfg.IndexColumn,
		UsePrintArea: f.printArea,
		DropLabels:   f.drop,
	}
	if f.cells != "" {
		area, err := parser.ParseRange(f.cells)
		if err != nil {
			return err
		}
		load.Range = area
	}

	opts := sheetdash.RunOptions{
		OutputDir:   f.output,
		Format:      f.format,
		TitlePrefix: f.title,
		Scheme:      f.colors,
		Background:  f.style,
		DPI:         f.dpi,
		Load:        load,
		Registry:    registry,
		Logger:      logger,
	}
	if f.layout != "" {
		grid, err := layout.ParseGrid(f.layout)
		if err != nil {
			return err
		}
		opts.Layout = &grid
	}
	if f.sheet != "" {
		opts.Sheets = []string{f.sheet}
	}

	manifest, err := sheetdash.RunDashboards(f.file, opts)
	if err != nil {
		return fmt.Errorf("dashboard export failed: %w", err)
	}

	if f.manifest != "" {
		if err := output.WriteFile(f.manifest, manifest); err != nil {
			return fmt.Errorf("failed to write manifest: %w", err)
		}
		logger.Info("Wrote manifest", zap.String("path", f.manifest))
	}
	return nil
}
