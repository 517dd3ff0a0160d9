// Package main provides the CLI entry point for sheetdash.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetdash-go/internal/config"
	"github.com/ukaji3/sheetdash-go/internal/logging"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *zap.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sheetdash",
		Short: "Render styled bar-chart dashboards from Excel workbooks",
		Long: `sheetdash reads category-keyed metric sheets from Excel workbooks and
renders them as grouped bar-chart images.

Settings come from built-in defaults, an optional YAML file (--config) and
SHEETDASH_* environment variables, in that order. Flags override all of them.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "json", "Log format: json, console")

	root.AddCommand(newDashboardCmd(), newExamplesCmd(), newExploreCmd(), newCleanCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	fromConfig(cmd, "log-level", &logLevel, cfg.Logging.Level)
	fromConfig(cmd, "log-format", &logFormat, cfg.Logging.Format)
	logger, err = logging.New(logLevel, logFormat)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// fromConfig replaces *v with the configured value unless the flag was set.
func fromConfig[T any](cmd *cobra.Command, flag string, v *T, configured T) {
	if !cmd.Flags().Changed(flag) {
		*v = configured
	}
}
