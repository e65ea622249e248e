package cmd

import (
	"fmt"
	"os"

	"table-reconciler/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "table-reconciler",
	Short: "Table Reconciler Service",
	Long: `Table Reconciler matches the rows of two datasets by a key and reports
exact matches, partial matches with per-column differences, and rows found on
one side only. Datasets come from SQL tables, CSV objects in S3 or a synthetic
generator.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with development timestamps reads better in a terminal
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
