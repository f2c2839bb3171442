// Package main provides the CLI entry point for fieldline.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldline/fieldline-go/internal/config"
)

var (
	cfgFile    string
	format     string
	outputPath string
	verbose    bool

	cfg *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fieldline",
		Short: "Analyze field lineage in workbook documents",
		Long: `fieldline analyzes workbook documents (.twb, .twbx) and reports which
fields exist, under what canonical name, and whether they are used by any
worksheet or dashboard.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file path (default: fieldline.yaml)")
	rootCmd.PersistentFlags().StringVar(&format, "format", config.DefaultFormat, "Output format: table, json, csv")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(
		newLineageCmd(),
		newFieldsCmd(),
		newUsageCmd(),
		newDashboardsCmd(),
		newReportCmd(),
		newHideCmd(true),
		newHideCmd(false),
		newSetFontCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
