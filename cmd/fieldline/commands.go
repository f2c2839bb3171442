package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldline/fieldline-go/pkg/fieldline"
	"github.com/fieldline/fieldline-go/pkg/fieldline/loader"
	"github.com/fieldline/fieldline-go/pkg/fieldline/models"
	"github.com/fieldline/fieldline-go/pkg/fieldline/output"
	"github.com/fieldline/fieldline-go/pkg/fieldline/parser"
	"github.com/fieldline/fieldline-go/pkg/fieldline/style"
)

func analysisOptions() fieldline.Options {
	opts := fieldline.DefaultOptions()
	if cfg != nil && len(cfg.ReservedDatasources) > 0 {
		opts.ReservedDatasources = cfg.ReservedDatasources
	}
	return opts
}

// effectiveFormat reads the merged config; flag, env and file precedence is
// already resolved by config.Load.
func effectiveFormat() string {
	if cfg != nil && cfg.Format != "" {
		return cfg.Format
	}
	return format
}

// analyze runs the pipeline and reports diagnostics on stderr.
func analyze(cmd *cobra.Command, location string) (*models.Analysis, error) {
	result, err := fieldline.Analyze(cmd.Context(), location, analysisOptions())
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	for _, d := range result.Diagnostics {
		if d.Worksheet != "" {
			slog.Warn("diagnostic", "stage", d.Stage, "worksheet", d.Worksheet, "detail", d.Detail)
		} else {
			slog.Warn("diagnostic", "stage", d.Stage, "detail", d.Detail)
		}
	}
	return result, nil
}

// openOutput returns the destination writer and a close function.
func openOutput() (io.Writer, func() error, error) {
	dest := outputPath
	if dest == "" && cfg != nil {
		dest = cfg.Output
	}
	if dest == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(dest)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func runRender(cmd *cobra.Command, location string, render func(io.Writer, *models.Analysis, string) error) error {
	result, err := analyze(cmd, location)
	if err != nil {
		return err
	}
	w, closeFn, err := openOutput()
	if err != nil {
		return err
	}
	defer closeFn()
	return render(w, result, effectiveFormat())
}

func newLineageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lineage [workbook]",
		Short: "Classify every known field as used or not used",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], func(w io.Writer, a *models.Analysis, format string) error {
				return output.RenderLineage(w, a.Lineage, format)
			})
		},
	}
}

func newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields [workbook]",
		Short: "List the field inventory with visibility flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], func(w io.Writer, a *models.Analysis, format string) error {
				return output.RenderInventory(w, a.Inventory, format)
			})
		},
	}
}

func newUsageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usage [workbook]",
		Short: "List per-worksheet field references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], func(w io.Writer, a *models.Analysis, format string) error {
				return output.RenderUsage(w, a.Usage, format)
			})
		},
	}
}

func newDashboardsCmd() *cobra.Command {
	var rollup bool
	cmd := &cobra.Command{
		Use:   "dashboards [workbook]",
		Short: "Map dashboards to their worksheets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], func(w io.Writer, a *models.Analysis, format string) error {
				if rollup {
					rows := parser.BuildDashboardRollup(a.Dashboards, a.Usage)
					return output.RenderRollup(w, rows, format)
				}
				return output.RenderDashboards(w, a.Dashboards, format)
			})
		},
	}
	cmd.Flags().BoolVar(&rollup, "rollup", false, "Join dashboards against worksheet field usage")
	return cmd
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report [workbook] [report.xlsx]",
		Short: "Write the full analysis as an xlsx audit report",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := analyze(cmd, args[0])
			if err != nil {
				return err
			}
			if err := output.WriteReport(result, args[1]); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			slog.Info("report written", "path", args[1])
			return nil
		},
	}
}

func newHideCmd(hide bool) *cobra.Command {
	use, short := "hide", "Hide a field in its datasource declaration"
	if !hide {
		use, short = "unhide", "Unhide a field in its datasource declaration"
	}
	var datasource string
	cmd := &cobra.Command{
		Use:   use + " [workbook] [field]",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := loader.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			changed := style.SetFieldHidden(wb.Doc, datasource, args[1], hide)
			if changed == 0 {
				return fmt.Errorf("no column matching field %q in datasource %q", args[1], datasource)
			}
			dest := outputPath
			if dest == "" {
				dest = args[0]
			}
			if err := wb.Save(cmd.Context(), dest); err != nil {
				return fmt.Errorf("failed to save workbook: %w", err)
			}
			slog.Info("visibility changed", "field", args[1], "columns", changed, "hidden", hide)
			return nil
		},
	}
	cmd.Flags().StringVar(&datasource, "datasource", "", "Datasource caption owning the field")
	_ = cmd.MarkFlagRequired("datasource")
	return cmd
}

func newSetFontCmd() *cobra.Command {
	var family, size, color string
	cmd := &cobra.Command{
		Use:   "set-font [workbook]",
		Short: "Rewrite the workbook-wide font settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if family == "" && size == "" && color == "" {
				return fmt.Errorf("nothing to change: pass --family, --size, or --color")
			}
			wb, err := loader.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			changed := style.SetFont(wb.Doc, style.FontSettings{Family: family, Size: size, Color: color})
			dest := outputPath
			if dest == "" {
				dest = args[0]
			}
			if err := wb.Save(cmd.Context(), dest); err != nil {
				return fmt.Errorf("failed to save workbook: %w", err)
			}
			slog.Info("font updated", "settings", changed)
			return nil
		},
	}
	cmd.Flags().StringVar(&family, "family", "", "Font family name")
	cmd.Flags().StringVar(&size, "size", "", "Font size in points")
	cmd.Flags().StringVar(&color, "color", "", "Font color (hex)")
	return cmd
}
