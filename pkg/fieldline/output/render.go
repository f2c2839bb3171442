// Package output renders analysis results as terminal tables, JSON, CSV,
// and xlsx audit reports.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/fieldline/fieldline-go/pkg/fieldline/models"
)

// Format names accepted by the renderers.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// RenderLineage writes the lineage table in the given format.
func RenderLineage(w io.Writer, rows []models.LineageRow, format string) error {
	cols := []string{"datasource", "canonical_name", "usage_status"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.Datasource, r.CanonicalName, string(r.Status)})
	}
	return render(w, format, cols, cells, rows)
}

// RenderInventory writes the field inventory in the given format.
func RenderInventory(w io.Writer, rows []models.FieldVisibilityRecord, format string) error {
	cols := []string{"canonical_name", "datasource", "hidden"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.CanonicalName, r.Datasource, fmt.Sprintf("%t", r.Hidden)})
	}
	return render(w, format, cols, cells, rows)
}

// RenderUsage writes the worksheet usage table in the given format.
func RenderUsage(w io.Writer, rows []models.WorksheetFieldUsage, format string) error {
	cols := []string{"worksheet", "datasource", "canonical_name", "formula"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.Worksheet, r.Datasource, r.CanonicalName, r.Formula})
	}
	return render(w, format, cols, cells, rows)
}

// RenderDashboards writes the dashboard composition in the given format.
func RenderDashboards(w io.Writer, rows []models.DashboardSheet, format string) error {
	cols := []string{"dashboard", "worksheet"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.Dashboard, r.Worksheet})
	}
	return render(w, format, cols, cells, rows)
}

// RenderRollup writes the dashboard-to-field rollup in the given format.
func RenderRollup(w io.Writer, rows []models.DashboardRollup, format string) error {
	cols := []string{"dashboard", "worksheet", "datasource", "canonical_name"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.Dashboard, r.Worksheet, r.Datasource, r.CanonicalName})
	}
	return render(w, format, cols, cells, rows)
}

func render(w io.Writer, format string, cols []string, cells [][]string, raw any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(raw)
	case FormatCSV:
		return renderCSV(w, cols, cells)
	case FormatTable, "":
		return renderTable(w, cols, cells)
	default:
		return fmt.Errorf("unknown output format: %q", format)
	}
}

func renderTable(w io.Writer, cols []string, cells [][]string) error {
	if len(cells) == 0 {
		_, err := fmt.Fprintln(w, "(0 rows)")
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(cols))
	for i, col := range cols {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, cell := range cells {
		row := make(table.Row, len(cell))
		for i, v := range cell {
			row[i] = v
		}
		t.AppendRow(row)
	}

	t.Render()
	_, err := fmt.Fprintf(w, "(%d rows)\n", len(cells))
	return err
}

func renderCSV(w io.Writer, cols []string, cells [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}
	if err := cw.WriteAll(cells); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
