package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/fieldline/fieldline-go/pkg/fieldline/models"
)

// WriteReport writes the analysis as an xlsx audit report: one sheet per
// product with a header row.
func WriteReport(a *models.Analysis, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, "Lineage", [][]any{{"datasource", "canonical_name", "usage_status"}}, lineageRows(a.Lineage)); err != nil {
		return err
	}
	if err := writeSheet(f, "Inventory", [][]any{{"canonical_name", "datasource", "hidden"}}, inventoryRows(a.Inventory)); err != nil {
		return err
	}
	if err := writeSheet(f, "Usage", [][]any{{"worksheet", "datasource", "canonical_name", "formula"}}, usageRows(a.Usage)); err != nil {
		return err
	}
	if err := writeSheet(f, "Dashboards", [][]any{{"dashboard", "worksheet"}}, dashboardRows(a.Dashboards)); err != nil {
		return err
	}

	// The default sheet excelize creates is replaced by Lineage.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	idx, err := f.GetSheetIndex("Lineage")
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)

	return f.SaveAs(path)
}

func writeSheet(f *excelize.File, name string, header [][]any, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	all := append(header, rows...)
	for i, row := range all {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func lineageRows(rows []models.LineageRow) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, []any{r.Datasource, r.CanonicalName, string(r.Status)})
	}
	return out
}

func inventoryRows(rows []models.FieldVisibilityRecord) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, []any{r.CanonicalName, r.Datasource, r.Hidden})
	}
	return out
}

func usageRows(rows []models.WorksheetFieldUsage) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, []any{r.Worksheet, r.Datasource, r.CanonicalName, r.Formula})
	}
	return out
}

func dashboardRows(rows []models.DashboardSheet) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, []any{r.Dashboard, r.Worksheet})
	}
	return out
}
