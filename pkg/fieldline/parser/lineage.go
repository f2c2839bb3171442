package parser

import (
	"sort"

	"github.com/fieldline/fieldline-go/pkg/fieldline/models"
)

// BuildLineage left-outer joins the field inventory against the worksheet
// usage table and classifies every inventory entry as used or not used.
// Output cardinality equals inventory cardinality: usage across multiple
// worksheets does not fan out. Rows are sorted by (datasource caption,
// canonical name).
func BuildLineage(inventory []models.FieldVisibilityRecord, usage []models.WorksheetFieldUsage) []models.LineageRow {
	used := make(map[fieldKey]bool, len(usage))
	for _, u := range usage {
		used[fieldKey{name: u.CanonicalName, datasource: u.Datasource}] = true
	}

	rows := make([]models.LineageRow, 0, len(inventory))
	for _, rec := range inventory {
		status := models.UsageNotUsed
		if used[fieldKey{name: rec.CanonicalName, datasource: rec.Datasource}] {
			status = models.UsageUsed
		}
		rows = append(rows, models.LineageRow{
			Datasource:    rec.Datasource,
			CanonicalName: rec.CanonicalName,
			Status:        status,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Datasource != rows[j].Datasource {
			return rows[i].Datasource < rows[j].Datasource
		}
		return rows[i].CanonicalName < rows[j].CanonicalName
	})
	return rows
}
