// Package models defines the record types produced by workbook analysis.
package models

// UsageStatus classifies a field as used or not used.
type UsageStatus string

const (
	// UsageUsed means at least one worksheet references the field.
	UsageUsed UsageStatus = "used"
	// UsageNotUsed means no worksheet references the field.
	UsageNotUsed UsageStatus = "not_used"
)

// FieldVisibilityRecord is one entry of the field inventory: a field known to
// a datasource, with its declared visibility.
type FieldVisibilityRecord struct {
	// CanonicalName is the resolved human-meaningful field name.
	CanonicalName string `json:"canonical_name"`
	// Datasource is the owning datasource caption.
	Datasource string `json:"datasource"`
	// Hidden is true when the field is flagged hidden in its declaration.
	Hidden bool `json:"hidden"`
}

// WorksheetFieldUsage records one field reference within a worksheet.
type WorksheetFieldUsage struct {
	// Worksheet is the referencing worksheet name.
	Worksheet string `json:"worksheet"`
	// Datasource is the datasource caption the field belongs to.
	Datasource string `json:"datasource"`
	// CanonicalName is the resolved field name.
	CanonicalName string `json:"canonical_name"`
	// Formula is the calculation formula for calculated fields, empty
	// otherwise.
	Formula string `json:"formula,omitempty"`
}

// LineageRow is the final per-(datasource, field) usage classification.
type LineageRow struct {
	// Datasource is the datasource caption.
	Datasource string `json:"datasource"`
	// CanonicalName is the resolved field name.
	CanonicalName string `json:"canonical_name"`
	// Status is used or not_used.
	Status UsageStatus `json:"usage_status"`
}

// DashboardSheet is one dashboard-to-worksheet containment pair.
type DashboardSheet struct {
	// Dashboard is the dashboard name.
	Dashboard string `json:"dashboard"`
	// Worksheet is a contained worksheet name.
	Worksheet string `json:"worksheet"`
}

// DashboardRollup joins dashboard composition against worksheet usage. A
// dashboard whose worksheets have no recorded usage still appears, with the
// field columns empty.
type DashboardRollup struct {
	// Dashboard is the dashboard name.
	Dashboard string `json:"dashboard"`
	// Worksheet is the contained worksheet name.
	Worksheet string `json:"worksheet"`
	// Datasource is the datasource caption, empty when no usage matched.
	Datasource string `json:"datasource,omitempty"`
	// CanonicalName is the field name, empty when no usage matched.
	CanonicalName string `json:"canonical_name,omitempty"`
}

// Diagnostic records a recovered per-node or per-worksheet problem.
type Diagnostic struct {
	// Stage names the extraction stage that recorded the problem.
	Stage string `json:"stage"`
	// Worksheet is the affected worksheet, when applicable.
	Worksheet string `json:"worksheet,omitempty"`
	// Detail describes what was skipped and why.
	Detail string `json:"detail"`
}

// Analysis is the complete result of analyzing one workbook.
type Analysis struct {
	// WorkbookName is the document file name (no path).
	WorkbookName string `json:"workbook_name"`
	// Inventory lists every known (field, datasource) pair with visibility.
	Inventory []FieldVisibilityRecord `json:"inventory"`
	// Usage lists per-worksheet field references.
	Usage []WorksheetFieldUsage `json:"usage,omitempty"`
	// Lineage classifies every inventory entry as used or not used.
	Lineage []LineageRow `json:"lineage"`
	// Dashboards lists dashboard-to-worksheet containment.
	Dashboards []DashboardSheet `json:"dashboards,omitempty"`
	// Diagnostics lists recovered problems encountered during extraction.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}
