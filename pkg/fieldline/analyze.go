package fieldline

import (
	"context"
	"path"

	"github.com/fieldline/fieldline-go/pkg/fieldline/loader"
	"github.com/fieldline/fieldline-go/pkg/fieldline/models"
	"github.com/fieldline/fieldline-go/pkg/fieldline/parser"
	"github.com/fieldline/fieldline-go/pkg/fieldline/xmltree"
)

// Analyze loads the workbook at location and runs the full lineage pipeline.
func Analyze(ctx context.Context, location string, opts Options) (*models.Analysis, error) {
	wb, err := loader.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	result, err := AnalyzeTree(wb.Doc, opts)
	if err != nil {
		return nil, err
	}
	result.WorkbookName = path.Base(location)
	return result, nil
}

// AnalyzeTree runs the lineage pipeline over an already-parsed document
// tree. The tree is treated as an immutable snapshot: the directory is built
// first, then the inventory, usage and dashboard scans run over the same
// tree, then inventory and usage are joined into the lineage table.
// Per-node and per-worksheet problems accumulate as diagnostics; directory
// ambiguity aborts the run.
func AnalyzeTree(doc *xmltree.Document, opts Options) (*models.Analysis, error) {
	dir, err := parser.BuildDirectory(doc)
	if err != nil {
		return nil, err
	}

	inventory, invDiags := parser.BuildFieldInventory(doc, dir, opts.Reserved())
	usage, usageDiags := parser.BuildWorksheetUsage(doc)

	result := &models.Analysis{
		Inventory:   inventory,
		Lineage:     parser.BuildLineage(inventory, usage),
		Diagnostics: append(invDiags, usageDiags...),
	}
	if opts.ShouldIncludeUsage() {
		result.Usage = usage
	}
	if opts.ShouldIncludeDashboards() {
		result.Dashboards = parser.BuildDashboardComposition(doc)
	}
	return result, nil
}
