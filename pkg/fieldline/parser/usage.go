package parser

import (
	"fmt"

	"github.com/fieldline/fieldline-go/pkg/fieldline/models"
	"github.com/fieldline/fieldline-go/pkg/fieldline/xmltree"
)

// BuildWorksheetUsage walks each worksheet's dependency subtrees and returns
// the union of field usage rows across all worksheets, in document order. An
// unresolved datasource token fails that worksheet's extraction: its rows are
// dropped and a diagnostic carrying the worksheet name is recorded; all other
// worksheets still extract.
func BuildWorksheetUsage(doc *xmltree.Document) ([]models.WorksheetFieldUsage, []models.Diagnostic) {
	var rows []models.WorksheetFieldUsage
	var diags []models.Diagnostic
	seen := make(map[models.WorksheetFieldUsage]bool)

	worksheets := doc.Select(xmltree.All(xmltree.ByTag(tagWorksheet), xmltree.HasAttr(attrName)))
	for _, ws := range worksheets {
		name := ws.AttrValue(attrName)
		wsRows, wsDiags, err := extractWorksheet(ws, name)
		diags = append(diags, wsDiags...)
		if err != nil {
			diags = append(diags, models.Diagnostic{
				Stage:     "usage",
				Worksheet: name,
				Detail:    err.Error(),
			})
			continue
		}
		for _, row := range wsRows {
			if seen[row] {
				continue
			}
			seen[row] = true
			rows = append(rows, row)
		}
	}
	return rows, diags
}

// extractWorksheet produces the usage rows of one worksheet.
func extractWorksheet(ws *xmltree.Node, name string) ([]models.WorksheetFieldUsage, []models.Diagnostic, error) {
	var rows []models.WorksheetFieldUsage
	var diags []models.Diagnostic

	// Local token directory, scoped to the datasources this worksheet
	// references. May legitimately be a subset of the global directory.
	local := make(Directory)
	for _, ds := range ws.Select(xmltree.All(
		xmltree.ByTag(tagDatasource),
		xmltree.HasAttr(attrName),
		xmltree.HasAttr(attrCaption),
	)) {
		local[ds.AttrValue(attrName)] = ds.AttrValue(attrCaption)
	}

	for _, dep := range ws.Select(xmltree.All(xmltree.ByTag(tagDependencies), xmltree.HasAttr(attrDatasource))) {
		token := dep.AttrValue(attrDatasource)
		caption, ok := local.Lookup(token)
		if !ok {
			return nil, diags, &WorksheetError{
				Worksheet: name,
				Err:       fmt.Errorf("%w: %q", ErrUnresolvedDatasource, token),
			}
		}
		for _, col := range dep.Children(tagColumn) {
			id, err := ResolveIdentity(col)
			if err != nil {
				diags = append(diags, models.Diagnostic{
					Stage:     "usage",
					Worksheet: name,
					Detail:    fmt.Sprintf("skipped column in datasource %q: %v", caption, err),
				})
				continue
			}
			canonical, formula := resolveUsageName(col, id)
			rows = append(rows, models.WorksheetFieldUsage{
				Worksheet:     name,
				Datasource:    caption,
				CanonicalName: canonical,
				Formula:       formula,
			})
		}
	}
	return rows, diags, nil
}

// resolveUsageName picks the canonical name for a dependency column. A
// caption-bearing column is a calculated field only when its own child is a
// calculation node carrying a formula; the caption then replaces the raw
// name. Pairing is strictly structural, never by position across separately
// filtered lists. All other columns keep the bracket-stripped raw name.
func resolveUsageName(col *xmltree.Node, id FieldIdentity) (canonical, formula string) {
	if id.Caption != "" {
		if calc := calculationChild(col); calc != nil {
			return id.Caption, calc.AttrValue(attrFormula)
		}
	}
	if id.Name != "" {
		return StripBrackets(id.Name), ""
	}
	return id.Caption, ""
}

// calculationChild returns the column's own calculation node bearing a
// formula, or nil.
func calculationChild(col *xmltree.Node) *xmltree.Node {
	for _, c := range col.Children(tagCalculation) {
		if v, ok := c.Attr(attrFormula); ok && v != "" {
			return c
		}
	}
	return nil
}
