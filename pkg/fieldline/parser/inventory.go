package parser

import (
	"fmt"
	"sort"

	"github.com/fieldline/fieldline-go/pkg/fieldline/models"
	"github.com/fieldline/fieldline-go/pkg/fieldline/xmltree"
)

// fieldKey identifies one (field, datasource) pair.
type fieldKey struct {
	name       string
	datasource string
}

// BuildFieldInventory runs the hidden and active field scans over datasource
// declarations and returns their union, sorted by (canonical name,
// datasource caption). Reserved pseudo-datasources are excluded from the
// active scan. The directory must be complete before this runs.
func BuildFieldInventory(doc *xmltree.Document, dir Directory, reserved []string) ([]models.FieldVisibilityRecord, []models.Diagnostic) {
	var diags []models.Diagnostic
	records := make(map[fieldKey]models.FieldVisibilityRecord)

	keep := func(rec models.FieldVisibilityRecord) {
		key := fieldKey{name: rec.CanonicalName, datasource: rec.Datasource}
		existing, ok := records[key]
		if !ok {
			records[key] = rec
			return
		}
		// One record per (field, datasource); a hidden declaration wins over
		// an active sighting of the same field.
		if rec.Hidden && !existing.Hidden {
			records[key] = rec
		}
	}

	// Hidden scan: flagged columns within captioned datasource declarations.
	for _, ds := range doc.Select(xmltree.All(xmltree.ByTag(tagDatasource), xmltree.HasAttr(attrCaption))) {
		caption := ds.AttrValue(attrCaption)
		for _, col := range ds.Children(tagColumn) {
			if col.AttrValue(attrHidden) != "true" {
				continue
			}
			id, err := ResolveIdentity(col)
			if err != nil {
				diags = append(diags, models.Diagnostic{
					Stage:  "inventory",
					Detail: fmt.Sprintf("skipped hidden column in datasource %q: %v", caption, err),
				})
				continue
			}
			keep(models.FieldVisibilityRecord{
				CanonicalName: id.CanonicalName(),
				Datasource:    caption,
				Hidden:        true,
			})
		}
	}

	// Active scan: columns referenced from dependency declarations, with the
	// datasource identity redirected through the directory.
	skip := make(map[string]bool, len(reserved))
	for _, r := range reserved {
		skip[r] = true
	}
	for _, dep := range doc.Select(xmltree.All(xmltree.ByTag(tagDependencies), xmltree.HasAttr(attrDatasource))) {
		token := dep.AttrValue(attrDatasource)
		if skip[token] {
			continue
		}
		caption, ok := dir.Lookup(token)
		if !ok {
			diags = append(diags, models.Diagnostic{
				Stage:  "inventory",
				Detail: fmt.Sprintf("skipped dependency subtree: %v: %q", ErrUnresolvedDatasource, token),
			})
			continue
		}
		for _, col := range dep.Children(tagColumn) {
			id, err := ResolveIdentity(col)
			if err != nil {
				diags = append(diags, models.Diagnostic{
					Stage:  "inventory",
					Detail: fmt.Sprintf("skipped dependency column in datasource %q: %v", caption, err),
				})
				continue
			}
			keep(models.FieldVisibilityRecord{
				CanonicalName: id.CanonicalName(),
				Datasource:    caption,
			})
		}
	}

	out := make([]models.FieldVisibilityRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CanonicalName != out[j].CanonicalName {
			return out[i].CanonicalName < out[j].CanonicalName
		}
		return out[i].Datasource < out[j].Datasource
	})
	return out, diags
}
