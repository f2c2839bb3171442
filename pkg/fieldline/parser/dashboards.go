package parser

import (
	"github.com/fieldline/fieldline-go/pkg/fieldline/models"
	"github.com/fieldline/fieldline-go/pkg/fieldline/xmltree"
)

// BuildDashboardComposition maps dashboard containers to the names of their
// contained worksheets. Dashboard windows carry worksheet viewpoints; older
// documents without a windows section list named zones under the dashboard
// element instead. Document structure already guarantees uniqueness within a
// dashboard, so no deduplication is applied.
func BuildDashboardComposition(doc *xmltree.Document) []models.DashboardSheet {
	var pairs []models.DashboardSheet

	windows := doc.Select(xmltree.All(
		xmltree.ByTag(tagWindow),
		xmltree.AttrEquals(attrClass, tagDashboard),
		xmltree.HasAttr(attrName),
	))
	for _, w := range windows {
		dashboard := w.AttrValue(attrName)
		for _, vps := range w.Children(tagViewpoints) {
			for _, vp := range vps.Children(tagViewpoint) {
				if ws := vp.AttrValue(attrName); ws != "" {
					pairs = append(pairs, models.DashboardSheet{Dashboard: dashboard, Worksheet: ws})
				}
			}
		}
	}
	if len(windows) > 0 {
		return pairs
	}

	for _, d := range doc.Select(xmltree.All(xmltree.ByTag(tagDashboard), xmltree.HasAttr(attrName))) {
		dashboard := d.AttrValue(attrName)
		for _, z := range d.Select(xmltree.All(xmltree.ByTag(tagZone), xmltree.HasAttr(attrName))) {
			pairs = append(pairs, models.DashboardSheet{Dashboard: dashboard, Worksheet: z.AttrValue(attrName)})
		}
	}
	return pairs
}

// BuildDashboardRollup left-outer joins dashboard composition against the
// worksheet usage table on worksheet name. A dashboard with no matching usage
// rows still appears, with the field columns empty.
func BuildDashboardRollup(dashboards []models.DashboardSheet, usage []models.WorksheetFieldUsage) []models.DashboardRollup {
	byWorksheet := make(map[string][]models.WorksheetFieldUsage)
	for _, u := range usage {
		byWorksheet[u.Worksheet] = append(byWorksheet[u.Worksheet], u)
	}

	var rows []models.DashboardRollup
	for _, pair := range dashboards {
		matched := byWorksheet[pair.Worksheet]
		if len(matched) == 0 {
			rows = append(rows, models.DashboardRollup{
				Dashboard: pair.Dashboard,
				Worksheet: pair.Worksheet,
			})
			continue
		}
		for _, u := range matched {
			rows = append(rows, models.DashboardRollup{
				Dashboard:     pair.Dashboard,
				Worksheet:     pair.Worksheet,
				Datasource:    u.Datasource,
				CanonicalName: u.CanonicalName,
			})
		}
	}
	return rows
}
