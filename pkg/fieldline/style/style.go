// Package style implements the cosmetic mutation operations: workbook-wide
// font and color rewriting and per-field hide/unhide toggles. These mutate
// the document tree and must not run concurrently with lineage extraction.
package style

import (
	"strings"

	"github.com/tiendc/go-deepcopy"

	"github.com/fieldline/fieldline-go/pkg/fieldline/parser"
	"github.com/fieldline/fieldline-go/pkg/fieldline/xmltree"
)

// FontSettings describes the font attributes applied to a style rule. Empty
// fields are left untouched.
type FontSettings struct {
	// Family is the font family name.
	Family string
	// Size is the point size, as the document stores it (e.g. "10").
	Size string
	// Color is a hex color such as "#4E79A7".
	Color string
}

// Theme is a set of font overrides: Base applies to all elements, Elements
// maps a style element name (e.g. "worksheet", "title") to its own settings.
type Theme struct {
	Base     FontSettings
	Elements map[string]FontSettings
}

const (
	tagStyle     = "style"
	tagStyleRule = "style-rule"
	tagFormat    = "format"

	attrElement = "element"
	attrAttr    = "attr"
	attrValue   = "value"
)

// ApplyTheme writes the theme's font settings into the workbook's style
// rules, creating missing style/style-rule/format nodes. Returns the number
// of format values written.
func ApplyTheme(doc *xmltree.Document, theme Theme) int {
	t := theme.normalized()

	count := applySettings(doc, "all", t.Base)
	for element, settings := range t.Elements {
		count += applySettings(doc, element, settings)
	}
	return count
}

// SetFont applies a single font setting workbook-wide.
func SetFont(doc *xmltree.Document, settings FontSettings) int {
	return ApplyTheme(doc, Theme{Base: settings})
}

// normalized returns a copy of the theme with color values lower-cased and
// "#"-prefixed. The copy is deep so the caller's maps are never mutated.
func (t Theme) normalized() Theme {
	var out Theme
	if err := deepcopy.Copy(&out, &t); err != nil {
		out = Theme{Base: t.Base}
	}
	out.Base.Color = normalizeColor(out.Base.Color)
	for key, settings := range out.Elements {
		settings.Color = normalizeColor(settings.Color)
		out.Elements[key] = settings
	}
	return out
}

func normalizeColor(c string) string {
	if c == "" {
		return ""
	}
	c = strings.ToLower(c)
	if !strings.HasPrefix(c, "#") {
		c = "#" + c
	}
	return c
}

func applySettings(doc *xmltree.Document, element string, settings FontSettings) int {
	pairs := [][2]string{
		{"font-family", settings.Family},
		{"font-size", settings.Size},
		{"color", settings.Color},
	}
	count := 0
	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		setFormat(styleRule(doc, element), p[0], p[1])
		count++
	}
	return count
}

// styleRule finds or creates the style-rule node for the given element under
// the workbook's style section.
func styleRule(doc *xmltree.Document, element string) *xmltree.Node {
	root := doc.Root()
	var styleNode *xmltree.Node
	if nodes := root.Children(tagStyle); len(nodes) > 0 {
		styleNode = nodes[0]
	} else {
		styleNode = root.AppendChild(tagStyle)
	}
	for _, rule := range styleNode.Children(tagStyleRule) {
		if rule.AttrValue(attrElement) == element {
			return rule
		}
	}
	rule := styleNode.AppendChild(tagStyleRule)
	rule.SetAttr(attrElement, element)
	return rule
}

func setFormat(rule *xmltree.Node, attr, value string) {
	for _, f := range rule.Children(tagFormat) {
		if f.AttrValue(attrAttr) == attr {
			f.SetAttr(attrValue, value)
			return
		}
	}
	f := rule.AppendChild(tagFormat)
	f.SetAttr(attrAttr, attr)
	f.SetAttr(attrValue, value)
}

// SetFieldHidden toggles the hidden flag on every column matching the
// canonical field name within datasources matching the given caption.
// Columns that cannot be identified are left untouched. Returns the number
// of columns changed.
func SetFieldHidden(doc *xmltree.Document, datasource, canonicalName string, hidden bool) int {
	count := 0
	for _, ds := range doc.Select(xmltree.All(
		xmltree.ByTag("datasource"),
		xmltree.AttrEquals("caption", datasource),
	)) {
		for _, col := range ds.Children("column") {
			id, err := parser.ResolveIdentity(col)
			if err != nil {
				continue
			}
			if id.CanonicalName() != canonicalName {
				continue
			}
			if hidden {
				col.SetAttr("hidden", "true")
				count++
			} else if col.RemoveAttr("hidden") {
				count++
			}
		}
	}
	return count
}
