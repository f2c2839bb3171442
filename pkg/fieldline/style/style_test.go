package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline/fieldline-go/pkg/fieldline/xmltree"
)

func parseDoc(t *testing.T, src string) *xmltree.Document {
	t.Helper()
	doc, err := xmltree.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func TestSetFontCreatesStyleRule(t *testing.T) {
	doc := parseDoc(t, `<workbook/>`)

	changed := SetFont(doc, FontSettings{Family: "Tableau Book", Size: "10"})
	assert.Equal(t, 2, changed)

	rules := doc.Select(xmltree.All(xmltree.ByTag("style-rule"), xmltree.AttrEquals("element", "all")))
	require.Len(t, rules, 1)

	formats := rules[0].Children("format")
	require.Len(t, formats, 2)
	assert.Equal(t, "font-family", formats[0].AttrValue("attr"))
	assert.Equal(t, "Tableau Book", formats[0].AttrValue("value"))
}

func TestSetFontUpdatesExistingFormat(t *testing.T) {
	doc := parseDoc(t, `<workbook>
		<style>
			<style-rule element='all'>
				<format attr='font-family' value='Arial'/>
			</style-rule>
		</style>
	</workbook>`)

	SetFont(doc, FontSettings{Family: "Tableau Book"})

	formats := doc.Select(xmltree.All(xmltree.ByTag("format"), xmltree.AttrEquals("attr", "font-family")))
	require.Len(t, formats, 1, "existing format node is updated, not duplicated")
	assert.Equal(t, "Tableau Book", formats[0].AttrValue("value"))
}

func TestApplyThemeNormalizesColors(t *testing.T) {
	doc := parseDoc(t, `<workbook/>`)

	theme := Theme{
		Base:     FontSettings{Color: "4E79A7"},
		Elements: map[string]FontSettings{"title": {Color: "#FF0000"}},
	}
	ApplyTheme(doc, theme)

	// The caller's theme is not mutated.
	assert.Equal(t, "4E79A7", theme.Base.Color)
	assert.Equal(t, "#FF0000", theme.Elements["title"].Color)

	formats := doc.Select(xmltree.All(xmltree.ByTag("format"), xmltree.AttrEquals("attr", "color")))
	require.Len(t, formats, 2)
	values := []string{formats[0].AttrValue("value"), formats[1].AttrValue("value")}
	assert.Contains(t, values, "#4e79a7")
	assert.Contains(t, values, "#ff0000")
}

func TestSetFieldHidden(t *testing.T) {
	doc := parseDoc(t, `<workbook>
		<datasource caption='Orders' name='federated.abc'>
			<column name='[Sales]' datatype='real'/>
			<column caption='Margin' name='[Calculation_1]'>
				<calculation formula='[Profit]/[Sales]'/>
			</column>
		</datasource>
		<datasource caption='Returns' name='federated.def'>
			<column name='[Sales]' datatype='real'/>
		</datasource>
	</workbook>`)

	// Only the matching datasource's column changes.
	changed := SetFieldHidden(doc, "Orders", "Sales", true)
	assert.Equal(t, 1, changed)

	hidden := doc.Select(xmltree.AttrEquals("hidden", "true"))
	require.Len(t, hidden, 1)
	assert.Equal(t, "[Sales]", hidden[0].AttrValue("name"))

	// Caption-resolved identity matches calculated fields too.
	changed = SetFieldHidden(doc, "Orders", "Margin", true)
	assert.Equal(t, 1, changed)

	// Unhide removes the attribute.
	changed = SetFieldHidden(doc, "Orders", "Sales", false)
	assert.Equal(t, 1, changed)
	_, ok := doc.Select(xmltree.AttrEquals("name", "[Sales]"))[0].Attr("hidden")
	assert.False(t, ok)
}

func TestSetFieldHiddenNoMatch(t *testing.T) {
	doc := parseDoc(t, `<workbook>
		<datasource caption='Orders' name='federated.abc'>
			<column name='[Sales]'/>
		</datasource>
	</workbook>`)

	assert.Equal(t, 0, SetFieldHidden(doc, "Orders", "Ghost", true))
	assert.Equal(t, 0, SetFieldHidden(doc, "Unknown", "Sales", true))
}
