package fieldline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline/fieldline-go/pkg/fieldline/models"
	"github.com/fieldline/fieldline-go/pkg/fieldline/xmltree"
)

const sampleWorkbook = `<?xml version='1.0' encoding='utf-8' ?>
<workbook>
  <datasources>
    <datasource caption='Orders' name='federated.abc'>
      <column caption='Margin' name='[Calculation_1]' role='measure'>
        <calculation class='tableau' formula='[Profit]/[Sales]'/>
      </column>
      <column hidden='true' name='[Row ID]' role='dimension'/>
    </datasource>
  </datasources>
  <worksheets>
    <worksheet name='Sheet 1'>
      <table>
        <view>
          <datasources>
            <datasource caption='Orders' name='federated.abc'/>
          </datasources>
          <datasource-dependencies datasource='federated.abc'>
            <column name='[Category]' role='dimension'/>
            <column caption='Margin' name='[Calculation_1]' role='measure'>
              <calculation class='tableau' formula='[Profit]/[Sales]'/>
            </column>
          </datasource-dependencies>
        </view>
      </table>
    </worksheet>
  </worksheets>
  <windows>
    <window class='dashboard' name='Overview'>
      <viewpoints>
        <viewpoint name='Sheet 1'/>
      </viewpoints>
    </window>
  </windows>
</workbook>`

func parseDoc(t *testing.T, src string) *xmltree.Document {
	t.Helper()
	doc, err := xmltree.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func TestAnalyzeTree(t *testing.T) {
	result, err := AnalyzeTree(parseDoc(t, sampleWorkbook), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []models.LineageRow{
		{Datasource: "Orders", CanonicalName: "Category", Status: models.UsageUsed},
		{Datasource: "Orders", CanonicalName: "Margin", Status: models.UsageUsed},
		{Datasource: "Orders", CanonicalName: "Row ID", Status: models.UsageNotUsed},
	}, result.Lineage)

	assert.Equal(t, []models.WorksheetFieldUsage{
		{Worksheet: "Sheet 1", Datasource: "Orders", CanonicalName: "Category"},
		{Worksheet: "Sheet 1", Datasource: "Orders", CanonicalName: "Margin", Formula: "[Profit]/[Sales]"},
	}, result.Usage)

	assert.Equal(t, []models.DashboardSheet{
		{Dashboard: "Overview", Worksheet: "Sheet 1"},
	}, result.Dashboards)

	assert.Empty(t, result.Diagnostics)
	assert.Len(t, result.Lineage, len(result.Inventory))
}

func TestAnalyzeTreeOptionToggles(t *testing.T) {
	off := false
	result, err := AnalyzeTree(parseDoc(t, sampleWorkbook), Options{
		IncludeUsage:      &off,
		IncludeDashboards: &off,
	})
	require.NoError(t, err)

	assert.Nil(t, result.Usage)
	assert.Nil(t, result.Dashboards)
	assert.NotEmpty(t, result.Lineage, "lineage is always built")
}

func TestAnalyzeTreeAmbiguousDirectory(t *testing.T) {
	doc := parseDoc(t, `<workbook>
		<datasource caption='Orders' name='federated.abc'/>
		<datasource caption='OrdersV2' name='federated.abc'/>
	</workbook>`)

	_, err := AnalyzeTree(doc, DefaultOptions())
	assert.True(t, errors.Is(err, ErrAmbiguousDatasource))
}

func TestAnalyze(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.twb")
	require.NoError(t, os.WriteFile(path, []byte(sampleWorkbook), 0644))

	result, err := Analyze(context.Background(), path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "sample.twb", result.WorkbookName)
	assert.Len(t, result.Lineage, 3)
}

func TestAnalyzeMissingFile(t *testing.T) {
	_, err := Analyze(context.Background(), filepath.Join(t.TempDir(), "absent.twb"), DefaultOptions())
	assert.True(t, errors.Is(err, ErrFileNotFound))
}
