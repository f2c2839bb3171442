package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fieldline/fieldline-go/pkg/fieldline/xmltree"
)

// sampleWorkbook is a trimmed-down workbook document covering the shapes the
// extractors care about: captioned datasources with hidden and calculated
// columns, per-worksheet dependency subtrees, a parameters pseudo-datasource,
// and a dashboard window with worksheet viewpoints.
const sampleWorkbook = `<?xml version='1.0' encoding='utf-8' ?>
<workbook>
  <datasources>
    <datasource caption='Parameters' name='Parameters'>
      <column caption='Top N' datatype='integer' name='[Parameter 1]' role='measure' type='quantitative' value='10'/>
    </datasource>
    <datasource caption='Orders' name='federated.0a1b2c' version='18.1'>
      <column caption='Profit Ratio' datatype='real' name='[Calculation_123]' role='measure' type='quantitative'>
        <calculation class='tableau' formula='SUM([Profit])/SUM([Sales])'/>
      </column>
      <column datatype='string' hidden='true' name='[Row ID]' role='dimension' type='nominal'/>
      <column datatype='string' hidden='true' name='[Postal Code]' role='dimension' type='nominal'/>
    </datasource>
    <datasource caption='Returns' name='federated.9z8y7x' version='18.1'>
      <column datatype='string' hidden='true' name='[Approval Note]' role='dimension' type='nominal'/>
    </datasource>
  </datasources>
  <worksheets>
    <worksheet name='Sheet 1'>
      <table>
        <view>
          <datasources>
            <datasource caption='Parameters' name='Parameters'/>
            <datasource caption='Orders' name='federated.0a1b2c'/>
          </datasources>
          <datasource-dependencies datasource='Parameters'>
            <column caption='Top N' datatype='integer' name='[Parameter 1]' role='measure' type='quantitative'/>
          </datasource-dependencies>
          <datasource-dependencies datasource='federated.0a1b2c'>
            <column datatype='string' name='[Category]' role='dimension' type='nominal'/>
            <column datatype='string' name='[Postal Code]' role='dimension' type='nominal'/>
            <column caption='Profit Ratio' datatype='real' name='[Calculation_123]' role='measure' type='quantitative'>
              <calculation class='tableau' formula='SUM([Profit])/SUM([Sales])'/>
            </column>
            <column-instance column='[Category]' derivation='None' name='[none:Category:nk]' pivot='key' type='nominal'/>
          </datasource-dependencies>
        </view>
      </table>
    </worksheet>
    <worksheet name='Sheet 2'>
      <table>
        <view>
          <datasources>
            <datasource caption='Returns' name='federated.9z8y7x'/>
          </datasources>
          <datasource-dependencies datasource='federated.9z8y7x'>
            <column datatype='string' name='[Reason]' role='dimension' type='nominal'/>
          </datasource-dependencies>
        </view>
      </table>
    </worksheet>
  </worksheets>
  <dashboards>
    <dashboard name='Overview'>
      <zones>
        <zone h='98000' id='3' w='98000' x='1000' y='1000'/>
      </zones>
    </dashboard>
  </dashboards>
  <windows>
    <window class='dashboard' name='Overview'>
      <viewpoints>
        <viewpoint name='Sheet 1'/>
        <viewpoint name='Sheet 2'/>
      </viewpoints>
    </window>
    <window class='worksheet' name='Sheet 1'/>
  </windows>
</workbook>`

func parseDoc(t *testing.T, src string) *xmltree.Document {
	t.Helper()
	doc, err := xmltree.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func sampleDoc(t *testing.T) *xmltree.Document {
	t.Helper()
	return parseDoc(t, sampleWorkbook)
}
