package export

import (
	"bytes"
	"context"
	"database/sql"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/analysis"
	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/dataset"
)

func sampleEnergy() []dataset.EnergyRecord {
	return []dataset.EnergyRecord{
		{Country: "France", Year: 1995, ISOCode: "FRA", PrimaryEnergyConsumption: 2800.5},
		{Country: "Germany", Year: 1995, ISOCode: "DEU", PrimaryEnergyConsumption: math.NaN()},
		{Country: "Italy", Year: 1996, ISOCode: "ITA", PrimaryEnergyConsumption: 1900},
	}
}

func sampleVariation() []analysis.VariationRecord {
	merged := analysis.Derive([]analysis.MergedRecord{
		{Geo: "FR", Country: "France", Year: 1995, GDP: 100, Indicator: "GDP", GDPUnit: "MEUR", PrimaryEnergyConsumption: 50, Population: 10},
		{Geo: "FR", Country: "France", Year: 1996, GDP: 110, Indicator: "GDP", GDPUnit: "MEUR", PrimaryEnergyConsumption: 55, Population: 10},
	})
	return analysis.Variations(merged, 0.1)
}

func TestFormatCell(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{"Spain", "Spain"},
		{1995, "1995"},
		{2.5, "2.5"},
		{1e-7, "0.0000001"},
		{math.NaN(), ""},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{nil, ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatCell(c.in), "%v", c.in)
	}
}

func TestEnergyTableColumns(t *testing.T) {
	tbl := EnergyTable(sampleEnergy())
	assert.Equal(t, []string{"Country", "Year", "iso_code", "primary_energy_consumption"}, tbl.ColumnNames())
	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, []any{"France", 1995, "FRA", 2800.5}, tbl.Rows[0])
}

func TestVariationTableExtendsMerged(t *testing.T) {
	tbl := VariationTable(sampleVariation())
	names := tbl.ColumnNames()
	merged := MergedTable(nil).ColumnNames()
	require.Len(t, names, len(merged)+5)
	assert.Equal(t, merged, names[:len(merged)])
	assert.Equal(t, []string{"GDP_Variation", "GDP_Variation_%", "Energy_Variation", "Energy_Variation_%", "Elasticity"}, names[len(merged):])
	last := tbl.Rows[1]
	assert.InDelta(t, 1.0, last[len(last)-1].(float64), 1e-9)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "energy.csv")
	require.NoError(t, WriteCSV(path, EnergyTable(sampleEnergy())))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	assert.Equal(t, []string{
		"Country,Year,iso_code,primary_energy_consumption",
		"France,1995,FRA,2800.5",
		"Germany,1995,DEU,",
		"Italy,1996,ITA,1900",
	}, lines)
}

func TestWriteCSVEmptyTableKeepsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteCSV(path, MergedTable(nil)))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "geo_2,Country,Year,GDP_VALUE"))
}

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "energy.db")
	ctx := context.Background()
	require.NoError(t, WriteSQLite(ctx, path, EnergyTable(sampleEnergy()), VariationTable(sampleVariation())))
	// A second write replaces the tables instead of appending.
	require.NoError(t, WriteSQLite(ctx, path, EnergyTable(sampleEnergy())))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM energy`).Scan(&n))
	assert.Equal(t, 3, n)

	var v sql.NullFloat64
	require.NoError(t, db.QueryRow(`SELECT primary_energy_consumption FROM energy WHERE Country = 'Germany'`).Scan(&v))
	assert.False(t, v.Valid)

	var e sql.NullFloat64
	require.NoError(t, db.QueryRow(`SELECT "Elasticity" FROM variation WHERE Year = 1996`).Scan(&e))
	assert.True(t, e.Valid)
	assert.InDelta(t, 1.0, e.Float64, 1e-9)
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteWorkbook(path,
		Sheet{Name: "Energy", Table: EnergyTable(sampleEnergy())},
		Sheet{Name: "Elasticity", Table: ElasticityTable(analysis.MeanElasticity(sampleVariation()))},
	))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Energy", "Elasticity"}, f.GetSheetList())

	rows, err := f.GetRows("Energy")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Country", "Year", "iso_code", "primary_energy_consumption"}, rows[0])
	assert.Equal(t, "France", rows[1][0])
	assert.Equal(t, "1995", rows[1][1])

	rows, err = f.GetRows("Elasticity")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "France", rows[1][0])
	assert.Equal(t, "no decoupling", rows[1][3])
}

func TestWriteWorkbookNonFiniteCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	rows := []dataset.EnergyRecord{
		{Country: "Italy", Year: 1995, ISOCode: "ITA", PrimaryEnergyConsumption: math.Inf(1)},
		{Country: "Italy", Year: 1996, ISOCode: "ITA", PrimaryEnergyConsumption: math.Inf(-1)},
		{Country: "Italy", Year: 1997, ISOCode: "ITA", PrimaryEnergyConsumption: math.NaN()},
	}
	require.NoError(t, WriteWorkbook(path, Sheet{Name: "Energy", Table: EnergyTable(rows)}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	for cell, want := range map[string]string{"D2": "inf", "D3": "-inf", "D4": ""} {
		got, err := f.GetCellValue("Energy", cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, cell)
	}
	typ, err := f.GetCellType("Energy", "D2")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeSharedString, typ)
}

func TestWriteWorkbookNoSheets(t *testing.T) {
	assert.Error(t, WriteWorkbook(filepath.Join(t.TempDir(), "x.xlsx")))
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, "Average Elasticity [1995-2023]", []analysis.CountryElasticity{
		{Country: "France", Mean: 0.5, Years: 3, Class: analysis.RelativeDecoupling},
		{Country: "Spain", Mean: math.NaN(), Class: analysis.DecouplingUndefined},
	})
	out := buf.String()
	assert.Contains(t, out, "Average Elasticity [1995-2023]")
	assert.Contains(t, out, "Mean elasticity")
	assert.Contains(t, out, "0.500")
	assert.Contains(t, out, "relative decoupling")
	assert.Contains(t, out, "n/a")
}
