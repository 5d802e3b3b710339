// Package export writes the pipeline tables to CSV, and optionally to SQLite
// and an XLSX workbook, plus a console summary of mean elasticities.
package export

import (
	"math"
	"strconv"

	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/analysis"
	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/dataset"
)

// Kind is the storage type of a column.
type Kind int

const (
	Text Kind = iota
	Integer
	Real
)

// Column names one output column.
type Column struct {
	Name string
	Kind Kind
}

// Table is a materialized output table. Cells hold string, int or float64 by column kind.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

// ColumnNames returns the header row.
func (t Table) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

type field[T any] struct {
	Column
	value func(T) any
}

func build[T any](name string, rows []T, fields []field[T]) Table {
	t := Table{Name: name, Columns: make([]Column, len(fields)), Rows: make([][]any, len(rows))}
	for i, f := range fields {
		t.Columns[i] = f.Column
	}
	for r, row := range rows {
		cells := make([]any, len(fields))
		for i, f := range fields {
			cells[i] = f.value(row)
		}
		t.Rows[r] = cells
	}
	return t
}

func text[T any](name string, fn func(T) string) field[T] {
	return field[T]{Column{name, Text}, func(r T) any { return fn(r) }}
}

func integer[T any](name string, fn func(T) int) field[T] {
	return field[T]{Column{name, Integer}, func(r T) any { return fn(r) }}
}

func number[T any](name string, fn func(T) float64) field[T] {
	return field[T]{Column{name, Real}, func(r T) any { return fn(r) }}
}

var energyFields = []field[dataset.EnergyRecord]{
	text(dataset.ColCountry, func(r dataset.EnergyRecord) string { return r.Country }),
	integer(dataset.ColYear, func(r dataset.EnergyRecord) int { return r.Year }),
	text(dataset.ColISOCode, func(r dataset.EnergyRecord) string { return r.ISOCode }),
	number(dataset.ColEnergy, func(r dataset.EnergyRecord) float64 { return r.PrimaryEnergyConsumption }),
}

var mergedFields = []field[analysis.MergedRecord]{
	text("geo_2", func(r analysis.MergedRecord) string { return r.Geo }),
	text(dataset.ColCountry, func(r analysis.MergedRecord) string { return r.Country }),
	integer(dataset.ColYear, func(r analysis.MergedRecord) int { return r.Year }),
	number(dataset.ColGDP, func(r analysis.MergedRecord) float64 { return r.GDP }),
	text(dataset.ColIndicator, func(r analysis.MergedRecord) string { return r.Indicator }),
	text("Unit_2", func(r analysis.MergedRecord) string { return r.GDPUnit }),
	number(dataset.ColEnergy, func(r analysis.MergedRecord) float64 { return r.PrimaryEnergyConsumption }),
	number(dataset.ColPop, func(r analysis.MergedRecord) float64 { return r.Population }),
	text("Unit_pop", func(r analysis.MergedRecord) string { return r.PopulationUnit }),
	text(dataset.ColAgeClass, func(r analysis.MergedRecord) string { return r.AgeClass }),
	text(dataset.ColSex, func(r analysis.MergedRecord) string { return r.Sex }),
	number("GDP_capita", func(r analysis.MergedRecord) float64 { return r.GDPCapita }),
	number("Energy_Intensity", func(r analysis.MergedRecord) float64 { return r.EnergyIntensity }),
	number("Energy_per_capita", func(r analysis.MergedRecord) float64 { return r.EnergyPerCapita }),
}

func variationFields() []field[analysis.VariationRecord] {
	out := make([]field[analysis.VariationRecord], 0, len(mergedFields)+5)
	for _, f := range mergedFields {
		f := f
		out = append(out, field[analysis.VariationRecord]{f.Column, func(r analysis.VariationRecord) any { return f.value(r.MergedRecord) }})
	}
	return append(out,
		number("GDP_Variation", func(r analysis.VariationRecord) float64 { return r.GDPVariation }),
		number("GDP_Variation_%", func(r analysis.VariationRecord) float64 { return r.GDPVariationPct }),
		number("Energy_Variation", func(r analysis.VariationRecord) float64 { return r.EnergyVariation }),
		number("Energy_Variation_%", func(r analysis.VariationRecord) float64 { return r.EnergyVariationPct }),
		number("Elasticity", func(r analysis.VariationRecord) float64 { return r.Elasticity }),
	)
}

var elasticityFields = []field[analysis.CountryElasticity]{
	text(dataset.ColCountry, func(r analysis.CountryElasticity) string { return r.Country }),
	number("Mean_Elasticity", func(r analysis.CountryElasticity) float64 { return r.Mean }),
	integer("Years", func(r analysis.CountryElasticity) int { return r.Years }),
	text("Decoupling", func(r analysis.CountryElasticity) string { return r.Class.String() }),
}

// EnergyTable is the filtered energy table: Country, Year, iso_code, primary_energy_consumption.
func EnergyTable(rows []dataset.EnergyRecord) Table { return build("energy", rows, energyFields) }

// MergedTable is the joined table with derived ratios, in presentation column order.
func MergedTable(rows []analysis.MergedRecord) Table { return build("merged", rows, mergedFields) }

// VariationTable is MergedTable plus year-over-year variation and elasticity columns.
func VariationTable(rows []analysis.VariationRecord) Table {
	return build("variation", rows, variationFields())
}

// ElasticityTable lists the per-country mean elasticity.
func ElasticityTable(rows []analysis.CountryElasticity) Table {
	return build("elasticity", rows, elasticityFields)
}

// FormatCell renders a cell as text: NaN is empty, infinities are inf/-inf and
// floats use the shortest exact decimal form.
func FormatCell(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		switch {
		case math.IsNaN(x):
			return ""
		case math.IsInf(x, 1):
			return "inf"
		case math.IsInf(x, -1):
			return "-inf"
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	}
	return ""
}

// finite maps NaN to nil so sinks store an empty/NULL cell.
func finite(v any) any {
	if f, ok := v.(float64); ok && math.IsNaN(f) {
		return nil
	}
	return v
}
