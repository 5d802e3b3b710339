package analysis

import (
	"fmt"
	"math"
	"sort"
)

// Decoupling classifies an elasticity value.
type Decoupling int

const (
	DecouplingUndefined Decoupling = iota
	// e >= 1: energy grows at least as fast as GDP.
	NoDecoupling
	// 0 < e < 1: energy grows slower than GDP.
	RelativeDecoupling
	// e == 0: GDP moves, energy does not.
	NoEnergyChange
	// e < 0: GDP grows while energy falls.
	AbsoluteDecoupling
)

func (d Decoupling) String() string {
	switch d {
	case NoDecoupling:
		return "no decoupling"
	case RelativeDecoupling:
		return "relative decoupling"
	case NoEnergyChange:
		return "no energy change"
	case AbsoluteDecoupling:
		return "absolute decoupling"
	}
	return "undefined"
}

// Classify maps an elasticity onto its decoupling class.
func Classify(e float64) Decoupling {
	switch {
	case math.IsNaN(e):
		return DecouplingUndefined
	case e >= 1:
		return NoDecoupling
	case e > 0:
		return RelativeDecoupling
	case e == 0:
		return NoEnergyChange
	default:
		return AbsoluteDecoupling
	}
}

// CountryElasticity is the mean elasticity of one country over the observed years.
type CountryElasticity struct {
	Country string
	Mean    float64 // NaN when no year has a defined elasticity
	Years   int     // number of defined values averaged
	Class   Decoupling
}

// MeanElasticity averages Elasticity per country ignoring NaN. Result is sorted by country.
func MeanElasticity(rows []VariationRecord) []CountryElasticity {
	type acc struct {
		sum float64
		n   int
	}
	byCountry := map[string]*acc{}
	var order []string
	for _, r := range rows {
		a, ok := byCountry[r.Country]
		if !ok {
			a = &acc{}
			byCountry[r.Country] = a
			order = append(order, r.Country)
		}
		if math.IsNaN(r.Elasticity) {
			continue
		}
		a.sum += r.Elasticity
		a.n++
	}
	sort.Strings(order)
	out := make([]CountryElasticity, 0, len(order))
	for _, c := range order {
		a := byCountry[c]
		mean := math.NaN()
		if a.n > 0 {
			mean = a.sum / float64(a.n)
		}
		out = append(out, CountryElasticity{Country: c, Mean: mean, Years: a.n, Class: Classify(mean)})
	}
	return out
}

// Metric selects one derived value of a merged row.
type Metric struct {
	Name  string
	Unit  string
	Value func(MergedRecord) float64
}

var (
	// TWh per million euro equals MWh per euro.
	MetricEnergyIntensity = Metric{Name: "Energy Intensity", Unit: "MWh/€", Value: func(r MergedRecord) float64 { return r.EnergyIntensity }}
	MetricEnergyPerCapita = Metric{Name: "Energy per capita", Unit: "TWh/person", Value: func(r MergedRecord) float64 { return r.EnergyPerCapita }}
	MetricGDPPerCapita    = Metric{Name: "GDP per capita", Unit: "€/inhabitant", Value: func(r MergedRecord) float64 { return r.GDPCapita }}
)

// PivotTable is a Year × Country view of one metric. Absent cells are NaN.
type PivotTable struct {
	Metric    Metric
	Years     []int
	Countries []string
	// Cells[i][j] is the value for Years[i], Countries[j].
	Cells [][]float64
}

// Column returns the values of one country ordered by year.
func (p PivotTable) Column(country string) []float64 {
	for j, c := range p.Countries {
		if c != country {
			continue
		}
		col := make([]float64, len(p.Years))
		for i := range p.Years {
			col[i] = p.Cells[i][j]
		}
		return col
	}
	return nil
}

// Pivot indexes rows by year (ascending) with one column per country (sorted by name).
func Pivot(rows []MergedRecord, m Metric) (PivotTable, error) {
	yearSet := map[int]bool{}
	countrySet := map[string]bool{}
	for _, r := range rows {
		yearSet[r.Year] = true
		countrySet[r.Country] = true
	}
	p := PivotTable{Metric: m}
	for y := range yearSet {
		p.Years = append(p.Years, y)
	}
	for c := range countrySet {
		p.Countries = append(p.Countries, c)
	}
	sort.Ints(p.Years)
	sort.Strings(p.Countries)

	yi := make(map[int]int, len(p.Years))
	for i, y := range p.Years {
		yi[y] = i
	}
	ci := make(map[string]int, len(p.Countries))
	for j, c := range p.Countries {
		ci[c] = j
	}
	p.Cells = make([][]float64, len(p.Years))
	filled := make([][]bool, len(p.Years))
	for i := range p.Cells {
		p.Cells[i] = make([]float64, len(p.Countries))
		filled[i] = make([]bool, len(p.Countries))
		for j := range p.Cells[i] {
			p.Cells[i][j] = math.NaN()
		}
	}
	for _, r := range rows {
		i, j := yi[r.Year], ci[r.Country]
		if filled[i][j] {
			return PivotTable{}, fmt.Errorf("pivot %s: %w: %s", m.Name, ErrDuplicateKey, r.Key())
		}
		filled[i][j] = true
		p.Cells[i][j] = m.Value(r)
	}
	return p, nil
}

// ForCountry returns the rows of one country in their current order.
func ForCountry(rows []VariationRecord, country string) []VariationRecord {
	var out []VariationRecord
	for _, r := range rows {
		if r.Country == country {
			out = append(out, r)
		}
	}
	return out
}
