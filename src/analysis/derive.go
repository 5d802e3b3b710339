package analysis

import (
	"math"
	"sort"
)

// Derive returns a copy of merged with GDP per capita, energy intensity and
// energy per capita filled in. Zero denominators are not guarded: they yield ±Inf or NaN.
func Derive(merged []MergedRecord) []MergedRecord {
	out := make([]MergedRecord, len(merged))
	for i, r := range merged {
		r.GDPCapita = r.GDP / r.Population
		r.EnergyIntensity = r.PrimaryEnergyConsumption / r.GDP
		r.EnergyPerCapita = r.PrimaryEnergyConsumption / r.Population
		out[i] = r
	}
	return out
}

// VariationRecord extends a merged row with year-over-year changes within its country.
// Undefined values are NaN.
type VariationRecord struct {
	MergedRecord
	GDPVariation       float64
	GDPVariationPct    float64
	EnergyVariation    float64
	EnergyVariationPct float64
	Elasticity         float64
}

// Variations sorts a copy of merged by country then year and computes, per country,
// the first difference and percent change of GDP and energy consumption against the
// previous row of the same country. Elasticity is EnergyVariationPct/GDPVariationPct,
// left NaN where |GDPVariationPct| < minGDPPct. Only the denominator is guarded.
func Variations(merged []MergedRecord, minGDPPct float64) []VariationRecord {
	rows := make([]MergedRecord, len(merged))
	copy(rows, merged)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Country != rows[j].Country {
			return rows[i].Country < rows[j].Country
		}
		return rows[i].Year < rows[j].Year
	})

	nan := math.NaN()
	out := make([]VariationRecord, len(rows))
	for i, r := range rows {
		v := VariationRecord{
			MergedRecord:       r,
			GDPVariation:       nan,
			GDPVariationPct:    nan,
			EnergyVariation:    nan,
			EnergyVariationPct: nan,
			Elasticity:         nan,
		}
		if i > 0 && rows[i-1].Country == r.Country {
			prev := rows[i-1]
			v.GDPVariation = r.GDP - prev.GDP
			v.GDPVariationPct = pctChange(prev.GDP, r.GDP)
			v.EnergyVariation = r.PrimaryEnergyConsumption - prev.PrimaryEnergyConsumption
			v.EnergyVariationPct = pctChange(prev.PrimaryEnergyConsumption, r.PrimaryEnergyConsumption)
			v.Elasticity = elasticity(v.EnergyVariationPct, v.GDPVariationPct, minGDPPct)
		}
		out[i] = v
	}
	return out
}

func pctChange(prev, cur float64) float64 {
	return (cur/prev - 1) * 100
}

func elasticity(energyPct, gdpPct, minGDPPct float64) float64 {
	if math.Abs(gdpPct) < minGDPPct {
		return math.NaN()
	}
	return energyPct / gdpPct
}
