// Package analysis joins the source tables on (Country, Year) and derives intensity,
// per-capita and elasticity indicators from the result.
package analysis

import (
	"errors"
	"fmt"

	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/dataset"
)

// ErrDuplicateKey is returned when a (Country, Year) that takes part in a join
// occurs twice in a single table.
var ErrDuplicateKey = errors.New("duplicate key")

// GDPEnergyRecord is the result of the first join (GDP ⋈ Energy).
type GDPEnergyRecord struct {
	dataset.GDPRecord
	ISOCode                  string
	PrimaryEnergyConsumption float64
}

// MergedRecord is one country-year after both joins plus the derived ratios.
// Unit and geo of the GDP side are exported as Unit_2/geo_2, the population
// unit as Unit_pop; iso_code and the population geo are dropped.
type MergedRecord struct {
	Geo                      string
	Country                  string
	Year                     int
	GDP                      float64
	Indicator                string
	GDPUnit                  string
	PrimaryEnergyConsumption float64
	Population               float64
	PopulationUnit           string
	AgeClass                 string
	Sex                      string

	// Derived by Derive.
	GDPCapita       float64
	EnergyIntensity float64
	EnergyPerCapita float64
}

func (r MergedRecord) Key() dataset.Key { return dataset.Key{Country: r.Country, Year: r.Year} }

// JoinGDPEnergy inner-joins GDP and energy on (Country, Year), keeping GDP order.
// A key repeated on either side is an error only when it matches the other side.
func JoinGDPEnergy(gdp []dataset.GDPRecord, energy []dataset.EnergyRecord) ([]GDPEnergyRecord, error) {
	gdpDups := duplicates(gdp, dataset.GDPRecord.Key)
	byKey, energyDups := index(energy, dataset.EnergyRecord.Key)
	out := make([]GDPEnergyRecord, 0, len(gdp))
	for _, g := range gdp {
		k := g.Key()
		e, ok := byKey[k]
		if !ok {
			continue
		}
		if gdpDups[k] {
			return nil, duplicateErr(k, "gdp")
		}
		if energyDups[k] {
			return nil, duplicateErr(k, "energy")
		}
		out = append(out, GDPEnergyRecord{
			GDPRecord:                g,
			ISOCode:                  e.ISOCode,
			PrimaryEnergyConsumption: e.PrimaryEnergyConsumption,
		})
	}
	return out, nil
}

// JoinPopulation inner-joins the first join result with population, keeping left order.
// Derived fields are left zero; see Derive.
func JoinPopulation(left []GDPEnergyRecord, pop []dataset.PopulationRecord) ([]MergedRecord, error) {
	leftDups := duplicates(left, GDPEnergyRecord.Key)
	byKey, popDups := index(pop, dataset.PopulationRecord.Key)
	out := make([]MergedRecord, 0, len(left))
	for _, l := range left {
		k := l.Key()
		p, ok := byKey[k]
		if !ok {
			continue
		}
		if leftDups[k] {
			return nil, duplicateErr(k, "gdp")
		}
		if popDups[k] {
			return nil, duplicateErr(k, "population")
		}
		out = append(out, MergedRecord{
			Geo:                      l.Geo,
			Country:                  l.Country,
			Year:                     l.Year,
			GDP:                      l.Value,
			Indicator:                l.Indicator,
			GDPUnit:                  l.Unit,
			PrimaryEnergyConsumption: l.PrimaryEnergyConsumption,
			Population:               p.Value,
			PopulationUnit:           p.Unit,
			AgeClass:                 p.AgeClass,
			Sex:                      p.Sex,
		})
	}
	return out, nil
}

// Join runs both inner joins: (GDP ⋈ Energy) ⋈ Population.
func Join(gdp []dataset.GDPRecord, energy []dataset.EnergyRecord, pop []dataset.PopulationRecord) ([]MergedRecord, error) {
	ge, err := JoinGDPEnergy(gdp, energy)
	if err != nil {
		return nil, err
	}
	return JoinPopulation(ge, pop)
}

// index maps each key to its first row and reports the keys seen more than once.
func index[T any](rows []T, key func(T) dataset.Key) (map[dataset.Key]T, map[dataset.Key]bool) {
	m := make(map[dataset.Key]T, len(rows))
	dups := make(map[dataset.Key]bool)
	for _, r := range rows {
		k := key(r)
		if _, seen := m[k]; seen {
			dups[k] = true
			continue
		}
		m[k] = r
	}
	return m, dups
}

func duplicates[T any](rows []T, key func(T) dataset.Key) map[dataset.Key]bool {
	_, dups := index(rows, key)
	return dups
}

func duplicateErr(k dataset.Key, table string) error {
	return fmt.Errorf("%w: %s in %s table", ErrDuplicateKey, k, table)
}
