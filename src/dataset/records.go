// Package dataset loads the GDP, energy and population source tables and
// applies the country/year restriction to the energy table.
package dataset

import "fmt"

// Key identifies one country-year observation; it is the join key across all sources.
type Key struct {
	Country string
	Year    int
}

func (k Key) String() string { return fmt.Sprintf("%s/%d", k.Country, k.Year) }

// GDPRecord is one row of the real GDP source (GDP_VALUE in currency units).
type GDPRecord struct {
	Geo       string
	Country   string
	Year      int
	Unit      string
	Indicator string
	Value     float64
}

func (r GDPRecord) Key() Key { return Key{Country: r.Country, Year: r.Year} }

// EnergyRecord is one row of the primary energy consumption source.
// ISOCode is carried for the filtered export only.
type EnergyRecord struct {
	Country                  string
	Year                     int
	ISOCode                  string
	PrimaryEnergyConsumption float64
}

func (r EnergyRecord) Key() Key { return Key{Country: r.Country, Year: r.Year} }

// PopulationRecord is one row of the population source (POP_VALUE in persons).
type PopulationRecord struct {
	Geo      string
	Country  string
	Year     int
	Unit     string
	AgeClass string
	Sex      string
	Value    float64
}

func (r PopulationRecord) Key() Key { return Key{Country: r.Country, Year: r.Year} }

// Sources bundles the three loaded tables.
type Sources struct {
	GDP        []GDPRecord
	Energy     []EnergyRecord
	Population []PopulationRecord
}
