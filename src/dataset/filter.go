package dataset

import (
	"math"
	"sort"
)

// Criteria restricts records to an allow-list of countries and an inclusive year range.
type Criteria struct {
	Countries []string
	YearMin   int
	YearMax   int
}

// Allows reports whether k passes both the country and the year restriction.
func (c Criteria) Allows(k Key) bool {
	if k.Year < c.YearMin || k.Year > c.YearMax {
		return false
	}
	for _, name := range c.Countries {
		if name == k.Country {
			return true
		}
	}
	return false
}

// FilterEnergy returns a new slice holding the records allowed by c, stably sorted by year.
// The input is left untouched.
func FilterEnergy(records []EnergyRecord, c Criteria) []EnergyRecord {
	out := make([]EnergyRecord, 0, len(records))
	for _, r := range records {
		if c.Allows(r.Key()) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// MissingEnergy counts filtered rows without a consumption value.
// Informational only: the pipeline neither drops nor imputes them.
func MissingEnergy(records []EnergyRecord) int {
	n := 0
	for _, r := range records {
		if math.IsNaN(r.PrimaryEnergyConsumption) || r.Country == "" {
			n++
		}
	}
	return n
}
