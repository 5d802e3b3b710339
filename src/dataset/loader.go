package dataset

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/logging"
)

// ErrMissingColumn is returned when a source lacks a required header.
var ErrMissingColumn = errors.New("missing column")

// Canonical column names shared by every table after renaming.
const (
	ColCountry   = "Country"
	ColYear      = "Year"
	ColUnit      = "Unit"
	ColIndicator = "Indicator"
	ColGeo       = "geo"
	ColGDP       = "GDP_VALUE"
	ColPop       = "POP_VALUE"
	ColAgeClass  = "Age class"
	ColSex       = "Sex"
	ColISOCode   = "iso_code"
	ColEnergy    = "primary_energy_consumption"
)

// column maps a source header onto its canonical name.
type column struct {
	source string
	target string
}

var gdpColumns = []column{
	{"Unit of measure", ColUnit},
	{"National accounts indicator (ESA 2010)", ColIndicator},
	{"geo", ColGeo},
	{"Geopolitical entity (reporting)", ColCountry},
	{"TIME_PERIOD", ColYear},
	{"OBS_VALUE", ColGDP},
}

var energyColumns = []column{
	{"country", ColCountry},
	{"year", ColYear},
	{"iso_code", ColISOCode},
	{"primary_energy_consumption", ColEnergy},
}

var populationColumns = []column{
	{"Unit of measure", ColUnit},
	{"Age class", ColAgeClass},
	{"Sex", ColSex},
	{"geo", ColGeo},
	{"Geopolitical entity (reporting)", ColCountry},
	{"TIME_PERIOD", ColYear},
	{"OBS_VALUE", ColPop},
}

// Paths locates the three source files.
type Paths struct {
	GDP        string
	Energy     string
	Population string
}

// Load reads all three sources. Any read or parse failure aborts.
func Load(p Paths) (Sources, error) {
	gdp, err := LoadGDP(p.GDP)
	if err != nil {
		return Sources{}, fmt.Errorf("load gdp: %w", err)
	}
	energy, err := LoadEnergy(p.Energy)
	if err != nil {
		return Sources{}, fmt.Errorf("load energy: %w", err)
	}
	pop, err := LoadPopulation(p.Population)
	if err != nil {
		return Sources{}, fmt.Errorf("load population: %w", err)
	}
	return Sources{GDP: gdp, Energy: energy, Population: pop}, nil
}

// LoadGDP reads the GDP source and returns it sorted by year.
func LoadGDP(path string) ([]GDPRecord, error) {
	df, err := readTable(path, gdpColumns)
	if err != nil {
		return nil, err
	}
	years, err := intColumn(df, ColYear)
	if err != nil {
		return nil, err
	}
	values := df.Col(ColGDP).Float()
	geo := df.Col(ColGeo).Records()
	country := df.Col(ColCountry).Records()
	unit := df.Col(ColUnit).Records()
	indicator := df.Col(ColIndicator).Records()

	out := make([]GDPRecord, df.Nrow())
	for i := range out {
		out[i] = GDPRecord{
			Geo:       geo[i],
			Country:   country[i],
			Year:      years[i],
			Unit:      unit[i],
			Indicator: indicator[i],
			Value:     values[i],
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	logMissing("gdp", path, df)
	return out, nil
}

// LoadEnergy reads the energy source, ignoring every column but the four it needs.
func LoadEnergy(path string) ([]EnergyRecord, error) {
	df, err := readTable(path, energyColumns)
	if err != nil {
		return nil, err
	}
	years, err := intColumn(df, ColYear)
	if err != nil {
		return nil, err
	}
	values := df.Col(ColEnergy).Float()
	country := df.Col(ColCountry).Records()
	iso := df.Col(ColISOCode).Records()

	out := make([]EnergyRecord, df.Nrow())
	for i := range out {
		out[i] = EnergyRecord{
			Country:                  country[i],
			Year:                     years[i],
			ISOCode:                  iso[i],
			PrimaryEnergyConsumption: values[i],
		}
	}
	logging.Debugf("[dataset] energy rows=%d file=%s", len(out), path)
	return out, nil
}

// LoadPopulation reads the population source.
func LoadPopulation(path string) ([]PopulationRecord, error) {
	df, err := readTable(path, populationColumns)
	if err != nil {
		return nil, err
	}
	years, err := intColumn(df, ColYear)
	if err != nil {
		return nil, err
	}
	values := df.Col(ColPop).Float()
	geo := df.Col(ColGeo).Records()
	country := df.Col(ColCountry).Records()
	unit := df.Col(ColUnit).Records()
	age := df.Col(ColAgeClass).Records()
	sex := df.Col(ColSex).Records()

	out := make([]PopulationRecord, df.Nrow())
	for i := range out {
		out[i] = PopulationRecord{
			Geo:      geo[i],
			Country:  country[i],
			Year:     years[i],
			Unit:     unit[i],
			AgeClass: age[i],
			Sex:      sex[i],
			Value:    values[i],
		}
	}
	logMissing("population", path, df)
	return out, nil
}

// readTable parses a CSV with every cell kept as text, selects the wanted
// columns and renames them to their canonical names.
func readTable(path string, cols []column) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return df, fmt.Errorf("parse %s: %w", path, df.Err)
	}

	have := make(map[string]bool, df.Ncol())
	for _, n := range df.Names() {
		have[n] = true
	}
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		if !have[c.source] {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %q in %s", ErrMissingColumn, c.source, path)
		}
		names = append(names, c.source)
	}
	df = df.Select(names)
	for _, c := range cols {
		if c.source != c.target {
			df = df.Rename(c.target, c.source)
		}
	}
	if df.Err != nil {
		return df, fmt.Errorf("select columns in %s: %w", path, df.Err)
	}
	return df, nil
}

func intColumn(df dataframe.DataFrame, name string) ([]int, error) {
	vals, err := df.Col(name).Int()
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", name, err)
	}
	return vals, nil
}

// MissingValues counts empty or NaN cells per column.
func MissingValues(df dataframe.DataFrame) map[string]int {
	out := make(map[string]int, df.Ncol())
	for _, name := range df.Names() {
		col := df.Col(name)
		nan := col.IsNaN()
		recs := col.Records()
		n := 0
		for i := range recs {
			if nan[i] || strings.TrimSpace(recs[i]) == "" {
				n++
			}
		}
		out[name] = n
	}
	return out
}

func logMissing(source, path string, df dataframe.DataFrame) {
	missing := MissingValues(df)
	total := 0
	for _, n := range missing {
		total += n
	}
	if total == 0 {
		logging.Debugf("[dataset] %s rows=%d no missing values (%s)", source, df.Nrow(), path)
		return
	}
	logging.With("source", source, "file", path, "missing", missing).Warn("missing values in source table")
}
