package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("invalid config")

// Default allow-list and inclusive year range of the energy filter.
var DefaultCountries = []string{"Germany", "France", "Italy", "Spain"}

const (
	DefaultYearMin = 1995
	DefaultYearMax = 2023

	// Below this absolute GDP change (percent) elasticity is left undefined.
	DefaultElasticityMinGDPPct = 0.1
)

// Config holds all pipeline configuration.
type Config struct {
	Inputs   InputsConfig   `yaml:"inputs"`
	Outputs  OutputsConfig  `yaml:"outputs"`
	Filter   FilterConfig   `yaml:"filter"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Charts   ChartsConfig   `yaml:"charts"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// InputsConfig points at the three source tables.
type InputsConfig struct {
	GDP        string `yaml:"gdp"`
	Energy     string `yaml:"energy"`
	Population string `yaml:"population"`
}

// OutputsConfig names every artifact. Optional sinks are disabled when empty.
type OutputsConfig struct {
	Dir           string `yaml:"dir"`
	EnergyCSV     string `yaml:"energy_csv"`
	MergedCSV     string `yaml:"merged_csv"`
	VariationCSV  string `yaml:"variation_csv"` // optional
	SQLite        string `yaml:"sqlite"`        // optional
	Workbook      string `yaml:"workbook"`      // optional
	TrendPNG      string `yaml:"trend_png"`
	ScatterPNG    string `yaml:"scatter_png"`
	ElasticityPNG string `yaml:"elasticity_png"`
}

// FilterConfig restricts the energy table.
type FilterConfig struct {
	Countries []string `yaml:"countries"`
	YearMin   int      `yaml:"year_min"`
	YearMax   int      `yaml:"year_max"`
}

// AnalysisConfig tunes the derivation engine.
type AnalysisConfig struct {
	ElasticityMinGDPPct float64 `yaml:"elasticity_min_gdp_pct"`
}

// ChartsConfig sets the pixel size of a single chart panel.
type ChartsConfig struct {
	PanelWidth  int `yaml:"panel_width"`
	PanelHeight int `yaml:"panel_height"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// DefaultConfig returns the paths and constants of the reference run.
func DefaultConfig() *Config {
	return &Config{
		Inputs: InputsConfig{
			GDP:        "Data/GDP_GE_FR_IT_SP.csv",
			Energy:     "Data/owid-energy-data.csv",
			Population: "Data/Pop_GE_FR_IT_SP.csv",
		},
		Outputs: OutputsConfig{
			Dir:           "Output",
			EnergyCSV:     "Energy_GE_FR_IT_SP.csv",
			MergedCSV:     "final_data_GE_FR_IT_SP.csv",
			TrendPNG:      "Energy_Intensity_percapita_GE_FR_IT_SP.png",
			ScatterPNG:    "Decoupling_scatter_GE_FR_IT_SP.png",
			ElasticityPNG: "Avg_Elasticity_Char_GE_FR_IT_SP.png",
		},
		Filter: FilterConfig{
			Countries: append([]string(nil), DefaultCountries...),
			YearMin:   DefaultYearMin,
			YearMax:   DefaultYearMax,
		},
		Analysis: AnalysisConfig{
			ElasticityMinGDPPct: DefaultElasticityMinGDPPct,
		},
		Charts: ChartsConfig{
			PanelWidth:  500,
			PanelHeight: 400,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads YAML configuration from path over the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks filter, threshold and chart settings.
func (c *Config) Validate() error {
	if len(c.Filter.Countries) == 0 {
		return fmt.Errorf("%w: filter.countries is empty", ErrInvalid)
	}
	if c.Filter.YearMin > c.Filter.YearMax {
		return fmt.Errorf("%w: filter.year_min %d > year_max %d", ErrInvalid, c.Filter.YearMin, c.Filter.YearMax)
	}
	if c.Analysis.ElasticityMinGDPPct < 0 {
		return fmt.Errorf("%w: analysis.elasticity_min_gdp_pct must be >= 0", ErrInvalid)
	}
	if c.Charts.PanelWidth <= 0 || c.Charts.PanelHeight <= 0 {
		return fmt.Errorf("%w: charts panel size must be positive", ErrInvalid)
	}
	if c.Inputs.GDP == "" || c.Inputs.Energy == "" || c.Inputs.Population == "" {
		return fmt.Errorf("%w: all three inputs are required", ErrInvalid)
	}
	return nil
}

// OutputPath joins name onto the output directory; empty names stay empty.
func (c *Config) OutputPath(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Outputs.Dir, name)
}

// YearRangeLabel renders the range as used in chart titles, e.g. "[1995-2023]".
func (c *Config) YearRangeLabel() string {
	return fmt.Sprintf("[%d-%d]", c.Filter.YearMin, c.Filter.YearMax)
}
