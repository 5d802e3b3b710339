package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConfigInitWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "energygdp.yaml")
	out, err := execute(t, "config", "init", path)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "wrote "+path) {
		t.Fatalf("unexpected output %q", out)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if cfg.Filter.YearMin != config.DefaultYearMin || len(cfg.Filter.Countries) != 4 {
		t.Fatalf("written config is not the default: %+v", cfg.Filter)
	}

	if _, err := execute(t, "config", "init", path); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if _, err := execute(t, "config", "init", "--force", path); err != nil {
		t.Fatalf("config init --force: %v", err)
	}
}

func TestRunCommandWithConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return p
	}
	cfg := config.DefaultConfig()
	cfg.Inputs.GDP = write("gdp.csv", "Unit of measure,National accounts indicator (ESA 2010),geo,Geopolitical entity (reporting),TIME_PERIOD,OBS_VALUE\nMEUR,GDP,IT,Italy,1995,100\nMEUR,GDP,IT,Italy,1996,110\n")
	cfg.Inputs.Energy = write("energy.csv", "country,year,iso_code,primary_energy_consumption\nItaly,1995,ITA,50\nItaly,1996,ITA,55\n")
	cfg.Inputs.Population = write("pop.csv", "Unit of measure,Age class,Sex,geo,Geopolitical entity (reporting),TIME_PERIOD,OBS_VALUE\nNR,Total,Total,IT,Italy,1995,10\nNR,Total,Total,IT,Italy,1996,10\n")
	cfg.Outputs.Dir = filepath.Join(dir, "Output")
	cfgPath := filepath.Join(dir, "energygdp.yaml")
	if err := cfg.Save(cfgPath); err != nil {
		t.Fatalf("save config: %v", err)
	}

	out, err := execute(t, "run", "--config", cfgPath, "--skip-charts", "--log-level", "error")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "Italy") || !strings.Contains(out, "no decoupling") {
		t.Fatalf("summary missing from output:\n%s", out)
	}
	for _, name := range []string{cfg.Outputs.EnergyCSV, cfg.Outputs.MergedCSV} {
		if _, err := os.Stat(filepath.Join(cfg.Outputs.Dir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}

func TestRunCommandBadLogLevel(t *testing.T) {
	if _, err := execute(t, "run", "--log-level", "loud"); err == nil {
		t.Fatalf("expected error for unknown log level")
	}
}
