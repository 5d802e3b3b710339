// Package pipeline runs the load, filter, join, derive, export and render stages once.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/analysis"
	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/charts"
	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/config"
	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/dataset"
	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/export"
	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/logging"
)

// Options adjust a single run without touching the configuration.
type Options struct {
	// Summary receives the elasticity table. Nil means os.Stdout.
	Summary io.Writer
	// SkipCharts leaves the PNG figures out.
	SkipCharts bool
}

// Result carries every intermediate table of a run and the files it wrote.
type Result struct {
	RunID      string
	Sources    dataset.Sources
	Energy     []dataset.EnergyRecord
	Merged     []analysis.MergedRecord
	Variations []analysis.VariationRecord
	Means      []analysis.CountryElasticity
	Artifacts  []string
}

// Run executes the pipeline with cfg. The context is checked between stages.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Result, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Summary == nil {
		opts.Summary = os.Stdout
	}
	res := &Result{RunID: uuid.NewString()}
	log := logging.With("run_id", res.RunID)
	log.Infow("run started", "countries", cfg.Filter.Countries, "years", cfg.YearRangeLabel())
	defer logging.TimeTrack(time.Now(), "run")

	stages := []struct {
		name string
		fn   func() (int, error)
	}{
		{"load", func() (int, error) { return load(cfg, res) }},
		{"filter", func() (int, error) { return filter(cfg, res, log) }},
		{"join", func() (int, error) { return join(res, log) }},
		{"derive", func() (int, error) { return derive(cfg, res, log) }},
		{"export", func() (int, error) { return exportTables(ctx, cfg, res, opts.Summary) }},
		{"render", func() (int, error) {
			if opts.SkipCharts {
				return 0, nil
			}
			return render(cfg, res)
		}},
	}
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("%s: %w", st.name, err)
		}
		start := time.Now()
		n, err := st.fn()
		if err != nil {
			log.Errorw("stage failed", "stage", st.name, "error", err)
			return res, fmt.Errorf("%s: %w", st.name, err)
		}
		logging.TimeTrack(start, st.name)
		log.Infow("stage done", "stage", st.name, "rows", n)
	}
	log.Infow("run finished", "artifacts", len(res.Artifacts))
	return res, nil
}

func load(cfg *config.Config, res *Result) (int, error) {
	src, err := dataset.Load(dataset.Paths{
		GDP:        cfg.Inputs.GDP,
		Energy:     cfg.Inputs.Energy,
		Population: cfg.Inputs.Population,
	})
	if err != nil {
		return 0, err
	}
	res.Sources = src
	return len(src.GDP) + len(src.Energy) + len(src.Population), nil
}

func filter(cfg *config.Config, res *Result, log *zap.SugaredLogger) (int, error) {
	res.Energy = dataset.FilterEnergy(res.Sources.Energy, dataset.Criteria{
		Countries: cfg.Filter.Countries,
		YearMin:   cfg.Filter.YearMin,
		YearMax:   cfg.Filter.YearMax,
	})
	if n := dataset.MissingEnergy(res.Energy); n > 0 {
		log.Warnw("energy rows without primary_energy_consumption", "rows", n)
	}
	return len(res.Energy), nil
}

func join(res *Result, log *zap.SugaredLogger) (int, error) {
	merged, err := analysis.Join(res.Sources.GDP, res.Energy, res.Sources.Population)
	if err != nil {
		return 0, err
	}
	if len(merged) == 0 {
		log.Warnw("join produced no rows; outputs will be empty")
	}
	res.Merged = merged
	return len(merged), nil
}

func derive(cfg *config.Config, res *Result, log *zap.SugaredLogger) (int, error) {
	res.Merged = analysis.Derive(res.Merged)
	res.Variations = analysis.Variations(res.Merged, cfg.Analysis.ElasticityMinGDPPct)
	res.Means = analysis.MeanElasticity(res.Variations)
	for _, m := range res.Means {
		log.Infow("mean elasticity", "country", m.Country, "mean", m.Mean, "years", m.Years, "class", m.Class.String())
	}
	return len(res.Variations), nil
}

func exportTables(ctx context.Context, cfg *config.Config, res *Result, summary io.Writer) (int, error) {
	energy := export.EnergyTable(res.Energy)
	merged := export.MergedTable(res.Merged)
	variation := export.VariationTable(res.Variations)

	csvs := []struct {
		name  string
		table export.Table
	}{
		{cfg.Outputs.EnergyCSV, energy},
		{cfg.Outputs.MergedCSV, merged},
		{cfg.Outputs.VariationCSV, variation},
	}
	for _, c := range csvs {
		path := cfg.OutputPath(c.name)
		if path == "" {
			continue
		}
		if err := export.WriteCSV(path, c.table); err != nil {
			return 0, err
		}
		res.Artifacts = append(res.Artifacts, path)
	}
	if path := cfg.OutputPath(cfg.Outputs.SQLite); path != "" {
		if err := export.WriteSQLite(ctx, path, energy, merged, variation); err != nil {
			return 0, fmt.Errorf("sqlite: %w", err)
		}
		res.Artifacts = append(res.Artifacts, path)
	}
	if path := cfg.OutputPath(cfg.Outputs.Workbook); path != "" {
		err := export.WriteWorkbook(path,
			export.Sheet{Name: "Energy", Table: energy},
			export.Sheet{Name: "Merged", Table: merged},
			export.Sheet{Name: "Elasticity", Table: export.ElasticityTable(res.Means)},
		)
		if err != nil {
			return 0, fmt.Errorf("workbook: %w", err)
		}
		res.Artifacts = append(res.Artifacts, path)
	}
	export.WriteSummary(summary, "Average Elasticity "+cfg.YearRangeLabel(), res.Means)
	return len(energy.Rows) + len(merged.Rows), nil
}

func render(cfg *config.Config, res *Result) (int, error) {
	written, err := charts.RenderAll(charts.Input{
		Merged:     res.Merged,
		Variations: res.Variations,
		Means:      res.Means,
		Countries:  cfg.Filter.Countries,
		Period:     cfg.YearRangeLabel(),
	}, charts.Files{
		Trend:      cfg.OutputPath(cfg.Outputs.TrendPNG),
		Scatter:    cfg.OutputPath(cfg.Outputs.ScatterPNG),
		Elasticity: cfg.OutputPath(cfg.Outputs.ElasticityPNG),
	}, charts.Panel{Width: cfg.Charts.PanelWidth, Height: cfg.Charts.PanelHeight})
	res.Artifacts = append(res.Artifacts, written...)
	return len(written), err
}
