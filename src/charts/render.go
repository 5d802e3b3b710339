package charts

import (
	"fmt"
	"image"
	"sort"

	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/analysis"
	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/logging"
)

// Input is the data the three figures are drawn from.
type Input struct {
	Merged     []analysis.MergedRecord
	Variations []analysis.VariationRecord
	Means      []analysis.CountryElasticity
	// Countries fixes the scatter panel order; countries absent from Variations are skipped.
	Countries []string
	// Period is appended to every figure title, e.g. "[1995-2023]".
	Period string
}

// Files are the output paths of RenderAll. An empty path skips that figure.
type Files struct {
	Trend      string
	Scatter    string
	Elasticity string
}

var trendMetrics = []analysis.Metric{
	analysis.MetricEnergyIntensity,
	analysis.MetricEnergyPerCapita,
	analysis.MetricGDPPerCapita,
}

// RenderAll renders the trend grid, the decoupling scatter grid and the elasticity bar
// chart and writes them as PNGs. It returns the paths written.
func RenderAll(in Input, files Files, p Panel) ([]string, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("invalid panel size %dx%d", p.Width, p.Height)
	}
	toRender := []struct {
		path string
		fn   func() (image.Image, error)
	}{
		{files.Trend, func() (image.Image, error) {
			pivots := make([]analysis.PivotTable, 0, len(trendMetrics))
			for _, m := range trendMetrics {
				pt, err := analysis.Pivot(in.Merged, m)
				if err != nil {
					return nil, err
				}
				pivots = append(pivots, pt)
			}
			return RenderTrendGrid(pivots, "Energy and GDP Trends "+in.Period, p), nil
		}},
		{files.Scatter, func() (image.Image, error) {
			return RenderScatterGrid(in.Variations, scatterCountries(in), "GDP and Energy Variation "+in.Period, p), nil
		}},
		{files.Elasticity, func() (image.Image, error) {
			return RenderElasticityBars(in.Means, "Average Elasticity "+in.Period, p), nil
		}},
	}

	var written []string
	for _, item := range toRender {
		if item.path == "" {
			continue
		}
		img, err := item.fn()
		if err != nil {
			return written, err
		}
		if err := savePNG(item.path, img); err != nil {
			return written, err
		}
		logging.Debugf("[charts] wrote %s (%dx%d)", item.path, img.Bounds().Dx(), img.Bounds().Dy())
		written = append(written, item.path)
	}
	return written, nil
}

// scatterCountries keeps the configured order, then appends any other country seen, sorted.
func scatterCountries(in Input) []string {
	present := map[string]bool{}
	for _, r := range in.Variations {
		present[r.Country] = true
	}
	var out []string
	seen := map[string]bool{}
	for _, c := range in.Countries {
		if present[c] && !seen[c] {
			out = append(out, c)
			seen[c] = true
		}
	}
	var rest []string
	for c := range present {
		if !seen[c] {
			rest = append(rest, c)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
