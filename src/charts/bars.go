package charts

import (
	"image"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/analysis"
)

const elasticityLabel = "Elasticity coefficient"

// RenderElasticityBars draws one bar per country mean elasticity, anchored at zero.
// Countries without a defined mean are left out.
func RenderElasticityBars(means []analysis.CountryElasticity, title string, p Panel) image.Image {
	var bars []chart.Value
	var vals []float64
	for _, m := range means {
		if !finite(m.Mean) {
			continue
		}
		vals = append(vals, m.Mean)
		bars = append(bars, chart.Value{
			Label: m.Country,
			Value: m.Mean,
			Style: chart.Style{FillColor: seriesColor(0), StrokeColor: seriesColor(0), StrokeWidth: 1},
		})
	}
	if len(bars) == 0 {
		return placeholder(p.Width, p.Height, "elasticity: no data")
	}
	lo, hi, _ := finiteRange(vals, []float64{0})
	yRange, yTicks := axisRange(lo, hi, 6)

	barWidth := p.Width / (2 * (len(bars) + 1))
	if barWidth < 8 {
		barWidth = 8
	}
	bc := chart.BarChart{
		Title:        title,
		Width:        p.Width,
		Height:       p.Height,
		Background:   chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		BarWidth:     barWidth,
		UseBaseValue: true,
		BaseValue:    0,
		YAxis: chart.YAxis{
			Name:           elasticityLabel,
			Range:          yRange,
			Ticks:          yTicks,
			GridMajorStyle: gridStyle,
			GridMinorStyle: gridStyle,
		},
		Bars: bars,
	}
	return renderPNG(bc, "elasticity", p.Width, p.Height)
}
